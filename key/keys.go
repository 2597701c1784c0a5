// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Portal Access - these keys identify the target site and the account used to sign in.
const (
	SiteBaseURL  = "site.base_url"
	SiteEmail    = "site.email"
	SitePassword = "site.password"
)

// Listing Filters - these keys select which recordings the portal lists.
const (
	FilterCenter      = "filters.center"
	FilterCourt       = "filters.court"
	FilterWindowStart = "filters.window_start"
	FilterWindowEnd   = "filters.window_end"
)

// Browser Automation - these keys govern the driven Chrome instance.
const (
	BrowserHeadless    = "browser.headless"
	BrowserWindowSize  = "browser.window_size"
	BrowserPageTimeout = "browser.page_timeout"
)

// Download Behavior - these keys configure where and how replay files are written.
const (
	DownloadsDir      = "downloads.dir"
	DownloadsPause    = "downloads.pause"
	DownloadsProgress = "downloads.progress"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern presentation of the command line itself.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
