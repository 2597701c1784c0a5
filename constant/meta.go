// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Hoopsgrab is the canonical application identifier used for filesystem paths and CLI branding.
	Hoopsgrab = "hoopsgrab"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the desktop User-Agent string presented on every portal request,
	// both by the automated browser and by the direct HTTP download client.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// VideoExtension is the media extension appended to every downloaded replay.
	VideoExtension = ".mp4"
)

// Build metadata, injected at link time via -ldflags.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
