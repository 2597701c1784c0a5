// Package portal drives the replay portal's web UI: signing in, applying the
// listing filters, and scraping the rendered video cards.
//
// All flows run against the narrow Driver surface instead of a concrete
// browser, so the sequencing and filtering logic stays testable with fakes.
package portal

import "time"

// Driver is the page-automation surface the portal flows need.
// *browser.Session satisfies it.
type Driver interface {
	Navigate(url string) error
	Click(selector string) error
	SetValue(selector, value string) error
	Evaluate(expression string, result any) error
	WaitReady(selector string, timeout time.Duration) error
	WaitQuiescent(timeout time.Duration) error
	Location() (string, error)
	Sleep(d time.Duration)
}

// Client executes the portal flows over a Driver.
type Client struct {
	Driver  Driver
	BaseURL string

	// Option values forced into the center and court filter selects.
	Center string
	Court  string

	// Kept time-of-day window, inclusive, as hour*100+minute.
	WindowStart int
	WindowEnd   int

	// PageTimeout bounds each individual wait for page content.
	PageTimeout time.Duration

	// FilterSettle is the pause after the filter sequence; CardSettle is the
	// pause after cards attach, covering late-rendering thumbnails and players.
	FilterSettle time.Duration
	CardSettle   time.Duration
}

// LoginURL returns the portal's login page address.
func (c *Client) LoginURL() string {
	return c.BaseURL + "/login"
}

// VideosURL returns the portal's replay listing address.
func (c *Client) VideosURL() string {
	return c.BaseURL + "/videos"
}

func (c *Client) pageTimeout() time.Duration {
	if c.PageTimeout > 0 {
		return c.PageTimeout
	}
	return time.Minute
}
