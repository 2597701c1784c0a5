// Package icon provides the feedback glyphs printed alongside CLI status messages.
package icon

// Icon identifies a single UI symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Warning
	Video
	Download
	Lock
	Calendar
	Progress
)

var icons = map[Icon]string{
	Success:  "✓",
	Fail:     "✗",
	Warning:  "!",
	Video:    "▶",
	Download: "↓",
	Lock:     "⚿",
	Calendar: "▤",
	Progress: "◌",
}

// Get returns the rendered glyph for a specified Icon identifier.
func Get(i Icon) string {
	return icons[i]
}
