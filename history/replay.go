package history

import (
	"fmt"
	"time"
)

// SavedReplay represents a single replay entry preserved in the download history.
type SavedReplay struct {
	Date    string    `json:"date"`
	Title   string    `json:"title"`
	Path    string    `json:"path"`
	SavedAt time.Time `json:"saved_at"`
}

func (s *SavedReplay) encode() string {
	return fmt.Sprintf("%s (%s)", s.Title, s.Date)
}

func (s *SavedReplay) String() string {
	return fmt.Sprintf("%s : %s", s.Date, s.Title)
}
