package portal

import "time"

// dateKeyLayout matches the option values of the portal's date select; the
// same string names the dated download folder.
const dateKeyLayout = "20060102"

// DateKey computes the session date a run targets: the most recent Wednesday
// strictly before now, or seven days back when now itself falls on a Wednesday.
func DateKey(now time.Time) string {
	daysSince := (int(now.Weekday()) - int(time.Wednesday) + 7) % 7
	if daysSince == 0 {
		daysSince = 7
	}
	return now.AddDate(0, 0, -daysSince).Format(dateKeyLayout)
}
