package attendance

import "time"

// IST is the fixed offset all class dates are anchored to. Marking stores
// midnight IST regardless of the time component the client sends, so date
// comparisons stay exact-match safe.
var IST = time.FixedZone("IST", 5*3600+30*60)

// NormalizeDate rounds t down to the start of its calendar day in IST.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.In(IST).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, IST)
}

// ViewType selects the date window for a student's own attendance view.
type ViewType string

const (
	ViewDaily    ViewType = "daily"
	ViewMonthly  ViewType = "monthly"
	ViewSemester ViewType = "semester"
)

// Window is a half-open or closed date range, depending on the view.
type Window struct {
	Start time.Time
	End   time.Time
	// EndInclusive selects $lte over $lt for the upper bound.
	EndInclusive bool
}

// WindowFor computes the date window for a view type relative to now.
// The academic year is assumed to start August 1: before August the
// semester window rolls back to August 1 of the previous calendar year.
func WindowFor(view ViewType, now time.Time) (Window, bool) {
	today := NormalizeDate(now)
	switch view {
	case ViewDaily:
		return Window{Start: today, End: today.AddDate(0, 0, 1)}, true
	case ViewMonthly:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, IST)
		return Window{Start: first, End: first.AddDate(0, 1, 0)}, true
	case ViewSemester:
		year := today.Year()
		if today.Month() < time.August {
			year--
		}
		start := time.Date(year, time.August, 1, 0, 0, 0, 0, IST)
		end := today.Add(24*time.Hour - time.Second)
		return Window{Start: start, End: end, EndInclusive: true}, true
	}
	return Window{}, false
}
