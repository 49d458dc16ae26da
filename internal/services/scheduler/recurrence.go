package scheduler

import "time"

// The day walk is bounded so a malformed or empty day set still terminates.
// A full week plus slack is enough for any valid weekly recurrence.
const maxWalkDays = 14

var weekdayTags = map[Weekday]time.Weekday{
	Sunday:    time.Sunday,
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
}

// NextOccurrence computes the next due instant for a weekly-recurring job.
// The walk starts one calendar day after lastScheduled, keeping the same
// wall-clock time in lastScheduled's location, and stops at the first day
// whose weekday is in days. A day set containing lastScheduled's own weekday
// therefore yields next week's occurrence, never the same calendar day.
//
// If no day matches within the walk bound (empty or unrecognized day set),
// the instant reached at the bound is returned as a best-effort fallback.
func NextOccurrence(lastScheduled time.Time, days []Weekday) time.Time {
	want := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		if wd, ok := weekdayTags[d]; ok {
			want[wd] = true
		}
	}

	next := lastScheduled.AddDate(0, 0, 1)
	for i := 1; i < maxWalkDays; i++ {
		if want[next.Weekday()] {
			return next
		}
		next = next.AddDate(0, 0, 1)
	}
	return next
}
