package scheduler

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	timePattern = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})\s*(AM|PM)$`)
	datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// ParseDateTime converts a "YYYY-MM-DD" date and a 12-hour "HH:MM AM/PM"
// time, both read as wall-clock values in loc, into an absolute instant.
// The boolean is false when either string is malformed or out of range;
// callers are expected to re-prompt rather than handle an error value.
//
// There is no primitive that builds an instant from named-zone wall-clock
// components directly, so the conversion is two-pass: treat the components
// as if they were UTC, read loc's offset at that trial instant, and shift
// the trial back by that offset. This stays correct across DST transitions
// because the offset is sampled within hours of the target instant.
func ParseDateTime(dateStr, timeStr string, loc *time.Location) (time.Time, bool) {
	tm := timePattern.FindStringSubmatch(timeStr)
	if tm == nil {
		return time.Time{}, false
	}
	hour, _ := strconv.Atoi(tm[1])
	minute, _ := strconv.Atoi(tm[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return time.Time{}, false
	}
	// 12-hour to 24-hour: 12 AM is midnight, 12 PM stays noon.
	period := strings.ToUpper(tm[3])
	if period == "PM" && hour != 12 {
		hour += 12
	} else if period == "AM" && hour == 12 {
		hour = 0
	}

	dm := datePattern.FindStringSubmatch(dateStr)
	if dm == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(dm[1])
	month, _ := strconv.Atoi(dm[2])
	day, _ := strconv.Atoi(dm[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	trial := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	// Reject dates time.Date silently normalized (e.g. Feb 30 -> Mar 2).
	if trial.Year() != year || trial.Month() != time.Month(month) || trial.Day() != day {
		return time.Time{}, false
	}

	_, offset := trial.In(loc).Zone()
	return trial.Add(-time.Duration(offset) * time.Second), true
}
