package request

import "time"

// overridable in tests
var timeNow = time.Now

// ApplyDate merges a picked calendar date into the current deadline. The
// pickers capture one dimension at a time, so whichever hour/minute was
// already chosen must survive a date change. With no deadline set yet the
// picked day starts at midnight.
func ApplyDate(current, picked time.Time) time.Time {
	if current.IsZero() {
		return time.Date(picked.Year(), picked.Month(), picked.Day(), 0, 0, 0, 0, time.UTC)
	}
	return time.Date(picked.Year(), picked.Month(), picked.Day(),
		current.Hour(), current.Minute(), 0, 0, current.Location())
}

// ApplyTime merges a picked clock time into the current deadline, keeping
// the year/month/day already chosen. With no deadline set yet the picked
// time lands on today's date.
func ApplyTime(current, picked time.Time) time.Time {
	base := current
	if base.IsZero() {
		base = timeNow().UTC()
	}
	return time.Date(base.Year(), base.Month(), base.Day(),
		picked.Hour(), picked.Minute(), 0, 0, base.Location())
}
