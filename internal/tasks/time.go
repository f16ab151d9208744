package tasks

import "time"

// timeNow is a package-level variable for testability.
// Tests can replace this to control time in assertions.
var timeNow = time.Now

// stamp returns the current local time truncated to the minute, the
// resolution the roadmap documents keep.
func stamp() time.Time {
	now := timeNow().Local()
	return time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), 0, 0, time.Local)
}
