package timex

import "time"

// Now returns the current time in UTC at microsecond precision, which is
// what both PostgreSQL and SQLite round-trip without loss.
var Now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
