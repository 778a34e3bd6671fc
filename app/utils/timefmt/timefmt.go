package timefmt

import "time"

// Layout renders timestamps as dd.mm.yyyy hh:mm:ss, the format used by the
// health endpoint.
const Layout = "02.01.2006 15:04:05"

// Format renders t in the Layout format.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Now renders the current time in the Layout format.
func Now() string {
	return Format(time.Now())
}
