package display

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FormatBytes returns a human-readable size using binary units (KiB, MiB, ...).
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatSeconds renders a duration in seconds for humans, rounded to the
// millisecond (e.g. "12.5s", "1m12.5s").
func FormatSeconds(secs float64) string {
	d := time.Duration(secs * float64(time.Second))
	return d.Round(time.Millisecond).String()
}

// Plural returns singular when n == 1 and singular+"s" otherwise.
func Plural(n int, singular string) string {
	if n == 1 {
		return singular
	}
	return singular + "s"
}
