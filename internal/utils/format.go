package utils

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FormatSize renders a byte count the way ls -h does
func FormatSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}

// FormatModTime renders a modification time for listings
func FormatModTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

// FormatAge renders how long ago t was, e.g. "3 hours ago"
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}
