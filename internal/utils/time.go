package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutMonth    = "2006-01"
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
)

// MonthWindow resolves a "YYYY-MM" billing month (empty means the current
// month) into the half-open [start, end) window in local time, plus the
// normalized month label.
func MonthWindow(month string) (time.Time, time.Time, string, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		now := time.Now()
		month = now.Format(layoutMonth)
	}
	start, err := time.ParseInLocation(layoutMonth, month, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid billing month %q, expected YYYY-MM", month)
	}
	end := start.AddDate(0, 1, 0)
	return start, end, month, nil
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}
