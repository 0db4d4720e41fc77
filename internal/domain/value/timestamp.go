package value

import (
	"fmt"
	"strings"
	"time"
)

const mrpTimestampLayout = "2006-01-02T15:04:05"

//nolint:gochecknoglobals
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseWonTime reads a deal resolution timestamp. ISO-8601 values without a
// zone and "YYYY-MM-DD HH:MM:SS" values are taken as UTC.
func ParseWonTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	switch {
	case strings.Contains(s, "T"):
		for _, layout := range isoLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t.UTC(), nil
			}
		}
	case strings.Contains(s, " "):
		if t, err := time.ParseInLocation(time.DateTime, s, time.UTC); err == nil {
			return t, nil
		}
	default:
		if t, err := time.ParseInLocation(time.DateOnly, s, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
}

// FormatMRPTimestamp renders t in UTC with the millisecond part zeroed, the
// form the MRP expects.
func FormatMRPTimestamp(t time.Time) string {
	return t.UTC().Format(mrpTimestampLayout) + ".000Z"
}

// DeliveryDate is the resolution time moved forward by leadDays calendar days.
func DeliveryDate(wonTime time.Time, leadDays int) time.Time {
	return wonTime.UTC().AddDate(0, 0, leadDays)
}
