package embed

import (
	"fmt"
	"time"
)

// FormatDateTime renders a date and a single time in Japanese form,
// e.g. "2024年1月15日 14:30". Month and day drop leading zeros, the time
// is passed through verbatim
func FormatDateTime(date, hhmm string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Sprintf("%s %s", date, hhmm)
	}
	return fmt.Sprintf("%d年%d月%d日 %s", d.Year(), int(d.Month()), d.Day(), hhmm)
}

// FormatDateTimeRange renders a date with a start and end time,
// e.g. "2024年1月15日 14:30〜16:00"
func FormatDateTimeRange(date, start, end string) string {
	return fmt.Sprintf("%s〜%s", FormatDateTime(date, start), end)
}
