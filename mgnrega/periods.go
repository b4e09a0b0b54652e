package mgnrega

import (
	"fmt"
	"time"
)

// Period identifies one calendar month of one district's data. The
// string form "YYYY-MM" doubles as the storage key; lexicographic order
// is chronological order.
type Period struct {
	Year  int
	Month int
}

// Key is the zero-padded "YYYY-MM" storage and sort key.
func (p Period) Key() string {
	return FormatPeriod(p.Year, p.Month)
}

// Label is the human form shown on history charts, e.g. "Jun 2024".
func (p Period) Label() string {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// FormatPeriod renders a year and month (1-12) as "YYYY-MM".
func FormatPeriod(year, month int) string {
	return fmt.Sprintf("%d-%02d", year, month)
}

// CurrentPeriod is the current UTC calendar month.
func CurrentPeriod(now time.Time) Period {
	return Period{Year: now.UTC().Year(), Month: int(now.UTC().Month())}
}

// TrailingPeriods returns the n calendar months ending at now's UTC
// month, oldest first. Month arithmetic is done on day 1 to avoid
// end-of-month overflow.
func TrailingPeriods(now time.Time, n int) []Period {
	now = now.UTC()
	periods := make([]Period, 0, n)
	for i := n - 1; i >= 0; i-- {
		date := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		periods = append(periods, Period{Year: date.Year(), Month: int(date.Month())})
	}
	return periods
}

// ParseRange maps the history endpoint's range parameter onto a month
// count. "3"/"3m" and "12"/"1y"/"year" are recognized; everything else,
// including an absent parameter, means 6 months.
func ParseRange(raw string) int {
	switch raw {
	case "3", "3m":
		return 3
	case "12", "1y", "year":
		return 12
	default:
		return 6
	}
}
