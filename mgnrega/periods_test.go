package mgnrega

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPeriod(t *testing.T) {
	assert.Equal(t, "2024-06", FormatPeriod(2024, 6))
	assert.Equal(t, "2024-11", FormatPeriod(2024, 11))
	assert.Equal(t, "2025-01", FormatPeriod(2025, 1))
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "Jun 2024", Period{Year: 2024, Month: 6}.Label())
	assert.Equal(t, "Jan 2025", Period{Year: 2025, Month: 1}.Label())
}

func TestTrailingPeriods(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

	periods := TrailingPeriods(now, 3)

	require.Len(t, periods, 3)
	assert.Equal(t, "2024-04", periods[0].Key())
	assert.Equal(t, "2024-05", periods[1].Key())
	assert.Equal(t, "2024-06", periods[2].Key())
}

func TestTrailingPeriodsAcrossYearBoundary(t *testing.T) {
	now := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)

	periods := TrailingPeriods(now, 6)

	require.Len(t, periods, 6)
	assert.Equal(t, "2024-09", periods[0].Key())
	assert.Equal(t, "2024-12", periods[3].Key())
	assert.Equal(t, "2025-02", periods[5].Key())
}

func TestTrailingPeriodsEndOfMonth(t *testing.T) {
	// Day 31: month arithmetic must not overflow into the wrong month.
	now := time.Date(2024, time.March, 31, 23, 0, 0, 0, time.UTC)

	periods := TrailingPeriods(now, 2)

	require.Len(t, periods, 2)
	assert.Equal(t, "2024-02", periods[0].Key())
	assert.Equal(t, "2024-03", periods[1].Key())
}

func TestTrailingPeriodsNormalizesToUTC(t *testing.T) {
	// 03:30 IST on July 1st is still June in UTC; the window must end on
	// the same month CurrentPeriod reports so a concurrent sync's period
	// is never excluded.
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, time.July, 1, 3, 30, 0, 0, ist)

	periods := TrailingPeriods(now, 3)

	require.Len(t, periods, 3)
	assert.Equal(t, "2024-06", periods[2].Key())
	assert.Equal(t, CurrentPeriod(now).Key(), periods[2].Key())
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"3", 3},
		{"3m", 3},
		{"6", 6},
		{"6m", 6},
		{"12", 12},
		{"1y", 12},
		{"year", 12},
		{"", 6},
		{"banana", 6},
		{"24", 6},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRange(tt.raw), "range %q", tt.raw)
	}
}

func TestCurrentPeriod(t *testing.T) {
	// 23:30 IST on the 1st is still the previous month in UTC.
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, time.July, 1, 3, 30, 0, 0, ist)

	assert.Equal(t, "2024-06", CurrentPeriod(now).Key())
}
