package mgnrega

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSnapshotIsDeterministic(t *testing.T) {
	first := MockSnapshot("3213")
	second := MockSnapshot("3213")

	assert.Equal(t, first, second)
}

func TestMockSnapshotVariesByDistrict(t *testing.T) {
	assert.NotEqual(t, MockSnapshot("3213"), MockSnapshot("3201"))
}

func TestMockSnapshotStaysInRealisticBands(t *testing.T) {
	for _, code := range []string{"3213", "3217", "3201", "3225"} {
		m := MockSnapshot(code)

		assert.GreaterOrEqual(t, m.WorkDemand, 120000, code)
		assert.Less(t, m.WorkDemand, 200000, code)
		assert.GreaterOrEqual(t, m.CompletionRate, 65.0, code)
		assert.LessOrEqual(t, m.CompletionRate, 90.0, code)
		assert.GreaterOrEqual(t, m.ActiveWorkers, 8000, code)
		assert.Greater(t, m.TotalWorkers, m.ActiveWorkers, code)
		assert.Greater(t, m.WorkerEngagementRate, 0.0, code)
		assert.Greater(t, m.AvgWagePerWorker, int64(0), code)
	}
}

func TestMockHistory(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	history := MockHistory("3213", 6, now)

	require.Len(t, history, 6)
	assert.Equal(t, "Jan 2024", history[0].Month)
	assert.Equal(t, "Jun 2024", history[5].Month)

	for _, point := range history {
		assert.True(t, point.Interpolated)
		assert.Greater(t, point.WorkDemand, 0)
		assert.Greater(t, point.WagePayments, int64(0))
		assert.Greater(t, point.ActiveWorkers, 0)
		assert.LessOrEqual(t, point.CompletionRate, 95.0)
	}
}

func TestMockHistoryIsDeterministic(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, MockHistory("3213", 12, now), MockHistory("3213", 12, now))
}

func TestJitterFactorBounds(t *testing.T) {
	for month := 1; month <= 12; month++ {
		factor := JitterFactor("3213", month)
		assert.GreaterOrEqual(t, factor, 0.9)
		assert.Less(t, factor, 1.1)
	}
}

func TestJitterFactorIsDeterministic(t *testing.T) {
	assert.Equal(t, JitterFactor("3213", 5), JitterFactor("3213", 5))
}
