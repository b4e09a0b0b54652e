package mgnrega

import (
	"math"
	"time"

	"github.com/Dozzergeeky/mgnrega-insights/models"
)

// The mock generators keep the dashboard alive when no real data is
// available. Everything is a pure function of the district code (and
// month), so the same district always renders the same synthetic
// numbers and tests can assert on them. Value bands follow actual West
// Bengal MGNREGA figures for FY 2024-25.

// districtSeed hashes a district code into a stable small seed.
func districtSeed(districtCode string) int {
	seed := 0
	for _, b := range []byte(districtCode) {
		seed += int(b)
	}
	return seed
}

// MockSnapshot generates a deterministic single-period metric set for a
// district with no stored data.
func MockSnapshot(districtCode string) models.SnapshotMetrics {
	seed := districtSeed(districtCode)
	randomFactor := float64(seed%100) / 100

	workDemand := 120000 + int(randomFactor*80000)       // 120K-200K works
	wagePayments := 18000000 + int64(randomFactor*15000000) // Rs 1.8-3.3 Cr
	completionRate := math.Round((65+math.Floor(randomFactor*25))*10) / 10 // 65-90%
	activeWorkers := 8000 + int(randomFactor*7000)  // 8K-15K workers
	totalWorkers := 40000 + int(randomFactor*30000) // 40K-70K on the rolls
	activeJobCards := 60000 + int(randomFactor*40000)

	engagement := math.Round(float64(activeWorkers)/float64(totalWorkers)*10000) / 100
	avgWage := int64(math.Round(float64(wagePayments) / float64(activeWorkers)))

	return models.SnapshotMetrics{
		WorkDemand:           workDemand,
		WagePayments:         wagePayments,
		CompletionRate:       completionRate,
		ActiveWorkers:        activeWorkers,
		TotalWorkers:         totalWorkers,
		ActiveJobCards:       activeJobCards,
		WorkerEngagementRate: engagement,
		AvgWagePerWorker:     avgWage,
	}
}

// MockHistory generates a deterministic n-month series ending at now's
// month, with a seasonal swing (monsoon months run hotter), a gentle
// improvement trend, and per-month jitter from the district seed.
func MockHistory(districtCode string, months int, now time.Time) []models.HistoryPoint {
	seed := districtSeed(districtCode)
	history := make([]models.HistoryPoint, 0, months)

	for i := months - 1; i >= 0; i-- {
		date := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		monthIndex := float64(int(date.Month()) - 1)

		seasonalFactor := 1 + math.Sin(monthIndex/12*math.Pi*2)*0.15
		trendFactor := 1 + float64(months-i)/float64(months)*0.2
		randomVariation := 0.9 + float64((seed+i*7)%20)/100

		factor := seasonalFactor * trendFactor * randomVariation
		completionRate := math.Round((65+float64(months-i)*2)*randomVariation*10) / 10
		if completionRate > 95 {
			completionRate = 95
		}

		history = append(history, models.HistoryPoint{
			Month:          date.Format("Jan 2006"),
			WorkDemand:     int(math.Round(110000 * factor)),
			WagePayments:   int64(math.Round(17000000 * factor)),
			CompletionRate: completionRate,
			ActiveWorkers:  int(math.Round(9000 * factor)),
			Interpolated:   true,
		})
	}

	return history
}

// JitterFactor is the deterministic per-month scale applied when a
// missing history month is interpolated from the mean of real months.
// Stays within +-10% of 1.
func JitterFactor(districtCode string, month int) float64 {
	seed := districtSeed(districtCode)
	return 0.9 + float64((seed+month*7)%20)/100
}
