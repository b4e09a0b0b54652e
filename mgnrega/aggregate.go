package mgnrega

import (
	"math"

	"github.com/Dozzergeeky/mgnrega-insights/models"
)

// lakhToRupees converts the upstream Total_Exp figure (reported in
// lakhs) into rupees.
const lakhToRupees = 100000

// Totals are the raw field sums for one district and period. Rounding
// happens only when a Totals is rendered into a response shape, never
// on the intermediate sums.
type Totals struct {
	WorksCompleted   float64
	WorksOngoing     float64
	WorksTakenUp     float64
	ExpenditureLakhs float64
	ActiveWorkers    float64
	TotalWorkers     float64
	ActiveJobCards   float64
}

// Aggregate reduces raw upstream rows into Totals. Invalid entries are
// dropped first, so stored documents polluted by unrelated payload rows
// do not skew the sums.
func Aggregate(records []models.RawRecord) Totals {
	rows := FilterRecords(records)
	return Totals{
		WorksCompleted:   SumField(rows, "Number_of_Completed_Works"),
		WorksOngoing:     SumField(rows, "Number_of_Ongoing_Works"),
		WorksTakenUp:     SumField(rows, "Total_No_of_Works_Takenup"),
		ExpenditureLakhs: SumField(rows, "Total_Exp"),
		ActiveWorkers:    SumField(rows, "Total_No_of_Active_Workers"),
		TotalWorkers:     SumField(rows, "Total_No_of_Workers"),
		ActiveJobCards:   SumField(rows, "Total_No_of_Active_Job_Cards"),
	}
}

// TotalWorks is completed plus ongoing works, served as "work demand".
// The upstream person-days fields are frequently zero, so total works
// stands in for demand.
func (t Totals) TotalWorks() float64 {
	return t.WorksCompleted + t.WorksOngoing
}

// WagePayments converts expenditure from lakhs to rupees.
func (t Totals) WagePayments() float64 {
	return t.ExpenditureLakhs * lakhToRupees
}

// ImplementationRate is the percentage of sanctioned works that are
// completed or ongoing, relative to works taken up. Rates below 1 keep
// two decimals, otherwise one; anything reaching 100 is clamped to
// 99.99 for compatibility with the original dashboard, which never
// reports a fully-done state.
func (t Totals) ImplementationRate() float64 {
	if t.WorksTakenUp <= 0 {
		return 0
	}
	rate := (t.WorksCompleted + t.WorksOngoing) / t.WorksTakenUp * 100
	return formatRate(rate)
}

// WorkerEngagementRate is active workers over total workers as a
// two-decimal percentage.
func (t Totals) WorkerEngagementRate() float64 {
	if t.TotalWorkers <= 0 {
		return 0
	}
	return math.Round(t.ActiveWorkers/t.TotalWorkers*10000) / 100
}

// AvgWagePerWorker is wage payments spread over active workers, rounded
// to whole rupees.
func (t Totals) AvgWagePerWorker() int64 {
	if t.ActiveWorkers <= 0 {
		return 0
	}
	return int64(math.Round(t.WagePayments() / t.ActiveWorkers))
}

// Snapshot renders the totals into the dashboard metric set.
func (t Totals) Snapshot() models.SnapshotMetrics {
	return models.SnapshotMetrics{
		WorkDemand:           int(math.Round(t.TotalWorks())),
		WagePayments:         int64(math.Round(t.WagePayments())),
		CompletionRate:       t.ImplementationRate(),
		ActiveWorkers:        int(math.Round(t.ActiveWorkers)),
		TotalWorkers:         int(math.Round(t.TotalWorkers)),
		ActiveJobCards:       int(math.Round(t.ActiveJobCards)),
		WorkerEngagementRate: t.WorkerEngagementRate(),
		AvgWagePerWorker:     t.AvgWagePerWorker(),
	}
}

// HistoryPoint renders the totals into one month of a history series.
func (t Totals) HistoryPoint(label string) models.HistoryPoint {
	return models.HistoryPoint{
		Month:          label,
		WorkDemand:     int(math.Round(t.TotalWorks())),
		WagePayments:   int64(math.Round(t.WagePayments())),
		CompletionRate: t.ImplementationRate(),
		ActiveWorkers:  int(math.Round(t.ActiveWorkers)),
	}
}

// formatRate applies the shared rounding policy: two decimals below 1,
// one decimal otherwise, clamped to 99.99 at the top.
func formatRate(rate float64) float64 {
	var rounded float64
	if rate < 1 {
		rounded = math.Round(rate*100) / 100
	} else {
		rounded = math.Round(rate*10) / 10
	}
	if rounded >= 100 {
		return 99.99
	}
	return rounded
}
