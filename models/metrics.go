package models

import "time"

// RawRecord is one row as returned by the data.gov.in API: an open bag
// of named fields. Only the recognized numeric fields are aggregated,
// anything else rides along untouched.
type RawRecord map[string]interface{}

// DistrictMetricDocument is the unit of storage in the district_metrics
// collection. (DistrictCode, Period) is the natural key and is enforced
// unique by index; writes are always upserts.
type DistrictMetricDocument struct {
	DistrictCode string      `json:"districtCode" bson:"districtCode"`
	DistrictName string      `json:"districtName" bson:"districtName"`
	StateCode    string      `json:"stateCode" bson:"stateCode"`
	StateName    string      `json:"stateName" bson:"stateName"`
	Period       string      `json:"period" bson:"period"`
	Records      []RawRecord `json:"records" bson:"records"`
	LastSyncedAt time.Time   `json:"lastSyncedAt" bson:"lastSyncedAt"`
}

// SnapshotMetrics is the derived single-period metric set served by the
// dashboard endpoint. Computed fresh on every read, never stored.
type SnapshotMetrics struct {
	WorkDemand           int     `json:"workDemand"`
	WagePayments         int64   `json:"wagePayments"`
	CompletionRate       float64 `json:"completionRate"`
	ActiveWorkers        int     `json:"activeWorkers"`
	TotalWorkers         int     `json:"totalWorkers"`
	ActiveJobCards       int     `json:"activeJobCards"`
	WorkerEngagementRate float64 `json:"workerEngagementRate"`
	AvgWagePerWorker     int64   `json:"avgWagePerWorker"`
}

// HistoryPoint is one month in a history series. Interpolated marks
// months that had no stored document and were filled in from the mean
// of the real months.
type HistoryPoint struct {
	Month          string  `json:"month"`
	WorkDemand     int     `json:"workDemand"`
	WagePayments   int64   `json:"wagePayments"`
	CompletionRate float64 `json:"completionRate"`
	ActiveWorkers  int     `json:"activeWorkers"`
	Interpolated   bool    `json:"interpolated"`
}

// SyncDetail is the per-district outcome of one sync run.
type SyncDetail struct {
	District string `json:"district"`
	Code     string `json:"code"`
	Records  int    `json:"records,omitempty"`
	Error    string `json:"error,omitempty"`
}

// SyncSummary reports one on-demand sync run across all districts for a
// single period.
type SyncSummary struct {
	RunID          string       `json:"runId"`
	StartedAt      time.Time    `json:"startedAt"`
	FinishedAt     time.Time    `json:"finishedAt"`
	Period         string       `json:"period"`
	TotalDistricts int          `json:"totalDistricts"`
	Successes      int          `json:"successes"`
	Failures       int          `json:"failures"`
	Details        []SyncDetail `json:"details"`
}

// BackfillTally is the outcome count of a historical backfill run, one
// increment per (district, period) pair.
type BackfillTally struct {
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
	NoData  int `json:"noData"`
	Failed  int `json:"failed"`
}
