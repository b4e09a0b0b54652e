// Package mgnrega implements the MGNREGA data pipeline: fetching
// monthly district performance from the data.gov.in open-data API,
// normalizing its numeric fields, aggregating derived metrics, and
// orchestrating periodic sync runs.
package mgnrega

import (
	"math"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Dozzergeeky/mgnrega-insights/models"
)

// NumericFields are the data.gov.in field names aggregation recognizes.
// A record carrying at least one of these counts as a performance row;
// anything else in the payload is dropped before aggregation.
var NumericFields = []string{
	"Persondays_of_Central_Liability_so_far",
	"Wages",
	"Number_of_Completed_Works",
	"Number_of_Ongoing_Works",
	"Total_No_of_Works_Takenup",
	"Total_Exp",
	"Total_No_of_Active_Workers",
	"Total_No_of_Workers",
	"Total_No_of_Active_Job_Cards",
}

// ToNumber coerces an upstream field value into a float64. The API is
// inconsistent about numeric typing: the same field arrives as a JSON
// number, a quoted string, or null depending on the month. Anything
// unparseable or non-finite becomes 0. Never panics.
func ToNumber(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	case float32:
		return ToNumber(float64(v))
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// IsValidRecord reports whether candidate looks like a performance row:
// a non-nil string-keyed map with at least one recognized numeric field.
func IsValidRecord(candidate interface{}) bool {
	var m map[string]interface{}
	switch v := candidate.(type) {
	case models.RawRecord:
		m = v
	case map[string]interface{}:
		m = v
	case bson.M:
		m = v
	default:
		return false
	}
	if m == nil {
		return false
	}
	for _, key := range NumericFields {
		if _, ok := m[key]; ok {
			return true
		}
	}
	return false
}

// FilterRecords keeps only the entries IsValidRecord accepts. Stored
// documents may contain rows from older sync iterations or upstream
// noise; the read paths filter before aggregating.
func FilterRecords(records []models.RawRecord) []models.RawRecord {
	filtered := make([]models.RawRecord, 0, len(records))
	for _, r := range records {
		if IsValidRecord(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// SumField sums ToNumber(record[field]) over all records. Returns 0 for
// an empty slice.
func SumField(records []models.RawRecord, field string) float64 {
	var total float64
	for _, r := range records {
		total += ToNumber(r[field])
	}
	return total
}
