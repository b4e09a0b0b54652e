package mgnrega

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/Dozzergeeky/mgnrega-insights/models"
)

// Test fakes

type fakeFetcher struct {
	// responses maps "districtCode/period" to records; a nil entry
	// means the fetch errors.
	responses map[string][]models.RawRecord
	calls     []string
}

func (f *fakeFetcher) FetchMonthlyDistrictPerformance(ctx context.Context, districtCode string, year, month int, _ map[string]string) ([]models.RawRecord, error) {
	key := fmt.Sprintf("%s/%s", districtCode, FormatPeriod(year, month))
	f.calls = append(f.calls, key)
	records, ok := f.responses[key]
	if !ok {
		return nil, &UpstreamError{Status: 500, Body: "boom"}
	}
	return records, nil
}

type fakeStore struct {
	existing  map[string]bool
	upserts   []models.DistrictMetricDocument
	upsertErr error
}

func (s *fakeStore) Upsert(ctx context.Context, doc models.DistrictMetricDocument) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.upserts = append(s.upserts, doc)
	return nil
}

func (s *fakeStore) Exists(ctx context.Context, districtCode, period string) (bool, error) {
	return s.existing[districtCode+"/"+period], nil
}

type fakeDistricts []models.District

func (d fakeDistricts) ListDistricts(ctx context.Context) []models.District {
	return d
}

func newTestSyncer(fetcher *fakeFetcher, store *fakeStore, districts fakeDistricts) *Syncer {
	return &Syncer{
		Fetcher:   fetcher,
		Store:     store,
		Districts: districts,
		Limiter:   rate.NewLimiter(rate.Inf, 1),
		Now:       func() time.Time { return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC) },
	}
}

var testDistricts = fakeDistricts{
	{Code: "A1", Name: "Alpha", StateCode: "32", StateName: "West Bengal"},
	{Code: "B2", Name: "Beta", StateCode: "32", StateName: "West Bengal"},
	{Code: "C3", Name: "Gamma", StateCode: "32", StateName: "West Bengal"},
}

func TestSyncCurrentMonthSeparatesOutcomes(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string][]models.RawRecord{
		"A1/2024-06": {{"Total_Exp": "5"}},
		"B2/2024-06": {},
		// C3 missing: the fetch errors.
	}}
	store := &fakeStore{}

	summary := newTestSyncer(fetcher, store, testDistricts).SyncCurrentMonth(context.Background())

	assert.Equal(t, "2024-06", summary.Period)
	assert.Equal(t, 3, summary.TotalDistricts)
	assert.Equal(t, 1, summary.Successes)
	assert.Equal(t, 1, summary.Failures)
	assert.NotEmpty(t, summary.RunID)
	require.Len(t, summary.Details, 3)

	// Beta's no-data entry is distinct from Gamma's failure.
	beta := summary.Details[1]
	assert.Equal(t, "B2", beta.Code)
	assert.Equal(t, 0, beta.Records)
	assert.Empty(t, beta.Error)

	gamma := summary.Details[2]
	assert.Equal(t, "C3", gamma.Code)
	assert.NotEmpty(t, gamma.Error)

	require.Len(t, store.upserts, 1)
	doc := store.upserts[0]
	assert.Equal(t, "A1", doc.DistrictCode)
	assert.Equal(t, "Alpha", doc.DistrictName)
	assert.Equal(t, "2024-06", doc.Period)
	assert.Len(t, doc.Records, 1)
}

func TestSyncCurrentMonthCountsStoreErrorsAsFailures(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string][]models.RawRecord{
		"A1/2024-06": {{"Total_Exp": "5"}},
		"B2/2024-06": {{"Total_Exp": "7"}},
		"C3/2024-06": {{"Total_Exp": "9"}},
	}}
	store := &fakeStore{upsertErr: errors.New("mongo down")}

	summary := newTestSyncer(fetcher, store, testDistricts).SyncCurrentMonth(context.Background())

	assert.Equal(t, 0, summary.Successes)
	assert.Equal(t, 3, summary.Failures)
}

func TestSyncHistoricalSkipsPopulatedPeriods(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string][]models.RawRecord{
		"A1/2024-05": {{"Total_Exp": "1"}},
		"A1/2024-06": {{"Total_Exp": "2"}},
		"B2/2024-05": {},
		"B2/2024-06": {{"Total_Exp": "3"}},
	}}
	store := &fakeStore{existing: map[string]bool{"A1/2024-05": true}}
	districts := fakeDistricts{testDistricts[0], testDistricts[1]}

	tally, err := newTestSyncer(fetcher, store, districts).SyncHistorical(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, 2, tally.Synced)  // A1 June, B2 June
	assert.Equal(t, 1, tally.Skipped) // A1 May, no fetch issued
	assert.Equal(t, 1, tally.NoData)  // B2 May
	assert.Equal(t, 0, tally.Failed)
	assert.NotContains(t, fetcher.calls, "A1/2024-05")
}

func TestSyncHistoricalProcessesOldestFirstAndContinuesOnError(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string][]models.RawRecord{
		// C3 May missing: errors. June succeeds anyway.
		"C3/2024-06": {{"Total_Exp": "4"}},
	}}
	store := &fakeStore{}
	districts := fakeDistricts{testDistricts[2]}

	tally, err := newTestSyncer(fetcher, store, districts).SyncHistorical(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"C3/2024-05", "C3/2024-06"}, fetcher.calls)
	assert.Equal(t, 1, tally.Failed)
	assert.Equal(t, 1, tally.Synced)
}

func TestSyncHistoricalValidatesRange(t *testing.T) {
	syncer := newTestSyncer(&fakeFetcher{}, &fakeStore{}, testDistricts)

	_, err := syncer.SyncHistorical(context.Background(), 0)
	assert.Error(t, err)

	_, err = syncer.SyncHistorical(context.Background(), 25)
	assert.Error(t, err)
}

func TestSyncHistoricalStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &fakeFetcher{responses: map[string][]models.RawRecord{}}
	syncer := newTestSyncer(fetcher, &fakeStore{}, testDistricts)
	syncer.Limiter = rate.NewLimiter(rate.Every(time.Hour), 1)

	_, err := syncer.SyncHistorical(ctx, 2)

	assert.Error(t, err)
}
