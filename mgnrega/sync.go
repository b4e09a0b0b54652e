package mgnrega

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Dozzergeeky/mgnrega-insights/models"
)

// backfillPace spaces upstream calls during historical backfills. The
// data.gov.in API has no published rate limit but throttles aggressive
// clients, and a backfill issues districts x months calls.
const backfillPace = 2 * time.Second

// PerformanceFetcher is the slice of Client the orchestrator needs.
type PerformanceFetcher interface {
	FetchMonthlyDistrictPerformance(ctx context.Context, districtCode string, year, month int, additionalFilters map[string]string) ([]models.RawRecord, error)
}

// MetricsWriter is the slice of the metrics store the orchestrator
// needs: idempotent upsert plus the already-populated check that lets
// backfills skip periods without burning an API call.
type MetricsWriter interface {
	Upsert(ctx context.Context, doc models.DistrictMetricDocument) error
	Exists(ctx context.Context, districtCode, period string) (bool, error)
}

// DistrictLister yields the reference district list. The tiered source
// never fails, so no error return.
type DistrictLister interface {
	ListDistricts(ctx context.Context) []models.District
}

// Syncer drives the write path: fetch from the upstream API, upsert
// into the metrics store. Districts and periods are processed strictly
// sequentially with one outstanding upstream call at a time; that
// sequencing, plus the limiter on the backfill path, is what enforces
// the pacing contract.
type Syncer struct {
	Fetcher   PerformanceFetcher
	Store     MetricsWriter
	Districts DistrictLister
	Limiter   *rate.Limiter
	Now       func() time.Time
}

// NewSyncer wires a Syncer with the standard backfill pacing.
func NewSyncer(fetcher PerformanceFetcher, store MetricsWriter, districts DistrictLister) *Syncer {
	return &Syncer{
		Fetcher:   fetcher,
		Store:     store,
		Districts: districts,
		Limiter:   rate.NewLimiter(rate.Every(backfillPace), 1),
		Now:       time.Now,
	}
}

// SyncCurrentMonth syncs the current UTC calendar month for every
// district. This is the on-demand HTTP trigger path: one period per
// district, no pacing delay. Per-district failures are recorded and the
// loop continues; a failure is never fatal to the run.
func (s *Syncer) SyncCurrentMonth(ctx context.Context) *models.SyncSummary {
	now := s.Now()
	period := CurrentPeriod(now)
	districts := s.Districts.ListDistricts(ctx)

	summary := &models.SyncSummary{
		RunID:          uuid.NewString(),
		StartedAt:      now,
		Period:         period.Key(),
		TotalDistricts: len(districts),
		Details:        make([]models.SyncDetail, 0, len(districts)),
	}

	for _, district := range districts {
		records, err := s.Fetcher.FetchMonthlyDistrictPerformance(ctx, district.Code, period.Year, period.Month, nil)
		if err != nil {
			summary.Failures++
			summary.Details = append(summary.Details, models.SyncDetail{
				District: district.Name, Code: district.Code, Error: err.Error(),
			})
			continue
		}

		if len(records) == 0 {
			// No data for this period yet: not a failure, not a success.
			summary.Details = append(summary.Details, models.SyncDetail{
				District: district.Name, Code: district.Code, Records: 0,
			})
			continue
		}

		if err := s.Store.Upsert(ctx, documentFor(district, period.Key(), records)); err != nil {
			summary.Failures++
			summary.Details = append(summary.Details, models.SyncDetail{
				District: district.Name, Code: district.Code, Error: err.Error(),
			})
			continue
		}

		summary.Successes++
		summary.Details = append(summary.Details, models.SyncDetail{
			District: district.Name, Code: district.Code, Records: len(records),
		})
	}

	summary.FinishedAt = s.Now()
	return summary
}

// SyncHistorical backfills the trailing monthsBack periods for every
// district, oldest first, pacing upstream calls through the limiter.
// Periods that already hold records are skipped without a network call.
// Returns early only when the context is cancelled.
func (s *Syncer) SyncHistorical(ctx context.Context, monthsBack int) (*models.BackfillTally, error) {
	if monthsBack < 1 || monthsBack > 24 {
		return nil, fmt.Errorf("months back out of range: %d (want 1-24)", monthsBack)
	}

	districts := s.Districts.ListDistricts(ctx)
	periods := TrailingPeriods(s.Now(), monthsBack)
	tally := &models.BackfillTally{}

	log.Printf("Syncing %d districts for %d months (%s to %s), up to %d API calls",
		len(districts), len(periods), periods[0].Key(), periods[len(periods)-1].Key(),
		len(districts)*len(periods))

	for _, district := range districts {
		log.Printf("Processing %s...", district.Name)

		for _, period := range periods {
			exists, err := s.Store.Exists(ctx, district.Code, period.Key())
			if err != nil {
				log.Printf("  %s: store error - %v", period.Key(), err)
				tally.Failed++
				continue
			}
			if exists {
				log.Printf("  %s: already synced", period.Key())
				tally.Skipped++
				continue
			}

			if err := s.Limiter.Wait(ctx); err != nil {
				return tally, err
			}

			records, err := s.Fetcher.FetchMonthlyDistrictPerformance(ctx, district.Code, period.Year, period.Month, nil)
			if err != nil {
				log.Printf("  %s: error - %v", period.Key(), err)
				tally.Failed++
				continue
			}

			if len(records) == 0 {
				log.Printf("  %s: no data available from API", period.Key())
				tally.NoData++
				continue
			}

			if err := s.Store.Upsert(ctx, documentFor(district, period.Key(), records)); err != nil {
				log.Printf("  %s: store error - %v", period.Key(), err)
				tally.Failed++
				continue
			}

			log.Printf("  %s: synced %d records", period.Key(), len(records))
			tally.Synced++
		}
	}

	return tally, nil
}

func documentFor(district models.District, period string, records []models.RawRecord) models.DistrictMetricDocument {
	return models.DistrictMetricDocument{
		DistrictCode: district.Code,
		DistrictName: district.Name,
		StateCode:    district.StateCode,
		StateName:    district.StateName,
		Period:       period,
		Records:      records,
	}
}
