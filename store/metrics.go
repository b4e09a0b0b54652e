// Package store holds the persistence layer: the Mongo-backed metrics
// store and the tiered district reference source.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dozzergeeky/mgnrega-insights/models"
)

// ErrNotFound is returned by FindLatest when a district has no stored
// document at all.
var ErrNotFound = errors.New("no metric document found")

const metricsCollection = "district_metrics"

// Metrics is the district_metrics persistence contract: idempotent
// upsert keyed on (districtCode, period), point lookup of the latest
// period, and range lookup across periods. Constructed once per process
// and injected wherever needed.
type Metrics struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMetrics(db *mongo.Database) *Metrics {
	return &Metrics{coll: db.Collection(metricsCollection), now: time.Now}
}

// EnsureIndexes creates the unique compound index that makes upserts
// race-safe: at most one document per (districtCode, period).
func (m *Metrics) EnsureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "districtCode", Value: 1}, {Key: "period", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("district_period_idx"),
	})
	return err
}

// Upsert creates or replaces the document for (doc.DistrictCode,
// doc.Period), stamping lastSyncedAt. Applying the same write twice
// leaves exactly one document behind.
func (m *Metrics) Upsert(ctx context.Context, doc models.DistrictMetricDocument) error {
	doc.LastSyncedAt = m.now().UTC()

	filter := bson.M{"districtCode": doc.DistrictCode, "period": doc.Period}
	update := bson.M{"$set": doc}

	_, err := m.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// FindLatest returns the district's most recently synced document,
// breaking lastSyncedAt ties on the higher period. Returns ErrNotFound
// when the district has never been synced.
func (m *Metrics) FindLatest(ctx context.Context, districtCode string) (*models.DistrictMetricDocument, error) {
	opts := options.FindOne().SetSort(bson.D{
		{Key: "lastSyncedAt", Value: -1},
		{Key: "period", Value: -1},
	})

	var doc models.DistrictMetricDocument
	err := m.coll.FindOne(ctx, bson.M{"districtCode": districtCode}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindPeriods returns the district's documents whose period falls in
// the given set, ascending by period (lexicographic "YYYY-MM" order is
// chronological).
func (m *Metrics) FindPeriods(ctx context.Context, districtCode string, periods []string) ([]models.DistrictMetricDocument, error) {
	filter := bson.M{
		"districtCode": districtCode,
		"period":       bson.M{"$in": periods},
	}
	opts := options.Find().SetSort(bson.D{{Key: "period", Value: 1}})

	cursor, err := m.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []models.DistrictMetricDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Exists reports whether a document with at least one stored record
// exists for the key. Backfills use it to skip already-populated
// periods without an upstream call.
func (m *Metrics) Exists(ctx context.Context, districtCode, period string) (bool, error) {
	filter := bson.M{
		"districtCode": districtCode,
		"period":       period,
		"records.0":    bson.M{"$exists": true},
	}
	count, err := m.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
