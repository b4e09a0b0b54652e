package store

import (
	"context"
	"database/sql"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dozzergeeky/mgnrega-insights/models"
)

const districtsCollection = "districts"

// DistrictSource is one tier of the district reference chain. A tier
// may fail or come back empty; the chain moves on to the next one.
type DistrictSource interface {
	Name() string
	ListDistricts(ctx context.Context) ([]models.District, error)
}

// TieredDistricts tries its sources in order and returns the first
// non-empty result. The static table sits at the bottom, so callers
// always get a district list; this method cannot fail.
type TieredDistricts struct {
	sources []DistrictSource
}

// NewTieredDistricts builds the standard chain: Postgres, then Mongo,
// then the static in-process table. Nil stores are simply left out of
// the chain.
func NewTieredDistricts(db *sql.DB, mongoDB *mongo.Database) *TieredDistricts {
	var sources []DistrictSource
	if db != nil {
		sources = append(sources, &PostgresDistricts{DB: db})
	}
	if mongoDB != nil {
		sources = append(sources, &MongoDistricts{Coll: mongoDB.Collection(districtsCollection)})
	}
	sources = append(sources, StaticDistricts{})
	return &TieredDistricts{sources: sources}
}

// NewTieredFrom builds a chain from explicit sources, appending the
// static table as the final tier.
func NewTieredFrom(sources ...DistrictSource) *TieredDistricts {
	return &TieredDistricts{sources: append(sources, StaticDistricts{})}
}

func (t *TieredDistricts) ListDistricts(ctx context.Context) []models.District {
	for _, source := range t.sources {
		districts, err := source.ListDistricts(ctx)
		if err != nil {
			log.Printf("District source %s unavailable, falling back: %v", source.Name(), err)
			continue
		}
		if len(districts) == 0 {
			continue
		}
		return districts
	}
	// Unreachable: the static tier always returns the full table.
	return WestBengalDistricts
}

// PostgresDistricts reads the districts table, the primary reference
// store.
type PostgresDistricts struct {
	DB *sql.DB
}

func (p *PostgresDistricts) Name() string { return "postgres" }

func (p *PostgresDistricts) ListDistricts(ctx context.Context) ([]models.District, error) {
	rows, err := p.DB.QueryContext(ctx,
		`SELECT code, name, state_code, state_name FROM districts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var districts []models.District
	for rows.Next() {
		var d models.District
		if err := rows.Scan(&d.Code, &d.Name, &d.StateCode, &d.StateName); err != nil {
			return nil, err
		}
		districts = append(districts, d)
	}
	return districts, rows.Err()
}

// MongoDistricts reads the districts collection, the secondary store.
type MongoDistricts struct {
	Coll *mongo.Collection
}

func (m *MongoDistricts) Name() string { return "mongo" }

func (m *MongoDistricts) ListDistricts(ctx context.Context) ([]models.District, error) {
	filter := bson.M{"stateCode": WestBengalDistricts[0].StateCode}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}}).SetProjection(bson.M{"_id": 0})

	cursor, err := m.Coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var districts []models.District
	if err := cursor.All(ctx, &districts); err != nil {
		return nil, err
	}
	return districts, nil
}

// StaticDistricts is the compiled-in fallback table.
type StaticDistricts struct{}

func (StaticDistricts) Name() string { return "static" }

func (StaticDistricts) ListDistricts(ctx context.Context) ([]models.District, error) {
	districts := make([]models.District, len(WestBengalDistricts))
	copy(districts, WestBengalDistricts)
	return districts, nil
}
