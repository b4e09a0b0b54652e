package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dozzergeeky/mgnrega-insights/models"
)

// WestBengalDistricts is the static reference table, last tier of the
// district source chain. District codes are the numeric codes the
// data.gov.in MGNREGA API filters on. Kolkata has limited MGNREGA
// activity and may not have comprehensive data.
var WestBengalDistricts = []models.District{
	{Code: "3220", Name: "Alipurduar", StateCode: "32", StateName: "West Bengal"},
	{Code: "3217", Name: "Kolkata", StateCode: "32", StateName: "West Bengal"},
	{Code: "3213", Name: "Bankura", StateCode: "32", StateName: "West Bengal"},
	{Code: "3203", Name: "Birbhum", StateCode: "32", StateName: "West Bengal"},
	{Code: "3208", Name: "Cooch Behar", StateCode: "32", StateName: "West Bengal"},
	{Code: "3219", Name: "Darjeeling", StateCode: "32", StateName: "West Bengal"},
	{Code: "3218", Name: "Uttar Dinajpur", StateCode: "32", StateName: "West Bengal"},
	{Code: "3206", Name: "Hooghly", StateCode: "32", StateName: "West Bengal"},
	{Code: "3205", Name: "Howrah", StateCode: "32", StateName: "West Bengal"},
	{Code: "3207", Name: "Jalpaiguri", StateCode: "32", StateName: "West Bengal"},
	{Code: "3222", Name: "Jhargram", StateCode: "32", StateName: "West Bengal"},
	{Code: "3209", Name: "Malda", StateCode: "32", StateName: "West Bengal"},
	{Code: "3212", Name: "Murshidabad", StateCode: "32", StateName: "West Bengal"},
	{Code: "3201", Name: "Nadia", StateCode: "32", StateName: "West Bengal"},
	{Code: "3215", Name: "North 24 Parganas", StateCode: "32", StateName: "West Bengal"},
	{Code: "3202", Name: "Paschim Bardhaman", StateCode: "32", StateName: "West Bengal"},
	{Code: "3210", Name: "Paschim Medinipur", StateCode: "32", StateName: "West Bengal"},
	{Code: "3225", Name: "Purba Bardhaman", StateCode: "32", StateName: "West Bengal"},
	{Code: "3211", Name: "Purba Medinipur", StateCode: "32", StateName: "West Bengal"},
	{Code: "3214", Name: "Purulia", StateCode: "32", StateName: "West Bengal"},
	{Code: "3216", Name: "South 24 Parganas", StateCode: "32", StateName: "West Bengal"},
}

// SeedDistricts upserts the static table into whichever stores are
// reachable, so the higher tiers serve data after first boot. Safe to
// run repeatedly.
func SeedDistricts(ctx context.Context, db *sql.DB, mongoDB *mongo.Database) error {
	if db != nil {
		if err := seedPostgres(ctx, db); err != nil {
			return fmt.Errorf("seeding Postgres districts: %v", err)
		}
	}
	if mongoDB != nil {
		if err := seedMongo(ctx, mongoDB); err != nil {
			return fmt.Errorf("seeding Mongo districts: %v", err)
		}
	}
	return nil
}

func seedPostgres(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS districts (
			code       TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			state_code TEXT NOT NULL,
			state_name TEXT NOT NULL,
			UNIQUE (state_code, name)
		)`)
	if err != nil {
		return err
	}

	for _, d := range WestBengalDistricts {
		_, err := db.ExecContext(ctx, `
			INSERT INTO districts (code, name, state_code, state_name)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (code) DO UPDATE
			SET name = EXCLUDED.name,
			    state_code = EXCLUDED.state_code,
			    state_name = EXCLUDED.state_name`,
			d.Code, d.Name, d.StateCode, d.StateName)
		if err != nil {
			return err
		}
	}

	log.Printf("Seeded %d districts into Postgres", len(WestBengalDistricts))
	return nil
}

func seedMongo(ctx context.Context, mongoDB *mongo.Database) error {
	coll := mongoDB.Collection(districtsCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("code_idx"),
		},
		{
			Keys:    bson.D{{Key: "stateCode", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("state_name_idx"),
		},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return err
	}

	operations := make([]mongo.WriteModel, 0, len(WestBengalDistricts))
	for _, d := range WestBengalDistricts {
		operations = append(operations, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"code": d.Code}).
			SetUpdate(bson.M{"$set": d}).
			SetUpsert(true))
	}

	result, err := coll.BulkWrite(ctx, operations, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return err
	}

	log.Printf("Seeded %d districts into Mongo (matched: %d, upserted: %d)",
		len(WestBengalDistricts), result.MatchedCount, result.UpsertedCount)
	return nil
}
