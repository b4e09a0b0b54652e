package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// ConnectMongo builds the long-lived MongoDB client for the metrics
// store and the secondary district store. The short server-selection
// timeout keeps read handlers snappy when the database is down, so the
// mock-data fallback kicks in quickly.
func ConnectMongo(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	clientOptions := options.Client().ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(100).
		SetMinPoolSize(5).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(time.Duration(cfg.MongoServerSelectionMS) * time.Millisecond).
		SetSocketTimeout(30 * time.Second).
		SetRetryWrites(true).
		SetRetryReads(true).
		SetWriteConcern(writeconcern.Majority()).
		SetReadConcern(readconcern.Majority()).
		SetReadPreference(readpref.Primary())

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("error connecting to MongoDB: %v", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		// Connection is lazy; a failed ping only means the server is not
		// reachable right now. Keep the client, readers fall back.
		log.Printf("Warning: MongoDB not reachable yet: %v", err)
	} else {
		log.Printf("Successfully connected to MongoDB database: %s", cfg.MongoDBName)
	}

	return client, client.Database(cfg.MongoDBName), nil
}
