package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

const (
	pgMaxRetries = 5
	pgRetryDelay = 5 * time.Second
)

// OpenPostgresWithRetry opens the district reference database, retrying
// a few times to ride out container start ordering. The caller owns the
// returned pool.
func OpenPostgresWithRetry(cfg Config) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < pgMaxRetries; i++ {
		db, err = openPostgres(cfg)
		if err == nil {
			return db, nil
		}
		log.Printf("Failed to connect to PostgreSQL (attempt %d/%d): %v", i+1, pgMaxRetries, err)
		time.Sleep(pgRetryDelay)
	}
	return nil, fmt.Errorf("failed to connect to PostgreSQL after %d attempts: %v", pgMaxRetries, err)
}

func openPostgres(cfg Config) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening PostgreSQL database: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to PostgreSQL database: %v", err)
	}

	log.Printf("Successfully connected to PostgreSQL database: %s", cfg.DBName)
	return db, nil
}
