package config

import (
	"errors"
	"os"
	"strconv"
)

// ErrMissingAPIConfig is returned before any network call when the
// data.gov.in credentials are absent. Fatal for sync paths.
var ErrMissingAPIConfig = errors.New("MGNREGA_API_KEY and MGNREGA_RESOURCE_ID must be configured to call the data.gov.in API")

// Config holds every tunable the process reads from the environment.
// Built once in main and injected; nothing else reads os.Getenv at
// request time.
type Config struct {
	Port string

	// PostgreSQL (primary district reference store)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// MongoDB (metrics document store, secondary district store)
	MongoURI               string
	MongoDBName            string
	MongoServerSelectionMS int

	// data.gov.in upstream
	APIKey     string
	ResourceID string
	BaseURL    string
	PageSize   int
	StateName  string

	// Sync trigger authorization
	SyncSecret     string
	SchedulerToken string

	CORSDebug bool
}

// Load reads the full configuration from the environment, applying the
// same defaults the original deployment used.
func Load() Config {
	return Config{
		Port: getEnvWithDefault("PORT", "8080"),

		DBHost:     getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:     getEnvWithDefault("DB_PORT", "5432"),
		DBUser:     getEnvWithDefault("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnvWithDefault("DB_NAME", "mgnrega"),
		DBSSLMode:  getEnvWithDefault("DB_SSL_MODE", "disable"),

		MongoURI:               getEnvWithDefault("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDBName:            getEnvWithDefault("MONGODB_DB", "mgnrega"),
		MongoServerSelectionMS: getEnvAsInt("MONGODB_SERVER_SELECTION_TIMEOUT_MS", 2000),

		APIKey:     os.Getenv("MGNREGA_API_KEY"),
		ResourceID: os.Getenv("MGNREGA_RESOURCE_ID"),
		BaseURL:    getEnvWithDefault("MGNREGA_BASE_URL", "https://api.data.gov.in/resource"),
		PageSize:   getEnvAsInt("MGNREGA_PAGE_SIZE", 100),
		StateName:  getEnvWithDefault("MGNREGA_STATE_NAME", "WEST BENGAL"),

		SyncSecret:     os.Getenv("SYNC_SECRET"),
		SchedulerToken: os.Getenv("SCHEDULER_TOKEN"),

		CORSDebug: getEnvAsBool("CORS_DEBUG", false),
	}
}

// ValidateAPIConfig reports whether the upstream API can be called at
// all. Checked before every sync run and by the backfill CLI at startup.
func (c Config) ValidateAPIConfig() error {
	if c.APIKey == "" || c.ResourceID == "" {
		return ErrMissingAPIConfig
	}
	return nil
}

// Helper functions

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
