package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from the first .env file found.
// Missing files are not an error: deployments commonly configure the
// process environment directly.
func LoadEnv() {
	possiblePaths := []string{
		".env",
		".env.local",
		"../.env",
		os.Getenv("MGNREGA_ENV"),
	}

	for _, path := range possiblePaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Printf("Warning: could not load %s: %v", path, err)
			continue
		}
		log.Printf("Loaded environment variables from %s", path)
		return
	}
}
