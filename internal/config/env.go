package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// envFiles are tried in order; existing process environment variables are never overwritten.
var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads environment variables from the first .env file that parses.
func loadEnvFile() error {
	for _, envPath := range envFiles {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			slog.Warn("Failed to parse env file", "path", envPath, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", envPath)
		return nil
	}
	return fmt.Errorf("no .env file found")
}
