// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
)

// Tool output limit defaults
const (
	DefaultSearchLimitValue = 10
	MaxSearchResultsValue   = 1000
	MaxQueryResultsValue    = 100
	MaxBulkUsersValue       = 1000
)

// Config holds all configuration for the MCP server.
type Config struct {
	DataDir string // DATA_DIR, default "data"

	// Tool output limits
	DefaultSearchLimit int // DEFAULT_SEARCH_LIMIT, default 10
	MaxSearchResults   int // MAX_SEARCH_RESULTS, default 1000
	MaxQueryResults    int // MAX_QUERY_RESULTS, default 100
	MaxBulkUsers       int // MAX_BULK_USERS, default 1000

	// Report cache
	ReportCacheMaxItems int // REPORT_CACHE_MAX_ITEMS, default 128

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		DataDir: getEnvString("DATA_DIR", "data"),

		DefaultSearchLimit: getEnvInt("DEFAULT_SEARCH_LIMIT", DefaultSearchLimitValue),
		MaxSearchResults:   getEnvInt("MAX_SEARCH_RESULTS", MaxSearchResultsValue),
		MaxQueryResults:    getEnvInt("MAX_QUERY_RESULTS", MaxQueryResultsValue),
		MaxBulkUsers:       getEnvInt("MAX_BULK_USERS", MaxBulkUsersValue),

		ReportCacheMaxItems: getEnvInt("REPORT_CACHE_MAX_ITEMS", 128),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
