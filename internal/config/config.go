package config

import "os"

// GetEnv retrieves values from environment files based on the key it matches,
// returns a string (value) if not empty
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// RedisConfig returns host, port, password
func RedisConfig() (string, string, string) {
	host := GetEnv("REDIS_HOST", "redis")
	port := GetEnv("REDIS_PORT", "6379")
	password := GetEnv("REDIS_PASS", "")
	return host, port, password
}

// DatabaseConfig returns host, port, user, password, database name
func DatabaseConfig() (string, string, string, string, string) {
	host := GetEnv("DB_HOST", "postgres")
	port := GetEnv("DB_PORT", "5432")
	user := GetEnv("DB_USER", "reelbox")
	password := GetEnv("DB_PASS", "")
	name := GetEnv("DB_NAME", "reelbox")
	return host, port, user, password, name
}

// CatalogConfig returns the metadata API base URL and the bearer credential.
// The credential has no default: an empty value is a missing-configuration
// error for callers that need the catalog.
func CatalogConfig() (string, string) {
	baseURL := GetEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	apiKey := os.Getenv("TMDB_API_KEY")
	return baseURL, apiKey
}

// StorageBackend selects the key-value backend for favourites and session
// persistence: "redis" (default), "postgres" or "memory".
func StorageBackend() string {
	return GetEnv("STORAGE_BACKEND", "redis")
}
