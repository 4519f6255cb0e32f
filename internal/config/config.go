package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port         string
	IndexRoot    string
	IndexWorkers int
	CachePath    string
	Neo4jURI     string
	Neo4jUser    string
	Neo4jPass    string
	Debug        bool
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3002"),
		IndexRoot:    getEnv("INDEX_ROOT", "."),
		IndexWorkers: getEnvInt("INDEX_WORKERS", 0),
		CachePath:    getEnv("CACHE_PATH", ""),
		Neo4jURI:     getEnv("NEO4J_URI", ""),
		Neo4jUser:    getEnv("NEO4J_USER", "neo4j"),
		Neo4jPass:    getEnv("NEO4J_PASSWORD", ""),
		Debug:        getEnv("DEBUG", "") != "",
	}
}

// ExportEnabled reports whether a Neo4j export target is configured.
func (c *Config) ExportEnabled() bool {
	return c.Neo4jURI != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
