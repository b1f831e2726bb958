package main

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type config struct {
	Port               string
	LogLevel           string
	WellWidth          int
	WellDepth          int
	MaxSearchDepth     int
	DefaultEnemy       string
	RotationSystemFile string
	DailySalt          string
	ClientOrigin       string
	JWTSecret          string
	APIKeyHash         string
	TokenTTL           time.Duration
	CacheMaxEntries    int
	RequestTimeout     time.Duration
}

func loadConfig() config {
	return config{
		Port:               getEnv("PORT", "5175"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		WellWidth:          envInt("WELL_WIDTH", 10),
		WellDepth:          envInt("WELL_DEPTH", 20),
		MaxSearchDepth:     envInt("MAX_SEARCH_DEPTH", 1),
		DefaultEnemy:       getEnv("DEFAULT_ENEMY", "hatetris-1"),
		RotationSystemFile: os.Getenv("ROTATION_SYSTEM_FILE"),
		DailySalt:          getEnv("DAILY_SALT", "local_dev_salt"),
		ClientOrigin:       os.Getenv("CLIENT_ORIGIN"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		APIKeyHash:         os.Getenv("API_KEY_HASH"),
		TokenTTL:           time.Duration(envInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		CacheMaxEntries:    envInt("CACHE_MAX_ENTRIES", 4096),
		RequestTimeout:     time.Duration(envInt("REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as an int, falling back to def when unset or malformed.
func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-integer env var")
		return def
	}
	return n
}
