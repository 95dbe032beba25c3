package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port                 string
	AllowedOrigins       []string
	DatabaseURL          string
	DBDriver             string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	RedisURL             string
	RedisPassword        string
	BenchmarkCacheTTL    time.Duration
	BenchmarkWorkers     int
	BenchmarkRuns        int
	BenchmarkTimeout     time.Duration
	BenchmarkRetention   time.Duration
	JWTSecret            string
	TokenTTL             time.Duration
	MinimaxDepth         int
	AlphaBetaDepth       int
	MaxSearchDepth       int
	SessionIdleTimeout   time.Duration
	CleanupInterval      time.Duration
	LogLevel             string
	LogFormat            string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// CORS: localhost for development plus the CSV values
	allowedOrigins := []string{"http://localhost:5173"}
	for _, origin := range strings.Split(GetEnv("ALLOWED_ORIGINS", ""), ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			allowedOrigins = append(allowedOrigins, trimmed)
		}
	}

	// Database Config
	dbDriver := GetEnv("DB_DRIVER", "pgx")
	dbURL := GetEnv("DATABASE_URL", "")
	if dbURL != "" && dbDriver == "pgx" {
		// simple_protocol keeps pgx working behind PgBouncer
		if u, err := url.Parse(dbURL); err == nil {
			q := u.Query()
			if q.Get("default_query_exec_mode") == "" {
				q.Set("default_query_exec_mode", "simple_protocol")
				u.RawQuery = q.Encode()
				dbURL = u.String()
			}
		}
	}

	AppConfig = &Config{
		Port:                 port,
		AllowedOrigins:       allowedOrigins,
		DatabaseURL:          dbURL,
		DBDriver:             dbDriver,
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		RedisURL:             GetEnv("REDIS_URL", ""),
		RedisPassword:        GetEnv("REDIS_PASSWORD", ""),
		BenchmarkCacheTTL:    GetEnvAsDuration("BENCHMARK_CACHE_TTL", time.Hour),
		BenchmarkWorkers:     GetEnvAsInt("BENCHMARK_WORKERS", 0),
		BenchmarkRuns:        GetEnvAsInt("BENCHMARK_RUNS", 10),
		BenchmarkTimeout:     GetEnvAsDuration("BENCHMARK_TIMEOUT", 30*time.Minute),
		BenchmarkRetention:   GetEnvAsDuration("BENCHMARK_RETENTION", 30*24*time.Hour),
		JWTSecret:            GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		TokenTTL:             time.Duration(GetEnvAsInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		MinimaxDepth:         GetEnvAsInt("MINIMAX_DEPTH", 7),
		AlphaBetaDepth:       GetEnvAsInt("ALPHABETA_DEPTH", 5),
		MaxSearchDepth:       GetEnvAsInt("MAX_SEARCH_DEPTH", 10),
		SessionIdleTimeout:   GetEnvAsDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		CleanupInterval:      GetEnvAsDuration("CLEANUP_INTERVAL", 10*time.Minute),
		LogLevel:             GetEnv("LOG_LEVEL", "info"),
		LogFormat:            GetEnv("LOG_FORMAT", "json"),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid-integer-env")
		return defaultValue
	}
	return value
}

// GetEnvAsDuration accepts Go durations ("90s", "2h") or a bare number of
// seconds.
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Warn().Str("key", key).Str("value", valueStr).Dur("default", defaultValue).Msg("invalid-duration-env")
	return defaultValue
}
