package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DATABASE_URL", "MINIMAX_DEPTH", "ALPHABETA_DEPTH", "MAX_SEARCH_DEPTH", "ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()
	if cfg.Port != "8080" || cfg.DBDriver != "pgx" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.MinimaxDepth != 7 || cfg.AlphaBetaDepth != 5 || cfg.MaxSearchDepth != 10 {
		t.Fatalf("unexpected depth defaults %d/%d/%d", cfg.MinimaxDepth, cfg.AlphaBetaDepth, cfg.MaxSearchDepth)
	}
	if AppConfig != cfg {
		t.Fatalf("LoadConfig must set AppConfig")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/connectn")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("ALPHABETA_DEPTH", "6")
	t.Setenv("BENCHMARK_CACHE_TTL", "15m")
	t.Setenv("TOKEN_TTL_HOURS", "2")

	cfg := LoadConfig()
	if len(cfg.AllowedOrigins) != 3 || cfg.AllowedOrigins[2] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if !strings.Contains(cfg.DatabaseURL, "default_query_exec_mode=simple_protocol") {
		t.Fatalf("pgx url missing simple protocol: %s", cfg.DatabaseURL)
	}
	if cfg.AlphaBetaDepth != 6 || cfg.BenchmarkCacheTTL != 15*time.Minute || cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("unexpected values %+v", cfg)
	}
}

func TestLibPQURLIsUntouched(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/connectn")
	if cfg := LoadConfig(); cfg.DatabaseURL != "postgres://localhost/connectn" {
		t.Fatalf("lib/pq url rewritten: %s", cfg.DatabaseURL)
	}
}

func TestGetEnvAsIntFallsBack(t *testing.T) {
	t.Setenv("SOME_INT", "seven")
	if got := GetEnvAsInt("SOME_INT", 3); got != 3 {
		t.Fatalf("GetEnvAsInt = %d", got)
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", time.Minute},
		{"90s", 90 * time.Second},
		{"45", 45 * time.Second},
		{"soon", time.Minute},
	}
	for _, tt := range tests {
		t.Setenv("SOME_DURATION", tt.value)
		if got := GetEnvAsDuration("SOME_DURATION", time.Minute); got != tt.want {
			t.Fatalf("GetEnvAsDuration(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	var buf bytes.Buffer
	SetupLogging("warn", "json", &buf)
	log.Info().Msg("hidden")
	log.Warn().Str("k", "v").Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"k":"v"`) {
		t.Fatalf("unexpected log output %q", out)
	}

	buf.Reset()
	SetupLogging("bogus", "json", &buf)
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("unknown level must fall back to info")
	}
}

func TestLoadEnvFileFallsBackToParent(t *testing.T) {
	const key = "CONNECTN_ENV_FILE_TEST"
	t.Setenv(key, "")
	os.Unsetenv(key)

	root := t.TempDir()
	sub := filepath.Join(root, "cmd")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ".env"), []byte(key+"=from-parent\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	t.Chdir(sub)
	if err := LoadEnvFile(); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	if got := os.Getenv(key); got != "from-parent" {
		t.Fatalf("%s = %q, want the parent .env value", key, got)
	}
}

func TestLoadEnvFileReportsMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := LoadEnvFile(); err == nil {
		t.Fatalf("expected an error without any .env file")
	}
}
