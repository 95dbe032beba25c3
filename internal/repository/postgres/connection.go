package postgres

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Options configures the connection pool.
type Options struct {
	Driver             string // "pgx" or "postgres"
	URL                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
}

// DriverName maps a configured driver to its database/sql name. Anything
// other than "postgres" (lib/pq) selects pgx.
func DriverName(driver string) string {
	if driver == "postgres" || driver == "pq" {
		return "postgres"
	}
	return "pgx"
}

// Open connects, applies pool settings and runs migrations.
func Open(opts Options) (*sql.DB, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("database url is empty")
	}
	db, err := sql.Open(DriverName(opts.Driver), opts.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(opts.ConnMaxLifetimeMin) * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	log.Info().Str("driver", DriverName(opts.Driver)).Msg("database-connected")
	return db, nil
}
