package database

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/random-lottery/AIPortal/internal/config"

	_ "github.com/lib/pq"
	"go.uber.org/fx"
)

type PostgresDB struct {
	DB *sql.DB
}

// NewPostgres opens a Postgres connection pool with lifecycle management.
// Only dialed when the settings store is configured for the postgres driver.
func NewPostgres(lc fx.Lifecycle, cfg *config.Config) (*PostgresDB, error) {
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	log.Println("Connected to Postgres!")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("Closing Postgres connection pool...")
			return db.Close()
		},
	})

	return &PostgresDB{DB: db}, nil
}
