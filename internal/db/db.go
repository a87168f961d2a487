package db

import (
	"database/sql"
	"fmt"

	"storefront-be/internal/config"

	_ "github.com/lib/pq"
)

// Open connects to postgres and verifies the connection with a ping.
func Open(cfg *config.Config) (*sql.DB, error) {
	conn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return conn, nil
}
