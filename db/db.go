// Package db records relayed webhook deliveries in PostgreSQL so that
// retried deliveries are only published once.
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrations embed.FS

type DeliveryDB struct {
	DB *sql.DB
}

// NewDeliveryDB opens a connection to source and checks it is reachable.
func NewDeliveryDB(ctx context.Context, source string) (*DeliveryDB, error) {
	if source == "" {
		return nil, errors.New("database source is not set")
	}

	db, err := sql.Open("postgres", source)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Check we are actually connected
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database connection failed during ping: %w", err)
	}

	return &DeliveryDB{DB: db}, nil
}

func (d *DeliveryDB) Close() error {
	if err := d.DB.Close(); err != nil {
		return err
	}
	log.Info().Msg("database connection closed")
	return nil
}

// Migrate applies every pending migration.
func (d *DeliveryDB) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, d.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
