/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package presentations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const schema = `
CREATE TABLE IF NOT EXISTS presentations (
	id         UUID PRIMARY KEY,
	nombre     TEXT NOT NULL,
	imagen     TEXT NOT NULL,
	titulos    JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS presentations_nombre_idx ON presentations (nombre, created_at);
`

const selectColumns = `SELECT id, nombre, imagen, titulos, created_at FROM presentations`

// PostgresConfig holds connection pool settings.
type PostgresConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func DefaultPostgresConfig(url string) PostgresConfig {
	return PostgresConfig{
		URL:             url,
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// OpenPostgres connects and pings the database.
func OpenPostgres(ctx context.Context, cfg PostgresConfig, logger logrus.FieldLogger) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, errors.New("database URL is required")
	}

	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	logger.WithFields(logrus.Fields{
		"max_open_conns":    cfg.MaxOpenConns,
		"max_idle_conns":    cfg.MaxIdleConns,
		"conn_max_lifetime": cfg.ConnMaxLifetime,
	}).Info("Database connected")

	return db, nil
}

// PostgresStore stores presentations in a single table, titles as JSONB.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create presentations table: %w", err)
	}

	return nil
}

func (s *PostgresStore) Save(ctx context.Context, p *Presentation) error {
	if err := prepare(p); err != nil {
		return err
	}

	titles, err := json.Marshal(p.Titles)
	if err != nil {
		return fmt.Errorf("failed to encode titles: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO presentations (id, nombre, imagen, titulos, created_at) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Name, p.Image, titles, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert presentation: %w", err)
	}

	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Presentation, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list presentations: %w", err)
	}
	defer rows.Close()

	out := []Presentation{}
	for rows.Next() {
		p, err := scanPresentation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list presentations: %w", err)
	}

	return out, nil
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*Presentation, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE nombre = $1 ORDER BY created_at, id LIMIT 1`, name)

	p, err := scanPresentation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	return p, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPresentation(row scanner) (*Presentation, error) {
	var (
		p      Presentation
		titles []byte
	)

	if err := row.Scan(&p.ID, &p.Name, &p.Image, &titles, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan presentation: %w", err)
	}

	if err := json.Unmarshal(titles, &p.Titles); err != nil {
		return nil, fmt.Errorf("failed to decode titles for %s: %w", p.ID, err)
	}

	return &p, nil
}
