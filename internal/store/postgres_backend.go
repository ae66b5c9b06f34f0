package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatvault/internal/domain"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS chat_rooms (
	storage_key TEXT PRIMARY KEY,
	payload     JSONB NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresBackend keeps records in a PostgreSQL chat_rooms table.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

// ConnectPostgres opens a pool for databaseURL and pings it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// NewPostgresBackend creates the chat_rooms table if missing. The backend owns
// pool and closes it on Close.
func NewPostgresBackend(ctx context.Context, pool *pgxpool.Pool) (*PostgresBackend, error) {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, err
	}
	return &PostgresBackend{pool: pool}, nil
}

func (s *PostgresBackend) Load(ctx context.Context, key domain.StorageKey) ([]byte, bool, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM chat_rooms WHERE storage_key = $1`, string(key),
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *PostgresBackend) Save(ctx context.Context, key domain.StorageKey, data []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO chat_rooms (storage_key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (storage_key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		string(key), data,
	)
	return err
}

func (s *PostgresBackend) Remove(ctx context.Context, key domain.StorageKey) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM chat_rooms WHERE storage_key = $1`, string(key))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresBackend) Close() error {
	s.pool.Close()
	return nil
}

var _ domain.RecordBackend = (*PostgresBackend)(nil)
