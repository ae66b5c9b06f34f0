package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"chatvault/internal/domain"
	"chatvault/internal/services/chatroom"
	"chatvault/internal/store"
)

// Wire bundles the backend and services for the CLI.
type Wire struct {
	Config   Config
	Logger   *slog.Logger
	Backend  domain.RecordBackend
	Rooms    *chatroom.Service
	Registry *prometheus.Registry // nil unless metrics are enabled
}

// NewWire constructs the dependency graph from cfg.
func NewWire(ctx context.Context, cfg Config, logger *slog.Logger) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}

	var reg *prometheus.Registry
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		m, err := store.NewMetrics(reg, cfg.Backend)
		if err != nil {
			_ = backend.Close()
			return nil, err
		}
		backend = store.Instrument(backend, m)
	}

	rooms, err := chatroom.New(backend, cfg.Passphrase,
		chatroom.WithLogger(logger),
		chatroom.WithScryptParams(cfg.Scrypt.N, cfg.Scrypt.R, cfg.Scrypt.P),
	)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	logger.Debug("storage ready", "backend", cfg.Backend, "home", cfg.Home, "metrics", cfg.Metrics.Enabled)

	return &Wire{
		Config:   cfg,
		Logger:   logger,
		Backend:  backend,
		Rooms:    rooms,
		Registry: reg,
	}, nil
}

// Close flushes metrics, if configured, and releases the backend.
func (w *Wire) Close() error {
	var errs []error
	if w.Registry != nil && w.Config.Metrics.Textfile != "" {
		if err := prometheus.WriteToTextfile(w.Config.Metrics.Textfile, w.Registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	if err := w.Rooms.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func openBackend(ctx context.Context, cfg Config) (domain.RecordBackend, error) {
	switch cfg.Backend {
	case BackendFile:
		return store.NewFileBackend(cfg.Home)

	case BackendMemory:
		return store.NewMemoryBackend(), nil

	case BackendRedis:
		client, err := store.DialRedis(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return store.NewRedisBackend(client, cfg.Redis.Prefix), nil

	case BackendSQLite:
		if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
			return nil, err
		}
		db, err := store.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return store.NewSQLBackend(db)

	case BackendPostgres:
		pool, err := store.ConnectPostgres(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		b, err := store.NewPostgresBackend(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: unknown backend %q", domain.ErrInvalidArgument, cfg.Backend)
}
