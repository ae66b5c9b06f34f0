package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatvault/internal/app"
	"chatvault/internal/crypto"
	"chatvault/internal/domain"
	"chatvault/internal/store"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := app.LoadConfig(app.NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, app.BackendFile, cfg.Backend)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, store.DefaultRedisPrefix, cfg.Redis.Prefix)
	assert.Equal(t, crypto.DefaultKDFParams(), cfg.Scrypt.KDFParams())
	assert.Equal(t, filepath.Join(cfg.Home, "chatvault.db"), cfg.SQLite.Path)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CHATVAULT_BACKEND", "memory")
	t.Setenv("CHATVAULT_REDIS_ADDR", "redis:6380")
	t.Setenv("CHATVAULT_SCRYPT_N", "1024")
	t.Setenv("CHATVAULT_PASSPHRASE", "from env")

	cfg, err := app.LoadConfig(app.NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, app.BackendMemory, cfg.Backend)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, 1024, cfg.Scrypt.N)
	assert.Equal(t, "from env", cfg.Passphrase)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chatvault.yaml")
	yaml := `
environment: production
home: ` + dir + `
backend: sqlite
sqlite:
  path: ` + filepath.Join(dir, "rooms.db") + `
metrics:
  enabled: true
scrypt:
  n: 2048
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := app.LoadConfig(app.NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, dir, cfg.Home)
	assert.Equal(t, app.BackendSQLite, cfg.Backend)
	assert.Equal(t, filepath.Join(dir, "rooms.db"), cfg.SQLite.Path)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 2048, cfg.Scrypt.N)
	assert.Equal(t, 8, cfg.Scrypt.R, "unset keys keep defaults")
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := app.LoadConfig(app.NewViper(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	base := app.Config{
		Home:    t.TempDir(),
		Backend: app.BackendMemory,
		Scrypt:  app.ScryptConfig{N: 1 << 10, R: 8, P: 1},
	}
	require.NoError(t, base.Validate())

	for name, mutate := range map[string]func(*app.Config){
		"unknown backend": func(c *app.Config) { c.Backend = "etcd" },
		"postgres no url": func(c *app.Config) { c.Backend = app.BackendPostgres },
		"empty home":      func(c *app.Config) { c.Home = "" },
		"scrypt not pow2": func(c *app.Config) { c.Scrypt.N = 1000 },
		"scrypt zero r":   func(c *app.Config) { c.Scrypt.R = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidArgument)
		})
	}
}
