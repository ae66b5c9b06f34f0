package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"chatvault/internal/crypto"
	"chatvault/internal/domain"
	"chatvault/internal/store"
)

// Backend names accepted by Config.Backend.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// EnvPrefix is prepended to environment overrides, e.g. CHATVAULT_REDIS_ADDR.
const EnvPrefix = "CHATVAULT"

// Config holds runtime wiring options for building the app.
type Config struct {
	Environment string         `mapstructure:"environment"`
	Home        string         `mapstructure:"home"`       // e.g. $HOME/.chatvault
	Backend     string         `mapstructure:"backend"`    // file|memory|redis|sqlite|postgres
	Passphrase  string         `mapstructure:"passphrase"` // master passphrase; prefer the env var
	Redis       RedisConfig    `mapstructure:"redis"`
	SQLite      SQLiteConfig   `mapstructure:"sqlite"`
	Postgres    PostgresConfig `mapstructure:"postgres"`
	Metrics     MetricsConfig  `mapstructure:"metrics"`
	Scrypt      ScryptConfig   `mapstructure:"scrypt"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"` // defaults to <home>/chatvault.db
}

type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

// MetricsConfig controls backend instrumentation. When Textfile is set the
// collected metrics are written there on shutdown, in the format read by the
// node_exporter textfile collector.
type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Textfile string `mapstructure:"textfile"`
}

type ScryptConfig struct {
	N int `mapstructure:"n"`
	R int `mapstructure:"r"`
	P int `mapstructure:"p"`
}

// KDFParams converts the scrypt settings.
func (c ScryptConfig) KDFParams() crypto.KDFParams {
	return crypto.KDFParams{N: c.N, R: c.R, P: c.P}
}

// DefaultHome returns $HOME/.chatvault, or .chatvault when HOME is unknown.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chatvault"
	}
	return filepath.Join(home, ".chatvault")
}

// NewViper returns a viper instance with every default set and environment
// overrides enabled.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	kdf := crypto.DefaultKDFParams()
	v.SetDefault("environment", "development")
	v.SetDefault("home", DefaultHome())
	v.SetDefault("backend", BackendFile)
	v.SetDefault("passphrase", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", store.DefaultRedisPrefix)
	v.SetDefault("sqlite.path", "")
	v.SetDefault("postgres.url", "")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("scrypt.n", kdf.N)
	v.SetDefault("scrypt.r", kdf.R)
	v.SetDefault("scrypt.p", kdf.P)

	return v
}

// LoadConfig reads .env (if present), then configFile or the first
// chatvault.{yaml,toml,json} found in . or $HOME/.chatvault, applies
// environment overrides and validates the result.
func LoadConfig(v *viper.Viper, configFile string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("chatvault")
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultHome())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if cfg.SQLite.Path == "" {
		cfg.SQLite.Path = filepath.Join(cfg.Home, "chatvault.db")
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings that NewWire depends on.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendMemory, BackendRedis, BackendSQLite:
	case BackendPostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("%w: postgres backend needs postgres.url", domain.ErrInvalidArgument)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", domain.ErrInvalidArgument, c.Backend)
	}
	if c.Home == "" {
		return fmt.Errorf("%w: empty home directory", domain.ErrInvalidArgument)
	}
	return c.Scrypt.KDFParams().Validate()
}
