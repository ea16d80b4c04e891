package config

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cast"

	"github.com/JustinTDCT/CineCurator/internal/logging"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	TMDB     TMDBConfig     `koanf:"tmdb"`
	Search   SearchConfig   `koanf:"search"`
	Jobs     JobsConfig     `koanf:"jobs"`
	Log      LogConfig      `koanf:"log"`
}

type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitRPM    int           `koanf:"rate_limit_rpm" validate:"min=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL          string `koanf:"url" validate:"required"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns int    `koanf:"max_idle_conns" validate:"min=0"`
}

type RedisConfig struct {
	Addr string `koanf:"addr"`
}

// Enabled reports whether a Redis address was configured. Without Redis the
// server falls back to in-memory caches and runs no background jobs.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type TMDBConfig struct {
	APIKey          string        `koanf:"api_key"`
	ReadToken       string        `koanf:"read_token"`
	BaseURL         string        `koanf:"base_url" validate:"required,url"`
	Timeout         time.Duration `koanf:"timeout"`
	RequestsPerSec  float64       `koanf:"requests_per_sec" validate:"gt=0"`
	Burst           int           `koanf:"burst" validate:"min=1"`
	SearchCacheTTL  time.Duration `koanf:"search_cache_ttl"`
	DetailsCacheTTL time.Duration `koanf:"details_cache_ttl"`
}

func (t TMDBConfig) Configured() bool { return t.APIKey != "" || t.ReadToken != "" }

type SearchConfig struct {
	Debounce       time.Duration `koanf:"debounce"`
	MinQueryLength int           `koanf:"min_query_length" validate:"min=1"`
	RecentLimit    int           `koanf:"recent_limit" validate:"min=1"`
}

type JobsConfig struct {
	Concurrency     int    `koanf:"concurrency" validate:"min=1"`
	RefreshSchedule string `koanf:"refresh_schedule"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			CORSOrigins:     []string{"*"},
			RateLimitRPM:    120,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			URL:          "postgres://cinecurator:cinecurator@db:5432/cinecurator?sslmode=disable",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
		TMDB: TMDBConfig{
			BaseURL:         "https://api.themoviedb.org/3",
			Timeout:         10 * time.Second,
			RequestsPerSec:  40,
			Burst:           20,
			SearchCacheTTL:  10 * time.Minute,
			DetailsCacheTTL: 24 * time.Hour,
		},
		Search: SearchConfig{
			Debounce:       300 * time.Millisecond,
			MinQueryLength: 2,
			RecentLimit:    5,
		},
		Jobs: JobsConfig{
			Concurrency:     2,
			RefreshSchedule: "0 3 * * *",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

var envMappings = map[string]string{
	"port":              "server.port",
	"cors_origins":      "server.cors_origins",
	"rate_limit_rpm":    "server.rate_limit_rpm",
	"shutdown_timeout":  "server.shutdown_timeout",
	"database_url":      "database.url",
	"db_max_open_conns": "database.max_open_conns",
	"db_max_idle_conns": "database.max_idle_conns",
	"redis_addr":        "redis.addr",
	"tmdb_api_key":      "tmdb.api_key",
	"tmdb_read_token":   "tmdb.read_token",
	"tmdb_base_url":     "tmdb.base_url",
	"tmdb_timeout":      "tmdb.timeout",
	"tmdb_rps":          "tmdb.requests_per_sec",
	"tmdb_burst":        "tmdb.burst",
	"search_debounce":   "search.debounce",
	"search_min_length": "search.min_query_length",
	"recent_limit":      "search.recent_limit",
	"job_concurrency":   "jobs.concurrency",
	"refresh_schedule":  "jobs.refresh_schedule",
	"log_level":         "log.level",
	"log_format":        "log.format",
}

// envKey maps an environment variable to its config path. Unknown variables
// return "" and are skipped by the provider.
func envKey(key string) string {
	return envMappings[strings.ToLower(key)]
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load builds the configuration from defaults, then the optional YAML file at
// path, then the environment. Later layers win.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	if err := splitSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// sliceKeys are list-valued settings that arrive from the environment as
// comma-separated strings.
var sliceKeys = []string{
	"server.cors_origins",
}

func splitSliceFields(k *koanf.Koanf) error {
	for _, key := range sliceKeys {
		raw, ok := k.Get(key).(string)
		if !ok {
			continue
		}
		parts := strings.Split(raw, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if err := k.Set(key, out); err != nil {
			return fmt.Errorf("split %s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ──────────────────── DB overrides ────────────────────

// MergeFromDB overlays runtime settings saved in the settings table. Values
// that fail to convert are logged and ignored.
func (c *Config) MergeFromDB(db *sql.DB) {
	log := logging.Component("config")
	rows, err := db.Query("SELECT key, value FROM settings")
	if err != nil {
		log.Warn().Err(err).Msg("skipping DB merge")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			continue
		}
		if err := c.applySetting(key, value); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("ignoring setting")
		}
	}
}

func (c *Config) applySetting(key, value string) error {
	switch key {
	case "tmdb_api_key":
		c.TMDB.APIKey = value
	case "tmdb_read_token":
		c.TMDB.ReadToken = value
	case "search_debounce_ms":
		ms, err := cast.ToIntE(value)
		if err != nil || ms <= 0 {
			return fmt.Errorf("search_debounce_ms %q: not a positive integer", value)
		}
		c.Search.Debounce = time.Duration(ms) * time.Millisecond
	case "recent_limit":
		n, err := cast.ToIntE(value)
		if err != nil || n < 1 {
			return fmt.Errorf("recent_limit %q: not a positive integer", value)
		}
		c.Search.RecentLimit = n
	case "refresh_schedule":
		c.Jobs.RefreshSchedule = value
	case "search_cache_ttl":
		d, err := cast.ToDurationE(value)
		if err != nil {
			return fmt.Errorf("search_cache_ttl: %w", err)
		}
		c.TMDB.SearchCacheTTL = d
	case "log_level":
		c.Log.Level = value
	}
	return nil
}
