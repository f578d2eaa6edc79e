package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	ServiceUsers = "users"
	ServiceTodos = "todos"
)

type AppConfig struct {
	ServiceName string `toml:"service_name"`
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        string `toml:"port"`

	EnforceHTTPS bool   `toml:"enforce_https"`
	JWTSecret    string `toml:"jwt_secret"`

	RateLimitEnabled bool                       `toml:"rate_limit_enabled"`
	RateLimitConfigs map[string]RateLimitConfig `toml:"rate_limits"`

	Storage   StorageConfig   `toml:"storage"`
	Cache     CacheConfig     `toml:"cache"`
	Telemetry TelemetryConfig `toml:"telemetry"`

	LokiURL string `toml:"loki_url"`
}

// RateLimitConfig is keyed by "METHOD /route" or "/route" in AppConfig.
type RateLimitConfig struct {
	Requests int           `toml:"requests"`
	Window   time.Duration `toml:"window"`
	// ByUser counts per authenticated user instead of per client ip.
	ByUser bool `toml:"by_user"`
}

type StorageConfig struct {
	// Driver is one of json, memory, sqlite, postgres.
	Driver         string `toml:"driver"`
	DataPath       string `toml:"data_path"`
	DatabasePath   string `toml:"database_path"`
	DatabaseURL    string `toml:"database_url"`
	MigrationsPath string `toml:"migrations_path"`
	LogQueries     bool   `toml:"log_queries"`
}

type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	// Driver is memory or redis.
	Driver   string        `toml:"driver"`
	RedisURL string        `toml:"redis_url"`
	TTL      time.Duration `toml:"ttl"`
}

type TelemetryConfig struct {
	Enabled        bool   `toml:"enabled"`
	OTLPEndpoint   string `toml:"otlp_endpoint"`
	MetricsPort    string `toml:"metrics_port"`
	ServiceVersion string `toml:"service_version"`
}

func (c *AppConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func GetDefaultConfig(service string) *AppConfig {
	port := "3002"
	metricsPort := "9092"

	if service == ServiceUsers {
		port = "3001"
		metricsPort = "9091"
	}

	return &AppConfig{
		ServiceName:      service,
		Environment:      "development",
		Host:             "0.0.0.0",
		Port:             port,
		JWTSecret:        "development-secret",
		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"POST /users": {
				Requests: 5,
				Window:   time.Minute,
			},
			"POST /users/login": {
				Requests: 10,
				Window:   time.Minute,
			},
			"/todos": {
				Requests: 100,
				Window:   time.Minute,
				ByUser:   true,
			},
			"/lists": {
				Requests: 100,
				Window:   time.Minute,
				ByUser:   true,
			},
		},
		EnforceHTTPS: false,
		Storage: StorageConfig{
			Driver:         "json",
			DataPath:       "data",
			DatabasePath:   "taskboard.db",
			MigrationsPath: "",
		},
		Cache: CacheConfig{
			Enabled: false,
			Driver:  "memory",
			TTL:     5 * time.Minute,
		},
		Telemetry: TelemetryConfig{
			Enabled:        false,
			OTLPEndpoint:   "localhost:4317",
			MetricsPort:    metricsPort,
			ServiceVersion: "1.0.0",
		},
	}
}

// Load layers defaults, the TOML file named by CONFIG_FILE and environment
// variables, in that order.
func Load(service string) (*AppConfig, error) {
	cfg := GetDefaultConfig(service)

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *AppConfig) Validate() error {
	switch c.Storage.Driver {
	case "json", "memory", "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch c.Cache.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown cache driver %q", c.Cache.Driver)
	}

	if c.Storage.Driver == "postgres" && c.Storage.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for the postgres storage driver")
	}

	if c.Cache.Enabled && c.Cache.Driver == "redis" && c.Cache.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required for the redis cache driver")
	}

	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}

	return nil
}

func applyEnv(cfg *AppConfig) error {
	setString(&cfg.Port, "PORT")
	setString(&cfg.Host, "HOST")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.Storage.Driver, "STORAGE_DRIVER")
	setString(&cfg.Storage.DataPath, "DATA_PATH")
	setString(&cfg.Storage.DatabasePath, "DATABASE_PATH")
	setString(&cfg.Storage.DatabaseURL, "DATABASE_URL")
	setString(&cfg.Storage.MigrationsPath, "MIGRATIONS_PATH")
	setString(&cfg.Cache.Driver, "CACHE_DRIVER")
	setString(&cfg.Cache.RedisURL, "REDIS_URL")
	setString(&cfg.Telemetry.OTLPEndpoint, "OTLP_ENDPOINT")
	setString(&cfg.Telemetry.MetricsPort, "METRICS_PORT")
	setString(&cfg.LokiURL, "LOKI_URL")

	if os.Getenv("GIN_MODE") == "release" {
		cfg.Environment = "production"
		cfg.EnforceHTTPS = true
	}

	flags := map[string]*bool{
		"ENFORCE_HTTPS":      &cfg.EnforceHTTPS,
		"CACHE_ENABLED":      &cfg.Cache.Enabled,
		"RATE_LIMIT_ENABLED": &cfg.RateLimitEnabled,
		"TELEMETRY_ENABLED":  &cfg.Telemetry.Enabled,
		"LOG_QUERIES":        &cfg.Storage.LogQueries,
	}

	for name, target := range flags {
		if err := setBool(target, name); err != nil {
			return err
		}
	}

	return nil
}

func setString(target *string, name string) {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		*target = value
	}
}

func setBool(target *bool, name string) error {
	value, ok := os.LookupEnv(name)

	if !ok || value == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(value)

	if err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", value, name, err)
	}

	*target = parsed

	return nil
}
