package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration values.
type Config struct {
	Env             string
	HTTPPort        string
	Secret          string
	TokenTTL        time.Duration
	Database        Database
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	LogLevel        string
	AMQP            AMQP
	SeedCatalog     string
}

type Database struct {
	Driver       string
	DSN          string
	MaxOpenConns int
}

// AMQP publishing is disabled when URL is empty.
type AMQP struct {
	URL      string
	Exchange string
}

const DefaultSecret = "dev_secret"

// SetDefaults registers every key so that environment variables are picked up
// for all of them. Keys map to env names by upper-casing and replacing dots
// with underscores, e.g. database.dsn is DATABASE_DSN.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("http.port", "8080")
	v.SetDefault("secret", DefaultSecret)
	v.SetDefault("token.ttl", 24*time.Hour)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "inventory.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("request.timeout", 15*time.Second)
	v.SetDefault("shutdown.timeout", 15*time.Second)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "inventory")
	v.SetDefault("seed.catalog", "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// NewViper loads an optional .env file and returns a viper instance with defaults.
func NewViper(envFiles ...string) *viper.Viper {
	// a missing .env is fine
	_ = godotenv.Load(envFiles...)
	v := viper.New()
	SetDefaults(v)
	return v
}

// ReadFile merges a YAML/TOML/JSON config file into v.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Env:      v.GetString("env"),
		HTTPPort: v.GetString("http.port"),
		Secret:   v.GetString("secret"),
		TokenTTL: v.GetDuration("token.ttl"),
		Database: Database{
			Driver:       v.GetString("database.driver"),
			DSN:          v.GetString("database.dsn"),
			MaxOpenConns: v.GetInt("database.max_open_conns"),
		},
		RequestTimeout:  v.GetDuration("request.timeout"),
		ShutdownTimeout: v.GetDuration("shutdown.timeout"),
		CORSOrigins:     splitList(v.GetStringSlice("cors.allowed_origins")),
		LogLevel:        v.GetString("log.level"),
		AMQP: AMQP{
			URL:      v.GetString("amqp.url"),
			Exchange: v.GetString("amqp.exchange"),
		},
		SeedCatalog: v.GetString("seed.catalog"),
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid value at once.
func (c Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("http.port %q is not a valid port", c.HTTPPort))
	}
	if c.Secret == "" {
		errs = append(errs, errors.New("secret must not be empty"))
	}
	if c.Env == "production" && c.Secret == DefaultSecret {
		errs = append(errs, errors.New("secret must be changed in production"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("token.ttl must be positive"))
	}
	switch c.Database.Driver {
	case "sqlite", "pgx":
	default:
		errs = append(errs, fmt.Errorf("database.driver %q must be sqlite or pgx", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn must not be empty"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request.timeout must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown.timeout must be positive"))
	}
	if c.AMQP.URL != "" && c.AMQP.Exchange == "" {
		errs = append(errs, errors.New("amqp.exchange is required when amqp.url is set"))
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.HTTPPort
}

func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
