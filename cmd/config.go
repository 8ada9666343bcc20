package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"fulfillment/internal/adapters/out/courierapi"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	SeedFile string `envconfig:"SEED_FILE"`

	Storage StorageConfig
	DB      DBConfig
	Courier CourierConfig
	Jobs    JobsConfig
}

type StorageConfig struct {
	Driver     string `envconfig:"STORAGE_DRIVER" default:"postgres"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"fulfillment.db"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME"`
	SslMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

type CourierConfig struct {
	BaseURL      string        `envconfig:"COURIER_BASE_URL" default:"https://procolis.com/api_v1"`
	Token        string        `envconfig:"COURIER_TOKEN" required:"true"`
	Key          string        `envconfig:"COURIER_KEY" required:"true"`
	Timeout      time.Duration `envconfig:"COURIER_TIMEOUT" default:"30s"`
	ProductLabel string        `envconfig:"COURIER_PRODUCT_LABEL"`
}

type JobsConfig struct {
	DeliveryStatusSyncSpec string `envconfig:"DELIVERY_STATUS_SYNC_SPEC"`
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Courier.ProductLabel == "" {
		cfg.Courier.ProductLabel = courierapi.DefaultProductLabel
	}
	if cfg.Jobs.DeliveryStatusSyncSpec == "" {
		cfg.Jobs.DeliveryStatusSyncSpec = jobs.DefaultDeliveryStatusSyncSpec
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values envconfig cannot express as tags.
func (c Config) Validate() error {
	var errList []error

	switch c.Storage.Driver {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if c.DB.User == "" || c.DB.Name == "" {
			errList = append(errList, errors.New("DB_USER and DB_NAME are required for the postgres driver"))
		}
	default:
		errList = append(errList, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}

	if u, err := url.Parse(c.Courier.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errList = append(errList, fmt.Errorf("COURIER_BASE_URL %q is not an absolute URL", c.Courier.BaseURL))
	}
	if c.Courier.Timeout <= 0 {
		errList = append(errList, fmt.Errorf("COURIER_TIMEOUT must be positive, got %s", c.Courier.Timeout))
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Jobs.DeliveryStatusSyncSpec); err != nil {
		errList = append(errList, fmt.Errorf("DELIVERY_STATUS_SYNC_SPEC: %w", err))
	}

	if _, err := parseLogLevel(c.LogLevel); err != nil {
		errList = append(errList, err)
	}

	return errors.Join(errList...)
}

// DSN builds the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SslMode)
}

func parseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q: %w", level, err)
	}
	return l, nil
}
