package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "storefront"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	Cart    CartConfig
	DB      DBConfig
	Redis   RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"STOREFRONT_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CatalogConfig points at the product feed, either a URL or a local file.
type CatalogConfig struct {
	URL              string        `envconfig:"STOREFRONT_CATALOG_URL"`
	FilePath         string        `envconfig:"STOREFRONT_CATALOG_FILE"`
	HTTPTimeout      time.Duration `envconfig:"STOREFRONT_CATALOG_HTTP_TIMEOUT" default:"10s"`
	InitialProductID int64         `envconfig:"STOREFRONT_CATALOG_INITIAL_PRODUCT" default:"0"`
}

func (c CatalogConfig) validate() error {
	if c.URL == "" && c.FilePath == "" {
		return fmt.Errorf("either %s or %s is required", EnvCatalogURL, EnvCatalogFile)
	}
	return nil
}

// CartConfig selects the durable store backing the cart slot.
type CartConfig struct {
	StorageBackend string `envconfig:"STOREFRONT_CART_STORAGE" default:"file"`
	StorageKey     string `envconfig:"STOREFRONT_CART_STORAGE_KEY" default:"shopping-cart"`
	FileDir        string `envconfig:"STOREFRONT_CART_FILE_DIR" default:"./data"`
}

func (c CartConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.StorageBackend)) {
	case StorageBackendMemory, StorageBackendFile, StorageBackendSQLite, StorageBackendRedis:
		return nil
	}
	return fmt.Errorf("unknown cart storage backend %q", c.StorageBackend)
}

// Backend returns the normalized storage backend name.
func (c CartConfig) Backend() string {
	return strings.ToLower(strings.TrimSpace(c.StorageBackend))
}

type DBConfig struct {
	Path            string        `envconfig:"STOREFRONT_DB_PATH" default:"./data/storefront.db"`
	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}
