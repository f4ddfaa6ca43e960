package config

import (
	"fmt"
	"os"
	"time"

	"github.com/georgemunganga/stockbook-backend/internal/core"
	pkgredis "github.com/georgemunganga/stockbook-backend/pkg/redis"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Env      string          `yaml:"env" env:"APP_ENV" env-default:"development"`
	HTTP     HTTP            `yaml:"http"`
	Database Database        `yaml:"database"`
	Auth     Auth            `yaml:"auth"`
	Redis    pkgredis.Config `yaml:"redis"`
	Sales    Sales           `yaml:"sales"`
	Kafka    Kafka           `yaml:"kafka"`
}

type HTTP struct {
	Port            string        `yaml:"port" env:"APP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type Database struct {
	Driver  string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
	URL     string `yaml:"url" env:"DATABASE_URL"`
	Migrate bool   `yaml:"migrate" env:"DATABASE_MIGRATE" env-default:"true"`
}

type Auth struct {
	JWTSecret  string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"JWT_TTL" env-default:"168h"`
	BcryptCost int           `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}

type Sales struct {
	CacheTTL time.Duration `yaml:"cache_ttl" env:"SALES_CACHE_TTL" env-default:"5m"`
}

type Kafka struct {
	Brokers   []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	SaleTopic string   `yaml:"sale_topic" env:"KAFKA_SALE_TOPIC" env-default:"sale-events"`
}

// Environment returns the parsed deployment environment.
func (c *Config) Environment() core.Environment {
	return core.ParseEnvironment(c.Env)
}

// Load reads configuration from the YAML file named by CONFIG_PATH when set,
// otherwise from environment variables only.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to find config file: %w", err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case StoragePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s storage driver", StoragePostgres)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Database.Driver)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	return nil
}
