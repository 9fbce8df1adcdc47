package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env           string        `yaml:"env" env:"ENV" env-default:"local"`
	Database      Database      `yaml:"database"`
	HTTPServer    HTTPServer    `yaml:"http_server"`
	Migrations    Migrations    `yaml:"migrations"`
	Notifications Notifications `yaml:"notifications"`
	Offices       Offices       `yaml:"offices"`
}

type Database struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	DBName   string `yaml:"name" env:"DB_NAME" env-required:"true"`
	User     string `yaml:"user" env:"DB_USER" env-required:"true"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Migrations struct {
	// Dir overrides the embedded scripts when set.
	Dir         string `yaml:"dir" env:"MIGRATIONS_DIR"`
	AutoMigrate bool   `yaml:"auto_migrate" env:"AUTO_MIGRATE"`
}

type Notifications struct {
	Email bool `yaml:"email"`
	SMS   bool `yaml:"sms"`
	AMQP  AMQP `yaml:"amqp"`
}

type AMQP struct {
	URL        string `yaml:"url" env:"AMQP_URL"`
	Exchange   string `yaml:"exchange" env-default:"booking.exchange"`
	RoutingKey string `yaml:"routing_key" env-default:"booking.created"`
}

type Offices struct {
	Count int `yaml:"count"`
}

// MustLoad reads the file named by CONFIG_PATH and panics on failure.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	return MustLoadPath(configPath)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	cfg := defaults()

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if cfg.Offices.Count < 1 {
		return nil, errors.New("offices.count must be positive")
	}

	return &cfg, nil
}

// defaults seeds the fields whose zero value is a valid setting, so an
// explicit false or 0 in the file is kept.
func defaults() Config {
	return Config{
		Migrations: Migrations{
			AutoMigrate: true,
		},
		Notifications: Notifications{
			Email: true,
			SMS:   true,
		},
		Offices: Offices{
			Count: 5,
		},
	}
}
