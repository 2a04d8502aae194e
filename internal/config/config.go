package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port    string `env:"PORT, default=8080"`
	Env     string `env:"ENV, default=development"`
	AppName string `env:"APP_NAME, default=petclinic"`

	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogFormat string `env:"LOG_FORMAT, default=text"`

	HTTP  HTTPConfig
	DB    DBConfig
	Redis RedisConfig
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT, default=5s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT, default=10s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT, default=10s"`
}

// DBConfig: DSN vacío = repositorios en memoria con datos de ejemplo.
type DBConfig struct {
	DSN     string `env:"DB_DSN"`
	Migrate bool   `env:"DB_MIGRATE, default=true"`
	Seed    bool   `env:"DB_SEED, default=true"`
}

// RedisConfig: Addr vacío = flashes en memoria y sin cache de vets.
type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR"`
	DB           int           `env:"REDIS_DB, default=0"`
	VetsCacheTTL time.Duration `env:"VETS_CACHE_TTL, default=10m"`
	FlashTTL     time.Duration `env:"FLASH_TTL, default=5m"`
}

func (c Config) Addr() string { return ":" + c.Port }

// Load lee la configuración del entorno del proceso.
func Load(ctx context.Context) (Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

func LoadFrom(ctx context.Context, l envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
