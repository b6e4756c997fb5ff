package shared

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string        `env:"APP_ENV" envDefault:"prod"`
	HTTPAddr    string        `env:"HTTP_ADDR" envDefault:":8080"`
	MetricsAddr string        `env:"METRICS_ADDR" envDefault:":9100"`
	MySQLDSN    string        `env:"MYSQL_DSN" envDefault:"root:root@tcp(localhost:3306)/bookapi?parseTime=true&charset=utf8mb4,utf8&loc=UTC"`
	RedisAddr   string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB     int           `env:"REDIS_DB" envDefault:"0"`
	RedisPass   string        `env:"REDIS_PASSWORD"`
	CacheTTLSec int           `env:"CACHE_TTL_SECONDS" envDefault:"900"`
	JWTSecret   string        `env:"JWT_SECRET"`
	JWTTTL      time.Duration `env:"JWT_TTL" envDefault:"24h"`
	RateRPS     float64       `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateBurst   int           `env:"RATE_LIMIT_BURST" envDefault:"40"`
	SeedWorkers int           `env:"SEED_WORKERS" envDefault:"8"`
	SeedFile    string        `env:"SEED_FILE" envDefault:"testdata/seed.json"`
}

func Load() Config {
	var c Config
	if err := env.Parse(&c); err != nil {
		log.Fatal().Err(err).Msg("parse environment")
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty; issued tokens are forgeable")
	}
	return c
}

func (c Config) CacheTTL() time.Duration { return time.Duration(c.CacheTTLSec) * time.Second }
