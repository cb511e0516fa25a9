package config

import (
	"errors"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	JWTSecret      string `env:"JWT_SECRET_KEY,required"`
	JWTAlgorithm   string `env:"JWT_ALGORITHM" envDefault:"HS256"`
	JWTTTLSeconds  int    `env:"JWT_ACCESS_TOKEN_EXPIRES" envDefault:"3600"`
	JWTSkewSeconds int    `env:"JWT_CLOCK_SKEW_SECONDS" envDefault:"0"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	DBQueryTimeoutSeconds int `env:"DB_QUERY_TIMEOUT_SECONDS" envDefault:"5"`

	RedisAddr               string `env:"REDIS_ADDR"`
	RedisPassword           string `env:"REDIS_PASSWORD"`
	RedisDB                 int    `env:"REDIS_DB" envDefault:"0"`
	CategoryCacheTTLSeconds int    `env:"CATEGORY_CACHE_TTL_SECONDS" envDefault:"30"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return errors.New("config: JWT_ALGORITHM must be HS256, HS384 or HS512")
	}
	if c.JWTTTLSeconds <= 0 {
		return errors.New("config: JWT_ACCESS_TOKEN_EXPIRES must be positive")
	}
	if c.JWTSkewSeconds < 0 {
		return errors.New("config: JWT_CLOCK_SKEW_SECONDS must not be negative")
	}
	return nil
}
