package app

import (
	"time"

	"github.com/polyfeed/polyfeed/app/events"
	"github.com/polyfeed/polyfeed/internal/nexus"
)

type Config struct {
	Events events.Config

	AppHost string `env:"APP_HOST" env-default:"localhost"`
	AppPort string `env:"APP_PORT" env-default:"8080"`
	Env     string `env:"APP_ENV" env-default:"development"`

	// CacheBackend selects redis or memory for the event catalog cache.
	CacheBackend  string `env:"CACHE_BACKEND" env-default:"memory" validate:"oneof=memory redis"`
	RedisAddr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" env-default:""`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`

	GammaBaseURL    string        `env:"GAMMA_BASE_URL" env-default:"https://gamma-api.polymarket.com" validate:"url"`
	GammaTimeout    time.Duration `env:"GAMMA_TIMEOUT" env-default:"10s"`
	GammaMaxRetries int           `env:"GAMMA_MAX_RETRIES" env-default:"3"`
}

// LoadConfig loads the application configuration from environment variables or a config file.
func LoadConfig() (*Config, error) {
	c := &Config{}
	err := nexus.NewLoader().Load(c)
	return c, err
}
