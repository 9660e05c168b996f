package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIBaseURL string `env:"STOREFLOW_API_URL,  default=https://store-flow-api.vercel.app"`
	LogLevel   string `env:"STOREFLOW_LOG_LEVEL, default=info"`
	LogPretty  bool   `env:"STOREFLOW_LOG_PRETTY, default=true"`

	// Per-endpoint-class timeouts: identity verification is short, auth a
	// little longer, order CRUD the longest.
	VerifyTimeout time.Duration `env:"STOREFLOW_VERIFY_TIMEOUT, default=5s"`
	AuthTimeout   time.Duration `env:"STOREFLOW_AUTH_TIMEOUT,   default=10s"`
	OrderTimeout  time.Duration `env:"STOREFLOW_ORDER_TIMEOUT,  default=15s"`

	Session SessionConfig
	Serve   ServeConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	// Backend selects where the session token persists: "file" (default) or
	// "redis" for shared terminals.
	Backend   string `env:"STOREFLOW_TOKEN_BACKEND, default=file"`
	TokenFile string `env:"STOREFLOW_TOKEN_FILE"`
}

type ServeConfig struct {
	Port string `env:"STOREFLOW_SERVE_PORT, default=8080"`
}

type RedisConfig struct {
	Addr string `env:"STOREFLOW_REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"STOREFLOW_REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
