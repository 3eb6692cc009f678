package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// APIBaseURL is the root of the remote sweet-shop service.
	APIBaseURL string `env:"SWEETSHOP_API_URL, default=http://localhost:8080/api"`
	// CredentialFile holds the bearer credential between runs. Defaults to
	// <user config dir>/sweetshop/token when empty.
	CredentialFile string `env:"SWEETSHOP_CREDENTIAL_FILE"`

	HTTPTimeout       time.Duration `env:"SWEETSHOP_HTTP_TIMEOUT, default=10s"`
	RequestsPerSecond float64       `env:"SWEETSHOP_REQUESTS_PER_SECOND, default=5"`

	// ErrorSummaryWords bounds how many words of a remote mutation error
	// reach the user.
	ErrorSummaryWords int `env:"SWEETSHOP_ERROR_SUMMARY_WORDS, default=15"`

	LogLevel  string `env:"SWEETSHOP_LOG_LEVEL, default=warn"`
	LogPretty bool   `env:"SWEETSHOP_LOG_PRETTY, default=true"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.CredentialFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolving credential path: %w", err)
		}
		cfg.CredentialFile = filepath.Join(dir, "sweetshop", "token")
	}
	return &cfg, nil
}
