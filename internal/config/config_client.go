package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Client defaults.
const (
	DefaultClientBaseURL        = "http://localhost:8080"
	DefaultClientRequestTimeout = 15 * time.Second
	DefaultClientLogLevel       = "warn"
	defaultSessionFileName      = ".notes-session.json"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// BaseURL is the root URL of the notes server.
	BaseURL string `env:"API_URL"`
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientConfig is the configuration of the notes command-line client.
type ClientConfig struct {
	// Adapter contains the server URL and request timeout.
	Adapter ClientAdapter
	// SessionFile stores the token pair between invocations.
	SessionFile string `env:"SESSION_FILE"`
	// LogFile receives the client log. Empty means standard error.
	LogFile string `env:"LOG_FILE"`
	// LogLevel is a zerolog level name.
	LogLevel string `env:"LOG_LEVEL"`
}

// GetClientConfig reads the NOTES_* environment, fills defaults and
// validates the result.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{
		Adapter: ClientAdapter{
			BaseURL:        DefaultClientBaseURL,
			RequestTimeout: DefaultClientRequestTimeout,
		},
		SessionFile: defaultSessionFile(),
		LogLevel:    DefaultClientLogLevel,
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "NOTES_"}); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return cfg, cfg.validate()
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultSessionFileName
	}
	return filepath.Join(home, defaultSessionFileName)
}
