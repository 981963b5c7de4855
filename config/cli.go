package config

import (
	"os"
	"path/filepath"
	"time"
)

// CLI is the client configuration read from the environment.
type CLI struct {
	APIURL string
	Token  string
	// TokenFile keeps the token saved by "showcase login".
	TokenFile string
	// HTTPTimeout of zero leaves requests bounded only by their context.
	HTTPTimeout  time.Duration
	PollInterval time.Duration
}

func LoadCLI() CLI {
	c := CLI{
		APIURL:       env("SHOWCASE_API_URL", "http://localhost:8080"),
		Token:        os.Getenv("SHOWCASE_TOKEN"),
		TokenFile:    os.Getenv("SHOWCASE_TOKEN_FILE"),
		HTTPTimeout:  envDuration("SHOWCASE_HTTP_TIMEOUT", 0),
		PollInterval: envDuration("SHOWCASE_POLL_INTERVAL", 30*time.Second),
	}
	if c.TokenFile == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			c.TokenFile = filepath.Join(dir, "showcase", "token")
		}
	}
	return c
}
