package e2e

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	LocalUserID int `envconfig:"E2E_LOCAL_USER_ID" default:"1"`
	// E2E_COLOURS enables colorized step headers for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
	// E2E_EVENT_TIMEOUT bounds how long a step waits for the session to apply its events
	EventTimeout time.Duration `envconfig:"E2E_EVENT_TIMEOUT" default:"2s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
