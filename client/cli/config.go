package cli

import (
	"os"
	"path/filepath"

	"github.com/kjeyarn/lending-gateway/pkg/logger"
)

type Config struct {
	GatewayURL string     `envconfig:"KJEYARN_GATEWAY_URL" default:"http://localhost:8080"`
	StatePath  string     `envconfig:"KJEYARN_STATE"`
	Token      string     `envconfig:"KJEYARN_TOKEN"`
	Timezone   string     `envconfig:"TZ"`
	Log        logger.Log `ignored:"true"`
}

// statePath falls back to <user config dir>/kjeyarn/state.db.
func (c Config) statePath() string {
	if c.StatePath != "" {
		return c.StatePath
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "kjeyarn", "state.db")
}
