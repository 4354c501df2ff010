package main

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// CLIConfig holds the settings that only matter to the operator tool.
// Store settings are shared with the server and read from internal.Config.
type CLIConfig struct {
	// SHOUTCTL_COLOURS enables colorized status lines
	Colours    bool          `envconfig:"SHOUTCTL_COLOURS" default:"true"`
	ExportPath string        `envconfig:"SHOUTCTL_EXPORT_PATH" default:"data/shoutbox_export.json"`
	TokenTTL   time.Duration `envconfig:"SHOUTCTL_TOKEN_TTL" default:"1h"`
}

func LoadCLIConfig() (CLIConfig, error) {
	var cfg CLIConfig
	err := envconfig.Process("", &cfg)
	return cfg, err
}
