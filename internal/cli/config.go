package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds the CLI settings read from .schedctl.yaml and SCHEDCTL_*
// environment variables.
type Config struct {
	Server   string
	Location *time.Location
}

// LoadConfig reads the config file from SCHEDCTL_CONFIG_PATH, the working
// directory or the home directory. A missing file is not an error.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("server", "http://localhost:8000")
	v.SetDefault("timezone", "Local")
	v.SetConfigName(".schedctl") // .yaml is implicit
	v.SetEnvPrefix("SCHEDCTL")
	v.AutomaticEnv()

	if override := os.Getenv("SCHEDCTL_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", v.GetString("timezone"), err)
	}
	return &Config{Server: v.GetString("server"), Location: loc}, nil
}
