package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds tool settings read from .schemadrift.yml in the working
// directory. Every setting has a flag equivalent; flags win when set.
type Config struct {
	FailOnWarning bool
	Format        string
	Aliases       map[string]string
}

// LoadConfig reads .schemadrift.yml if present. A missing file is not
// an error; the zero config applies.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".schemadrift")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable overrides
	v.AutomaticEnv()
	v.SetEnvPrefix("SCHEMADRIFT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading .schemadrift.yml: %w", err)
	}

	cfg := &Config{
		FailOnWarning: v.GetBool("check.fail_on_warning"),
		Format:        v.GetString("check.format"),
		Aliases:       v.GetStringMapString("check.aliases"),
	}

	if cfg.Format != "" && cfg.Format != "text" && cfg.Format != "yaml" {
		return nil, fmt.Errorf("invalid check.format %q in .schemadrift.yml (valid: text, yaml)", cfg.Format)
	}

	return cfg, nil
}
