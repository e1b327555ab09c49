package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings of the unchess command line front end.
type Config struct {
	StrictAnnotations bool   `mapstructure:"STRICT_ANNOTATIONS"`
	StartFEN          string `mapstructure:"START_FEN"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	Prompt            string `mapstructure:"PROMPT"`
	SVGSize           int    `mapstructure:"SVG_SIZE"`
	SVGLight          string `mapstructure:"SVG_LIGHT"`
	SVGDark           string `mapstructure:"SVG_DARK"`
}

const envPrefix = "UNCHESS"

func defaults(v *viper.Viper) {
	v.SetDefault("STRICT_ANNOTATIONS", false)
	v.SetDefault("START_FEN", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PROMPT", "> ")
	v.SetDefault("SVG_SIZE", 45)
	v.SetDefault("SVG_LIGHT", "#f0d9b5")
	v.SetDefault("SVG_DARK", "#b58863")
}

// Setup reads the configuration file at cfgPath, if any, and overlays
// UNCHESS_* environment variables. An empty path uses defaults and the
// environment only.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.SVGSize <= 0 {
		return nil, errors.New("config: SVG_SIZE must be positive")
	}
	return &cfg, nil
}
