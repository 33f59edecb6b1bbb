package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/Ed1123/bank-statements/pkg/parser"
)

// Config carries everything the CLI and server need: where output goes,
// how to unlock the PDFs, and the statement grammar literals.
type Config struct {
	OutputPath    string
	Password      string
	HolderMarker  string
	EndMarker     string
	HolderPattern string
}

// Build merges defaults, an optional YAML config file, BANK_STATEMENTS_*
// environment variables (a local .env file is honored), and flag
// overrides, in that order of precedence, lowest first.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	_ = gotenv.Load()

	v := viper.New()
	v.SetDefault("output", "")
	v.SetDefault("password", "")
	v.SetDefault("markers.holder_header", parser.DefaultHolderMarker)
	v.SetDefault("markers.section_end", parser.DefaultEndMarker)
	v.SetDefault("markers.holder_pattern", parser.DefaultHolderPattern)

	v.SetEnvPrefix("BANK_STATEMENTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("bank-statements")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	cfg := &Config{
		OutputPath:    v.GetString("output"),
		Password:      v.GetString("password"),
		HolderMarker:  v.GetString("markers.holder_header"),
		EndMarker:     v.GetString("markers.section_end"),
		HolderPattern: v.GetString("markers.holder_pattern"),
	}
	if _, err := regexp.Compile(cfg.HolderPattern); err != nil {
		return nil, fmt.Errorf("invalid holder pattern: %w", err)
	}
	return cfg, nil
}

// ParserOptions translates the grammar settings into parser options.
func (c *Config) ParserOptions() []parser.Option {
	opts := []parser.Option{parser.WithMarkers(c.HolderMarker, c.EndMarker)}
	if c.HolderPattern != parser.DefaultHolderPattern {
		// Build already validated the pattern.
		opts = append(opts, parser.WithHolderPattern(regexp.MustCompile(c.HolderPattern)))
	}
	return opts
}
