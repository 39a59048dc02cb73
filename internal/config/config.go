package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// HistoryConfig represents run history configuration
type HistoryConfig struct {
	// Enabled records every successful run in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database, relative to the home directory
	DBPath string `yaml:"db_path" validate:"required_if=Enabled true"`
}

// Config represents wordexpand configuration options
type Config struct {
	// LogLevel sets the diagnostic verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level" validate:"oneof=trace debug info warn error"`

	// MaxCandidates aborts before enumeration when the estimated number of
	// candidates exceeds it (0 = unlimited)
	MaxCandidates uint64 `yaml:"max_candidates"`

	// Output is the file candidates are written to ("" = stdout)
	Output string `yaml:"output"`

	// History contains run history configuration
	History HistoryConfig `yaml:"history"`
}

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	// Report yaml key names instead of Go field names
	configValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "warn",
		MaxCandidates: 0, // Unlimited
		Output:        "",
		History: HistoryConfig{
			Enabled: false,
			DBPath:  "history.db",
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointer fields distinguish "absent" from an explicit zero value
	type yamlHistory struct {
		Enabled *bool   `yaml:"enabled"`
		DBPath  *string `yaml:"db_path"`
	}
	type yamlConfig struct {
		LogLevel      string       `yaml:"log_level"`
		MaxCandidates *uint64      `yaml:"max_candidates"`
		Output        string       `yaml:"output"`
		History       *yamlHistory `yaml:"history"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(yamlCfg.LogLevel)
	}
	if yamlCfg.MaxCandidates != nil {
		cfg.MaxCandidates = *yamlCfg.MaxCandidates
	}
	if yamlCfg.Output != "" {
		cfg.Output = yamlCfg.Output
	}
	if h := yamlCfg.History; h != nil {
		if h.Enabled != nil {
			cfg.History.Enabled = *h.Enabled
		}
		if h.DBPath != nil {
			cfg.History.DBPath = *h.DBPath
		}
	}

	return cfg, nil
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel *string, maxCandidates *uint64, output *string, history *bool) {
	if logLevel != nil {
		c.LogLevel = strings.ToLower(*logLevel)
	}
	if maxCandidates != nil {
		c.MaxCandidates = *maxCandidates
	}
	if output != nil {
		c.Output = *output
	}
	if history != nil {
		c.History.Enabled = *history
	}
}

// Validate validates the configuration values
// Returns an error describing the first invalid value
func (c *Config) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate config: %w", err)
	}

	fe := verrs[0]
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "oneof":
		return fmt.Errorf("invalid %s %q, must be one of: %s", field, fe.Value(),
			strings.ReplaceAll(fe.Param(), " ", ", "))
	case "required_if":
		return fmt.Errorf("%s cannot be empty when history is enabled", field)
	default:
		return fmt.Errorf("invalid %s: failed %q validation", field, fe.Tag())
	}
}
