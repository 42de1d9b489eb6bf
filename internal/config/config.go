// Package config provides Viper-based configuration loading for the exporter CLI.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override, e.g. EPEXPORT_LOGGING_LEVEL.
const EnvPrefix = "EPEXPORT"

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is a zap sink: "stderr", "stdout", or a file path.
	Output string `mapstructure:"output"`
}

// ExportConfig holds settings of the export actions.
type ExportConfig struct {
	// DownloadFilename is the file name written by the Download action.
	DownloadFilename string `mapstructure:"download_filename"`
	// DownloadDir is the directory the Download action writes to.
	DownloadDir string `mapstructure:"download_dir"`
	// LinkBaseURL is the sim site prefix of sharable links.
	LinkBaseURL string `mapstructure:"link_base_url"`
	// WeightsSuffix follows the spec name in exported weight set labels.
	WeightsSuffix string `mapstructure:"weights_suffix"`
	// CopiedFeedback is how long the copy button reads "Copied".
	CopiedFeedback time.Duration `mapstructure:"copied_feedback"`
}

// ContentConfig locates optional on-disk content.
type ContentConfig struct {
	// SpecDir, when set, is a directory of spec YAML files loaded over the built-in specs.
	SpecDir string `mapstructure:"spec_dir"`
}

// ScriptingConfig holds Lua evaluation limits.
type ScriptingConfig struct {
	// InstructionLimit caps the opcodes of one condition evaluation.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Export    ExportConfig    `mapstructure:"export"`
	Content   ContentConfig   `mapstructure:"content"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateExport(c.Export); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Scripting.InstructionLimit < 1 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 1, got %d", c.Scripting.InstructionLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	if l.Output == "" {
		errs = append(errs, "logging.output must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateExport(e ExportConfig) error {
	var errs []string
	if e.DownloadFilename == "" || strings.ContainsAny(e.DownloadFilename, `/\`) {
		errs = append(errs, fmt.Sprintf("export.download_filename must be a non-empty file name, got %q", e.DownloadFilename))
	}
	if e.DownloadDir == "" {
		errs = append(errs, "export.download_dir must not be empty")
	}
	if u, err := url.Parse(e.LinkBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("export.link_base_url must be an absolute URL, got %q", e.LinkBaseURL))
	}
	if e.CopiedFeedback < 0 {
		errs = append(errs, "export.copied_feedback must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file.
//
// Precondition: path must be empty or name a readable YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// NewViper returns a Viper instance with defaults and environment overrides applied.
//
// Postcondition: Returns a non-nil *viper.Viper; callers may bind flags before LoadFromViper.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("export.download_filename", "wowsims.json")
	v.SetDefault("export.download_dir", ".")
	v.SetDefault("export.link_base_url", "https://wowsims.github.io/cata/")
	v.SetDefault("export.weights_suffix", "WoWSims Weights")
	v.SetDefault("export.copied_feedback", "1.5s")

	v.SetDefault("content.spec_dir", "")

	v.SetDefault("scripting.instruction_limit", 100_000)
}
