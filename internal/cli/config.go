// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-secretshare.
//
// go-secretshare is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-secretshare/internal/config"
	"github.com/jeremyhahn/go-secretshare/pkg/adapters/logger"
	"github.com/jeremyhahn/go-secretshare/pkg/metrics"
)

// Viper keys shared by the config file, flags, and environment
const (
	keyModulus       = "scheme.modulus"
	keyThreshold     = "scheme.threshold"
	keyTotal         = "scheme.total"
	keyLogLevel      = "logging.level"
	keyLogFormat     = "logging.format"
	keyMetrics       = "metrics.enabled"
	keyOutputFormat  = "output"
	keyVerbose       = "verbose"
	keyConfigFile    = "config"
	defaultOutFormat = "text"
)

// Config holds global CLI configuration
type Config struct {
	// ConfigFile is the path to the YAML configuration file
	ConfigFile string

	// OutputFormat controls output formatting (text, json)
	OutputFormat string

	// Verbose lowers the log level to debug
	Verbose bool

	// Settings is the loaded file configuration with environment overrides
	Settings *config.Config

	// Logger is built from the logging section once settings are loaded
	Logger logger.Logger

	v *viper.Viper
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		OutputFormat: defaultOutFormat,
		Settings:     config.Default(),
		Logger:       logger.NewNoOpLogger(),
		v:            viper.New(),
	}
}

// load reads the config file and layers it under any changed flags.
func (c *Config) load(stderr io.Writer) error {
	settings, err := config.LoadOrDefault(c.v.GetString(keyConfigFile))
	if err != nil {
		return err
	}
	c.Settings = settings

	c.v.SetDefault(keyModulus, settings.Scheme.Modulus)
	c.v.SetDefault(keyThreshold, settings.Scheme.Threshold)
	c.v.SetDefault(keyTotal, settings.Scheme.Total)
	c.v.SetDefault(keyLogLevel, settings.Logging.Level)
	c.v.SetDefault(keyLogFormat, settings.Logging.Format)
	c.v.SetDefault(keyMetrics, settings.Metrics.Enabled)

	c.ConfigFile = c.v.GetString(keyConfigFile)
	c.OutputFormat = strings.ToLower(c.v.GetString(keyOutputFormat))
	c.Verbose = c.v.GetBool(keyVerbose)
	if c.OutputFormat != string(OutputFormatText) && c.OutputFormat != string(OutputFormatJSON) {
		return fmt.Errorf("unknown output format: %s", c.OutputFormat)
	}

	settings.Scheme.Modulus = c.v.GetString(keyModulus)
	settings.Scheme.Threshold = c.v.GetInt(keyThreshold)
	settings.Scheme.Total = c.v.GetInt(keyTotal)
	settings.Logging.Level = c.v.GetString(keyLogLevel)
	settings.Logging.Format = c.v.GetString(keyLogFormat)
	settings.Metrics.Enabled = c.v.GetBool(keyMetrics)
	if c.Verbose {
		settings.Logging.Level = logger.LevelDebug.String()
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	level, err := logger.ParseLevel(settings.Logging.Level)
	if err != nil {
		return err
	}
	c.Logger = logger.NewSlogAdapter(&logger.SlogConfig{
		Level:  level,
		Format: settings.Logging.Format,
		Output: stderr,
	})

	if settings.Metrics.Enabled {
		metrics.Enable()
	} else {
		metrics.Disable()
	}
	return nil
}
