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

package config

import (
	"fmt"
	"log"
	"math/big"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-secretshare/pkg/crypto/rand"
	"github.com/jeremyhahn/go-secretshare/pkg/field"
)

// Config represents the complete secretshare configuration
type Config struct {
	Scheme  SchemeConfig  `yaml:"scheme"`
	Random  RandomConfig  `yaml:"random"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// SchemeConfig holds the default dealing parameters
type SchemeConfig struct {
	// Modulus is a named prime (see field.PrimeNames) or an integer literal
	Modulus   string `yaml:"modulus"`
	Threshold int    `yaml:"threshold"`
	Total     int    `yaml:"total"`
}

// RandomConfig selects the coefficient source
type RandomConfig struct {
	Mode     string        `yaml:"mode"`
	Fallback string        `yaml:"fallback"`
	TPM2     *TPM2Config   `yaml:"tpm2,omitempty"`
	PKCS11   *PKCS11Config `yaml:"pkcs11,omitempty"`
}

// TPM2Config contains TPM 2.0 RNG settings
type TPM2Config struct {
	Device        string `yaml:"device"`
	UseSimulator  bool   `yaml:"use_simulator"`
	SimulatorHost string `yaml:"simulator_host"`
	SimulatorPort int    `yaml:"simulator_port"`
}

// PKCS11Config contains HSM RNG settings
type PKCS11Config struct {
	Module string `yaml:"module"`
	Slot   uint   `yaml:"slot"`
	PIN    string `yaml:"pin"`
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls whether a metrics snapshot is written after each
// command
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Scheme: SchemeConfig{
			Modulus:   field.PrimeMersenne127,
			Threshold: 3,
			Total:     5,
		},
		Random: RandomConfig{
			Mode:     string(rand.ModeAuto),
			Fallback: string(rand.ModeSoftware),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads configuration from a YAML file over the defaults and applies
// environment variable overrides
func Load(path string) (*Config, error) {
	// #nosec G304 - Config file path is provided by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when set, otherwise returns the defaults with
// environment overrides applied
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg := Default()
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies SECRETSHARE_* environment variables
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SECRETSHARE_MODULUS"); v != "" {
		cfg.Scheme.Modulus = v
	}
	envInt("SECRETSHARE_THRESHOLD", &cfg.Scheme.Threshold)
	envInt("SECRETSHARE_TOTAL", &cfg.Scheme.Total)

	if v := os.Getenv("SECRETSHARE_RANDOM_MODE"); v != "" {
		cfg.Random.Mode = v
	}
	if v := os.Getenv("SECRETSHARE_RANDOM_FALLBACK"); v != "" {
		cfg.Random.Fallback = v
	}
	if v := os.Getenv("SECRETSHARE_TPM2_DEVICE"); v != "" {
		if cfg.Random.TPM2 == nil {
			cfg.Random.TPM2 = &TPM2Config{}
		}
		cfg.Random.TPM2.Device = v
	}
	if v := os.Getenv("SECRETSHARE_PKCS11_MODULE"); v != "" {
		if cfg.Random.PKCS11 == nil {
			cfg.Random.PKCS11 = &PKCS11Config{}
		}
		cfg.Random.PKCS11.Module = v
	}
	if v := os.Getenv("SECRETSHARE_PKCS11_PIN"); v != "" && cfg.Random.PKCS11 != nil {
		cfg.Random.PKCS11.PIN = v
	}

	if v := os.Getenv("SECRETSHARE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SECRETSHARE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SECRETSHARE_METRICS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("Warning: invalid SECRETSHARE_METRICS_ENABLED value %q, using %t: %v",
				v, cfg.Metrics.Enabled, err)
		} else {
			cfg.Metrics.Enabled = enabled
		}
	}
}

func envInt(name string, dst *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, using %d: %v", name, v, *dst, err)
		return
	}
	*dst = n
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	q, err := c.Modulus()
	if err != nil {
		return err
	}
	if c.Scheme.Threshold < 1 || c.Scheme.Threshold > c.Scheme.Total {
		return fmt.Errorf("invalid scheme: threshold %d must be between 1 and total %d",
			c.Scheme.Threshold, c.Scheme.Total)
	}
	if big.NewInt(int64(c.Scheme.Total)).Cmp(q) >= 0 {
		return fmt.Errorf("invalid scheme: total %d must be less than the modulus", c.Scheme.Total)
	}

	if _, err := rand.ParseMode(c.Random.Mode); err != nil {
		return fmt.Errorf("invalid random mode: %w", err)
	}
	if c.Random.Fallback != "" {
		if _, err := rand.ParseMode(c.Random.Fallback); err != nil {
			return fmt.Errorf("invalid random fallback: %w", err)
		}
	}
	if c.Random.Mode == string(rand.ModePKCS11) && (c.Random.PKCS11 == nil || c.Random.PKCS11.Module == "") {
		return fmt.Errorf("random.pkcs11.module is required when mode is pkcs11")
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	validFormats := map[string]bool{
		"json": true, "text": true,
	}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Logging.Format)
	}
	return nil
}

// Modulus resolves Scheme.Modulus to a field prime
func (c *Config) Modulus() (*big.Int, error) {
	q, err := field.ParseModulus(c.Scheme.Modulus)
	if err != nil {
		return nil, fmt.Errorf("invalid scheme modulus %q: %w", c.Scheme.Modulus, err)
	}
	return q, nil
}

// RandConfig converts the random section into a resolver config
func (c *Config) RandConfig() (*rand.Config, error) {
	mode, err := rand.ParseMode(c.Random.Mode)
	if err != nil {
		return nil, err
	}
	cfg := &rand.Config{Mode: mode}
	if c.Random.Fallback != "" {
		if cfg.FallbackMode, err = rand.ParseMode(c.Random.Fallback); err != nil {
			return nil, err
		}
	}
	if t := c.Random.TPM2; t != nil {
		cfg.TPM2Config = &rand.TPM2Config{
			Device:        t.Device,
			UseSimulator:  t.UseSimulator,
			SimulatorHost: t.SimulatorHost,
			SimulatorPort: t.SimulatorPort,
		}
	}
	if p := c.Random.PKCS11; p != nil {
		cfg.PKCS11Config = &rand.PKCS11Config{
			Module: p.Module,
			SlotID: p.Slot,
			PIN:    p.PIN,
		}
	}
	return cfg, nil
}
