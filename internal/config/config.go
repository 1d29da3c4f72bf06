// Package config loads and validates the server's YAML configuration file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the recognized top-level schema. Unknown keys are rejected at
// load time.
type Config struct {
	GRPCListenAddr string         `yaml:"grpc_listen_addr"`
	Binance        ExchangeConfig `yaml:"binance"`
	Bitstamp       ExchangeConfig `yaml:"bitstamp"`
}

// ExchangeConfig holds the per-exchange symbol to track.
type ExchangeConfig struct {
	Symbol string `yaml:"symbol"`
}

// Load reads, strictly decodes, validates and case-normalizes the config at
// path. Missing file or malformed/unknown-key YAML are both reported as
// errors; callers are expected to treat them as fatal.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.normalize()
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.GRPCListenAddr) == "" {
		return fmt.Errorf("config: grpc_listen_addr is required")
	}
	if strings.TrimSpace(c.Binance.Symbol) == "" {
		return fmt.Errorf("config: binance.symbol is required")
	}
	if strings.TrimSpace(c.Bitstamp.Symbol) == "" {
		return fmt.Errorf("config: bitstamp.symbol is required")
	}
	return nil
}

// normalize uppercases the configured symbols; each connector further
// lowercases its own symbol where the exchange's wire protocol requires it
// (stream paths and channel names), per the exchange's own convention.
func (c *Config) normalize() {
	c.Binance.Symbol = strings.ToUpper(strings.TrimSpace(c.Binance.Symbol))
	c.Bitstamp.Symbol = strings.ToUpper(strings.TrimSpace(c.Bitstamp.Symbol))
}
