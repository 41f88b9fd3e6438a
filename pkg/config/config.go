package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all askbench server configuration.
type Config struct {
	Listen   string         `yaml:"listen"`
	RedisURL string         `yaml:"redis_url"`
	QAPath   string         `yaml:"qa_path"`
	Cache    CacheConfig    `yaml:"cache"`
	Simulate SimulateConfig `yaml:"simulate"`
}

// CacheConfig controls the answer cache. Disabling it turns every request
// into a full recomputation, for control runs.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	TTLSeconds int  `yaml:"ttl_seconds"`
}

// SimulateConfig bounds the simulated retrieval latency on cache misses.
type SimulateConfig struct {
	LatencyMS int `yaml:"latency_ms"`
	JitterMS  int `yaml:"jitter_ms"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Listen:   ":8088",
		RedisURL: "redis://localhost:6379/0",
		QAPath:   "data/qa.jsonl",
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 3600,
		},
		Simulate: SimulateConfig{
			LatencyMS: 600,
			JitterMS:  200,
		},
	}
}

// Load reads a YAML config file and expands environment variables in it.
// A missing file is not an error: defaults apply. Environment variable
// overrides (see ApplyEnv) are applied last either way.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides config values from the environment variables the
// original stand recognizes: REDIS_URL, CACHE_TTL_SECONDS, SIM_LATENCY_MS,
// SIM_JITTER_MS, EXACT_CACHE and QA_PATH.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("QA_PATH"); v != "" {
		c.QAPath = v
	}
	if v := os.Getenv("EXACT_CACHE"); v != "" {
		c.Cache.Enabled = v == "1"
	}
	for _, ev := range []struct {
		name string
		dst  *int
	}{
		{"CACHE_TTL_SECONDS", &c.Cache.TTLSeconds},
		{"SIM_LATENCY_MS", &c.Simulate.LatencyMS},
		{"SIM_JITTER_MS", &c.Simulate.JitterMS},
	} {
		v := os.Getenv(ev.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid %s: %q", ev.name, v)
		}
		*ev.dst = n
	}
	return nil
}
