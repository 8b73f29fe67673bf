package config

import (
	"fmt"
	"os"

	"lsmkv/internal/storage/filter"
	"lsmkv/internal/storage/memtable"
	"lsmkv/pkg/errors"

	"gopkg.in/yaml.v3"
)

const (
	DefaultThreshold0   = 1024
	DefaultMaxBin       = 16
	DefaultRunCacheSize = 64
	DefaultServerAddr   = ":8080"
	DefaultLogLevel     = "info"
)

type Config struct {
	Dir string `yaml:"dir"`

	// Tree Config
	Threshold0 int `yaml:"threshold0"` // memtable entries before flush
	MaxBin     int `yaml:"max_bin"`    // runs per level before promotion

	// Run Store Config
	FilterBitsPerKey int `yaml:"filter_bits_per_key"`
	RunCacheSize     int `yaml:"run_cache_size"` // decoded runs kept in memory, 0 disables

	// Process Config
	LogLevel   string `yaml:"log_level"`
	LogFile    string `yaml:"log_file"`
	ServerAddr string `yaml:"server_addr"`

	MemTableConstructor memtable.MemTableConstructor `yaml:"-"`
}

type Option func(*Config)

func WithThreshold0(threshold0 int) Option {
	return func(c *Config) {
		c.Threshold0 = threshold0
	}
}

func WithMaxBin(maxBin int) Option {
	return func(c *Config) {
		c.MaxBin = maxBin
	}
}

func WithFilterBitsPerKey(bits int) Option {
	return func(c *Config) {
		c.FilterBitsPerKey = bits
	}
}

func WithRunCacheSize(size int) Option {
	return func(c *Config) {
		c.RunCacheSize = size
	}
}

func WithMemTableConstructor(ctor memtable.MemTableConstructor) Option {
	return func(c *Config) {
		c.MemTableConstructor = ctor
	}
}

func defaultConfig(dir string) *Config {
	return &Config{
		Dir:                 dir,
		Threshold0:          DefaultThreshold0,
		MaxBin:              DefaultMaxBin,
		FilterBitsPerKey:    filter.DefaultBitsPerKey,
		RunCacheSize:        DefaultRunCacheSize,
		LogLevel:            DefaultLogLevel,
		ServerAddr:          DefaultServerAddr,
		MemTableConstructor: memtable.NewMemTable,
	}
}

// NewConfig builds a config rooted at dir from defaults and options.
func NewConfig(dir string, opts ...Option) (*Config, error) {
	c := defaultConfig(dir)
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// FromFile reads a yaml config; keys missing from the file keep their defaults.
func FromFile(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", file, err)
	}

	c := defaultConfig(".")
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", errors.ErrInvalidConfig, file, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks if configs are valid
func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("%w: dir is empty", errors.ErrInvalidConfig)
	}
	if c.Threshold0 <= 0 {
		return fmt.Errorf("%w: threshold0 must be positive, got %d", errors.ErrInvalidConfig, c.Threshold0)
	}
	// a level holding a single run would be full again right after every
	// promotion, so the cascade needs room for at least two
	if c.MaxBin < 2 {
		return fmt.Errorf("%w: max_bin must be at least 2, got %d", errors.ErrInvalidConfig, c.MaxBin)
	}
	if c.FilterBitsPerKey < 0 {
		return fmt.Errorf("%w: filter_bits_per_key is negative", errors.ErrInvalidConfig)
	}
	if c.RunCacheSize < 0 {
		return fmt.Errorf("%w: run_cache_size is negative", errors.ErrInvalidConfig)
	}
	if c.MemTableConstructor == nil {
		return fmt.Errorf("%w: memtable constructor is nil", errors.ErrInvalidConfig)
	}
	return nil
}
