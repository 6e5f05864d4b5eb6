// Package config loads the optional markov.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. A missing default file
// is not an error.
const DefaultPath = "markov.yaml"

// Sink types.
const (
	SinkStdout = "stdout"
	SinkRedis  = "redis"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the full application configuration.
type Config struct {
	LogLevel string      `mapstructure:"log_level" yaml:"log_level"`
	Color    string      `mapstructure:"color" yaml:"color"`
	Sink     SinkConfig  `mapstructure:"sink" yaml:"sink"`
	Tweets   WalkConfig  `mapstructure:"tweets" yaml:"tweets"`
	Snakes   WalkConfig  `mapstructure:"snakes" yaml:"snakes"`
	Serve    ServeConfig `mapstructure:"serve" yaml:"serve"`
}

// SinkConfig selects where walks are written.
type SinkConfig struct {
	Type  string      `mapstructure:"type" yaml:"type"`
	Redis RedisConfig `mapstructure:"redis" yaml:"redis"`
}

// RedisConfig configures the Redis walk sink.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Key      string        `mapstructure:"key" yaml:"key"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
	MaxLen   int64         `mapstructure:"max_len" yaml:"max_len"`
}

// WalkConfig bounds the walks of one client.
type WalkConfig struct {
	MaxLength int `mapstructure:"max_length" yaml:"max_length"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Port string `mapstructure:"port" yaml:"port"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Color:    ColorAuto,
		Sink: SinkConfig{
			Type: SinkStdout,
			Redis: RedisConfig{
				Addr: "localhost:6379",
				Key:  "markov:walks",
			},
		},
		Tweets: WalkConfig{MaxLength: 20},
		Snakes: WalkConfig{MaxLength: 60},
		Serve:  ServeConfig{Port: "8080"},
	}
}

// Load reads path over the defaults. An empty path tries DefaultPath and
// ignores it when absent.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := Decode(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Decode merges YAML data into cfg. Values are weakly typed, so "20" and 20
// both decode into an int field, and durations accept "30s".
func Decode(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if raw == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// Validate checks enumerations and bounds.
func (c Config) Validate() error {
	switch c.Sink.Type {
	case SinkStdout, SinkRedis:
	default:
		return fmt.Errorf("unknown sink type %q", c.Sink.Type)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unknown color mode %q", c.Color)
	}
	if c.Tweets.MaxLength <= 0 || c.Snakes.MaxLength <= 0 {
		return errors.New("max_length must be positive")
	}
	return nil
}
