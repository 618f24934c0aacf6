package tilekit

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/go-yaml/yaml"
	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config includes settings for loading & viewing assets.
// It's usually read from a small YAML file by the CLI tools, with flags
// layered on top.
type Config struct {
	// where assets live on disk (may start with ~)
	AssetRoot string `yaml:"asset_root"`

	// if set, assets are read from this SQLite pack instead of AssetRoot
	Pack string `yaml:"pack"`

	// one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// console (default) or json
	LogFormat string `yaml:"log_format"`

	// force dev mode (collision overlays) on all entities
	DevMode bool `yaml:"dev_mode"`

	// scale factor applied to rendered output (1 = no scaling)
	Scale float64 `yaml:"scale"`
}

// DefaultConfig returns a config with default settings.
func DefaultConfig() *Config {
	return &Config{
		AssetRoot: ".",
		LogLevel:  "info",
		LogFormat: "console",
		Scale:     1,
	}
}

// LoadConfig reads a YAML config file. Keys not present in the file keep
// their default values. Paths are expanded (~ => home dir).
func LoadConfig(fname string) (*Config, error) {
	fname, err := homedir.Expand(fname)
	if err != nil {
		return nil, err
	}

	data, err := ioutil.ReadFile(fname)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: config %s: %v", ErrDecode, fname, err)
	}

	return cfg, cfg.expand()
}

// expand ~ in any paths we hold
func (c *Config) expand() error {
	var err error
	c.AssetRoot, err = homedir.Expand(c.AssetRoot)
	if err != nil {
		return err
	}
	if c.Pack != "" {
		c.Pack, err = homedir.Expand(c.Pack)
	}
	return err
}

// Level returns the log level named by LogLevel (info if unknown).
func (c *Config) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// Logger builds a logger at the configured level & format.
func (c *Config) Logger() (*zap.Logger, error) {
	var zapCfg zap.Config
	if c.LogFormat == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(c.Level())

	return zapCfg.Build()
}

// Source returns the asset source this config points at; the pack if one
// is configured, otherwise the asset root directory.
// The caller should Close the returned pack (if any) when done loading.
func (c *Config) Source() (Source, func() error, error) {
	if c.Pack != "" {
		p, err := OpenPack(c.Pack)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	}
	src, err := DirSource(c.AssetRoot)
	return src, func() error { return nil }, err
}
