package driver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file LoadConfig looks for when no path is given.
const ConfigFileName = "ferrumrt.yml"

// DefaultBaseDirEnv names the environment variable holding the base directory.
const DefaultBaseDirEnv = "ferrumDir"

// Config models the ferrumrt.yml contents.
type Config struct {
	Path         string
	SafetyChecks bool
	TraceIO      bool
	LogLevel     string
	BaseDirEnv   string
	Root         string
	Diagnostics  bool
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		SafetyChecks: true,
		LogLevel:     "info",
		BaseDirEnv:   DefaultBaseDirEnv,
	}
}

// LoadConfig parses a config file from disk. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigFileName
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		cfg.Path = abs
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw configDisk
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}

	cfg := raw.toConfig()
	cfg.Path = abs
	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", abs, err)
	}
	return cfg, nil
}

// Marshal renders c in the ferrumrt.yml layout.
func (c *Config) Marshal() ([]byte, error) {
	if err := c.normalize(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(c.toDisk())
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return data, nil
}

// WriteConfig stores cfg at path in fsys, defaulting to ConfigFileName. An
// existing file is only replaced when overwrite is set.
func WriteConfig(fsys billy.Basic, path string, cfg *Config, overwrite bool) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if path == "" {
		path = ConfigFileName
	}
	if !overwrite {
		if _, err := fsys.Stat(path); err == nil {
			return fmt.Errorf("config: %s already exists", path)
		}
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := util.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	cfg.Path = path
	return nil
}

// Level maps LogLevel onto a slog level.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) normalize() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	c.BaseDirEnv = strings.TrimSpace(c.BaseDirEnv)
	if c.BaseDirEnv == "" {
		c.BaseDirEnv = DefaultBaseDirEnv
	}
	c.Root = strings.TrimSpace(c.Root)
	return nil
}

type configDisk struct {
	SafetyChecks *bool  `yaml:"safety_checks,omitempty"`
	TraceIO      bool   `yaml:"trace_io,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
	BaseDirEnv   string `yaml:"base_dir_env,omitempty"`
	Root         string `yaml:"root,omitempty"`
	Diagnostics  bool   `yaml:"diagnostics,omitempty"`
}

func (d configDisk) toConfig() *Config {
	cfg := DefaultConfig()
	if d.SafetyChecks != nil {
		cfg.SafetyChecks = *d.SafetyChecks
	}
	cfg.TraceIO = d.TraceIO
	cfg.LogLevel = d.LogLevel
	cfg.BaseDirEnv = d.BaseDirEnv
	cfg.Root = d.Root
	cfg.Diagnostics = d.Diagnostics
	return cfg
}

func (c *Config) toDisk() configDisk {
	safety := c.SafetyChecks
	return configDisk{
		SafetyChecks: &safety,
		TraceIO:      c.TraceIO,
		LogLevel:     c.LogLevel,
		BaseDirEnv:   c.BaseDirEnv,
		Root:         c.Root,
		Diagnostics:  c.Diagnostics,
	}
}
