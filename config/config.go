// Package config loads wordweb settings.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/wordweb/config.yaml (or config.toml)
//   - Data:    ~/.local/share/wordweb/ (snapshot log)
//   - State:   ~/.local/state/wordweb/ (editor log file)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const appName = "wordweb"

// Oracle modes.
const (
	OracleStatic = "static"
	OracleHTTP   = "http"
)

// Duration is a time.Duration written as a string such as "30s" in both YAML and TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText writes the duration in Go syntax.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// BreakerConfig tunes the oracle client's circuit breaker.
type BreakerConfig struct {
	MaxRequests  uint32   `yaml:"max_requests" toml:"max_requests" validate:"gte=1"`
	Interval     Duration `yaml:"interval" toml:"interval"`
	Timeout      Duration `yaml:"timeout" toml:"timeout"`
	FailureRatio float64  `yaml:"failure_ratio" toml:"failure_ratio" validate:"gt=0,lte=1"`
	MinRequests  uint32   `yaml:"min_requests" toml:"min_requests" validate:"gte=1"`
}

// OracleConfig selects and tunes the word service.
type OracleConfig struct {
	Mode      string        `yaml:"mode" toml:"mode" validate:"oneof=static http"`
	URL       string        `yaml:"url,omitempty" toml:"url" validate:"omitempty,url"`
	Timeout   Duration      `yaml:"timeout" toml:"timeout"`
	WordsFile string        `yaml:"words_file,omitempty" toml:"words_file"`
	Breaker   BreakerConfig `yaml:"breaker" toml:"breaker"`
}

// LayoutConfig holds the placement constants.
type LayoutConfig struct {
	MinDistance float64 `yaml:"min_distance" toml:"min_distance" validate:"gt=0"`
	MaxAttempts int     `yaml:"max_attempts" toml:"max_attempts" validate:"gt=0"`
	BaseRadius  float64 `yaml:"base_radius" toml:"base_radius" validate:"gt=0"`
	LevelStep   float64 `yaml:"level_step" toml:"level_step" validate:"gte=0"`
	ClusterRing float64 `yaml:"cluster_ring" toml:"cluster_ring" validate:"gt=0"`
	MemberRing  float64 `yaml:"member_ring" toml:"member_ring" validate:"gt=0"`
	OrphanGap   float64 `yaml:"orphan_gap" toml:"orphan_gap" validate:"gt=0"`
}

// CanvasConfig holds the zoom limits.
type CanvasConfig struct {
	ZoomSpeed float64 `yaml:"zoom_speed" toml:"zoom_speed" validate:"gt=0"`
	MinScale  float64 `yaml:"min_scale" toml:"min_scale" validate:"gt=0"`
	MaxScale  float64 `yaml:"max_scale" toml:"max_scale" validate:"gtfield=MinScale"`
}

// ExpandConfig holds expansion settings.
type ExpandConfig struct {
	Count int `yaml:"count" toml:"count" validate:"gte=1,lte=20"`
}

// HistoryConfig bounds the undo history.
type HistoryConfig struct {
	Max int `yaml:"max" toml:"max" validate:"gte=1"`
}

// StoreConfig locates the snapshot log.
type StoreConfig struct {
	Path string `yaml:"path" toml:"path" validate:"required"`
}

// LogConfig controls logging. An empty file means stderr, except in the editor which
// always logs to a file in the state directory.
type LogConfig struct {
	Level string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file,omitempty" toml:"file"`
}

// MetricsConfig exposes Prometheus metrics when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr,omitempty" toml:"addr" validate:"omitempty,hostname_port"`
}

// Config is the top-level configuration.
type Config struct {
	Oracle  OracleConfig  `yaml:"oracle" toml:"oracle"`
	Layout  LayoutConfig  `yaml:"layout" toml:"layout"`
	Canvas  CanvasConfig  `yaml:"canvas" toml:"canvas"`
	Expand  ExpandConfig  `yaml:"expand" toml:"expand"`
	History HistoryConfig `yaml:"history" toml:"history"`
	Store   StoreConfig   `yaml:"store" toml:"store"`
	Log     LogConfig     `yaml:"log" toml:"log"`
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`
}

// Default returns a Config with the built-in settings.
func Default() Config {
	return Config{
		Oracle: OracleConfig{
			Mode:    OracleStatic,
			Timeout: Duration{30 * time.Second},
			Breaker: BreakerConfig{
				MaxRequests:  1,
				Interval:     Duration{time.Minute},
				Timeout:      Duration{30 * time.Second},
				FailureRatio: 0.6,
				MinRequests:  5,
			},
		},
		Layout: LayoutConfig{
			MinDistance: 190,
			MaxAttempts: 30,
			BaseRadius:  220,
			LevelStep:   60,
			ClusterRing: 400,
			MemberRing:  150,
			OrphanGap:   300,
		},
		Canvas: CanvasConfig{
			ZoomSpeed: 0.001,
			MinScale:  0.2,
			MaxScale:  3.0,
		},
		Expand:  ExpandConfig{Count: 5},
		History: HistoryConfig{Max: 200},
		Store:   StoreConfig{Path: filepath.Join(DataDir(), "snapshots.db")},
		Log:     LogConfig{Level: "info"},
	}
}

// Dir returns the XDG config directory for wordweb.
func Dir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns the XDG data directory for wordweb.
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// StateDir returns the XDG state directory for wordweb.
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return appName
	}
	return filepath.Join(home, fallback, appName)
}

// DefaultPath returns the config file used when none is given: config.toml when it
// exists, otherwise config.yaml.
func DefaultPath() string {
	toml := filepath.Join(Dir(), "config.toml")
	if _, err := os.Stat(toml); err == nil {
		return toml
	}
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the config at path over the defaults. An empty path means DefaultPath.
// A missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if isTOML(path) {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path in the format given by its extension.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	if isTOML(path) {
		err = toml.NewEncoder(f).Encode(cfg)
	} else {
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		err = enc.Encode(cfg)
	}
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate checks every field constraint.
func (c Config) Validate() error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Oracle.Mode == OracleHTTP && c.Oracle.URL == "" {
		return errors.New("oracle.url is required when oracle.mode is http")
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
