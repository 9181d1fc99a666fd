package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

// Config is the root configuration structure.
type Config struct {
	Curve    CurveConfig            `json:"curve" yaml:"curve"`
	Profiles map[string]CurveConfig `json:"profiles,omitempty" yaml:"profiles,omitempty"`
	Log      LogConfig              `json:"log" yaml:"log"`
}

// LogConfig holds logging configuration for the CLI.
type LogConfig struct {
	Level string `json:"level" yaml:"level"` // Default: "info"
}

// defaultFileNames are probed, in order, when no config path is given.
var defaultFileNames = []string{".rankcurve.json", ".rankcurve.yaml", ".rankcurve.yml"}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Curve:    DefaultCurveConfig(),
		Profiles: map[string]CurveConfig{},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Resolve returns the curve configuration for the named profile.
// An empty name selects the top-level curve.
func (c *Config) Resolve(profile string) (CurveConfig, error) {
	if profile == "" {
		return c.Curve, nil
	}
	if cc, ok := c.Profiles[profile]; ok {
		return cc, nil
	}
	if cc, ok := Presets()[profile]; ok {
		return cc, nil
	}
	return CurveConfig{}, fmt.Errorf("unknown profile %q (available: %s)", profile, strings.Join(c.ProfileNames(), ", "))
}

// ProfileNames returns configured profile names followed by preset names, sorted within each group.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	presets := make([]string, 0)
	for name := range Presets() {
		if _, shadowed := c.Profiles[name]; !shadowed {
			presets = append(presets, name)
		}
	}
	sort.Strings(presets)
	return append(names, presets...)
}

// Validate validates the top-level curve and every profile.
func (c *Config) Validate() error {
	if err := c.Curve.Validate(); err != nil {
		return fmt.Errorf("curve: %w", err)
	}
	for _, name := range sortedKeys(c.Profiles) {
		cc := c.Profiles[name]
		if err := cc.Validate(); err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
	}
	return nil
}

// FindConfigFile returns the first default config file that exists, or "".
func FindConfigFile() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	} else if envHome := os.Getenv("HOME"); envHome != "" {
		dirs = append(dirs, envHome)
	}
	for _, dir := range dirs {
		for _, name := range defaultFileNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

// LoadConfig loads configuration from a file, merging with defaults.
// An empty path probes the default file names and falls back to defaults when none exists.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	probed := path == ""
	if probed {
		path = FindConfigFile()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// A probed file may vanish between the stat and the read; an explicit path must exist.
		if probed && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	// A curve in the file replaces the default curve; it is not merged field by field.
	file := fileConfig{Log: cfg.Log}
	if isYAML(path) {
		err = yaml.Unmarshal(data, &file)
	} else {
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if file.Curve != nil {
		cfg.Curve = *file.Curve
	}
	for name, cc := range file.Profiles {
		cfg.Profiles[name] = cc
	}
	cfg.Log = file.Log

	return cfg, nil
}

// fileConfig mirrors Config for decoding.
type fileConfig struct {
	Curve    *CurveConfig           `json:"curve" yaml:"curve"`
	Profiles map[string]CurveConfig `json:"profiles" yaml:"profiles"`
	Log      LogConfig              `json:"log" yaml:"log"`
}

// SaveConfig saves configuration to a file. YAML is used for .yaml/.yml paths, JSON otherwise.
func SaveConfig(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func sortedKeys(m map[string]CurveConfig) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
