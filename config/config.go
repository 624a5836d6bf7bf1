package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/milk9111/gridedit/geom"
	"gopkg.in/yaml.v3"
)

// EnvConfig names the variable consulted when Load gets no path.
const EnvConfig = "GRIDEDIT_CONFIG"

// Config is the editor configuration. Zero fields fall back to the
// environment and then to built-in defaults through the getters.
type Config struct {
	Editor   EditorConfig   `yaml:"editor"`
	Paths    PathsConfig    `yaml:"paths"`
	Autosave AutosaveConfig `yaml:"autosave"`
}

type EditorConfig struct {
	Zoom         int `yaml:"zoom"`
	WindowWidth  int `yaml:"window_width"`
	WindowHeight int `yaml:"window_height"`
}

type PathsConfig struct {
	Prefabs string `yaml:"prefabs"`
	Maps    string `yaml:"maps"`
}

type AutosaveConfig struct {
	Disabled        bool   `yaml:"disabled"`
	Dir             string `yaml:"dir"`
	IntervalSeconds int    `yaml:"interval_seconds"`
	RetentionHours  int    `yaml:"retention_hours"`
}

// GetZoom returns the starting zoom, clamped to the supported range.
func (e *EditorConfig) GetZoom() int {
	return geom.ClampZoom(getIntWithEnvFallback(e.Zoom, "GRIDEDIT_ZOOM", geom.DefaultZoom))
}

func (e *EditorConfig) GetWindowSize() (int, int) {
	return getIntWithEnvFallback(e.WindowWidth, "GRIDEDIT_WINDOW_WIDTH", 1280),
		getIntWithEnvFallback(e.WindowHeight, "GRIDEDIT_WINDOW_HEIGHT", 800)
}

func (p *PathsConfig) GetPrefabDir() string {
	return getStringWithEnvFallback(p.Prefabs, "GRIDEDIT_PREFABS", "prefabs")
}

func (p *PathsConfig) GetMapsDir() string {
	return getStringWithEnvFallback(p.Maps, "GRIDEDIT_MAPS", "levels")
}

func (a *AutosaveConfig) GetDir() string {
	return getStringWithEnvFallback(a.Dir, "GRIDEDIT_AUTOSAVE_DIR", ".autosave")
}

func (a *AutosaveConfig) GetInterval() time.Duration {
	return time.Duration(getIntWithEnvFallback(a.IntervalSeconds, "GRIDEDIT_AUTOSAVE_INTERVAL", 30)) * time.Second
}

func (a *AutosaveConfig) GetRetention() time.Duration {
	return time.Duration(getIntWithEnvFallback(a.RetentionHours, "GRIDEDIT_AUTOSAVE_RETENTION", 72)) * time.Hour
}

// getIntWithEnvFallback resolves config, then env, then the default.
func getIntWithEnvFallback(configValue int, envVar string, defaultValue int) int {
	if configValue > 0 {
		return configValue
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}
	return defaultValue
}

func getStringWithEnvFallback(configValue, envVar, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return defaultValue
}

// Load reads a YAML config file. With an empty path it tries GRIDEDIT_CONFIG
// and otherwise returns an empty config that resolves to defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
		if path == "" {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return &cfg, nil
}
