package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultAutoFlushThreshold is the buffered-event count that triggers an
// automatic flush of the atomic event buffer.
const DefaultAutoFlushThreshold = 50

// DurationDefaults are the built-in planned durations, in minutes.
type DurationDefaults struct {
	Focus      int `yaml:"focus"`
	ShortBreak int `yaml:"short_break"`
	LongBreak  int `yaml:"long_break"`
}

type Config struct {
	DataPath           string
	DBPath             string
	MonitorsPath       string
	Durations          DurationDefaults
	AutoFlushThreshold int
}

type fileOverrides struct {
	Durations          DurationDefaults `yaml:"durations"`
	AutoFlushThreshold int              `yaml:"auto_flush_threshold"`
}

// New resolves paths under the data directory and applies optional overrides
// from <data>/tempo.yaml. A missing override file is not an error.
func New(dataPath string) (Config, error) {
	if dataPath == "" {
		return Config{}, fmt.Errorf("data path is required")
	}
	cfg := Config{
		DataPath:           dataPath,
		DBPath:             filepath.Join(dataPath, "tempo.db"),
		MonitorsPath:       filepath.Join(dataPath, "monitors", "monitors.json"),
		Durations:          DurationDefaults{Focus: 25, ShortBreak: 5, LongBreak: 15},
		AutoFlushThreshold: DefaultAutoFlushThreshold,
	}

	b, err := os.ReadFile(filepath.Join(dataPath, "tempo.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config overrides: %w", err)
	}
	var overrides fileOverrides
	if err := yaml.Unmarshal(b, &overrides); err != nil {
		return Config{}, fmt.Errorf("decode config overrides: %w", err)
	}
	if overrides.Durations.Focus > 0 {
		cfg.Durations.Focus = overrides.Durations.Focus
	}
	if overrides.Durations.ShortBreak > 0 {
		cfg.Durations.ShortBreak = overrides.Durations.ShortBreak
	}
	if overrides.Durations.LongBreak > 0 {
		cfg.Durations.LongBreak = overrides.Durations.LongBreak
	}
	if overrides.AutoFlushThreshold > 0 {
		cfg.AutoFlushThreshold = overrides.AutoFlushThreshold
	}
	return cfg, nil
}

// DefaultDataPath places the database under the user's home directory.
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tempo"
	}
	return filepath.Join(home, ".tempo")
}
