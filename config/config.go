// Package config loads sectored.yaml, the per-project settings file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bloodmagesoftware/sectored/collision"
	"github.com/bloodmagesoftware/sectored/editor"
)

const FileName = "sectored.yaml"

// Config represents the project configuration from sectored.yaml.
type Config struct {
	Name     string `yaml:"name"`
	LogLevel string `yaml:"log_level"`
	// LevelsDir is where level fixtures live, relative to the project root.
	LevelsDir string           `yaml:"levels_dir"`
	Collision collision.Params `yaml:"collision"`
	Editor    editor.Options   `yaml:"editor"`
}

func Default() Config {
	return Config{
		LogLevel:  "info",
		LevelsDir: "levels",
		Collision: collision.DefaultParams(),
		Editor:    editor.DefaultOptions(),
	}
}

// FindProjectRoot walks up from the current working directory looking for sectored.yaml.
// Returns the directory containing sectored.yaml, or an error if not found.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return FindProjectRootFrom(cwd)
}

// FindProjectRootFrom is FindProjectRoot starting at dir.
func FindProjectRootFrom(start string) (string, error) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found in any parent directory of %s", FileName, start)
		}
		dir = parent
	}
}

// Load reads a config file over the defaults. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	errs := []error{c.Collision.Validate()}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	e := c.Editor
	if e.CloseThreshold <= 0 || e.VertexPickRadius <= 0 || e.WallPickTolerance <= 0 || e.SpritePickTolerance <= 0 {
		errs = append(errs, errors.New("editor pick distances must be positive"))
	}
	if e.GridCellSize < 0 {
		errs = append(errs, fmt.Errorf("editor grid_cell_size must not be negative, got %v", e.GridCellSize))
	}
	return errors.Join(errs...)
}

// ParseLogLevel maps a config level name to a slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// LevelsPath resolves the levels directory against the project root.
func (c Config) LevelsPath(root string) string {
	if filepath.IsAbs(c.LevelsDir) {
		return c.LevelsDir
	}
	return filepath.Join(root, c.LevelsDir)
}
