// Package yangconfig loads yangctl's on-disk configuration: the log
// level, the module search path, CWD search, free-source, and a map of
// named feature states. yangctl applies the first four; the feature map
// is read into Config.Features but nothing applies it to any module.
package yangconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the yangctl configuration file's top-level shape.
type Config struct {
	LogLevel   string          `yaml:"log_level"`
	SearchPath []string        `yaml:"search_path"`
	SearchCWD  bool            `yaml:"search_cwd"`
	FreeSource bool            `yaml:"free_source"`
	Features   map[string]bool `yaml:"features"`
}

// Default returns a Config with yangctl's built-in defaults: the current
// working directory is searched alongside any configured search paths,
// and a successful compile keeps its parsed tree attached.
func Default() Config {
	return Config{LogLevel: "warn", SearchPath: []string{"."}, SearchCWD: true}
}

// Load reads and parses a YAML configuration file, starting from Default
// so an omitted field keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("yangconfig: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("yangconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}
