package console

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config controls the interactive console. Values come from an optional YAML
// file overlaid by environment variables; the environment wins.
type Config struct {
	Prompt      string `env:"DISPATCH_PROMPT" yaml:"prompt"`
	HistoryFile string `env:"DISPATCH_HISTORY_FILE" yaml:"history_file"`
	Database    string `env:"DISPATCH_DB" yaml:"database"`
}

func DefaultConfig() Config {
	return Config{Prompt: "> "}
}

// LoadConfig reads path (if it exists) and then the environment. An empty
// path skips the file step.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config file %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file %q: %w", path, err)
			}
		}
	}

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.Prompt == "" {
		return fmt.Errorf("prompt must not be empty")
	}

	return nil
}
