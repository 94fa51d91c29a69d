package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the planserver runtime configuration. Values come from an
// optional YAML file, overridden by PLANSERVER_* environment variables.
type Config struct {
	Listen      string `yaml:"listen"`
	UpstreamURL string `yaml:"upstream_url"`
	APIKey      string `yaml:"api_key"`
	Model       string `yaml:"model"`
}

// DefaultConfig returns the configuration used when nothing is provided.
// The API key has no default: the handler refuses to call upstream
// without one.
func DefaultConfig() Config {
	return Config{
		Listen:      ":8787",
		UpstreamURL: "https://api.openai.com",
		Model:       "gpt-4o-mini",
	}
}

// LoadConfig reads the YAML file at path (when path is non-empty and the
// file exists), then applies environment overrides. A missing file is not
// an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// fall through to env
		default:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if v := os.Getenv("PLANSERVER_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("PLANSERVER_UPSTREAM_URL"); v != "" {
		cfg.UpstreamURL = v
	}
	if v := os.Getenv("PLANSERVER_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("PLANSERVER_MODEL"); v != "" {
		cfg.Model = v
	}

	cfg.UpstreamURL = strings.TrimRight(cfg.UpstreamURL, "/")
	return cfg, nil
}
