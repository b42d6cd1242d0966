// Package config loads dxtutor settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvDB               = "DXTUTOR_DB"
	EnvData             = "DXTUTOR_DATA"
	EnvTopK             = "DXTUTOR_TOP_K"
	EnvMinJustification = "DXTUTOR_MIN_JUSTIFICATION"
	EnvLogLevel         = "DXTUTOR_LOG_LEVEL"
	EnvLogFormat        = "DXTUTOR_LOG_FORMAT"
)

// Config holds all dxtutor configuration.
type Config struct {
	// DBPath is the attempt-log database. Empty means the XDG default.
	DBPath string
	// DataPath is an optional JSON data file replacing the built-in dataset.
	DataPath string

	TopK             int
	MinJustification int

	LogLevel  string
	LogFormat string // "text" or "json"
}

// Load reads configuration from environment variables with defaults.
// Values that fail to parse or fall out of range are reported together.
func Load() (*Config, error) {
	var errs []error
	cfg := &Config{
		DBPath:           os.Getenv(EnvDB),
		DataPath:         os.Getenv(EnvData),
		TopK:             getEnvInt(EnvTopK, 3, &errs),
		MinJustification: getEnvInt(EnvMinJustification, 20, &errs),
		LogLevel:         getEnv(EnvLogLevel, "info"),
		LogFormat:        strings.ToLower(getEnv(EnvLogFormat, "text")),
	}
	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	return cfg, errors.Join(errs...)
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding ones already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.TopK < 1 || c.TopK > 50 {
		errs = append(errs, fmt.Errorf("%s must be 1-50, got %d", EnvTopK, c.TopK))
	}
	if c.MinJustification < 0 || c.MinJustification > 1000 {
		errs = append(errs, fmt.Errorf("%s must be 0-1000, got %d", EnvMinJustification, c.MinJustification))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%s must be text or json, got %q", EnvLogFormat, c.LogFormat))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int, errs *[]error) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", key, v))
		return defaultVal
	}
	return i
}
