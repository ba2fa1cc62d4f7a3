package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/apmyp/vmg_converter_go/discover"
	"github.com/apmyp/vmg_converter_go/formatter"
	"github.com/apmyp/vmg_converter_go/output"
)

// DefaultPath is read when no --config flag is given; it may be absent
const DefaultPath = "vmg_converter.json"

type Config struct {
	Format    string `json:"format"`
	Output    string `json:"output"`
	Pattern   string `json:"pattern"`
	Compress  string `json:"compress"`
	Jobs      int    `json:"jobs"`
	Region    string `json:"region"`
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
}

// Default returns the settings used when nothing is configured
func Default() *Config {
	return &Config{
		Pattern:   discover.DefaultPattern,
		Compress:  output.CompressNone,
		Jobs:      1,
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Load reads the JSON file at path over the defaults, then applies VMG_*
// environment variables. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Format, "VMG_FORMAT")
	setString(&c.Output, "VMG_OUTPUT")
	setString(&c.Pattern, "VMG_PATTERN")
	setString(&c.Compress, "VMG_COMPRESS")
	setString(&c.Region, "VMG_REGION")
	setString(&c.LogLevel, "VMG_LOG_LEVEL")
	setString(&c.LogFormat, "VMG_LOG_FORMAT")

	if raw := strings.TrimSpace(os.Getenv("VMG_JOBS")); raw != "" {
		jobs, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid VMG_JOBS value %q: %w", raw, err)
		}
		c.Jobs = jobs
	}
	return nil
}

func setString(dst *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
	}
}

// Validate checks the settings that can be checked without touching files
func (c *Config) Validate() error {
	if c.Format == "" {
		return fmt.Errorf("no output format selected (one of %s)", strings.Join(formatter.Names(), ", "))
	}
	if _, err := formatter.Get(c.Format); err != nil {
		return err
	}
	if !output.ValidCompression(c.Compress) {
		return fmt.Errorf("%w %q (one of %s)", output.ErrUnknownCompression, c.Compress, strings.Join(output.Compressions(), ", "))
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	return nil
}

func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
