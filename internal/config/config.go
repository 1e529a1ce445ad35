package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort           = "5000"
	DefaultScanFile       = "scan.xml"
	DefaultMaxUploadBytes = 32 << 20
)

type Config struct {
	Port           string
	ScanFile       string
	Debug          bool
	MetricsEnabled bool
	MaxUploadBytes int64
	SQLitePath     string
}

// fileConfig is the optional YAML base layer pointed to by CONFIG_FILE.
type fileConfig struct {
	Port           string `yaml:"port"`
	ScanFile       string `yaml:"scan_file"`
	Debug          *bool  `yaml:"debug"`
	MetricsEnabled *bool  `yaml:"metrics_enabled"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	SQLitePath     string `yaml:"sqlite_path"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:           DefaultPort,
		ScanFile:       DefaultScanFile,
		MetricsEnabled: true,
		MaxUploadBytes: DefaultMaxUploadBytes,
		SQLitePath:     filepath.Join("data", "nmapview.db"),
	}
}

// LoadConfig reads .env (if present), then the optional CONFIG_FILE, then
// the environment. Environment variables win.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	if config.ScanFile == "" {
		return nil, fmt.Errorf("SCAN_FILE must not be empty")
	}
	if config.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", config.MaxUploadBytes)
	}
	if _, err := strconv.Atoi(config.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric: %w", err)
	}

	return config, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.Port != "" {
		c.Port = fc.Port
	}
	if fc.ScanFile != "" {
		c.ScanFile = fc.ScanFile
	}
	if fc.Debug != nil {
		c.Debug = *fc.Debug
	}
	if fc.MetricsEnabled != nil {
		c.MetricsEnabled = *fc.MetricsEnabled
	}
	if fc.MaxUploadBytes != 0 {
		c.MaxUploadBytes = fc.MaxUploadBytes
	}
	if fc.SQLitePath != "" {
		c.SQLitePath = fc.SQLitePath
	}
	return nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		c.Port = port
	}
	if scanFile := os.Getenv("SCAN_FILE"); scanFile != "" {
		c.ScanFile = scanFile
	}
	if sqlitePath := os.Getenv("SQLITE_PATH"); sqlitePath != "" {
		c.SQLitePath = sqlitePath
	}

	if v := os.Getenv("DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DEBUG must be a boolean: %w", err)
		}
		c.Debug = debug
	}

	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("METRICS_ENABLED must be a boolean: %w", err)
		}
		c.MetricsEnabled = enabled
	}

	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_BYTES must be an integer: %w", err)
		}
		c.MaxUploadBytes = n
	}

	return nil
}
