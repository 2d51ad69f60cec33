package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Common contains catalog parameters shared by every binary.
type Common struct {
	CatalogURL     string
	CatalogTimeout time.Duration
	MaxRecords     int
}

// API describes HTTP-layer configuration.
type API struct {
	Common
	BindAddr        string
	ShutdownTimeout time.Duration
}

// CLI holds configuration for the command-line client.
type CLI struct {
	Common
}

// LoadAPI builds an API config from environment variables.
func LoadAPI() (*API, error) {
	c := &API{
		Common:          loadCommon(),
		BindAddr:        getEnv("API_BIND_ADDR", "0.0.0.0:8080"),
		ShutdownTimeout: getDuration("API_SHUTDOWN_TIMEOUT", "10s"),
	}

	if c.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("API_SHUTDOWN_TIMEOUT must be positive")
	}
	if err := c.Common.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadCLI builds a CLI config from environment variables.
func LoadCLI() (*CLI, error) {
	c := &CLI{Common: loadCommon()}

	if err := c.Common.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func loadCommon() Common {
	return Common{
		CatalogURL:     getEnv("CATALOG_URL", "https://earthquake.usgs.gov/fdsnws/event/1/query"),
		CatalogTimeout: getDuration("CATALOG_TIMEOUT", "30s"),
		MaxRecords:     getInt("CATALOG_MAX_RECORDS", 20000),
	}
}

func (c Common) validate() error {
	if c.CatalogURL == "" {
		return fmt.Errorf("CATALOG_URL cannot be empty")
	}
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive")
	}
	if c.MaxRecords <= 0 {
		return fmt.Errorf("CATALOG_MAX_RECORDS must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}
