// Package config provides configuration loading for the report generator.
package config

import (
	"errors"
	"io/fs"

	configloader "github.com/GabrielNunesIT/go-libs/config-loader"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes the environment variables read into Config.
const EnvPrefix = "OPENAPI_REPORT_"

// Config holds the application configuration. Command-line flags take
// precedence over these values.
type Config struct {
	Format           string `koanf:"format"`
	MaxExpandDepth   int    `koanf:"maxdepth"`
	Strict           bool   `koanf:"strict"`
	PatternCacheSize int    `koanf:"cachesize"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Format:           "pdf",
		MaxExpandDepth:   10,
		Strict:           false,
		PatternCacheSize: 256,
	}
}

// Load returns the application configuration using go-libs config-loader.
// A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	loader := configloader.NewConfigLoader(
		configloader.WithDefaults(Defaults()),
		configloader.WithEnv[Config](EnvPrefix),
	)

	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
