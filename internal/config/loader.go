package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config.yaml"

// Load builds the configuration from, in increasing priority, env-default
// tags, the YAML file at CONFIG_PATH (./config.yaml when unset) and the
// environment. A local .env only fills variables that are not already set.
// A missing default file is fine; a missing CONFIG_PATH file is not.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}

	path, err := configFile()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if path == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(path, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", describe(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// configFile resolves the YAML file to read, or "" to use the environment only.
func configFile() (string, error) {
	path, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || path == "" {
		if _, err := os.Stat(defaultConfigPath); err != nil {
			return "", nil
		}
		return defaultConfigPath, nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	return path, nil
}

func describe(path string) string {
	if path == "" {
		return "environment"
	}
	return path
}
