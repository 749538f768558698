package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Transport selects "stdio" or "http".
	Transport string `yaml:"transport"`
}

type StoreConfig struct {
	// Backend selects "diskv" or "sqlite".
	Backend string `yaml:"backend"`
	// DataDir holds the diskv files.
	DataDir string `yaml:"data_dir"`
	// DBPath is the sqlite database file.
	DBPath string `yaml:"db_path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8080,
			Transport: "stdio",
		},
		Store: StoreConfig{
			Backend: "diskv",
			DataDir: "dayplan-data",
			DBPath:  "dayplan.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("DAYPLAN_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("DAYPLAN_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("DAYPLAN_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DAYPLAN_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if transport := os.Getenv("DAYPLAN_TRANSPORT"); transport != "" {
		cfg.Server.Transport = transport
	}
	if backend := os.Getenv("DAYPLAN_STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = backend
	}
	if dir := os.Getenv("DAYPLAN_DATA_DIR"); dir != "" {
		cfg.Store.DataDir = dir
	}
	if dbPath := os.Getenv("DAYPLAN_DB_PATH"); dbPath != "" {
		cfg.Store.DBPath = dbPath
	}
	if level := os.Getenv("DAYPLAN_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Server.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid transport %q (want stdio or http)", c.Server.Transport)
	}
	switch c.Store.Backend {
	case "diskv", "sqlite":
	default:
		return fmt.Errorf("invalid store backend %q (want diskv or sqlite)", c.Store.Backend)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
