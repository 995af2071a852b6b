package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server  ServerConfig
	DB      DatabaseConfig
	API     APIConfig
	Import  ImportConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Path string
}

type APIConfig struct {
	RateLimitRPS   int
	RateLimitBurst int
}

type ImportConfig struct {
	Workers    int
	BufferSize int
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/hazards.db"),
		},
		API: APIConfig{
			RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
			RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		},
		Import: ImportConfig{
			Workers:    getEnvInt("IMPORT_WORKER_COUNT", 2),
			BufferSize: getEnvInt("IMPORT_BUFFER_SIZE", 20),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.API.RateLimitRPS < 1 {
		return fmt.Errorf("rate limit must be at least 1 rps")
	}
	if c.API.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1")
	}
	if c.Import.Workers < 1 {
		return fmt.Errorf("import worker count must be at least 1")
	}
	if c.Import.BufferSize < 1 {
		return fmt.Errorf("import buffer size must be at least 1")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}
