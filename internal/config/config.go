package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Web    WebConfig    `yaml:"web"`
	Limits LimitsConfig `yaml:"limits"`
}

type WebConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

type LimitsConfig struct {
	// Максимальный размер загружаемого JSON файла в байтах
	MaxUploadSize int64 `yaml:"max_upload_size"`
	// Время жизни неактивной сессии
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// Load читает конфигурацию: переменные окружения (+ .env если есть),
// затем опциональный config.yaml поверх
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{
		Web: WebConfig{
			ListenAddr: getenv("WEB_LISTEN_ADDR", ":8081"),
		},
		Limits: LimitsConfig{
			MaxUploadSize: 5 << 20,
			SessionTTL:    24 * time.Hour,
		},
	}

	if v := os.Getenv("MAX_UPLOAD_SIZE"); v != "" {
		var size int64
		if _, err := fmt.Sscanf(v, "%d", &size); err != nil {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE: %w", err)
		}
		cfg.Limits.MaxUploadSize = size
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		cfg.Limits.SessionTTL = ttl
	}

	if err := applyYAMLOverride(cfg, "config.yaml"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyYAMLOverride накатывает config.yaml поверх, если файл существует
func applyYAMLOverride(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
