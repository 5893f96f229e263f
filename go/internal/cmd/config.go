package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings read from config.yaml, with environment
// overrides for anything secret.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Events struct {
		NATSURL       string `yaml:"nats_url"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"events"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
}

func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Server.Port = getEnv("PORT", "8080")
	cfg.Events.SubjectPrefix = "warleague"

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	// Env wins over file for deploy-time settings.
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.Events.NATSURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
