// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the application configuration from environment
// variables.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// DefaultSessionSecret is the development-only session secret. It ships in
// the repository and must be overridden for any production deployment.
const DefaultSessionSecret = "union-estate-secret-key-2024"

// Config holds the application configuration loaded from environment
// variables.
type Config struct {
	DataDir        string `env:"ESTATE_DATA_DIR" envDefault:"./data"`
	SessionSecret  string `env:"ESTATE_SESSION_SECRET" envDefault:"union-estate-secret-key-2024"`
	ServerHost     string `env:"ESTATE_SERVER_HOST" envDefault:"0.0.0.0"`
	ServerPort     int    `env:"ESTATE_SERVER_PORT" envDefault:"5000"`
	Env            string `env:"ESTATE_ENV" envDefault:"development"`
	LogLevel       string `env:"ESTATE_LOG_LEVEL" envDefault:"info"`
	BackupSchedule string `env:"ESTATE_BACKUP_SCHEDULE" envDefault:"@daily"` // cron spec; empty disables backups
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.SessionSecret == DefaultSessionSecret && !cfg.IsDevelopment() {
		slog.Warn("ESTATE_SESSION_SECRET is the built-in development default and is not safe for production; " +
			"generate a secret with: openssl rand -base64 32")
	}

	return cfg, nil
}
