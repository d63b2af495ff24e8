// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"sync"
	"time"

	"github.com/olegiv/estate-go/internal/model"
)

const adminConfigCollection = "admin_config"

// DefaultAdminPassword is the fallback admin credential used until the
// password has been changed once through the settings page.
const DefaultAdminPassword = "admin123"

// Admin manages the single admin panel credential.
type Admin struct {
	files *Files
	mu    sync.Mutex
}

// NewAdmin creates an Admin store over the given files.
func NewAdmin(files *Files) *Admin {
	return &Admin{files: files}
}

// Password returns the current admin password, falling back to
// DefaultAdminPassword when no config has been written yet or the file
// cannot be read.
func (s *Admin) Password() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := model.AdminConfig{}
	s.files.Read(adminConfigCollection, &cfg)
	if cfg.Password == "" {
		return DefaultAdminPassword
	}
	return cfg.Password
}

// SetPassword replaces the admin credential and stamps the change time.
func (s *Admin) SetPassword(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.files.Write(adminConfigCollection, model.AdminConfig{
		Password:    password,
		LastUpdated: time.Now(),
	})
}
