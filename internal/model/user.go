// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types persisted by the JSON document
// store: staff users, client property records, and the admin credential.
package model

import "time"

// User is one record of the staff user directory backing end-user login.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password"` // stored in clear text; the directory's frozen on-disk format
	CreatedAt time.Time `json:"created_at"`
}
