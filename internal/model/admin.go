// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// AdminConfig is the singleton credential gating the admin panel. There is
// exactly one admin identity, with no relation to the user directory.
type AdminConfig struct {
	Password    string    `json:"password"`
	LastUpdated time.Time `json:"last_updated"`
}
