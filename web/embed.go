// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the application's page templates.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var content embed.FS

// Templates returns the template tree rooted at templates/.
func Templates() (fs.FS, error) {
	return fs.Sub(content, "templates")
}
