// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// backupDirName is the subdirectory of the data directory that holds
// snapshots. It is skipped when snapshotting.
const backupDirName = "backups"

// Backup copies every collection file into a timestamped directory under
// <dir>/backups and returns the directory path.
func (f *Files) Backup() (string, error) {
	dest := filepath.Join(f.dir, backupDirName, time.Now().Format("20060102-150405"))
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return "", fmt.Errorf("reading data directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(f.dir, entry.Name()))
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(dest, entry.Name()), data, 0o644); err != nil {
			return "", fmt.Errorf("writing backup of %s: %w", entry.Name(), err)
		}
	}
	return dest, nil
}
