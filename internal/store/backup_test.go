// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFiles_Backup(t *testing.T) {
	files, err := NewFiles(t.TempDir())
	if err != nil {
		t.Fatalf("NewFiles: %v", err)
	}

	if err := files.Write("clients", []string{"a"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := files.Write("users", []string{"b"}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	dest, err := files.Backup()
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if !strings.HasPrefix(dest, filepath.Join(files.Dir(), backupDirName)) {
		t.Errorf("backup landed outside the backups directory: %s", dest)
	}

	for _, name := range []string{"clients.json", "users.json"} {
		original, err := os.ReadFile(files.Path(strings.TrimSuffix(name, ".json")))
		if err != nil {
			t.Fatalf("reading original %s: %v", name, err)
		}
		copied, err := os.ReadFile(filepath.Join(dest, name))
		if err != nil {
			t.Fatalf("reading backup %s: %v", name, err)
		}
		if string(original) != string(copied) {
			t.Errorf("backup of %s differs from original", name)
		}
	}
}

func TestFiles_BackupSkipsPreviousBackups(t *testing.T) {
	files, err := NewFiles(t.TempDir())
	if err != nil {
		t.Fatalf("NewFiles: %v", err)
	}
	if err := files.Write("clients", []string{"a"}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if _, err := files.Backup(); err != nil {
		t.Fatalf("first Backup: %v", err)
	}
	dest, err := files.Backup()
	if err != nil {
		t.Fatalf("second Backup: %v", err)
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatalf("reading backup dir: %v", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			t.Errorf("backup contains nested directory %s", entry.Name())
		}
	}
}
