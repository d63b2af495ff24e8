// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store persists the application's collections as pretty-printed
// JSON files in a single data directory and provides typed CRUD access to
// each of them.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Sentinel errors surfaced by the typed stores.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Files reads and writes named JSON collections under one data directory.
// A collection named "clients" lives in <dir>/clients.json.
type Files struct {
	dir string
}

// NewFiles creates the data directory if needed and returns a Files store
// rooted there.
func NewFiles(dir string) (*Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Files{dir: dir}, nil
}

// Dir returns the data directory backing the store.
func (f *Files) Dir() string {
	return f.dir
}

// Path returns the file backing the named collection.
func (f *Files) Path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

// Read decodes the named collection into dst. A missing file leaves dst
// untouched so callers start from an empty collection; unreadable or
// unparsable files are logged and likewise treated as empty. No error
// reaches the caller.
func (f *Files) Read(name string, dst any) {
	data, err := os.ReadFile(f.Path(name))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to read collection", "collection", name, "error", err)
		}
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		slog.Error("failed to parse collection", "collection", name, "error", err)
	}
}

// Write replaces the named collection with the pretty-printed serialization
// of v. The file is truncated in place; there is no temp-file rename, so a
// crash mid-write can leave a corrupt file behind.
func (f *Files) Write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := os.WriteFile(f.Path(name), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// newID returns the id assigned to every new record: the creation time in
// Unix milliseconds as a decimal string. Two creates landing in the same
// millisecond collide; the format is kept for compatibility with existing
// data files.
func newID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// Stores bundles the typed collection stores over one data directory.
type Stores struct {
	Files   *Files
	Users   *Users
	Clients *Clients
	Admin   *Admin
}

// NewStores opens the data directory and wires a typed store for each
// collection.
func NewStores(dir string) (*Stores, error) {
	files, err := NewFiles(dir)
	if err != nil {
		return nil, err
	}
	return &Stores{
		Files:   files,
		Users:   NewUsers(files),
		Clients: NewClients(files),
		Admin:   NewAdmin(files),
	}, nil
}
