// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/olegiv/estate-go/internal/model"
)

const clientsCollection = "clients"

// Clients manages the client property records. Records created through the
// application are prepended, so the collection reads newest-first; imported
// records keep the caller's order.
type Clients struct {
	files *Files
	mu    sync.Mutex
}

// NewClients creates a Clients store over the given files.
func NewClients(files *Files) *Clients {
	return &Clients{files: files}
}

func (s *Clients) load() []model.Client {
	clients := []model.Client{}
	s.files.Read(clientsCollection, &clients)
	return clients
}

// List returns the full collection in stored order.
func (s *Clients) List() []model.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns the client with the given id.
func (s *Clients) Get(id string) (model.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.load() {
		if c.ID == id {
			return c, true
		}
	}
	return model.Client{}, false
}

// Create assigns an id and creation timestamp and prepends the record, so
// the newest client is always first in the collection.
func (s *Clients) Create(fields model.ClientFields) (model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	client := model.Client{
		ID:          newID(now),
		Name:        fields.Name,
		Contact:     fields.Contact,
		Society:     fields.Society,
		PlotNo:      fields.PlotNo,
		Block:       fields.Block,
		Price:       fields.Price,
		Size:        fields.Size,
		Date:        fields.Date,
		Description: fields.Description,
		CreatedAt:   now,
	}

	clients := append([]model.Client{client}, s.load()...)
	if err := s.files.Write(clientsCollection, clients); err != nil {
		return model.Client{}, err
	}
	return client, nil
}

// UpdateReplace overwrites every editable field of the record from fields;
// the identity fields id and createdAt are preserved. This is the admin
// form path, where an absent form field arrives as an empty string.
func (s *Clients) UpdateReplace(id string, fields model.ClientFields) (model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients := s.load()
	idx := s.indexOf(clients, id)
	if idx < 0 {
		return model.Client{}, ErrNotFound
	}

	c := &clients[idx]
	c.Name = fields.Name
	c.Contact = fields.Contact
	c.Society = fields.Society
	c.PlotNo = fields.PlotNo
	c.Block = fields.Block
	c.Price = fields.Price
	c.Size = fields.Size
	c.Date = fields.Date
	c.Description = fields.Description

	if err := s.files.Write(clientsCollection, clients); err != nil {
		return model.Client{}, err
	}
	return clients[idx], nil
}

// UpdateMerge overwrites only the fields named in patch, leaving every other
// field of the record untouched. This is the API path; keys are the JSON
// field names of the editable fields.
func (s *Clients) UpdateMerge(id string, patch map[string]string) (model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients := s.load()
	idx := s.indexOf(clients, id)
	if idx < 0 {
		return model.Client{}, ErrNotFound
	}

	c := &clients[idx]
	for key, value := range patch {
		switch key {
		case "name":
			c.Name = value
		case "contact":
			c.Contact = value
		case "society":
			c.Society = value
		case "plotNo":
			c.PlotNo = value
		case "block":
			c.Block = value
		case "price":
			c.Price = value
		case "size":
			c.Size = value
		case "date":
			c.Date = value
		case "description":
			c.Description = value
		}
	}

	if err := s.files.Write(clientsCollection, clients); err != nil {
		return model.Client{}, err
	}
	return clients[idx], nil
}

// Delete removes the client with the given id. Deleting an absent id is not
// an error.
func (s *Clients) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients := s.load()
	kept := make([]model.Client, 0, len(clients))
	for _, c := range clients {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	return s.files.Write(clientsCollection, kept)
}

// Import replaces the entire collection with the caller-supplied records,
// written verbatim and unvalidated, and returns the new record count. There
// is no merge with existing data.
func (s *Clients) Import(records []json.RawMessage) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if records == nil {
		records = []json.RawMessage{}
	}
	if err := s.files.Write(clientsCollection, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *Clients) indexOf(clients []model.Client, id string) int {
	for i, c := range clients {
		if c.ID == id {
			return i
		}
	}
	return -1
}
