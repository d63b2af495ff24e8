// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"sync"
	"time"

	"github.com/olegiv/estate-go/internal/model"
)

const usersCollection = "users"

// Users manages the staff user directory. Usernames are unique and
// case-sensitive; passwords are stored and compared in clear text, which is
// the directory's frozen on-disk format.
//
// Every operation serializes its load-mutate-save sequence behind a mutex,
// so concurrent requests cannot lose each other's writes.
type Users struct {
	files *Files
	mu    sync.Mutex
}

// NewUsers creates a Users store over the given files.
func NewUsers(files *Files) *Users {
	return &Users{files: files}
}

func (s *Users) load() []model.User {
	users := []model.User{}
	s.files.Read(usersCollection, &users)
	return users
}

// List returns every user in stored order.
func (s *Users) List() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns the user with the given id.
func (s *Users) Get(id string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.load() {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

// Find returns the user with the given username. Exact match.
func (s *Users) Find(username string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.load() {
		if u.Username == username {
			return u, true
		}
	}
	return model.User{}, false
}

// Verify returns the user matching both username and password.
func (s *Users) Verify(username, password string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.load() {
		if u.Username == username && u.Password == password {
			return u, true
		}
	}
	return model.User{}, false
}

// Create appends a new user to the directory. A username that is already
// taken is rejected with ErrDuplicate.
func (s *Users) Create(username, email, password string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.load()
	for _, u := range users {
		if u.Username == username {
			return model.User{}, ErrDuplicate
		}
	}

	now := time.Now()
	user := model.User{
		ID:        newID(now),
		Username:  username,
		Email:     email,
		Password:  password,
		CreatedAt: now,
	}
	users = append(users, user)

	if err := s.files.Write(usersCollection, users); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Update overwrites the username and email of the record, and the password
// only when a non-empty new value is supplied. Renaming onto another
// record's username is rejected with ErrDuplicate.
func (s *Users) Update(id, username, email, password string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.load()
	idx := -1
	for i, u := range users {
		if u.ID == id {
			idx = i
		}
	}
	if idx < 0 {
		return model.User{}, ErrNotFound
	}
	for i, u := range users {
		if i != idx && u.Username == username {
			return model.User{}, ErrDuplicate
		}
	}

	users[idx].Username = username
	users[idx].Email = email
	if password != "" {
		users[idx].Password = password
	}

	if err := s.files.Write(usersCollection, users); err != nil {
		return model.User{}, err
	}
	return users[idx], nil
}

// Delete removes the user with the given id. Deleting an absent id is not
// an error; the collection is simply rewritten unchanged.
func (s *Users) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.load()
	kept := make([]model.User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	return s.files.Write(usersCollection, kept)
}
