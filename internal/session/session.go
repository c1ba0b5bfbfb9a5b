// Package session persists the authenticated user's token and display
// name across invocations. It is a dumb durable key/value holder: no
// token shape validation, no expiry logic.
package session

import (
	"encoding/json"
	"errors"
	"os"
)

// Store holds the current session.
type Store interface {
	// Token returns the bearer token, or false if no session exists.
	Token() (string, bool)

	// Username returns the stored display name, or false if absent.
	Username() (string, bool)

	// Set overwrites both fields durably.
	Set(token, username string) error

	// Clear removes the session durably. Clearing an absent session
	// is not an error.
	Clear() error
}

type sessionFile struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// FileStore persists the session as a JSON file with mode 0600.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Token implements Store.
func (s *FileStore) Token() (string, bool) {
	f, ok := s.read()
	if !ok || f.Token == "" {
		return "", false
	}
	return f.Token, true
}

// Username implements Store.
func (s *FileStore) Username() (string, bool) {
	f, ok := s.read()
	if !ok || f.Username == "" {
		return "", false
	}
	return f.Username, true
}

// Set implements Store.
func (s *FileStore) Set(token, username string) error {
	data, err := json.MarshalIndent(sessionFile{Token: token, Username: username}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear implements Store.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileStore) read() (sessionFile, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return sessionFile{}, false
	}
	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return sessionFile{}, false
	}
	return f, true
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	token    string
	username string
	set      bool
}

// NewMemStore creates a MemStore, optionally pre-populated.
func NewMemStore(token, username string) *MemStore {
	return &MemStore{token: token, username: username, set: token != "" || username != ""}
}

func (s *MemStore) Token() (string, bool) {
	if !s.set || s.token == "" {
		return "", false
	}
	return s.token, true
}

func (s *MemStore) Username() (string, bool) {
	if !s.set || s.username == "" {
		return "", false
	}
	return s.username, true
}

func (s *MemStore) Set(token, username string) error {
	s.token, s.username, s.set = token, username, true
	return nil
}

func (s *MemStore) Clear() error {
	s.token, s.username, s.set = "", "", false
	return nil
}
