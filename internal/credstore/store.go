// Package credstore persists the single credential token and the cached
// profile blob between runs: written on login, cleared on logout, read on
// every screen mount to decide authenticated vs guest.
package credstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apisdk "github.com/chessmate-app/chessmate/api-sdk"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// Default stores credentials under the user config directory.
func Default() (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("credstore: resolve config dir: %w", err)
	}
	return New(filepath.Join(base, "chessmate")), nil
}

// Save writes the token and the cached profile. Called once per login.
func (s *Store) Save(token string, user *apisdk.UserProfile) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("credstore: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return fmt.Errorf("credstore: write token: %w", err)
	}
	if user != nil {
		raw, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("credstore: encode profile: %w", err)
		}
		if err := os.WriteFile(filepath.Join(s.dir, userFile), raw, 0o600); err != nil {
			return fmt.Errorf("credstore: write profile: %w", err)
		}
	}
	return nil
}

// Token returns the stored credential, or "" for guest. A missing or
// unreadable file is a guest, never an error.
func (s *Store) Token() string {
	raw, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// User returns the cached profile blob, or nil when absent or corrupt.
func (s *Store) User() *apisdk.UserProfile {
	raw, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil
	}
	var user apisdk.UserProfile
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil
	}
	return &user
}

// Clear removes the credential and the cached profile. Called on logout.
func (s *Store) Clear() error {
	var errs []error
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
