// Package session manages auditbox review sessions: the temporary
// directory pair an isolated process writes into, and the pointer file
// that lets later commands find it again.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Session identifies one overlay review: the session directory holding
// overlay/ and work/, and the base filesystem the overlay sits atop.
type Session struct {
	Dir  string `yaml:"dir"`
	Base string `yaml:"base"`
}

// OverlayDir returns the overlay (upper) directory inside the session.
func (s Session) OverlayDir() string {
	return filepath.Join(s.Dir, "overlay")
}

// WorkDir returns the overlayfs work directory inside the session.
func (s Session) WorkDir() string {
	return filepath.Join(s.Dir, "work")
}

// File returns the session pointer file, ~/.config/auditbox/session.yaml.
func File() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".config", "auditbox", "session.yaml"), nil
}

// Create makes a fresh session: a unique temp directory with overlay/
// and work/ subdirectories, pointed at the given base. A session whose
// layout cannot be completed is removed again rather than left behind.
func Create(base string) (Session, error) {
	dir, err := os.MkdirTemp("", "auditbox-")
	if err != nil {
		return Session{}, fmt.Errorf("creating session directory: %w", err)
	}
	s := Session{Dir: dir, Base: base}
	if err := s.createLayout(); err != nil {
		_ = os.RemoveAll(dir)
		return Session{}, err
	}
	return s, nil
}

// createLayout makes the overlay/ and work/ subdirectories.
func (s Session) createLayout() error {
	if err := os.Mkdir(s.OverlayDir(), 0755); err != nil {
		return fmt.Errorf("creating overlay directory: %w", err)
	}
	if err := os.Mkdir(s.WorkDir(), 0755); err != nil {
		return fmt.Errorf("creating work directory: %w", err)
	}
	return nil
}

// Save writes the session pointer file, creating its parent directory
// when needed.
func Save(s Session) error {
	path, err := File()
	if err != nil {
		return err
	}
	return saveTo(path, s)
}

func saveTo(path string, s Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads the saved session. A missing pointer file means no active
// session; a pointer to a session directory that no longer exists is
// stale and is cleaned up before reporting the error.
func Load() (Session, error) {
	path, err := File()
	if err != nil {
		return Session{}, err
	}
	return loadFrom(path)
}

func loadFrom(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, fmt.Errorf("no active session; run 'auditbox new' to create one")
		}
		return Session{}, fmt.Errorf("reading session file: %w", err)
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("parsing session file: %w", err)
	}
	if s.Dir == "" || s.Base == "" {
		return Session{}, fmt.Errorf("session file is incomplete; run 'auditbox new' to create a new session")
	}

	if _, err := os.Stat(s.Dir); err != nil {
		_ = os.Remove(path)
		return Session{}, fmt.Errorf("session directory %s no longer exists; run 'auditbox new' to create a new session", s.Dir)
	}
	return s, nil
}

// Clear removes the session pointer file. Removing a file that is
// already gone is fine.
func Clear() error {
	path, err := File()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
