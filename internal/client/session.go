package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// session is the token pair kept between invocations of the CLI.
type session struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func (s session) empty() bool {
	return s.Access == "" && s.Refresh == ""
}

// loadSession reads the session file. A missing file yields an empty session.
func loadSession(path string) (session, error) {
	var s session
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read session file: %w", err)
	}

	if err = json.Unmarshal(data, &s); err != nil {
		return session{}, fmt.Errorf("%w: %w", ErrCorruptedSession, err)
	}
	return s, nil
}

// saveSession writes the session readable by the owner only.
func saveSession(path string, s session) error {
	if path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err = os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}

	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func removeSession(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
