package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const stateFileName = "state.yaml"

// SessionState is what kupo remembers between runs
type SessionState struct {
	Backend    string    `yaml:"backend,omitempty"`
	LastDir    string    `yaml:"last_dir,omitempty"`
	LastEntry  string    `yaml:"last_entry,omitempty"`
	ShowHidden bool      `yaml:"show_hidden,omitempty"`
	UpdatedAt  time.Time `yaml:"updated_at"`
}

// DefaultStatePath returns ~/.kupo/state.yaml
func DefaultStatePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".kupo", stateFileName), nil
}

// LoadState reads the session state at path. A missing or unreadable
// file yields an empty state.
func LoadState(path string) *SessionState {
	state := &SessionState{}

	data, err := os.ReadFile(path)
	if err != nil {
		return state
	}

	if err := yaml.Unmarshal(data, state); err != nil {
		// Invalid YAML, start over
		return &SessionState{}
	}

	return state
}

// Save writes the session state to path, creating its directory
func (s *SessionState) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	s.UpdatedAt = time.Now()

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Remember records the directory and entry the browser ended on
func (s *SessionState) Remember(backend, dir, entry string) {
	s.Backend = backend
	s.LastDir = dir
	s.LastEntry = entry
}
