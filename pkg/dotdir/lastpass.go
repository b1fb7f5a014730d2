package dotdir

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	lastPassFile = "last_pass.json"
)

// LastPass summarizes the most recent reorder pass run from the CLI.
type LastPass struct {
	// FinishedAt is when the pass completed.
	FinishedAt time.Time `json:"finished_at"`

	// DryRun is true when the pass was planned but not applied.
	DryRun bool `json:"dry_run"`

	Folders    int `json:"folders"`
	Moves      int `json:"moves"`
	Suppressed int `json:"suppressed"`
	Failed     int `json:"failed"`
	Missing    int `json:"missing"`
}

// LoadLastPass loads the last pass summary from a target .marksort/last_pass.json.
// Returns nil, nil if no pass has been recorded yet.
func (m *Manager) LoadLastPass(overrideDir string) (*LastPass, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, lastPassFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading last pass: %w", err)
	}

	pass := &LastPass{}
	if err := json.Unmarshal(data, pass); err != nil {
		return nil, fmt.Errorf("parsing last pass: %w", err)
	}

	return pass, nil
}

// SaveLastPass persists pass to a target .marksort/last_pass.json.
func (m *Manager) SaveLastPass(pass *LastPass, overrideDir string) error {
	if pass == nil {
		return errors.New("cannot save nil last pass")
	}

	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(pass, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling last pass: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, lastPassFile), data, 0o600); err != nil {
		return fmt.Errorf("writing last pass: %w", err)
	}

	return nil
}
