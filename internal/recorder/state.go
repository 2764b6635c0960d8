// Package recorder records live scans from the rig and keeps enough state
// on disk to resume an interrupted scan.
package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LiveScan is a scan in progress. Samples are kept in the order received.
type LiveScan struct {
	StartedAt time.Time    `json:"started_at"`
	Samples   [][3]float64 `json:"samples"`
}

// AppState is what survives between runs.
type AppState struct {
	LastScanID string    `json:"last_scan_id,omitempty"`
	Live       *LiveScan `json:"live,omitempty"`
}

// StateFile manages the application state file.
type StateFile struct {
	path  string
	state AppState
}

// DefaultStatePath returns the default state file path.
func DefaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".cubescan")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(dir, "state.json"), nil
}

// NewStateFile creates a state file manager, loading path if it exists.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}

	if err := sf.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return sf, nil
}

// NewDefaultStateFile creates a state file manager with the default path.
func NewDefaultStateFile() (*StateFile, error) {
	path, err := DefaultStatePath()
	if err != nil {
		return nil, err
	}
	return NewStateFile(path)
}

// Load loads the state from disk.
func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, &sf.state)
}

// Save writes the state to a temporary file next to path and renames it
// into place, so a reader never sees a half-written sample list.
func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(sf.path), ".state-*.json")
	if err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), sf.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// State returns the current state.
func (sf *StateFile) State() AppState {
	return sf.state
}

// Path returns the state file path.
func (sf *StateFile) Path() string {
	return sf.path
}

// SetLastScan records the ID of the most recently stored scan.
func (sf *StateFile) SetLastScan(scanID string) error {
	sf.state.LastScanID = scanID
	return sf.Save()
}

// SetLive replaces the scan in progress.
func (sf *StateFile) SetLive(live *LiveScan) error {
	sf.state.Live = live
	return sf.Save()
}

// ClearLive drops the scan in progress.
func (sf *StateFile) ClearLive() error {
	sf.state.Live = nil
	return sf.Save()
}

// HasLive reports whether a scan is in progress.
func (sf *StateFile) HasLive() bool {
	return sf.state.Live != nil
}

// LastScanID returns the ID of the most recently stored scan.
func (sf *StateFile) LastScanID() string {
	return sf.state.LastScanID
}
