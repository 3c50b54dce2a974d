package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// persistedState is the content of state.yaml
type persistedState struct {
	Version   int `yaml:"version"`
	CityIndex int `yaml:"city_index"`
}

// StateStore persists the selected city index across restarts.
type StateStore struct {
	path string
}

// NewStateStore creates a store backed by the file at path.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// DefaultStateStore creates a store at the default state path.
func DefaultStateStore() (*StateStore, error) {
	path, err := GetStatePath()
	if err != nil {
		return nil, fmt.Errorf("failed to get state path: %w", err)
	}
	return NewStateStore(path), nil
}

// Path returns the backing file path
func (s *StateStore) Path() string {
	return s.path
}

// LoadCityIndex returns the stored city index, or 0 when nothing has been
// stored yet. The index is not range-checked here.
func (s *StateStore) LoadCityIndex() (int, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read state file: %w", err)
	}

	var st persistedState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return 0, fmt.Errorf("failed to parse state file: %w", err)
	}

	return st.CityIndex, nil
}

// SaveCityIndex stores the city index atomically.
func (s *StateStore) SaveCityIndex(index int) error {
	data, err := yaml.Marshal(persistedState{Version: CurrentVersion, CityIndex: index})
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	return writeFileAtomic(s.path, data)
}
