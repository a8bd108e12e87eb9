package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"home_energy_simulator/internal/model"
)

// Preset is a named household configuration. Presets seed the dashboard
// and the CLI with ready-made scenarios; the name comes from the file
// stem when loaded from disk.
type Preset struct {
	Name      string          `json:"name" yaml:"-"`
	Label     string          `json:"label" yaml:"label"`
	Household model.Household `json:"household" yaml:"household"`
}

// Store holds household presets in memory, keyed by name.
type Store struct {
	mu      sync.RWMutex
	presets map[string]Preset
}

func New() *Store {
	return &Store{presets: make(map[string]Preset)}
}

// Add registers or replaces a preset after validating its household.
func (s *Store) Add(p Preset) error {
	if p.Name == "" {
		return fmt.Errorf("preset has no name")
	}
	if err := p.Household.Validate(); err != nil {
		return fmt.Errorf("preset %s: %w", p.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p.Household = p.Household.Clone()
	s.presets[p.Name] = p
	return nil
}

// LoadDir reads every .yaml/.yml file in dir as a preset named after
// its file stem. Returns the number of presets loaded. A single bad
// file fails the whole load so a typo cannot silently drop a scenario.
func (s *Store) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read preset dir: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return count, fmt.Errorf("read preset %s: %w", entry.Name(), err)
		}

		var p Preset
		if err := yaml.Unmarshal(raw, &p); err != nil {
			return count, fmt.Errorf("parse preset %s: %w", entry.Name(), err)
		}
		p.Name = strings.TrimSuffix(entry.Name(), ext)

		if err := s.Add(p); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Get returns a copy of the named preset.
func (s *Store) Get(name string) (Preset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.presets[name]
	if !ok {
		return Preset{}, false
	}
	p.Household = p.Household.Clone()
	return p, true
}

// Names returns all preset names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns copies of every preset, sorted by name.
func (s *Store) All() []Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Preset, 0, len(names))
	for _, name := range names {
		p := s.presets[name]
		p.Household = p.Household.Clone()
		out = append(out, p)
	}
	return out
}
