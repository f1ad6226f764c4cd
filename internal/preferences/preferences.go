// Package preferences owns the user's display-unit choices. A Store holds one
// preference record, loads it lazily from a Persistence and writes every
// change back. Conversion code receives a Preferences value explicitly.
package preferences

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"alcyxob/smartfit/internal/units"

	log "github.com/sirupsen/logrus"
)

// StorageKey is the persistence key of the preference record.
const StorageKey = "fitness_preferences"

var ErrInvalidUnit = errors.New("invalid unit")

type Preferences struct {
	WeightUnit units.WeightUnit `json:"weightUnit"`
	HeightUnit units.HeightUnit `json:"heightUnit"`
}

// Defaults are metric units.
func Defaults() Preferences {
	return Preferences{WeightUnit: units.Kilograms, HeightUnit: units.Centimeters}
}

func (p Preferences) Validate() error {
	if !p.WeightUnit.Valid() {
		return fmt.Errorf("%w: weight unit %q", ErrInvalidUnit, p.WeightUnit)
	}
	if !p.HeightUnit.Valid() {
		return fmt.Errorf("%w: height unit %q", ErrInvalidUnit, p.HeightUnit)
	}
	return nil
}

// Persistence is a string key/value store that survives restarts.
type Persistence interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
}

// Store is the single owner of one preference record.
type Store struct {
	persistence Persistence
	key         string

	mu      sync.Mutex
	loaded  bool
	current Preferences
}

func NewStore(persistence Persistence, key string) *Store {
	return &Store{
		persistence: persistence,
		key:         key,
	}
}

// Current returns the preferences, loading them on first use.
func (s *Store) Current() (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return Preferences{}, err
	}
	return s.current, nil
}

// ToggleWeightUnit switches the unit system: kilograms go with centimeters
// and pounds with feet/inches, so the height unit follows the weight unit.
func (s *Store) ToggleWeightUnit() (Preferences, error) {
	return s.update(func(p Preferences) Preferences {
		if p.WeightUnit == units.Kilograms {
			p.WeightUnit = units.Pounds
			p.HeightUnit = units.FeetInches
		} else {
			p.WeightUnit = units.Kilograms
			p.HeightUnit = units.Centimeters
		}
		return p
	})
}

// ToggleHeightUnit flips only the height unit.
func (s *Store) ToggleHeightUnit() (Preferences, error) {
	return s.update(func(p Preferences) Preferences {
		if p.HeightUnit == units.Centimeters {
			p.HeightUnit = units.FeetInches
		} else {
			p.HeightUnit = units.Centimeters
		}
		return p
	})
}

// Set replaces the preferences.
func (s *Store) Set(p Preferences) (Preferences, error) {
	if err := p.Validate(); err != nil {
		return Preferences{}, err
	}
	return s.update(func(Preferences) Preferences { return p })
}

// update applies fn and persists the result. The in-memory value only
// changes once the write succeeded.
func (s *Store) update(fn func(Preferences) Preferences) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return Preferences{}, err
	}

	next := fn(s.current)
	raw, err := json.Marshal(next)
	if err != nil {
		return Preferences{}, fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.persistence.Set(s.key, string(raw)); err != nil {
		return Preferences{}, fmt.Errorf("save preferences: %w", err)
	}
	s.current = next
	return next, nil
}

func (s *Store) loadLocked() error {
	if s.loaded {
		return nil
	}

	raw, found, err := s.persistence.Get(s.key)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	p := Defaults()
	if found {
		var stored Preferences
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			log.Warnf("preferences %s unreadable, using defaults: %v", s.key, err)
		} else {
			if stored.WeightUnit.Valid() {
				p.WeightUnit = stored.WeightUnit
			}
			if stored.HeightUnit.Valid() {
				p.HeightUnit = stored.HeightUnit
			}
		}
	}

	s.current = p
	s.loaded = true
	return nil
}

// Manager hands out one Store per user over a shared Persistence.
type Manager struct {
	persistence Persistence

	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager(persistence Persistence) *Manager {
	return &Manager{
		persistence: persistence,
		stores:      make(map[string]*Store),
	}
}

// For returns the store owning userID's preferences.
func (m *Manager) For(userID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.stores[userID]
	if !ok {
		store = NewStore(m.persistence, StorageKey+":"+userID)
		m.stores[userID] = store
	}
	return store
}
