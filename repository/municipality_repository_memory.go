package repository

import (
	"fmt"
	"sync"

	"ahorro-energia/domain"
)

// MunicipalityRepositoryMemory is an in-memory, insertion-ordered implementation
// of MunicipalityRepository. Records are never mutated or removed once stored.
type MunicipalityRepositoryMemory struct {
	mu    sync.RWMutex
	byKey map[string]domain.Municipality
	order []string
}

// NewMunicipalityRepositoryMemory creates a repository loaded with the given seed,
// keeping the seed order. Seed records without a key get one from their name.
func NewMunicipalityRepositoryMemory(
	seed []domain.Municipality,
) (*MunicipalityRepositoryMemory, error) {
	r := &MunicipalityRepositoryMemory{
		byKey: make(map[string]domain.Municipality, len(seed)),
		order: make([]string, 0, len(seed)),
	}
	for _, m := range seed {
		if m.Key == "" {
			m.Key = domain.NormalizeKey(m.Name)
		}
		if err := r.Insert(m); err != nil {
			return nil, fmt.Errorf("seed %q: %w", m.Name, err)
		}
	}
	return r, nil
}

// Get returns the record stored under key.
func (r *MunicipalityRepositoryMemory) Get(key string) (domain.Municipality, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byKey[key]
	return m, ok
}

// Keys returns a copy of the keys in insertion order.
func (r *MunicipalityRepositoryMemory) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// List returns the records in insertion order.
func (r *MunicipalityRepositoryMemory) List() []domain.Municipality {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]domain.Municipality, 0, len(r.order))
	for _, key := range r.order {
		list = append(list, r.byKey[key])
	}
	return list
}

// Insert stores m under m.Key. The check for an existing key and the write
// happen under the same lock.
func (r *MunicipalityRepositoryMemory) Insert(m domain.Municipality) error {
	if m.Key == "" {
		return ErrEmptyKey
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byKey[m.Key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, m.Key)
	}
	r.byKey[m.Key] = m
	r.order = append(r.order, m.Key)
	return nil
}
