package repository

import (
	"context"
	"sync"

	"github.com/Govind-619/PriceSphere/models"
)

// MemoryStore keeps the snapshot in process. Used for demos and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	snapshot *models.PricingSnapshot
	saves    int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (*models.PricingSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return emptySnapshot(), nil
	}
	return copySnapshot(s.snapshot)
}

func (s *MemoryStore) Save(_ context.Context, snapshot *models.PricingSnapshot) error {
	stored, err := copySnapshot(snapshot)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = stored
	s.saves++
	return nil
}

// Saves reports how many snapshots have been written
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
