package sessions

import (
	"context"
	"fmt"
	"sync"

	apperrors "github.com/uvenla/home-admin/internal/errors"
)

// InMemoryRepo keeps session records in process memory. Records are lost on restart.
type InMemoryRepo struct {
	mu      sync.RWMutex
	records map[string][]byte // profileID -> record
}

// NewInMemoryRepo creates a new in-memory session repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		records: make(map[string][]byte),
	}
}

func (r *InMemoryRepo) Get(_ context.Context, profileID string) ([]byte, error) {
	if profileID == "" {
		return nil, fmt.Errorf("profileID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[profileID]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return append([]byte(nil), record...), nil
}

func (r *InMemoryRepo) Put(_ context.Context, profileID string, record []byte) error {
	if profileID == "" {
		return fmt.Errorf("profileID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Copy so callers can reuse their buffer
	r.records[profileID] = append([]byte(nil), record...)
	return nil
}

func (r *InMemoryRepo) Delete(_ context.Context, profileID string) error {
	if profileID == "" {
		return fmt.Errorf("profileID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, profileID)
	return nil
}

// Len returns the number of stored records.
func (r *InMemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
