package repofakes

import (
	"context"
	"sync"

	apperrors "github.com/uvenla/home-admin/internal/errors"
)

// FakeSessionRepo is an in-memory sessions.Repo whose failures can be scripted.
type FakeSessionRepo struct {
	mu      sync.Mutex
	records map[string][]byte

	GetErr     error
	PutErr     error
	DeleteErr  error
	PanicOnGet bool

	Gets    int
	Puts    int
	Deletes int
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		records: make(map[string][]byte),
	}
}

// SetRaw stores record verbatim, bypassing encoding.
func (f *FakeSessionRepo) SetRaw(profileID string, record []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[profileID] = record
}

// Raw returns the stored record and whether one exists.
func (f *FakeSessionRepo) Raw(profileID string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[profileID]
	return record, ok
}

func (f *FakeSessionRepo) Get(_ context.Context, profileID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Gets++
	if f.PanicOnGet {
		panic("fake session repo: get")
	}
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	record, ok := f.records[profileID]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return record, nil
}

func (f *FakeSessionRepo) Put(_ context.Context, profileID string, record []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Puts++
	if f.PutErr != nil {
		return f.PutErr
	}
	f.records[profileID] = append([]byte(nil), record...)
	return nil
}

func (f *FakeSessionRepo) Delete(_ context.Context, profileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deletes++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	delete(f.records, profileID)
	return nil
}
