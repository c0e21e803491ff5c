package server

import "sync"

type flashLevel string

const (
	flashSuccess flashLevel = "success"
	flashWarning flashLevel = "warning"
)

// Flash is a one-shot toast shown on the profile's next rendered page.
type Flash struct {
	Level flashLevel
	Text  string
}

type flashStore struct {
	mu    sync.Mutex
	items map[string][]Flash
}

func newFlashStore() *flashStore {
	return &flashStore{items: make(map[string][]Flash)}
}

func (f *flashStore) Add(profileID string, level flashLevel, text string) {
	if profileID == "" || text == "" {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[profileID] = append(f.items[profileID], Flash{Level: level, Text: text})
}

// Take returns the profile's pending flashes and forgets them.
func (f *flashStore) Take(profileID string) []Flash {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.items[profileID]
	delete(f.items, profileID)
	return items
}
