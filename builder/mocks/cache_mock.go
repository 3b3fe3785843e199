package mocks

import (
	"sync"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/highlight"
)

// MockCache is a mock implementation of highlight.Cache
type MockCache struct {
	mu        sync.Mutex
	Entries   map[string]highlight.Entry
	GetErr    bool  // every Get misses
	PutErr    error // returned by every Put
	CallCount map[string]int
}

// NewMockCache creates a new mock cache
func NewMockCache() *MockCache {
	return &MockCache{
		Entries:   make(map[string]highlight.Entry),
		CallCount: make(map[string]int),
	}
}

// Get returns a stored entry
func (m *MockCache) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount["Get"]++
	if m.GetErr {
		return "", false
	}
	e, ok := m.Entries[key]
	return e.HTML, ok
}

// Put stores an entry unless PutErr is set
func (m *MockCache) Put(key string, entry highlight.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount["Put"]++
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Entries[key] = entry
	return nil
}

// Len returns the number of stored entries
func (m *MockCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Entries)
}
