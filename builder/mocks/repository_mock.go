package mocks

import (
	"sync"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
)

// MockRepository is a mock implementation of content.Repository
type MockRepository struct {
	mu        sync.Mutex
	Posts     map[models.Locale][]models.Post
	Err       error
	CallCount map[string]int
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{
		Posts:     make(map[models.Locale][]models.Post),
		CallCount: make(map[string]int),
	}
}

func (m *MockRepository) recordCall(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CallCount == nil {
		m.CallCount = make(map[string]int)
	}
	m.CallCount[method]++
}

// ListPosts returns the stored posts of locale, dropping drafts unless asked
func (m *MockRepository) ListPosts(locale models.Locale, includeDrafts bool) ([]models.Post, error) {
	m.recordCall("ListPosts")
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.Post
	for _, p := range m.Posts[locale] {
		if p.Draft && !includeDrafts {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// FindPost returns the stored post with slug
func (m *MockRepository) FindPost(slug string, locale models.Locale) (*models.Post, error) {
	m.recordCall("FindPost")
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.Posts[locale] {
		if p.Slug == slug {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}
