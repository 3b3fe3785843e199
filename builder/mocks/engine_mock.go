// Package mocks provides mock implementations for testing
package mocks

import (
	"errors"
	"fmt"
	"html"
	"sync"
)

// ErrMockRender is returned by MockEngine for languages listed in Fail.
var ErrMockRender = errors.New("mock render failure")

// MockEngine is a mock implementation of highlight.Engine. It renders
// deterministic HTML with an inline background, a comment span and a heading
// span that shares the comment colour, so recolouring can be observed.
type MockEngine struct {
	mu        sync.Mutex
	Languages map[string]bool
	Fail      map[string]bool
	Comment   string
	CallCount map[string]int
}

// NewMockEngine creates a mock engine that supports the given languages
func NewMockEngine(languages ...string) *MockEngine {
	m := &MockEngine{
		Languages: make(map[string]bool),
		Fail:      make(map[string]bool),
		Comment:   "#6B737C",
		CallCount: make(map[string]int),
	}
	for _, l := range languages {
		m.Languages[l] = true
	}
	return m
}

func (m *MockEngine) recordCall(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount[method]++
}

// Calls returns how many times method was called
func (m *MockEngine) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount[method]
}

// Render renders code wrapped in a styled pre element
func (m *MockEngine) Render(code, language, style, commentColor string) (string, error) {
	m.recordCall("Render")
	if m.Fail[language] {
		return "", fmt.Errorf("%w: %s", ErrMockRender, language)
	}
	comment := m.Comment
	if commentColor != "" {
		comment = commentColor
	}
	return fmt.Sprintf(
		`<pre data-style="%s" style="color:#111111;background-color:#ffffff;"><code class="%s">`+
			`<span style="color:%s">%s</span><span style="color:%s">@@</span></code></pre>`,
		style, language, comment, html.EscapeString(code), m.Comment,
	), nil
}

// Supports reports whether language was registered
func (m *MockEngine) Supports(language string) bool {
	m.recordCall("Supports")
	return m.Languages[language]
}
