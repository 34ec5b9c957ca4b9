package template

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/janisto/cardfolio/internal/platform/auth"
)

// MockTemplateService implements Service in memory. It backs unit tests and
// the memory store backend.
type MockTemplateService struct {
	mu        sync.RWMutex
	templates map[string]Template
}

// NewMockTemplateService creates a new mock service seeded with ts.
func NewMockTemplateService(ts ...Template) *MockTemplateService {
	m := &MockTemplateService{templates: make(map[string]Template)}
	for _, t := range ts {
		if p, err := Prepare(t); err == nil {
			m.templates[p.Slug] = p
		}
	}
	return m
}

func (m *MockTemplateService) Get(_ context.Context, slug string) (*Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.templates[slug]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneTemplate(t), nil
}

func (m *MockTemplateService) List(_ context.Context, params ListParams) ([]Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Template, 0, len(m.templates))
	for _, t := range m.templates {
		if Match(t, params) {
			out = append(out, *cloneTemplate(t))
		}
	}
	Sort(out)
	return out, nil
}

func (m *MockTemplateService) Save(_ context.Context, _ auth.Credential, slug string, t Template) (*Template, error) {
	prepared, err := Prepare(t)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, exists := m.templates[slug]
	if prepared.Slug != slug {
		if _, taken := m.templates[prepared.Slug]; taken {
			return nil, ErrSlugConflict
		}
	}

	now := time.Now().UTC()
	if exists {
		prepared.ID = existing.ID
		prepared.CreatedAt = existing.CreatedAt
		prepared.Downloads = existing.Downloads
		delete(m.templates, slug)
	} else if prepared.CreatedAt.IsZero() {
		prepared.CreatedAt = now
	}
	prepared.UpdatedAt = now
	m.templates[prepared.Slug] = prepared
	return cloneTemplate(prepared), nil
}

func cloneTemplate(t Template) *Template {
	t.Features = slices.Clone(t.Features)
	t.Tags = slices.Clone(t.Tags)
	return &t
}

// Compile-time interface check
var _ Service = (*MockTemplateService)(nil)
