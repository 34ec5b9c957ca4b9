package profile

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/janisto/cardfolio/internal/platform/auth"
)

// MockProfileService implements Service in memory. It backs unit tests and
// the memory store backend.
type MockProfileService struct {
	mu        sync.RWMutex
	users     map[string]User
	usernames map[string]string // username key -> user id
}

// NewMockProfileService creates a new mock service seeded with users. Seeded
// users must carry an ID.
func NewMockProfileService(users ...User) *MockProfileService {
	m := &MockProfileService{
		users:     make(map[string]User),
		usernames: make(map[string]string),
	}
	for _, u := range users {
		p, err := Prepare(u)
		if err != nil || p.ID == "" {
			continue
		}
		m.users[p.ID] = p
		if p.Username != "" {
			m.usernames[usernameKey(p.Username)] = p.ID
		}
	}
	return m
}

func (m *MockProfileService) GetByUsername(_ context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.usernames[usernameKey(username)]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(m.users[id]), nil
}

func (m *MockProfileService) Current(_ context.Context, cred auth.Credential) (*User, error) {
	if err := requireCredential(cred); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[cred.UserID]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(u), nil
}

func (m *MockProfileService) Save(_ context.Context, cred auth.Credential, u User) (*User, error) {
	if err := requireCredential(cred); err != nil {
		return nil, err
	}
	prepared, err := Prepare(u)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if prepared.Username != "" {
		if owner, taken := m.usernames[usernameKey(prepared.Username)]; taken && owner != cred.UserID {
			return nil, ErrUsernameTaken
		}
	}

	now := time.Now().UTC()
	prepared.ID = cred.UserID
	prepared.CreatedAt = now
	if existing, ok := m.users[cred.UserID]; ok {
		prepared.CreatedAt = existing.CreatedAt
		if existing.Username != "" {
			delete(m.usernames, usernameKey(existing.Username))
		}
	}
	prepared.UpdatedAt = now
	m.users[cred.UserID] = prepared
	if prepared.Username != "" {
		m.usernames[usernameKey(prepared.Username)] = cred.UserID
	}
	return cloneUser(prepared), nil
}

func (m *MockProfileService) UsernameTaken(_ context.Context, cred auth.Credential, username string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owner, ok := m.usernames[usernameKey(username)]
	return ok && owner != cred.UserID, nil
}

func cloneUser(u User) *User {
	u.Profile.SocialLinks = slices.Clone(u.Profile.SocialLinks)
	u.UsedTemplates = slices.Clone(u.UsedTemplates)
	return &u
}

// Compile-time interface check
var _ Service = (*MockProfileService)(nil)
