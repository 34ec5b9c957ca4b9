package auth

import "context"

// MockVerifier provides fake token verification for tests and local runs.
type MockVerifier struct {
	Identity *Identity
	Error    error
}

// Verify returns the configured identity or error.
func (m *MockVerifier) Verify(_ context.Context, _ string) (*Identity, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Identity, nil
}

// TestIdentity returns a standard non-admin caller.
func TestIdentity() *Identity {
	return &Identity{UID: "test-user-123", Email: "test@example.com"}
}

// TestAdmin returns a standard administrator.
func TestAdmin() *Identity {
	return &Identity{UID: "test-admin-1", Email: "admin@example.com", Admin: true}
}

// Compile-time interface check
var _ Verifier = (*MockVerifier)(nil)
