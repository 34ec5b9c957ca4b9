package auth

import "context"

// Credential identifies the caller of an authorized operation. It is passed
// explicitly to every operation that needs authorization instead of being
// read from ambient state.
type Credential struct {
	UserID string
	Token  string
}

// IsZero reports whether the credential carries no identity.
func (c Credential) IsZero() bool {
	return c.UserID == "" && c.Token == ""
}

type credentialContextKey struct{}

// CredentialFromContext returns the credential captured by the auth
// middleware, or the zero Credential for anonymous requests.
func CredentialFromContext(ctx context.Context) Credential {
	cred, _ := ctx.Value(credentialContextKey{}).(Credential)
	return cred
}
