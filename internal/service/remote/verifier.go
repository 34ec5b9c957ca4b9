package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/janisto/cardfolio/internal/platform/auth"
)

// TokenVerifier checks bearer tokens issued by the card platform by asking
// it who the token belongs to.
type TokenVerifier struct {
	c *Client
}

// Verifier returns a verifier for tokens issued by the card platform.
func (c *Client) Verifier() *TokenVerifier {
	return &TokenVerifier{c: c}
}

// Verify resolves token to the platform user. A rejected token is
// auth.ErrInvalidToken; an unreachable platform is auth.ErrCertificateFetch
// so callers answer 503.
func (v *TokenVerifier) Verify(ctx context.Context, token string) (*auth.Identity, error) {
	if token == "" {
		return nil, auth.ErrNoToken
	}
	resp, err := v.c.doRequest(ctx, http.MethodGet, "/user", nil, auth.Credential{Token: token}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", auth.ErrCertificateFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var w wireUser
	if err := v.c.decodeResponse(ctx, resp, &w, profileErrors); err != nil {
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, profileErrors.notFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, fmt.Errorf("%w: %w", auth.ErrCertificateFetch, err)
	}
	if w.ID == "" {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Identity{UID: string(w.ID), Email: w.Email, Admin: bool(w.IsAdmin)}, nil
}

var _ auth.Verifier = (*TokenVerifier)(nil)
