package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/cardfolio/internal/platform/logging"
)

// MetadataAdmin marks an operation that only administrators may call.
// Set it in huma.Operation.Metadata.
const MetadataAdmin = "admin"

type identityContextKey struct{}

// NewMiddleware returns Huma middleware guarding operations that declare a
// Security requirement. Operations with Metadata[MetadataAdmin] set also
// require an administrator. Handlers read the caller through
// IdentityFromContext and CredentialFromContext.
func NewMiddleware(api huma.API, verifier Verifier) func(huma.Context, func(huma.Context)) {
	deny := func(ctx huma.Context, status int, reason, detail string) {
		applog.LogWarn(ctx.Context(), "request not authorized",
			zap.String("operation", ctx.Operation().OperationID),
			zap.String("reason", reason))
		switch status {
		case http.StatusUnauthorized:
			ctx.SetHeader("WWW-Authenticate", "Bearer")
		case http.StatusServiceUnavailable:
			ctx.SetHeader("Retry-After", "30")
		}
		_ = huma.WriteErr(api, ctx, status, detail)
	}

	return func(ctx huma.Context, next func(huma.Context)) {
		op := ctx.Operation()
		if len(op.Security) == 0 {
			next(ctx)
			return
		}

		token, err := ExtractBearerToken(ctx.Header("Authorization"))
		if err != nil {
			deny(ctx, http.StatusUnauthorized, "no_token", "missing or invalid authorization header")
			return
		}

		id, err := verifier.Verify(ctx.Context(), token)
		switch {
		case errors.Is(err, ErrCertificateFetch):
			deny(ctx, http.StatusServiceUnavailable, categorizeAuthError(err), "authentication service temporarily unavailable")
			return
		case err != nil:
			deny(ctx, http.StatusUnauthorized, categorizeAuthError(err), "invalid or expired token")
			return
		}

		if admin, _ := op.Metadata[MetadataAdmin].(bool); admin && !id.Admin {
			deny(ctx, http.StatusForbidden, "not_admin", "administrator access required")
			return
		}

		ctx = huma.WithValue(ctx, identityContextKey{}, id)
		ctx = huma.WithValue(ctx, credentialContextKey{}, Credential{UserID: id.UID, Token: token})
		next(ctx)
	}
}

// categorizeAuthError returns a safe category string for logging.
func categorizeAuthError(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrTokenRevoked):
		return "token_revoked"
	case errors.Is(err, ErrUserDisabled):
		return "user_disabled"
	case errors.Is(err, ErrCertificateFetch):
		return "certificate_fetch_failed"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	default:
		return "unknown"
	}
}

// IdentityFromContext returns the authenticated identity, or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey{}).(*Identity)
	return id
}
