package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
)

type testOutput struct {
	Body struct {
		UserID string `json:"user_id"`
		Token  string `json:"token"`
	}
}

func setupTestAPI(verifier Verifier, requireAuth, requireAdmin bool) *chi.Mux {
	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(NewMiddleware(api, verifier))

	op := huma.Operation{
		OperationID: "test-endpoint",
		Method:      http.MethodGet,
		Path:        "/test",
	}
	if requireAuth {
		op.Security = []map[string][]string{{"bearerAuth": {}}}
	}
	if requireAdmin {
		op.Metadata = map[string]any{MetadataAdmin: true}
	}

	huma.Register(api, op, func(ctx context.Context, _ *struct{}) (*testOutput, error) {
		out := &testOutput{}
		if id := IdentityFromContext(ctx); id != nil {
			out.Body.UserID = id.UID
		}
		out.Body.Token = CredentialFromContext(ctx).Token
		return out, nil
	})
	return router
}

func serve(router http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMiddlewareSkipsUnsecuredEndpoints(t *testing.T) {
	router := setupTestAPI(&MockVerifier{Error: ErrInvalidToken}, false, false)

	rec := serve(router, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for unsecured endpoint, got %d", rec.Code)
	}
}

func TestMiddlewareRejections(t *testing.T) {
	tests := []struct {
		name       string
		verifier   *MockVerifier
		header     string
		wantStatus int
		wantHeader [2]string
	}{
		{"missing header", &MockVerifier{Identity: TestIdentity()}, "", http.StatusUnauthorized, [2]string{"WWW-Authenticate", "Bearer"}},
		{"basic scheme", &MockVerifier{Identity: TestIdentity()}, "Basic dXNlcjpwYXNz", http.StatusUnauthorized, [2]string{"WWW-Authenticate", "Bearer"}},
		{"expired token", &MockVerifier{Error: ErrTokenExpired}, "Bearer t", http.StatusUnauthorized, [2]string{"WWW-Authenticate", "Bearer"}},
		{"revoked token", &MockVerifier{Error: ErrTokenRevoked}, "Bearer t", http.StatusUnauthorized, [2]string{"WWW-Authenticate", "Bearer"}},
		{"disabled user", &MockVerifier{Error: ErrUserDisabled}, "Bearer t", http.StatusUnauthorized, [2]string{"WWW-Authenticate", "Bearer"}},
		{"certificate fetch", &MockVerifier{Error: ErrCertificateFetch}, "Bearer t", http.StatusServiceUnavailable, [2]string{"Retry-After", "30"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(setupTestAPI(tt.verifier, true, false), tt.header)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get(tt.wantHeader[0]); got != tt.wantHeader[1] {
				t.Fatalf("expected %s: %q, got %q", tt.wantHeader[0], tt.wantHeader[1], got)
			}
		})
	}
}

func TestMiddlewareStoresIdentityAndCredential(t *testing.T) {
	router := setupTestAPI(&MockVerifier{Identity: &Identity{UID: "verified-user-789"}}, true, false)

	rec := serve(router, "Bearer valid-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid token, got %d", rec.Code)
	}

	var body struct {
		UserID string `json:"user_id"`
		Token  string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.UserID != "verified-user-789" || body.Token != "valid-token" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestMiddlewareRequiresAdmin(t *testing.T) {
	rec := serve(setupTestAPI(&MockVerifier{Identity: TestIdentity()}, true, true), "Bearer t")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}

	rec = serve(setupTestAPI(&MockVerifier{Identity: TestAdmin()}, true, true), "Bearer t")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
}

func TestFromContextWithoutAuth(t *testing.T) {
	ctx := context.Background()
	if IdentityFromContext(ctx) != nil {
		t.Fatal("expected nil identity from unauthenticated context")
	}
	if !CredentialFromContext(ctx).IsZero() {
		t.Fatal("expected zero credential from unauthenticated context")
	}
}
