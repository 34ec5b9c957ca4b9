package remote

import (
	"errors"
	"net/http"
	"testing"

	"github.com/janisto/cardfolio/internal/platform/auth"
)

func TestVerifierResolvesUser(t *testing.T) {
	srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer good" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": 42, "email": "admin@example.com", "is_admin": 1})
	})
	defer srv.Close()
	v := newTestClient(srv.URL).Verifier()

	id, err := v.Verify(t.Context(), "good")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.UID != "42" || !id.Admin || id.Email != "admin@example.com" {
		t.Fatalf("unexpected identity %+v", id)
	}

	if _, err := v.Verify(t.Context(), "bad"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := v.Verify(t.Context(), ""); !errors.Is(err, auth.ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestVerifierUpstreamFailure(t *testing.T) {
	srv := newTestServer(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadGateway, map[string]string{"message": "down"})
	})
	defer srv.Close()

	_, err := newTestClient(srv.URL).Verifier().Verify(t.Context(), "token")
	if !errors.Is(err, auth.ErrCertificateFetch) {
		t.Fatalf("expected ErrCertificateFetch, got %v", err)
	}
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected upstream cause to be kept, got %v", err)
	}
}
