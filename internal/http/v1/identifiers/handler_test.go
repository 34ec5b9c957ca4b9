package identifiers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/janisto/cardfolio/internal/platform/auth"
	profilesvc "github.com/janisto/cardfolio/internal/service/profile"
)

func newTestRouter(id *auth.Identity) chi.Router {
	profiles := profilesvc.NewMockProfileService(
		profilesvc.User{ID: auth.TestIdentity().UID, Username: "me_myself", Name: "Me"},
		profilesvc.User{ID: "other", Username: "janedoe", Name: "Jane"},
	)
	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("IdentifiersTest", "test"))
	api.UseMiddleware(auth.NewMiddleware(api, &auth.MockVerifier{Identity: id}))
	Register(api, profiles)
	return router
}

func TestGenerateSlug(t *testing.T) {
	router := newTestRouter(auth.TestIdentity())
	req := httptest.NewRequest(http.MethodPost, "/identifiers/slug", strings.NewReader(`{"name":"Minimal  Clean!!"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out struct{ Slug string }
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Slug != "minimal-clean" {
		t.Fatalf("expected minimal-clean, got %q", out.Slug)
	}
}

func checkUsername(t *testing.T, router http.Handler, candidate string) Availability {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/identifiers/usernames/"+candidate, nil)
	req.Header.Set("Authorization", "Bearer token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var a Availability
	if err := json.Unmarshal(resp.Body.Bytes(), &a); err != nil {
		t.Fatal(err)
	}
	return a
}

func TestCheckUsername(t *testing.T) {
	router := newTestRouter(auth.TestIdentity())

	tests := []struct {
		name      string
		candidate string
		want      Availability
	}{
		{"free", "new.name", Availability{Candidate: "newname", Valid: true, Available: true, Checked: true}},
		{"taken case-insensitively", "JaneDoe", Availability{Candidate: "JaneDoe", Valid: true, Available: false, Checked: true}},
		{"own username", "me_myself", Availability{Candidate: "me_myself", Valid: true, Available: true}},
		{"nothing usable", "!!!", Availability{Candidate: "", Available: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkUsername(t, router, tt.candidate); got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestCheckUsernameWithoutProfile(t *testing.T) {
	router := newTestRouter(&auth.Identity{UID: "fresh-user"})
	got := checkUsername(t, router, "me_myself")
	if got.Available {
		t.Fatal("expected another user's username to be unavailable")
	}
}

func TestCheckUsernameRequiresToken(t *testing.T) {
	router := newTestRouter(auth.TestIdentity())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/identifiers/usernames/jane", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}
