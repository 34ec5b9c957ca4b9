package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/janisto/cardfolio/internal/platform/auth"
	profilesvc "github.com/janisto/cardfolio/internal/service/profile"
	templatesvc "github.com/janisto/cardfolio/internal/service/template"
)

func newTestAPI(servers ...string) (chi.Router, huma.API) {
	router := chi.NewRouter()
	cfg := huma.DefaultConfig("RoutesTest", "test")
	for _, s := range servers {
		cfg.Servers = append(cfg.Servers, &huma.Server{URL: s})
	}
	api := humachi.New(router, cfg)
	Register(api, Deps{
		Verifier:  &auth.MockVerifier{Identity: auth.TestIdentity()},
		Profiles:  profilesvc.NewMockProfileService(profilesvc.User{ID: "u1", Username: "janedoe", Name: "Jane"}),
		Templates: templatesvc.NewMockTemplateService(templatesvc.Template{Name: "Minimal Clean"}),
		Origin:    "https://cards.example",
	})
	return router, api
}

func TestRegisterMountsOperations(t *testing.T) {
	_, api := newTestAPI()
	paths := api.OpenAPI().Paths
	for _, p := range []string{
		"/cards/{username}",
		"/cards/{username}/vcard",
		"/cards/{username}/share",
		"/templates",
		"/templates/{slug}",
		"/templates/preview",
		"/profile",
		"/identifiers/slug",
		"/identifiers/usernames/{candidate}",
		"/pricing",
		"/social/classify",
	} {
		if _, ok := paths[p]; !ok {
			t.Errorf("expected %s to be registered", p)
		}
	}
}

func TestRegisterServesCard(t *testing.T) {
	router, _ := newTestAPI()
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/cards/janedoe", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRegisterProtectsProfile(t *testing.T) {
	router, _ := newTestAPI()
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/profile", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if resp.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Fatal("expected bearer challenge")
	}
}

func TestAPIPrefixFromServers(t *testing.T) {
	_, api := newTestAPI("https://api.example/v1")
	if got := apiPrefix(api); got != "/v1" {
		t.Fatalf("expected /v1, got %q", got)
	}
	_, api = newTestAPI()
	if got := apiPrefix(api); got != "" {
		t.Fatalf("expected no prefix, got %q", got)
	}
}

func TestTemplateListLinkUsesPrefix(t *testing.T) {
	router := chi.NewRouter()
	cfg := huma.DefaultConfig("RoutesTest", "test")
	cfg.Servers = []*huma.Server{{URL: "/v1"}}
	api := humachi.New(router, cfg)
	Register(api, Deps{
		Verifier: &auth.MockVerifier{},
		Profiles: profilesvc.NewMockProfileService(),
		Templates: templatesvc.NewMockTemplateService(
			templatesvc.Template{Name: "One"},
			templatesvc.Template{Name: "Two"},
		),
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/templates?limit=1", nil))
	if link := resp.Header().Get("Link"); !strings.HasPrefix(link, "</v1/templates?") {
		t.Fatalf("expected prefixed link, got %q", link)
	}
}
