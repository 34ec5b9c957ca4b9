package profile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/janisto/cardfolio/internal/card/social"
	"github.com/janisto/cardfolio/internal/platform/auth"
	appmiddleware "github.com/janisto/cardfolio/internal/platform/middleware"
	"github.com/janisto/cardfolio/internal/platform/respond"
	profilesvc "github.com/janisto/cardfolio/internal/service/profile"
	templatesvc "github.com/janisto/cardfolio/internal/service/template"
)

const callerID = "test-user-123"

func newTestRouter(users ...profilesvc.User) (chi.Router, *profilesvc.MockProfileService) {
	profiles := profilesvc.NewMockProfileService(users...)
	templates := templatesvc.NewMockTemplateService(
		templatesvc.Template{Name: "Minimal Clean"},
		templatesvc.Template{Name: "Studio"},
	)
	router := chi.NewRouter()
	router.Use(appmiddleware.RequestID(), respond.Recoverer())
	api := humachi.New(router, huma.DefaultConfig("ProfileTest", "test"))
	api.UseMiddleware(auth.NewMiddleware(api, &auth.MockVerifier{Identity: auth.TestIdentity()}))
	Register(api, profiles, templates)
	return router, profiles
}

func request(router http.Handler, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/profile", strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeProfile(t *testing.T, resp *httptest.ResponseRecorder) Profile {
	t.Helper()
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var p Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	return p
}

func TestGetProfileDraftForNewUser(t *testing.T) {
	router, _ := newTestRouter()

	p := decodeProfile(t, request(router, http.MethodGet, ""))
	if !p.IsNew || p.ID != callerID {
		t.Fatalf("expected a new draft for the caller, got %+v", p)
	}
	if len(p.SocialLinks) != 1 {
		t.Fatalf("expected one placeholder link, got %+v", p.SocialLinks)
	}
	if l := p.SocialLinks[0]; l.Platform != social.DefaultPlatform || !l.IsVisible || l.ID == "" {
		t.Fatalf("unexpected placeholder link %+v", l)
	}
}

func TestGetProfileExisting(t *testing.T) {
	router, _ := newTestRouter(profilesvc.User{ID: callerID, Username: "me", Name: "Me", UsedTemplates: []string{"studio"}})

	p := decodeProfile(t, request(router, http.MethodGet, ""))
	if p.IsNew || p.Username != "me" || p.CurrentTemplate != "studio" {
		t.Fatalf("unexpected profile %+v", p)
	}
	if len(p.SocialLinks) != 0 {
		t.Fatalf("expected no placeholder for a saved profile, got %+v", p.SocialLinks)
	}
}

func TestGetProfileRequiresToken(t *testing.T) {
	router, _ := newTestRouter()
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/profile", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestSaveProfileNormalizes(t *testing.T) {
	router, profiles := newTestRouter()

	body := `{
		"name": " Jane Doe ",
		"username": "jane.doe!",
		"email": "Jane@Example.com",
		"phone": "+63 912 345 6789",
		"social_links": [
			{"platform": "WhatsApp", "display_name": "+63 (912) 345-6789", "url": "https://spoofed.example", "is_visible": true},
			{"platform": "GitHub", "url": "https://github.com/jane", "display_name": "jane", "is_visible": true}
		],
		"template": "studio"
	}`
	p := decodeProfile(t, request(router, http.MethodPut, body))

	if p.Username != "janedoe" || p.Name != "Jane Doe" || p.Email != "jane@example.com" {
		t.Fatalf("expected normalized identity, got %+v", p)
	}
	if len(p.SocialLinks) != 2 {
		t.Fatalf("expected 2 links, got %d", len(p.SocialLinks))
	}
	wa := p.SocialLinks[0]
	if wa.DisplayName != "63912345678" || wa.URL != "https://wa.me/63912345678" {
		t.Fatalf("expected messaging link re-derived, got %+v", wa)
	}
	if wa.ID == "" {
		t.Fatal("expected link id to be assigned")
	}
	if p.CurrentTemplate != "studio" {
		t.Fatalf("expected studio to be current, got %q", p.CurrentTemplate)
	}

	stored, err := profiles.GetByUsername(t.Context(), "JANEDOE")
	if err != nil {
		t.Fatalf("expected profile stored under username: %v", err)
	}
	if stored.ID != callerID {
		t.Fatalf("expected caller to own the profile, got %s", stored.ID)
	}
}

func TestSaveProfileKeepsTemplateHistory(t *testing.T) {
	router, _ := newTestRouter(profilesvc.User{ID: callerID, Username: "me", Name: "Me", UsedTemplates: []string{"studio"}})

	p := decodeProfile(t, request(router, http.MethodPut, `{"name":"Me","username":"me","template":"minimal-clean"}`))
	if strings.Join(p.UsedTemplates, ",") != "minimal-clean,studio" {
		t.Fatalf("expected most recent first, got %v", p.UsedTemplates)
	}

	p = decodeProfile(t, request(router, http.MethodPut, `{"name":"Me Again","username":"me"}`))
	if p.CurrentTemplate != "minimal-clean" || len(p.UsedTemplates) != 2 {
		t.Fatalf("expected history to survive a save without template, got %+v", p.UsedTemplates)
	}
}

func TestSaveProfileErrors(t *testing.T) {
	router, _ := newTestRouter(profilesvc.User{ID: "someone-else", Username: "taken", Name: "Other"})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"username taken", `{"name":"Me","username":"Taken"}`, http.StatusConflict},
		{"unusable username", `{"name":"Me","username":"!!!"}`, http.StatusUnprocessableEntity},
		{"unknown template", `{"name":"Me","template":"nope"}`, http.StatusUnprocessableEntity},
		{"bad email", `{"name":"Me","email":"not-an-email"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if resp := request(router, http.MethodPut, tt.body); resp.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, resp.Code, resp.Body.String())
			}
		})
	}
}

func TestSaveProfilePlatformSwitchDropsStaleValues(t *testing.T) {
	tests := []struct {
		name   string
		stored social.Link
		body   string
		want   social.Link
	}{
		{
			name:   "messaging to web",
			stored: social.Link{ID: "l1", Platform: "WhatsApp", URL: "https://wa.me/09171234567", DisplayName: "09171234567", IsVisible: true},
			body:   `{"id":"l1","platform":"GitHub","url":"https://wa.me/09171234567","display_name":"09171234567","is_visible":true}`,
			want:   social.Link{ID: "l1", Platform: "GitHub", IsVisible: true},
		},
		{
			name:   "web to messaging",
			stored: social.Link{ID: "l1", Platform: "GitHub", URL: "https://github.com/jane", DisplayName: "jane", IsVisible: true},
			body:   `{"id":"l1","platform":"WhatsApp","url":"https://github.com/jane","display_name":"jane","is_visible":true}`,
			want:   social.Link{ID: "l1", Platform: "WhatsApp", IsVisible: true},
		},
		{
			name:   "web to messaging with new number",
			stored: social.Link{ID: "l1", Platform: "GitHub", URL: "https://github.com/jane", DisplayName: "jane", IsVisible: true},
			body:   `{"id":"l1","platform":"Viber","url":"https://github.com/jane","display_name":"0917 123 4567","is_visible":false}`,
			want:   social.Link{ID: "l1", Platform: "Viber", URL: "viber://chat?number=09171234567", DisplayName: "09171234567"},
		},
		{
			name:   "same class keeps edits",
			stored: social.Link{ID: "l1", Platform: "GitHub", URL: "https://github.com/jane", DisplayName: "jane", IsVisible: true},
			body:   `{"id":"l1","platform":"Instagram","url":"https://instagram.com/jane","display_name":"@jane","is_visible":true}`,
			want:   social.Link{ID: "l1", Platform: "Instagram", URL: "https://instagram.com/jane", DisplayName: "@jane", IsVisible: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(profilesvc.User{
				ID:       callerID,
				Username: "me",
				Name:     "Me",
				Profile:  profilesvc.Profile{SocialLinks: []social.Link{tt.stored}},
			})

			p := decodeProfile(t, request(router, http.MethodPut, `{"name":"Me","username":"me","social_links":[`+tt.body+`]}`))
			if len(p.SocialLinks) != 1 {
				t.Fatalf("expected one link, got %+v", p.SocialLinks)
			}
			got := p.SocialLinks[0]
			if got.ID != tt.want.ID || got.Platform != tt.want.Platform || got.URL != tt.want.URL ||
				got.DisplayName != tt.want.DisplayName || got.IsVisible != tt.want.IsVisible {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
