// Package routes mounts every v1 operation on the API.
package routes

import (
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/cardfolio/internal/http/v1/cards"
	"github.com/janisto/cardfolio/internal/http/v1/identifiers"
	"github.com/janisto/cardfolio/internal/http/v1/pricing"
	"github.com/janisto/cardfolio/internal/http/v1/profile"
	"github.com/janisto/cardfolio/internal/http/v1/social"
	"github.com/janisto/cardfolio/internal/http/v1/templates"
	"github.com/janisto/cardfolio/internal/platform/auth"
	profilesvc "github.com/janisto/cardfolio/internal/service/profile"
	templatesvc "github.com/janisto/cardfolio/internal/service/template"
)

// Deps are the collaborators the handlers need.
type Deps struct {
	Verifier  auth.Verifier
	Profiles  profilesvc.Service
	Templates templatesvc.Service
	// Origin is the public frontend that profile URLs point at.
	Origin string
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, d Deps) {
	prefix := apiPrefix(api)

	// Operations with a Security requirement are authenticated here.
	api.UseMiddleware(auth.NewMiddleware(api, d.Verifier))

	cards.Register(api, d.Profiles, d.Templates, d.Origin)
	templates.Register(api, d.Templates, d.Origin, prefix)
	profile.Register(api, d.Profiles, d.Templates)
	identifiers.Register(api, d.Profiles)
	pricing.Register(api)
	social.Register(api)
}

func apiPrefix(api huma.API) string {
	for _, s := range api.OpenAPI().Servers {
		if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return ""
}
