// Package identifiers exposes slug generation and username availability.
package identifiers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/cardfolio/internal/card/identifier"
	"github.com/janisto/cardfolio/internal/http/v1/apierr"
	"github.com/janisto/cardfolio/internal/platform/auth"
	profilesvc "github.com/janisto/cardfolio/internal/service/profile"
)

// Register wires identifier routes.
func Register(api huma.API, profiles profilesvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "generate-slug",
		Method:      http.MethodPost,
		Path:        "/identifiers/slug",
		Summary:     "Generate a slug",
		Description: "Lower-cases the name and collapses every run of other characters into one hyphen.",
		Tags:        []string{"Identifiers"},
	}, func(_ context.Context, input *SlugInput) (*SlugOutput, error) {
		out := &SlugOutput{}
		out.Body.Slug = identifier.GenerateSlug(input.Body.Name)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "check-username",
		Method:      http.MethodGet,
		Path:        "/identifiers/usernames/{candidate}",
		Summary:     "Check username availability",
		Description: "Normalizes the candidate and reports whether it is free. The caller's own username is always available.",
		Tags:        []string{"Identifiers"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *UsernameInput) (*UsernameOutput, error) {
		cred := auth.CredentialFromContext(ctx)

		current := ""
		u, err := profiles.Current(ctx, cred)
		switch {
		case err == nil:
			current = u.Username
		case !errors.Is(err, profilesvc.ErrNotFound):
			return nil, apierr.Map(ctx, err)
		}

		candidate := identifier.NormalizeUsername(input.Candidate)
		res := identifier.Check(ctx, profiles, cred, candidate, current)
		return &UsernameOutput{Body: Availability{
			Candidate: res.Candidate,
			Valid:     identifier.ValidUsername(res.Candidate),
			Available: res.Available,
			Checked:   res.Checked,
		}}, nil
	})
}
