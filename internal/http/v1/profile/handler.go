// Package profile lets a signed-in user edit their card owner record.
package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/janisto/cardfolio/internal/card/identifier"
	"github.com/janisto/cardfolio/internal/card/social"
	"github.com/janisto/cardfolio/internal/http/v1/apierr"
	"github.com/janisto/cardfolio/internal/platform/auth"
	applog "github.com/janisto/cardfolio/internal/platform/logging"
	"github.com/janisto/cardfolio/internal/platform/timeutil"
	profilesvc "github.com/janisto/cardfolio/internal/service/profile"
	templatesvc "github.com/janisto/cardfolio/internal/service/template"
)

// Register registers profile endpoints.
func Register(api huma.API, profiles profilesvc.Service, templates templatesvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get current user's profile",
		Description: "Returns the caller's profile. A caller without one gets an empty draft with a placeholder social link.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *GetInput) (*GetOutput, error) {
		cred := auth.CredentialFromContext(ctx)

		u, err := profiles.Current(ctx, cred)
		if errors.Is(err, profilesvc.ErrNotFound) {
			draft := toHTTPProfile(&profilesvc.User{
				ID:      cred.UserID,
				Profile: profilesvc.Profile{SocialLinks: []social.Link{social.NewLink()}},
			})
			draft.IsNew = true
			return &GetOutput{Body: draft}, nil
		}
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &GetOutput{Body: toHTTPProfile(u)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-profile",
		Method:      http.MethodPut,
		Path:        "/profile",
		Summary:     "Save current user's profile",
		Description: "Replaces the caller's profile. The username is normalized and must be free, messaging links are re-derived from their phone digits and an optional template becomes the public card's design.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
		cred := auth.CredentialFromContext(ctx)

		existing, err := profiles.Current(ctx, cred)
		switch {
		case errors.Is(err, profilesvc.ErrNotFound):
			existing = &profilesvc.User{ID: cred.UserID}
		case err != nil:
			return nil, mapServiceError(ctx, err)
		}

		u := fromBody(input, existing)

		candidate := identifier.NormalizeUsername(input.Body.Username)
		if res := identifier.Check(ctx, profiles, cred, candidate, existing.Username); !res.Available {
			return nil, huma.Error409Conflict("username already taken")
		}

		if slug := input.Body.Template; slug != "" {
			if _, err := templates.Get(ctx, slug); err != nil {
				if errors.Is(err, templatesvc.ErrNotFound) {
					return nil, huma.Error422UnprocessableEntity("unknown template " + slug)
				}
				return nil, mapServiceError(ctx, err)
			}
			u.UseTemplate(slug)
		}

		saved, err := profiles.Save(ctx, cred, u)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		if saved.Username != existing.Username {
			applog.LogInfo(ctx, "username changed", zap.String("uid", cred.UserID), zap.String("username", saved.Username))
		}
		return &SaveOutput{Body: toHTTPProfile(saved)}, nil
	})
}

func mapServiceError(ctx context.Context, err error) error {
	return apierr.Map(ctx, err,
		apierr.Rule{Target: profilesvc.ErrNotFound, Status: http.StatusNotFound, Detail: "profile not found"},
		apierr.Rule{Target: profilesvc.ErrUsernameTaken, Status: http.StatusConflict, Detail: "username already taken"},
		apierr.Rule{Target: profilesvc.ErrInvalid, Status: http.StatusUnprocessableEntity},
	)
}

// fromBody builds the full record to store. The id, template history and
// creation time come from existing, and links are replayed over its stored ones.
func fromBody(input *SaveInput, existing *profilesvc.User) profilesvc.User {
	b := input.Body
	edited := make([]social.Link, len(b.SocialLinks))
	for i, l := range b.SocialLinks {
		edited[i] = social.Link{
			ID:          l.ID,
			Platform:    l.Platform,
			URL:         l.URL,
			DisplayName: l.DisplayName,
			IsVisible:   l.IsVisible,
		}
	}
	links := social.Apply(existing.Profile.SocialLinks, edited)
	return profilesvc.User{
		ID:          existing.ID,
		Name:        b.Name,
		Firstname:   b.Firstname,
		Lastname:    b.Lastname,
		DisplayName: b.DisplayName,
		Username:    b.Username,
		Email:       b.Email,
		AvatarURL:   b.AvatarURL,
		Profile: profilesvc.Profile{
			Bio:         b.Bio,
			Phone:       b.Phone,
			Website:     b.Website,
			Location:    b.Location,
			SocialLinks: links,
		},
		UsedTemplates: existing.UsedTemplates,
		CreatedAt:     existing.CreatedAt,
	}
}

func toHTTPProfile(u *profilesvc.User) Profile {
	links := make([]SocialLink, len(u.Profile.SocialLinks))
	for i, l := range u.Profile.SocialLinks {
		links[i] = SocialLink{
			ID:          l.ID,
			Platform:    l.Platform,
			URL:         l.URL,
			DisplayName: l.DisplayName,
			IsVisible:   l.IsVisible,
		}
	}
	current, _ := u.CurrentTemplate()
	used := u.UsedTemplates
	if used == nil {
		used = []string{}
	}
	return Profile{
		ID:              u.ID,
		Name:            u.Name,
		Firstname:       u.Firstname,
		Lastname:        u.Lastname,
		DisplayName:     u.DisplayName,
		Username:        u.Username,
		Email:           u.Email,
		AvatarURL:       u.AvatarURL,
		Bio:             u.Profile.Bio,
		Phone:           u.Profile.Phone,
		Website:         u.Profile.Website,
		Location:        u.Profile.Location,
		SocialLinks:     links,
		CurrentTemplate: current,
		UsedTemplates:   used,
		CreatedAt:       timeutil.NewTime(u.CreatedAt),
		UpdatedAt:       timeutil.NewTime(u.UpdatedAt),
	}
}
