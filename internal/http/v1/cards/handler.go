// Package cards serves public business cards, their contact export and
// share data.
package cards

import (
	"context"
	"errors"
	"mime"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/janisto/cardfolio/internal/card/render"
	"github.com/janisto/cardfolio/internal/card/vcard"
	"github.com/janisto/cardfolio/internal/http/v1/apierr"
	applog "github.com/janisto/cardfolio/internal/platform/logging"
	profilesvc "github.com/janisto/cardfolio/internal/service/profile"
	templatesvc "github.com/janisto/cardfolio/internal/service/template"
)

// Handler holds the stores a card is composed from.
type Handler struct {
	profiles  profilesvc.Service
	templates templatesvc.Service
	origin    string
}

// Register wires card routes. origin is the public frontend that profile
// URLs point at.
func Register(api huma.API, profiles profilesvc.Service, templates templatesvc.Service, origin string) {
	h := &Handler{profiles: profiles, templates: templates, origin: origin}

	huma.Register(api, huma.Operation{
		OperationID: "get-card",
		Method:      http.MethodGet,
		Path:        "/cards/{username}",
		Summary:     "Get a business card",
		Description: "Composes the public card of a user from their most recently applied template.",
		Tags:        []string{"Cards"},
	}, h.card)

	huma.Register(api, huma.Operation{
		OperationID: "get-card-vcard",
		Method:      http.MethodGet,
		Path:        "/cards/{username}/vcard",
		Summary:     "Download contact card",
		Description: "Returns the user's public contact details as a vCard 3.0 file.",
		Tags:        []string{"Cards"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "vCard file",
				Content:     map[string]*huma.MediaType{vcard.MIMEType: {}},
			},
		},
	}, h.vcard)

	huma.Register(api, huma.Operation{
		OperationID: "get-card-share",
		Method:      http.MethodGet,
		Path:        "/cards/{username}/share",
		Summary:     "Get share data",
		Description: "Returns the canonical profile URL, which is also the QR code payload, with share sheet text.",
		Tags:        []string{"Cards"},
	}, h.share)
}

func (h *Handler) card(ctx context.Context, input *CardInput) (*CardOutput, error) {
	ctx = applog.With(ctx, zap.String("username", input.Username))
	var (
		user *profilesvc.User
		tpl  *templatesvc.Template
	)
	if input.Template != "" {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			user, err = h.profiles.GetByUsername(gctx, input.Username)
			return err
		})
		g.Go(func() error {
			var err error
			tpl, err = h.templates.Get(gctx, input.Template)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, mapServiceError(ctx, err)
		}
	} else {
		var err error
		if user, err = h.profiles.GetByUsername(ctx, input.Username); err != nil {
			return nil, mapServiceError(ctx, err)
		}
		tpl = h.currentTemplate(ctx, user)
	}

	model := render.Compose(tpl.Design(), user.Card(), render.Options{Origin: h.origin})
	return &CardOutput{Body: model}, nil
}

func (h *Handler) vcard(ctx context.Context, input *UsernameInput) (*VCardOutput, error) {
	user, err := h.profiles.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, mapServiceError(ctx, err)
	}
	card, err := render.ContactCard(user.Card())
	if err != nil {
		return nil, mapServiceError(ctx, err)
	}
	return &VCardOutput{
		ContentType:        vcard.MIMEType + "; charset=utf-8",
		ContentDisposition: mime.FormatMediaType("attachment", map[string]string{"filename": card.Filename}),
		Body:               []byte(card.Text),
	}, nil
}

func (h *Handler) share(ctx context.Context, input *UsernameInput) (*ShareOutput, error) {
	user, err := h.profiles.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, mapServiceError(ctx, err)
	}
	model := render.Compose(h.currentTemplate(ctx, user).Design(), user.Card(), render.Options{Origin: h.origin})
	return &ShareOutput{Body: model.Share}, nil
}

// currentTemplate loads the user's current template. A user without one, or
// whose template is gone, gets the default design.
func (h *Handler) currentTemplate(ctx context.Context, user *profilesvc.User) *templatesvc.Template {
	fallback := &templatesvc.Template{
		Layout:       templatesvc.DefaultLayout,
		ConnectStyle: templatesvc.DefaultConnectStyle,
	}
	slug, ok := user.CurrentTemplate()
	if !ok {
		return fallback
	}
	tpl, err := h.templates.Get(ctx, slug)
	if err != nil {
		applog.LogWarn(ctx, "current template unavailable", zap.String("template", slug), zap.Error(err))
		return fallback
	}
	return tpl
}

func mapServiceError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, profilesvc.ErrNotFound):
		return huma.Error404NotFound("card not found")
	case errors.Is(err, templatesvc.ErrNotFound):
		return huma.Error404NotFound("template not found")
	case errors.Is(err, vcard.ErrNoName):
		return huma.Error422UnprocessableEntity("profile has no name to export")
	}
	return apierr.Map(ctx, err)
}
