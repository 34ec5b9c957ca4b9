// Package templates serves the template gallery, admin editing and
// placeholder previews.
package templates

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/janisto/cardfolio/internal/card/commerce"
	"github.com/janisto/cardfolio/internal/card/render"
	"github.com/janisto/cardfolio/internal/card/theme"
	"github.com/janisto/cardfolio/internal/http/v1/apierr"
	"github.com/janisto/cardfolio/internal/platform/auth"
	applog "github.com/janisto/cardfolio/internal/platform/logging"
	"github.com/janisto/cardfolio/internal/platform/pagination"
	"github.com/janisto/cardfolio/internal/platform/timeutil"
	templatesvc "github.com/janisto/cardfolio/internal/service/template"
)

const cursorKind = "template"

// Register wires template routes. origin is the public frontend used for
// share links in previews; prefix is the API base path used in links.
func Register(api huma.API, svc templatesvc.Service, origin, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-templates",
		Method:      http.MethodGet,
		Path:        "/templates",
		Summary:     "List templates",
		Description: "Lists gallery templates, popular first. Filter by category or name; follow the Link header for more pages.",
		Tags:        []string{"Templates"},
	}, func(ctx context.Context, input *ListInput) (*ListOutput, error) {
		cursor, err := pagination.DecodeCursor(input.Cursor, cursorKind)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor")
		}

		params := templatesvc.ListParams{Search: input.Search, Hidden: input.Hidden}
		if input.Category != "" {
			c, err := commerce.ParseCategory(input.Category)
			if err != nil {
				return nil, huma.Error422UnprocessableEntity(err.Error())
			}
			params.Category = c
		}

		list, err := svc.List(ctx, params)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}

		page, err := pagination.Paginate(list, func(t templatesvc.Template) string { return t.Slug }, pagination.Request{
			Kind:   cursorKind,
			Cursor: cursor,
			Limit:  input.PageSize(),
			Path:   prefix + "/templates",
			Query:  listQuery(input),
		})
		if err != nil {
			return nil, huma.Error400BadRequest("cursor no longer matches a template")
		}

		items := make([]Template, len(page.Items))
		for i, t := range page.Items {
			items[i] = toHTTPTemplate(t)
		}
		return &ListOutput{
			Link: page.Link,
			Body: ListData{Items: items, Total: page.Total},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-template",
		Method:      http.MethodGet,
		Path:        "/templates/{slug}",
		Summary:     "Get a template",
		Description: "Returns one template with its theme resolved against the system defaults.",
		Tags:        []string{"Templates"},
	}, func(ctx context.Context, input *GetInput) (*GetOutput, error) {
		t, err := svc.Get(ctx, input.Slug)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &GetOutput{Body: toHTTPTemplate(*t)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-template",
		Method:      http.MethodPut,
		Path:        "/templates/{slug}",
		Summary:     "Create or replace a template",
		Description: "Stores the whole template. The slug is derived from the name when omitted and the price is recomputed from the category, original price and discount. A different body slug renames the template.",
		Tags:        []string{"Templates"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
		Metadata: map[string]any{auth.MetadataAdmin: true},
	}, func(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
		t, err := svc.Save(ctx, auth.CredentialFromContext(ctx), input.Slug, fromBody(input.Body))
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		if t.Slug != input.Slug {
			applog.LogInfo(ctx, "template renamed", zap.String("from", input.Slug), zap.String("to", t.Slug))
		}
		return &SaveOutput{
			Location: prefix + "/templates/" + t.Slug,
			Body:     toHTTPTemplate(*t),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "preview-template",
		Method:      http.MethodPost,
		Path:        "/templates/preview",
		Summary:     "Preview a template",
		Description: "Composes the card for an unsaved template with placeholder content.",
		Tags:        []string{"Templates"},
	}, func(ctx context.Context, input *PreviewInput) (*PreviewOutput, error) {
		t, err := templatesvc.Prepare(fromBody(input.Body))
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		model := render.Compose(t.Design(), nil, render.Options{Origin: origin})
		return &PreviewOutput{Body: model}, nil
	})
}

func listQuery(input *ListInput) url.Values {
	q := url.Values{}
	if input.Search != "" {
		q.Set("search", input.Search)
	}
	if input.Category != "" {
		q.Set("category", input.Category)
	}
	if input.Hidden {
		q.Set("hidden", strconv.FormatBool(true))
	}
	return q
}

func mapServiceError(ctx context.Context, err error) error {
	if errors.Is(err, templatesvc.ErrNotFound) {
		return huma.Error404NotFound("template not found")
	}
	return apierr.Map(ctx, err,
		apierr.Rule{Target: templatesvc.ErrSlugConflict, Status: http.StatusConflict, Detail: "template slug already in use"},
		apierr.Rule{Target: templatesvc.ErrInvalid, Status: http.StatusUnprocessableEntity},
	)
}

func fromBody(b TemplateBody) templatesvc.Template {
	return templatesvc.Template{
		Slug:          b.Slug,
		Name:          b.Name,
		Description:   b.Description,
		PreviewURL:    b.PreviewURL,
		ThumbnailURL:  b.ThumbnailURL,
		Category:      commerce.Category(b.Category),
		OriginalPrice: b.OriginalPrice,
		Discount:      b.Discount,
		Layout:        b.Layout,
		ConnectStyle:  b.ConnectStyle,
		Theme: theme.Partial{
			Colors: theme.PartialColors(b.Colors),
			Fonts:  theme.PartialFonts(b.Fonts),
		},
		Features:  b.Features,
		Tags:      b.Tags,
		IsPopular: b.IsPopular,
		IsNew:     b.IsNew,
		IsHidden:  b.IsHidden,
	}
}

func toHTTPTemplate(t templatesvc.Template) Template {
	p := t.Pricing()
	return Template{
		ID:                   t.ID,
		Slug:                 t.Slug,
		Name:                 t.Name,
		Description:          t.Description,
		PreviewURL:           t.PreviewURL,
		ThumbnailURL:         t.ThumbnailURL,
		Category:             string(t.Category),
		IsPremium:            t.IsPremium(),
		Price:                p.Price(),
		OriginalPrice:        p.OriginalPrice(),
		Discount:             p.Discount(),
		PriceDisplay:         p.Display(),
		OriginalPriceDisplay: p.DisplayOriginal(),
		Layout:               string(render.ParseLayout(t.Layout)),
		ConnectStyle:         string(render.ParseConnectStyle(t.ConnectStyle)),
		Theme:                theme.Resolve(t.Theme),
		Features:             nonNil(t.Features),
		Tags:                 nonNil(t.Tags),
		IsPopular:            t.IsPopular,
		IsNew:                t.IsNew,
		IsHidden:             t.IsHidden,
		Downloads:            t.Downloads,
		CreatedAt:            timeutil.NewTime(t.CreatedAt),
		UpdatedAt:            timeutil.NewTime(t.UpdatedAt),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
