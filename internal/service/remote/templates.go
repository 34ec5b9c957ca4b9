package remote

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/janisto/cardfolio/internal/platform/auth"
	applog "github.com/janisto/cardfolio/internal/platform/logging"
	"github.com/janisto/cardfolio/internal/service/template"
)

var templateErrors = statusErrors{
	notFound: template.ErrNotFound,
	conflict: template.ErrSlugConflict,
	invalid:  template.ErrInvalid,
}

// TemplateStore implements template.Service against the card API.
type TemplateStore struct {
	c *Client
	// now is replaced in tests.
	now func() time.Time
}

// Get fetches a template by slug.
func (s *TemplateStore) Get(ctx context.Context, slug string) (*template.Template, error) {
	resp, err := s.c.doRequest(ctx, http.MethodGet, "/templates/"+url.PathEscape(slug), nil, auth.Credential{}, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var w wireTemplate
	if err := s.c.decodeResponse(ctx, resp, &w, templateErrors); err != nil {
		return nil, err
	}
	t := w.toTemplate()
	if t.Slug == "" {
		t.Slug = slug
	}
	return &t, nil
}

// List fetches the visible or hidden templates. The API filters only on
// visibility, so search and category are applied locally.
func (s *TemplateStore) List(ctx context.Context, params template.ListParams) ([]template.Template, error) {
	query := url.Values{"hidden": {strconv.FormatBool(params.Hidden)}}
	resp, err := s.c.doRequest(ctx, http.MethodGet, "/templates", query, auth.CredentialFromContext(ctx), nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var ws []wireTemplate
	if err := s.c.decodeResponse(ctx, resp, &ws, templateErrors); err != nil {
		return nil, err
	}

	out := make([]template.Template, 0, len(ws))
	for _, w := range ws {
		t := w.toTemplate()
		if template.Match(t, params) {
			out = append(out, t)
		}
	}
	template.Sort(out)
	return out, nil
}

// Save creates the template when slug is unknown and updates it in place
// otherwise. A rename onto a slug held by another template fails with
// template.ErrSlugConflict before anything is written.
func (s *TemplateStore) Save(ctx context.Context, cred auth.Credential, slug string, t template.Template) (*template.Template, error) {
	saved, err := s.save(ctx, cred, slug, t)
	applog.LogAudit(ctx, applog.Audit{
		Action:       "save",
		UserID:       cred.UserID,
		ResourceType: "template",
		ResourceID:   slug,
		Err:          err,
	}, categorizeTemplateError)
	return saved, err
}

func (s *TemplateStore) save(ctx context.Context, cred auth.Credential, slug string, t template.Template) (*template.Template, error) {
	prepared, err := template.Prepare(t)
	if err != nil {
		return nil, err
	}

	var existing *template.Template
	if slug != "" {
		existing, err = s.Get(ctx, slug)
		if err != nil && !errors.Is(err, template.ErrNotFound) {
			return nil, err
		}
	}
	if prepared.Slug != slug {
		other, err := s.Get(ctx, prepared.Slug)
		switch {
		case err == nil && (existing == nil || other.ID != existing.ID):
			return nil, template.ErrSlugConflict
		case err != nil && !errors.Is(err, template.ErrNotFound):
			return nil, err
		}
	}

	method, path := http.MethodPost, "/templates/store"
	if existing != nil {
		prepared.ID = existing.ID
		prepared.CreatedAt = existing.CreatedAt
		prepared.Downloads = existing.Downloads
		method, path = http.MethodPut, "/templates/"+url.PathEscape(existing.ID)
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	payload, err := newTemplatePayload(prepared, now())
	if err != nil {
		return nil, err
	}

	resp, err := s.c.doRequest(ctx, method, path, nil, cred, payload)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var w wireTemplate
	if err := s.c.decodeResponse(ctx, resp, &w, templateErrors); err != nil {
		return nil, err
	}
	saved := w.toTemplate()
	if saved.Slug == "" {
		// Some deployments answer with a status body only.
		saved = prepared
	}
	return &saved, nil
}

func categorizeTemplateError(err error) string {
	switch {
	case errors.Is(err, template.ErrSlugConflict):
		return "slug_conflict"
	case errors.Is(err, template.ErrNotFound):
		return "not_found"
	case errors.Is(err, template.ErrInvalid):
		return "invalid"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	default:
		return "internal_error"
	}
}

// Compile-time interface check
var _ template.Service = (*TemplateStore)(nil)
