package remote

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/janisto/cardfolio/internal/platform/auth"
	applog "github.com/janisto/cardfolio/internal/platform/logging"
	"github.com/janisto/cardfolio/internal/service/profile"
)

var profileErrors = statusErrors{
	notFound: profile.ErrNotFound,
	conflict: profile.ErrUsernameTaken,
	invalid:  profile.ErrInvalid,
}

// ProfileStore implements profile.Service against the card API.
type ProfileStore struct {
	c *Client
}

// GetByUsername fetches the public profile and its used templates in
// parallel. A failing used-templates call leaves the list empty.
func (s *ProfileStore) GetByUsername(ctx context.Context, username string) (*profile.User, error) {
	path := "/profile/" + url.PathEscape(username)

	var (
		w    wireUser
		used []wireUsedTemplate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := s.c.doRequest(gctx, http.MethodGet, path, nil, auth.Credential{}, nil)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()
		return s.c.decodeResponse(gctx, resp, &w, profileErrors)
	})
	g.Go(func() error {
		resp, err := s.c.doRequest(gctx, http.MethodGet, path+"/used-templates", nil, auth.Credential{}, nil)
		if err != nil {
			if gctx.Err() == nil {
				applog.LogWarn(ctx, "used templates request failed", zap.Error(err))
			}
			return nil
		}
		defer func() { _ = resp.Body.Close() }()
		if err := s.c.decodeResponse(gctx, resp, &used, profileErrors); err != nil {
			used = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	u := w.toUser()
	for _, t := range used {
		if t.Slug != "" {
			u.UsedTemplates = append(u.UsedTemplates, t.Slug)
		}
	}
	return &u, nil
}

// Current fetches the caller's own record.
func (s *ProfileStore) Current(ctx context.Context, cred auth.Credential) (*profile.User, error) {
	if cred.Token == "" {
		return nil, ErrUnauthorized
	}
	resp, err := s.c.doRequest(ctx, http.MethodGet, "/user", nil, cred, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var w wireUser
	if err := s.c.decodeResponse(ctx, resp, &w, profileErrors); err != nil {
		return nil, err
	}
	u := w.toUser()
	return &u, nil
}

// Save posts the caller's whole record. The API answers 409 when the
// username belongs to someone else.
func (s *ProfileStore) Save(ctx context.Context, cred auth.Credential, u profile.User) (*profile.User, error) {
	saved, err := s.save(ctx, cred, u)
	applog.LogAudit(ctx, applog.Audit{
		Action:       "save",
		UserID:       cred.UserID,
		ResourceType: "profile",
		ResourceID:   cred.UserID,
		Err:          err,
	}, categorizeProfileError)
	return saved, err
}

func (s *ProfileStore) save(ctx context.Context, cred auth.Credential, u profile.User) (*profile.User, error) {
	if cred.Token == "" {
		return nil, ErrUnauthorized
	}
	prepared, err := profile.Prepare(u)
	if err != nil {
		return nil, err
	}

	resp, err := s.c.doRequest(ctx, http.MethodPost, "/profile", nil, cred, newProfilePayload(prepared))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var w wireUser
	if err := s.c.decodeResponse(ctx, resp, &w, profileErrors); err != nil {
		return nil, err
	}
	if w.Username == "" && w.ID == "" {
		prepared.ID = cred.UserID
		return &prepared, nil
	}
	saved := w.toUser()
	saved.UsedTemplates = prepared.UsedTemplates
	return &saved, nil
}

// UsernameTaken looks the username up on the public profile endpoint. A
// profile owned by the caller does not count as taken.
func (s *ProfileStore) UsernameTaken(ctx context.Context, cred auth.Credential, username string) (bool, error) {
	resp, err := s.c.doRequest(ctx, http.MethodGet, "/profile/"+url.PathEscape(username), nil, auth.Credential{}, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = resp.Body.Close() }()

	var w wireUser
	err = s.c.decodeResponse(ctx, resp, &w, profileErrors)
	switch {
	case errors.Is(err, profile.ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return string(w.ID) != cred.UserID || cred.UserID == "", nil
}

func categorizeProfileError(err error) string {
	switch {
	case errors.Is(err, profile.ErrUsernameTaken):
		return "username_taken"
	case errors.Is(err, profile.ErrNotFound):
		return "not_found"
	case errors.Is(err, profile.ErrInvalid):
		return "invalid"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	default:
		return "internal_error"
	}
}

// Compile-time interface check
var _ profile.Service = (*ProfileStore)(nil)
