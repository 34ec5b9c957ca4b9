// Package apierr maps service errors to huma problem responses.
package apierr

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	applog "github.com/janisto/cardfolio/internal/platform/logging"
	"github.com/janisto/cardfolio/internal/service/remote"
)

// Rule maps errors matching Target to Status. An empty Detail uses the
// error's own message, which suits validation errors.
type Rule struct {
	Target error
	Status int
	Detail string
}

// Map returns the problem for err. Rules are tried in order before the card
// platform API errors. Anything else is logged and reported as a 500.
func Map(ctx context.Context, err error, rules ...Rule) error {
	for _, r := range rules {
		if errors.Is(err, r.Target) {
			detail := r.Detail
			if detail == "" {
				detail = Detail(err)
			}
			return huma.NewError(r.Status, detail)
		}
	}
	switch {
	case errors.Is(err, remote.ErrUnauthorized):
		return huma.Error401Unauthorized("card platform rejected the credentials")
	case errors.Is(err, remote.ErrUpstream):
		return huma.Error502BadGateway("card platform unavailable")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return huma.NewError(http.StatusServiceUnavailable, "request cancelled")
	}
	applog.LogError(ctx, "unhandled service error", err)
	return huma.Error500InternalServerError("internal error")
}

// Detail flattens a joined error into one line.
func Detail(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", ": ")
}
