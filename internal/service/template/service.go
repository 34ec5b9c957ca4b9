package template

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/janisto/cardfolio/internal/card/commerce"
	"github.com/janisto/cardfolio/internal/card/identifier"
	"github.com/janisto/cardfolio/internal/card/render"
	"github.com/janisto/cardfolio/internal/card/theme"
	"github.com/janisto/cardfolio/internal/platform/auth"
)

// Service errors
var (
	ErrNotFound     = errors.New("template not found")
	ErrSlugConflict = errors.New("template slug already in use")
	ErrInvalid      = errors.New("invalid template")
)

// Layout and connect style defaults for templates that do not set them.
const (
	DefaultLayout       = "professional"
	DefaultConnectStyle = "grid"
)

// Template is an admin-authored card design.
type Template struct {
	ID            string
	Slug          string
	Name          string
	Description   string
	PreviewURL    string
	ThumbnailURL  string
	Category      commerce.Category
	Price         float64
	OriginalPrice float64
	Discount      float64
	Layout        string
	ConnectStyle  string
	Theme         theme.Partial
	Features      []string
	Tags          []string
	IsPopular     bool
	IsNew         bool
	IsHidden      bool
	Downloads     int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsPremium is derived from Category.
func (t Template) IsPremium() bool {
	return t.Category.IsPremium()
}

// Pricing returns the pricing editor for t.
func (t Template) Pricing() commerce.Pricing {
	return commerce.NewPricing(t.Category, t.OriginalPrice, t.Discount)
}

// Design returns the fields the card renderer draws with.
func (t Template) Design() render.Template {
	return render.Template{
		Slug:         t.Slug,
		Name:         t.Name,
		Description:  t.Description,
		Layout:       t.Layout,
		ConnectStyle: t.ConnectStyle,
		Theme:        t.Theme,
	}
}

// ListParams filters List results.
type ListParams struct {
	// Search matches template names case-insensitively.
	Search string
	// Category restricts results when non-empty.
	Category commerce.Category
	// Hidden selects hidden templates instead of visible ones.
	Hidden bool
}

// Service defines template operations.
//
// Implementations must pass saved templates through Prepare so the slug,
// category and price are derived consistently, and must return List
// results in Sort order.
type Service interface {
	Get(ctx context.Context, slug string) (*Template, error)
	List(ctx context.Context, params ListParams) ([]Template, error)
	// Save stores the whole template under slug. A template whose derived
	// slug differs from slug is moved to the new slug.
	Save(ctx context.Context, cred auth.Credential, slug string, t Template) (*Template, error)
}

// Prepare derives the stored fields of t: a missing slug comes from the name,
// an empty category means free, pricing is clamped and recomputed, layout
// and connect style get their defaults and a new template gets an ID.
func Prepare(t Template) (Template, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return Template{}, errors.Join(ErrInvalid, errors.New("name is required"))
	}
	t.Slug = strings.TrimSpace(t.Slug)
	if t.Slug == "" {
		t.Slug = identifier.GenerateSlug(t.Name)
	}
	if !identifier.ValidSlug(t.Slug) {
		return Template{}, errors.Join(ErrInvalid, errors.New("slug must be lowercase letters, digits and single hyphens"))
	}
	if t.Category == "" {
		t.Category = commerce.CategoryFree
	}
	if _, err := commerce.ParseCategory(string(t.Category)); err != nil {
		return Template{}, errors.Join(ErrInvalid, err)
	}

	p := t.Pricing()
	t.OriginalPrice = p.OriginalPrice()
	t.Discount = p.Discount()
	t.Price = p.Price()

	if t.Layout == "" {
		t.Layout = DefaultLayout
	}
	if t.ConnectStyle == "" {
		t.ConnectStyle = DefaultConnectStyle
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.Features = slices.Clone(t.Features)
	t.Tags = slices.Clone(t.Tags)
	return t, nil
}

// Match reports whether t passes params.
func Match(t Template, params ListParams) bool {
	if t.IsHidden != params.Hidden {
		return false
	}
	if params.Category != "" && t.Category != params.Category {
		return false
	}
	if q := strings.TrimSpace(params.Search); q != "" {
		return strings.Contains(strings.ToLower(t.Name), strings.ToLower(q))
	}
	return true
}

// Sort orders templates for listing: popular first, then newest, then by slug.
func Sort(ts []Template) {
	slices.SortStableFunc(ts, func(a, b Template) int {
		if a.IsPopular != b.IsPopular {
			if a.IsPopular {
				return -1
			}
			return 1
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrSlugConflict):
		return "slug_conflict"
	case errors.Is(err, ErrInvalid):
		return "invalid"
	default:
		return "internal_error"
	}
}
