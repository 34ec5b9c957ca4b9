package template

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/janisto/cardfolio/internal/card/commerce"
	"github.com/janisto/cardfolio/internal/card/theme"
	"github.com/janisto/cardfolio/internal/platform/auth"
	applog "github.com/janisto/cardfolio/internal/platform/logging"
)

const templatesCollection = "templates"

// firestoreTemplate maps to the Firestore document stored under the slug.
type firestoreTemplate struct {
	ID            string        `firestore:"id"`
	Name          string        `firestore:"name"`
	Description   string        `firestore:"description"`
	PreviewURL    string        `firestore:"preview_url"`
	ThumbnailURL  string        `firestore:"thumbnail_url"`
	Category      string        `firestore:"category"`
	Price         float64       `firestore:"price"`
	OriginalPrice float64       `firestore:"original_price"`
	Discount      float64       `firestore:"discount"`
	Layout        string        `firestore:"layout"`
	ConnectStyle  string        `firestore:"connect_style"`
	Theme         theme.Partial `firestore:"theme"`
	Features      []string      `firestore:"features"`
	Tags          []string      `firestore:"tags"`
	IsPopular     bool          `firestore:"is_popular"`
	IsNew         bool          `firestore:"is_new"`
	IsHidden      bool          `firestore:"is_hidden"`
	Downloads     int           `firestore:"downloads"`
	CreatedAt     time.Time     `firestore:"created_at"`
	UpdatedAt     time.Time     `firestore:"updated_at"`
}

func toFirestore(t Template) firestoreTemplate {
	return firestoreTemplate{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		PreviewURL:    t.PreviewURL,
		ThumbnailURL:  t.ThumbnailURL,
		Category:      string(t.Category),
		Price:         t.Price,
		OriginalPrice: t.OriginalPrice,
		Discount:      t.Discount,
		Layout:        t.Layout,
		ConnectStyle:  t.ConnectStyle,
		Theme:         t.Theme,
		Features:      t.Features,
		Tags:          t.Tags,
		IsPopular:     t.IsPopular,
		IsNew:         t.IsNew,
		IsHidden:      t.IsHidden,
		Downloads:     t.Downloads,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (ft firestoreTemplate) toTemplate(slug string) *Template {
	return &Template{
		ID:            ft.ID,
		Slug:          slug,
		Name:          ft.Name,
		Description:   ft.Description,
		PreviewURL:    ft.PreviewURL,
		ThumbnailURL:  ft.ThumbnailURL,
		Category:      commerce.Category(ft.Category),
		Price:         ft.Price,
		OriginalPrice: ft.OriginalPrice,
		Discount:      ft.Discount,
		Layout:        ft.Layout,
		ConnectStyle:  ft.ConnectStyle,
		Theme:         ft.Theme,
		Features:      ft.Features,
		Tags:          ft.Tags,
		IsPopular:     ft.IsPopular,
		IsNew:         ft.IsNew,
		IsHidden:      ft.IsHidden,
		Downloads:     ft.Downloads,
		CreatedAt:     ft.CreatedAt,
		UpdatedAt:     ft.UpdatedAt,
	}
}

// FirestoreStore implements Service using Firestore with transactions.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Get retrieves a template by slug.
func (s *FirestoreStore) Get(ctx context.Context, slug string) (*Template, error) {
	doc, err := s.client.Collection(templatesCollection).Doc(slug).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var ft firestoreTemplate
	if err := doc.DataTo(&ft); err != nil {
		return nil, err
	}
	return ft.toTemplate(doc.Ref.ID), nil
}

// List returns the templates matching params. Visibility is filtered by the
// query; name search and category are applied to the fetched documents.
func (s *FirestoreStore) List(ctx context.Context, params ListParams) ([]Template, error) {
	docs, err := s.client.Collection(templatesCollection).
		Where("is_hidden", "==", params.Hidden).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}

	out := make([]Template, 0, len(docs))
	for _, doc := range docs {
		var ft firestoreTemplate
		if err := doc.DataTo(&ft); err != nil {
			return nil, err
		}
		t := ft.toTemplate(doc.Ref.ID)
		if Match(*t, params) {
			out = append(out, *t)
		}
	}
	Sort(out)
	return out, nil
}

// Save stores t in a transaction. Renaming to a slug held by another
// template fails with ErrSlugConflict.
func (s *FirestoreStore) Save(ctx context.Context, cred auth.Credential, slug string, t Template) (*Template, error) {
	prepared, err := Prepare(t)
	if err != nil {
		return nil, err
	}

	coll := s.client.Collection(templatesCollection)
	oldRef := coll.Doc(slug)
	newRef := coll.Doc(prepared.Slug)
	now := time.Now().UTC()

	var result *Template

	err = s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var existing *firestoreTemplate
		doc, err := tx.Get(oldRef)
		switch {
		case err == nil && doc.Exists():
			existing = &firestoreTemplate{}
			if err := doc.DataTo(existing); err != nil {
				return err
			}
		case err != nil && status.Code(err) != codes.NotFound:
			return err
		}

		if prepared.Slug != slug {
			target, err := tx.Get(newRef)
			if err == nil && target.Exists() {
				return ErrSlugConflict
			}
			if err != nil && status.Code(err) != codes.NotFound {
				return err
			}
		}

		next := prepared
		if existing != nil {
			next.ID = existing.ID
			next.CreatedAt = existing.CreatedAt
			next.Downloads = existing.Downloads
		} else if next.CreatedAt.IsZero() {
			next.CreatedAt = now
		}
		next.UpdatedAt = now

		if err := tx.Set(newRef, toFirestore(next)); err != nil {
			return err
		}
		if existing != nil && prepared.Slug != slug {
			if err := tx.Delete(oldRef); err != nil {
				return err
			}
		}
		result = &next
		return nil
	})

	applog.LogAudit(ctx, applog.Audit{
		Action:       "save",
		UserID:       cred.UserID,
		ResourceType: "template",
		ResourceID:   prepared.Slug,
		Err:          err,
	}, categorizeError)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
