package template

import (
	"context"
	"errors"
	"testing"

	"github.com/janisto/cardfolio/internal/card/commerce"
	"github.com/janisto/cardfolio/internal/card/theme"
	"github.com/janisto/cardfolio/internal/testutil"
)

func newTestFirestoreStore(t *testing.T) *FirestoreStore {
	t.Helper()
	return NewFirestoreStore(testutil.Firestore(t))
}

func TestFirestoreSaveAndGet(t *testing.T) {
	store := newTestFirestoreStore(t)

	ctx := context.Background()
	saved, err := store.Save(ctx, adminCred, "", Template{
		Name:          "Minimal Clean",
		Category:      commerce.CategoryPremium,
		OriginalPrice: 1000,
		Discount:      20,
		Theme:         theme.Partial{Colors: theme.PartialColors{Primary: "#000000"}},
		Tags:          []string{"minimal"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, saved.Slug)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != saved.ID || got.Price != 800 || got.Theme.Colors.Primary != "#000000" {
		t.Fatalf("unexpected stored template %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "minimal" {
		t.Fatalf("unexpected tags %v", got.Tags)
	}
}

func TestFirestoreGetNotFound(t *testing.T) {
	store := newTestFirestoreStore(t)

	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFirestoreRenameAndConflict(t *testing.T) {
	store := newTestFirestoreStore(t)

	ctx := context.Background()
	first, err := store.Save(ctx, adminCred, "", Template{Name: "First"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Save(ctx, adminCred, "", Template{Name: "Second"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	renamed, err := store.Save(ctx, adminCred, "first", Template{Name: "Renamed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if renamed.ID != first.ID || !renamed.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("expected identity preserved, got %+v", renamed)
	}
	if _, err := store.Get(ctx, "first"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected old slug removed, got %v", err)
	}

	if _, err := store.Save(ctx, adminCred, "renamed", Template{Name: "Second"}); !errors.Is(err, ErrSlugConflict) {
		t.Fatalf("expected ErrSlugConflict, got %v", err)
	}
}

func TestFirestoreList(t *testing.T) {
	store := newTestFirestoreStore(t)

	ctx := context.Background()
	for _, tpl := range []Template{
		{Name: "Minimal Clean"},
		{Name: "Bold", Category: commerce.CategoryPremium},
		{Name: "Hidden Clean", IsHidden: true},
	} {
		if _, err := store.Save(ctx, adminCred, "", tpl); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	visible, err := store.List(ctx, ListParams{Search: "clean"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(visible) != 1 || visible[0].Slug != "minimal-clean" {
		t.Fatalf("unexpected visible list %+v", visible)
	}

	hidden, err := store.List(ctx, ListParams{Hidden: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hidden) != 1 || hidden[0].Slug != "hidden-clean" {
		t.Fatalf("unexpected hidden list %+v", hidden)
	}
}

func TestFirestoreSaveKeepsDownloads(t *testing.T) {
	store := newTestFirestoreStore(t)
	ctx := context.Background()

	if _, err := store.Save(ctx, adminCred, "", Template{Name: "Minimal Clean", Downloads: 42}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	saved, err := store.Save(ctx, adminCred, "minimal-clean", Template{Name: "Minimal Clean", Description: "edited"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Downloads != 42 {
		t.Fatalf("expected 42 downloads after edit, got %d", saved.Downloads)
	}
	got, err := store.Get(ctx, "minimal-clean")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Downloads != 42 || got.Description != "edited" {
		t.Fatalf("unexpected stored template %+v", got)
	}
}
