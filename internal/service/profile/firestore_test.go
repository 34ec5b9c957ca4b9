package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/janisto/cardfolio/internal/card/social"
	"github.com/janisto/cardfolio/internal/testutil"
)

func newTestFirestoreStore(t *testing.T) *FirestoreStore {
	t.Helper()
	return NewFirestoreStore(testutil.Firestore(t))
}

func TestFirestoreSaveAndGetByUsername(t *testing.T) {
	store := newTestFirestoreStore(t)

	ctx := context.Background()
	_, err := store.Save(ctx, janeCred, User{
		Username:    "Jane",
		DisplayName: "Jane Doe",
		Profile: Profile{
			Phone:       "09170001111",
			SocialLinks: []social.Link{{Platform: "Viber", DisplayName: "0917", IsVisible: true}},
		},
		UsedTemplates: []string{"minimal-clean"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.GetByUsername(ctx, "jane")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != janeCred.UserID || got.Profile.Phone != "09170001111" {
		t.Fatalf("unexpected user %+v", got)
	}
	if len(got.Profile.SocialLinks) != 1 || got.Profile.SocialLinks[0].URL != "viber://chat?number=0917" {
		t.Fatalf("unexpected links %+v", got.Profile.SocialLinks)
	}
	if slug, _ := got.CurrentTemplate(); slug != "minimal-clean" {
		t.Fatalf("unexpected current template %q", slug)
	}
}

func TestFirestoreUsernameReservation(t *testing.T) {
	store := newTestFirestoreStore(t)

	ctx := context.Background()
	if _, err := store.Save(ctx, bobCred, User{Username: "bob"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Save(ctx, janeCred, User{Username: "Bob"}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	taken, err := store.UsernameTaken(ctx, janeCred, "bob")
	if err != nil || !taken {
		t.Fatalf("expected bob taken, got %v %v", taken, err)
	}
	taken, err = store.UsernameTaken(ctx, bobCred, "bob")
	if err != nil || taken {
		t.Fatalf("expected own username free, got %v %v", taken, err)
	}
	taken, err = store.UsernameTaken(ctx, janeCred, "nobody")
	if err != nil || taken {
		t.Fatalf("expected unknown username free, got %v %v", taken, err)
	}

	if _, err := store.Save(ctx, bobCred, User{Username: "robert"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.GetByUsername(ctx, "bob"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected old username released, got %v", err)
	}
}

func TestFirestoreCurrentNotFound(t *testing.T) {
	store := newTestFirestoreStore(t)

	if _, err := store.Current(context.Background(), janeCred); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetByUsername(context.Background(), "not/valid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for invalid username, got %v", err)
	}
}

func TestFirestoreGetCancelledContext(t *testing.T) {
	store := newTestFirestoreStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.GetByUsername(ctx, "jane")
	if err == nil {
		t.Fatal("expected error with canceled context")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("expected non-NotFound error, got ErrNotFound")
	}
}
