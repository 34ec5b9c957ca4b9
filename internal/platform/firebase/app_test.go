package firebase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/janisto/cardfolio/internal/platform/auth"
	"github.com/janisto/cardfolio/internal/testutil"
)

func TestClientsCloseReturnsNilWhenFirestoreNil(t *testing.T) {
	c := &Clients{}
	if err := c.Close(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestInitializeClientsMissingCredentialsFile(t *testing.T) {
	_, err := InitializeClients(context.Background(), Config{
		ProjectID:       "test-project",
		CredentialsFile: filepath.Join(t.TempDir(), "missing.json"),
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestVerifierAgainstEmulator(t *testing.T) {
	testutil.Auth(t)

	ctx := context.Background()
	clients, err := InitializeClients(ctx, Config{ProjectID: testutil.ProjectID, Firestore: true})
	if err != nil {
		t.Fatalf("failed to initialize clients: %v", err)
	}
	defer func() { _ = clients.Close() }()

	if clients.Firestore == nil {
		t.Fatal("expected Firestore client")
	}

	user := testutil.SignUp(t, "jane@example.com", "secret123")
	id, err := clients.Verifier().Verify(ctx, user.IDToken)
	if err != nil {
		t.Fatalf("unexpected verify error: %v", err)
	}
	if id.UID != user.UID || id.Email != "jane@example.com" || id.Admin {
		t.Fatalf("unexpected identity: %+v", id)
	}

	if _, err := clients.Verifier().Verify(ctx, "not-a-token"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
