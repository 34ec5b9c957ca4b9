package auth

import (
	"context"
	"errors"
	"testing"
)

func TestMockVerifier(t *testing.T) {
	got, err := (&MockVerifier{Identity: TestAdmin()}).Verify(context.Background(), "any")
	if err != nil || !got.Admin {
		t.Fatalf("unexpected result %+v %v", got, err)
	}

	_, err = (&MockVerifier{Identity: TestIdentity(), Error: ErrInvalidToken}).Verify(context.Background(), "any")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected error to take precedence, got %v", err)
	}
}

func TestCredentialIsZero(t *testing.T) {
	if !(Credential{}).IsZero() {
		t.Fatal("expected zero credential")
	}
	if (Credential{UserID: "u"}).IsZero() {
		t.Fatal("expected non-zero credential")
	}
}
