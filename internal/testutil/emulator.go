// Package testutil connects tests to the local Firebase emulators. Tests
// that need an emulator skip themselves when it is not running.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
)

// Emulator endpoints and the demo project they serve.
const (
	AuthHost      = "127.0.0.1:7110"
	FirestoreHost = "127.0.0.1:7130"
	ProjectID     = "demo-cardfolio"

	emulatorAPIKey = "emulator-key" //nolint:gosec // the Auth emulator accepts any key
)

// Firestore returns a client for an empty emulator database. The database is
// wiped again and the client closed when the test ends.
func Firestore(t *testing.T) *firestore.Client {
	t.Helper()
	if !reachable(FirestoreHost) {
		t.Skip("Firestore emulator not running on " + FirestoreHost)
	}
	t.Setenv("FIRESTORE_EMULATOR_HOST", FirestoreHost)
	wipeFirestore(t)

	client, err := firestore.NewClient(context.Background(), ProjectID)
	if err != nil {
		t.Fatalf("firestore client: %v", err)
	}
	t.Cleanup(func() {
		wipeFirestore(t)
		_ = client.Close()
	})
	return client
}

// Auth points the Firebase SDK at both emulators and removes every
// emulator account before and after the test.
func Auth(t *testing.T) {
	t.Helper()
	if !reachable(AuthHost) || !reachable(FirestoreHost) {
		t.Skip("Firebase emulators not running")
	}
	t.Setenv("FIREBASE_AUTH_EMULATOR_HOST", AuthHost)
	t.Setenv("FIRESTORE_EMULATOR_HOST", FirestoreHost)
	wipeAccounts(t)
	t.Cleanup(func() {
		wipeAccounts(t)
		wipeFirestore(t)
	})
}

// Account is a user created in the Auth emulator.
type Account struct {
	UID     string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

// SignUp registers an email account and returns its ID token.
func SignUp(t *testing.T, email, password string) Account {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		t.Fatalf("sign-up body: %v", err)
	}
	resp := call(t, http.MethodPost,
		"http://"+AuthHost+"/identitytoolkit.googleapis.com/v1/accounts:signUp?key="+emulatorAPIKey,
		bytes.NewReader(body))
	defer func() { _ = resp.Body.Close() }()

	var acct Account
	if err := json.NewDecoder(resp.Body).Decode(&acct); err != nil {
		t.Fatalf("sign-up response: %v", err)
	}
	if acct.IDToken == "" {
		t.Fatalf("sign-up for %s returned no token (status %d)", email, resp.StatusCode)
	}
	return acct
}

func wipeAccounts(t *testing.T) {
	t.Helper()
	resp := call(t, http.MethodDelete, "http://"+AuthHost+"/emulator/v1/projects/"+ProjectID+"/accounts", nil)
	_ = resp.Body.Close()
}

func wipeFirestore(t *testing.T) {
	t.Helper()
	resp := call(t, http.MethodDelete,
		"http://"+FirestoreHost+"/emulator/v1/projects/"+ProjectID+"/databases/(default)/documents", nil)
	_ = resp.Body.Close()
}

func call(t *testing.T, method, url string, body *bytes.Reader) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(context.Background(), method, url, body)
	} else {
		req, err = http.NewRequestWithContext(context.Background(), method, url, http.NoBody)
	}
	if err != nil {
		t.Fatalf("emulator request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("emulator %s %s: %v", method, url, err)
	}
	return resp
}

func reachable(host string) bool {
	conn, err := net.DialTimeout("tcp", host, 100*time.Millisecond)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
