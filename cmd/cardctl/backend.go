package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/janisto/cardfolio/internal/platform/auth"
	"github.com/janisto/cardfolio/internal/platform/config"
	"github.com/janisto/cardfolio/internal/platform/firebase"
	applog "github.com/janisto/cardfolio/internal/platform/logging"
	"github.com/janisto/cardfolio/internal/service/profile"
	"github.com/janisto/cardfolio/internal/service/remote"
)

// backend is the profile store a command works against.
type backend struct {
	profiles profile.Service
	// verifier resolves --token to a user id; nil when tokens cannot be checked.
	verifier auth.Verifier
	debounce time.Duration
	close    func()
}

type openFunc func(ctx context.Context) (*backend, error)

var errMemoryBackend = errors.New("the memory backend is per process; set STORE_BACKEND to remote or firestore")

// openBackend connects to the store named by the environment.
func openBackend(ctx context.Context) (*backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	b := &backend{debounce: cfg.UsernameDebounce, close: func() {}}

	switch cfg.Backend {
	case config.BackendRemote:
		client := remote.NewClient(&http.Client{Timeout: 10 * time.Second}, remote.WithBaseURL(cfg.CardAPIURL))
		b.profiles = client.Profiles()
		b.verifier = client.Verifier()
	case config.BackendFirestore:
		clients, err := firebase.InitializeClients(ctx, firebase.Config{
			ProjectID:       cfg.ProjectID,
			CredentialsFile: cfg.CredentialsFile,
			Firestore:       true,
		})
		if err != nil {
			return nil, err
		}
		b.profiles = profile.NewFirestoreStore(clients.Firestore)
		b.verifier = clients.Verifier()
		b.close = func() {
			if err := clients.Close(); err != nil {
				applog.LogError(ctx, "firestore close error", err)
			}
		}
	default:
		return nil, errMemoryBackend
	}
	return b, nil
}

// credential builds the caller's credential. A token without a user id is
// resolved through the verifier.
func (b *backend) credential(ctx context.Context, uid, token string) (auth.Credential, error) {
	cred := auth.Credential{UserID: uid, Token: token}
	if cred.UserID != "" || token == "" || b.verifier == nil {
		return cred, nil
	}
	id, err := b.verifier.Verify(ctx, token)
	if err != nil {
		return auth.Credential{}, err
	}
	cred.UserID = id.UID
	return cred, nil
}
