// Package firebase initializes the Firebase app that backs token
// verification and the Firestore stores.
package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/janisto/cardfolio/internal/platform/auth"
)

// Config holds Firebase configuration.
type Config struct {
	ProjectID string
	// CredentialsFile is a service account JSON path. Empty means
	// application default credentials.
	CredentialsFile string
	// Firestore opens a Firestore client in addition to Auth.
	Firestore bool
}

// Clients holds initialized Firebase clients. Firestore is nil unless
// Config.Firestore was set.
type Clients struct {
	Auth      *fbauth.Client
	Firestore *firestore.Client
}

// InitializeClients sets up the Firebase app and its clients.
func InitializeClients(ctx context.Context, cfg Config) (*Clients, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		creds, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("reading credentials: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(creds))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase: %w", err)
	}

	ac, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing auth: %w", err)
	}
	clients := &Clients{Auth: ac}

	if cfg.Firestore {
		fc, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("initializing firestore: %w", err)
		}
		clients.Firestore = fc
	}
	return clients, nil
}

// Verifier returns the ID token verifier backed by the Auth client.
func (c *Clients) Verifier() *auth.FirebaseVerifier {
	return auth.NewFirebaseVerifier(c.Auth)
}

// Close closes the Firestore client.
func (c *Clients) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}
