package profile

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/janisto/cardfolio/internal/card/identifier"
	"github.com/janisto/cardfolio/internal/card/social"
	"github.com/janisto/cardfolio/internal/platform/auth"
	applog "github.com/janisto/cardfolio/internal/platform/logging"
)

const (
	profilesCollection  = "profiles"
	usernamesCollection = "usernames"
)

// firestoreProfile maps to the Firestore document stored under the user ID.
type firestoreProfile struct {
	Name          string        `firestore:"name"`
	Firstname     string        `firestore:"firstname"`
	Lastname      string        `firestore:"lastname"`
	DisplayName   string        `firestore:"display_name"`
	Username      string        `firestore:"username"`
	Email         string        `firestore:"email"`
	AvatarURL     string        `firestore:"avatar_url"`
	Bio           string        `firestore:"bio"`
	Phone         string        `firestore:"phone"`
	Website       string        `firestore:"website"`
	Location      string        `firestore:"location"`
	SocialLinks   []social.Link `firestore:"social_links"`
	UsedTemplates []string      `firestore:"used_templates"`
	CreatedAt     time.Time     `firestore:"created_at"`
	UpdatedAt     time.Time     `firestore:"updated_at"`
}

// firestoreUsername reserves a username for one user. Its document ID is the
// lower-cased username.
type firestoreUsername struct {
	UserID string `firestore:"user_id"`
}

func toFirestore(u User) firestoreProfile {
	return firestoreProfile{
		Name:          u.Name,
		Firstname:     u.Firstname,
		Lastname:      u.Lastname,
		DisplayName:   u.DisplayName,
		Username:      u.Username,
		Email:         u.Email,
		AvatarURL:     u.AvatarURL,
		Bio:           u.Profile.Bio,
		Phone:         u.Profile.Phone,
		Website:       u.Profile.Website,
		Location:      u.Profile.Location,
		SocialLinks:   u.Profile.SocialLinks,
		UsedTemplates: u.UsedTemplates,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (fp firestoreProfile) toUser(id string) *User {
	return &User{
		ID:          id,
		Name:        fp.Name,
		Firstname:   fp.Firstname,
		Lastname:    fp.Lastname,
		DisplayName: fp.DisplayName,
		Username:    fp.Username,
		Email:       fp.Email,
		AvatarURL:   fp.AvatarURL,
		Profile: Profile{
			Bio:         fp.Bio,
			Phone:       fp.Phone,
			Website:     fp.Website,
			Location:    fp.Location,
			SocialLinks: fp.SocialLinks,
		},
		UsedTemplates: fp.UsedTemplates,
		CreatedAt:     fp.CreatedAt,
		UpdatedAt:     fp.UpdatedAt,
	}
}

// FirestoreStore implements Service using Firestore. Username uniqueness is
// kept by a reservation document per username, updated in the same
// transaction as the profile.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// GetByUsername resolves username through its reservation and loads the profile.
func (s *FirestoreStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	owner, err := s.usernameOwner(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.get(ctx, owner)
}

// Current loads the caller's profile.
func (s *FirestoreStore) Current(ctx context.Context, cred auth.Credential) (*User, error) {
	if err := requireCredential(cred); err != nil {
		return nil, err
	}
	return s.get(ctx, cred.UserID)
}

// UsernameTaken reports whether another user holds username.
func (s *FirestoreStore) UsernameTaken(ctx context.Context, cred auth.Credential, username string) (bool, error) {
	owner, err := s.usernameOwner(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return owner != cred.UserID, nil
}

// Save replaces the caller's profile and moves their username reservation
// when the username changes.
func (s *FirestoreStore) Save(ctx context.Context, cred auth.Credential, u User) (*User, error) {
	if err := requireCredential(cred); err != nil {
		return nil, err
	}
	prepared, err := Prepare(u)
	if err != nil {
		return nil, err
	}

	profileRef := s.client.Collection(profilesCollection).Doc(cred.UserID)
	usernames := s.client.Collection(usernamesCollection)
	now := time.Now().UTC()

	var result *User

	err = s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var existing *firestoreProfile
		doc, err := tx.Get(profileRef)
		switch {
		case err == nil && doc.Exists():
			existing = &firestoreProfile{}
			if err := doc.DataTo(existing); err != nil {
				return err
			}
		case err != nil && status.Code(err) != codes.NotFound:
			return err
		}

		var newRef *firestore.DocumentRef
		if prepared.Username != "" {
			newRef = usernames.Doc(usernameKey(prepared.Username))
			res, err := tx.Get(newRef)
			if err != nil && status.Code(err) != codes.NotFound {
				return err
			}
			if err == nil && res.Exists() {
				var fu firestoreUsername
				if err := res.DataTo(&fu); err != nil {
					return err
				}
				if fu.UserID != cred.UserID {
					return ErrUsernameTaken
				}
			}
		}

		next := prepared
		next.ID = cred.UserID
		next.CreatedAt = now
		if existing != nil {
			next.CreatedAt = existing.CreatedAt
			if existing.Username != "" && usernameKey(existing.Username) != usernameKey(next.Username) {
				if err := tx.Delete(usernames.Doc(usernameKey(existing.Username))); err != nil {
					return err
				}
			}
		}
		next.UpdatedAt = now

		if newRef != nil {
			if err := tx.Set(newRef, firestoreUsername{UserID: cred.UserID}); err != nil {
				return err
			}
		}
		if err := tx.Set(profileRef, toFirestore(next)); err != nil {
			return err
		}
		result = &next
		return nil
	})

	applog.LogAudit(ctx, applog.Audit{
		Action:       "save",
		UserID:       cred.UserID,
		ResourceType: "profile",
		ResourceID:   cred.UserID,
		Err:          err,
	}, categorizeError)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *FirestoreStore) get(ctx context.Context, userID string) (*User, error) {
	doc, err := s.client.Collection(profilesCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var fp firestoreProfile
	if err := doc.DataTo(&fp); err != nil {
		return nil, err
	}
	return fp.toUser(userID), nil
}

func (s *FirestoreStore) usernameOwner(ctx context.Context, username string) (string, error) {
	if !identifier.ValidUsername(username) {
		return "", ErrNotFound
	}
	doc, err := s.client.Collection(usernamesCollection).Doc(usernameKey(username)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", ErrNotFound
		}
		return "", err
	}
	var fu firestoreUsername
	if err := doc.DataTo(&fu); err != nil {
		return "", err
	}
	return fu.UserID, nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
