package profile

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/janisto/cardfolio/internal/card/identifier"
	"github.com/janisto/cardfolio/internal/card/render"
	"github.com/janisto/cardfolio/internal/card/social"
	"github.com/janisto/cardfolio/internal/card/vcard"
	"github.com/janisto/cardfolio/internal/platform/auth"
)

// Service errors
var (
	ErrNotFound      = errors.New("profile not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrInvalid       = errors.New("invalid profile")
)

// Profile holds the optional public fields of a user.
type Profile struct {
	Bio         string
	Phone       string
	Website     string
	Location    string
	SocialLinks []social.Link
}

// User is a card owner and their profile.
type User struct {
	ID          string
	Name        string
	Firstname   string
	Lastname    string
	DisplayName string
	Username    string
	Email       string
	AvatarURL   string
	Profile     Profile
	// UsedTemplates lists template slugs the user has applied, most recent first.
	UsedTemplates []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CurrentTemplate returns the slug of the template shown on the public page.
func (u User) CurrentTemplate() (string, bool) {
	if len(u.UsedTemplates) == 0 {
		return "", false
	}
	return u.UsedTemplates[0], true
}

// Card returns the public fields of u for rendering. A nil user yields nil,
// which renders placeholders.
func (u *User) Card() *render.Person {
	if u == nil {
		return nil
	}
	return &render.Person{
		User: vcard.User{
			DisplayName: u.DisplayName,
			Name:        u.Name,
			Username:    u.Username,
			Email:       u.Email,
		},
		Profile: vcard.Profile{
			Phone:    u.Profile.Phone,
			Website:  u.Profile.Website,
			Location: u.Profile.Location,
			Bio:      u.Profile.Bio,
		},
		AvatarURL: u.AvatarURL,
		Links:     u.Profile.SocialLinks,
	}
}

// UseTemplate makes slug the current template, keeping earlier ones in
// most-recent-first order without duplicates.
func (u *User) UseTemplate(slug string) {
	if slug == "" {
		return
	}
	u.UsedTemplates = append([]string{slug}, slices.DeleteFunc(slices.Clone(u.UsedTemplates), func(s string) bool {
		return s == slug
	})...)
}

// Service defines profile operations. Every mutation takes the caller's
// credential explicitly.
//
// Implementations must pass saved users through Prepare and must treat
// usernames as unique without regard to case.
type Service interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	Current(ctx context.Context, cred auth.Credential) (*User, error)
	// Save replaces the caller's whole user record.
	Save(ctx context.Context, cred auth.Credential, u User) (*User, error)
	// UsernameTaken reports whether username belongs to a user other than
	// the caller.
	UsernameTaken(ctx context.Context, cred auth.Credential, username string) (bool, error)
}

// Prepare normalizes u for storage: the username is reduced to its safe
// alphabet, text fields are trimmed, the email is lower-cased, messaging
// links are re-derived and blank template slugs are dropped.
func Prepare(u User) (User, error) {
	raw := strings.TrimSpace(u.Username)
	u.Username = identifier.NormalizeUsername(raw)
	if raw != "" && u.Username == "" {
		return User{}, errors.Join(ErrInvalid, errors.New("username has no usable characters"))
	}

	u.Name = strings.TrimSpace(u.Name)
	u.Firstname = strings.TrimSpace(u.Firstname)
	u.Lastname = strings.TrimSpace(u.Lastname)
	u.DisplayName = strings.TrimSpace(u.DisplayName)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Name == "" {
		u.Name = strings.TrimSpace(u.Firstname + " " + u.Lastname)
	}

	u.Profile.Bio = strings.TrimSpace(u.Profile.Bio)
	u.Profile.Phone = strings.TrimSpace(u.Profile.Phone)
	u.Profile.Website = strings.TrimSpace(u.Profile.Website)
	u.Profile.Location = strings.TrimSpace(u.Profile.Location)
	u.Profile.SocialLinks = social.Normalize(u.Profile.SocialLinks)

	u.UsedTemplates = slices.DeleteFunc(slices.Clone(u.UsedTemplates), func(s string) bool {
		return strings.TrimSpace(s) == ""
	})
	return u, nil
}

func usernameKey(username string) string {
	return strings.ToLower(username)
}

func requireCredential(cred auth.Credential) error {
	if cred.UserID == "" {
		return errors.Join(ErrInvalid, errors.New("credential required"))
	}
	return nil
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrUsernameTaken):
		return "username_taken"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalid):
		return "invalid"
	default:
		return "internal_error"
	}
}
