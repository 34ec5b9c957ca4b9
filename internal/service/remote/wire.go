package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/janisto/cardfolio/internal/card/commerce"
	"github.com/janisto/cardfolio/internal/card/social"
	"github.com/janisto/cardfolio/internal/card/theme"
	"github.com/janisto/cardfolio/internal/service/profile"
	"github.com/janisto/cardfolio/internal/service/template"
)

// The card API is loose with scalar types: ids and prices arrive as numbers
// or strings, flags as booleans or 0/1, and list fields as arrays or as JSON
// encoded strings. The flex types below accept every observed form.

type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("expected number: %w", err)
	}
	*f = flexFloat(v)
	return nil
}

type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	switch strings.ToLower(s) {
	case "true", "1":
		*f = true
	case "false", "0", "", "null":
		*f = false
	default:
		return fmt.Errorf("expected boolean, got %s", data)
	}
	return nil
}

// flexStrings decodes an array of strings or a string holding one.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return err
		}
		inner = strings.TrimSpace(inner)
		if inner == "" {
			*f = nil
			return nil
		}
		if !strings.HasPrefix(inner, "[") {
			*f = flexStrings{inner}
			return nil
		}
		data = []byte(inner)
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*f = out
	return nil
}

type flexTime time.Time

func (f *flexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil || strings.TrimSpace(s) == "" {
		*f = flexTime(time.Time{})
		return nil //nolint:nilerr // timestamps are informational
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			*f = flexTime(t.UTC())
			return nil
		}
	}
	return fmt.Errorf("parsing time %q", s)
}

type wireTemplate struct {
	ID            flexString          `json:"id"`
	Slug          string              `json:"slug"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	PreviewURL    string              `json:"preview_url"`
	ThumbnailURL  string              `json:"thumbnail_url"`
	IsPremium     flexBool            `json:"is_premium"`
	Category      string              `json:"category"`
	Price         flexFloat           `json:"price"`
	OriginalPrice flexFloat           `json:"original_price"`
	Discount      flexFloat           `json:"discount"`
	Features      flexStrings         `json:"features"`
	Colors        theme.PartialColors `json:"colors"`
	Fonts         theme.PartialFonts  `json:"fonts"`
	Layout        string              `json:"layout"`
	Tags          flexStrings         `json:"tags"`
	IsPopular     flexBool            `json:"is_popular"`
	IsNew         flexBool            `json:"is_new"`
	IsHidden      flexBool            `json:"is_hidden"`
	Downloads     flexFloat           `json:"downloads"`
	ConnectStyle  string              `json:"connectStyle"`
	CreatedAt     flexTime            `json:"created_at"`
	UpdatedAt     flexTime            `json:"updated_at"`
}

// toTemplate converts the wire form. The category field wins; the legacy
// premium flag is used only when category is absent or unknown.
func (w wireTemplate) toTemplate() template.Template {
	category, err := commerce.ParseCategory(w.Category)
	if err != nil {
		category = commerce.CategoryOf(bool(w.IsPremium))
	}
	return template.Template{
		ID:            string(w.ID),
		Slug:          w.Slug,
		Name:          w.Name,
		Description:   w.Description,
		PreviewURL:    w.PreviewURL,
		ThumbnailURL:  w.ThumbnailURL,
		Category:      category,
		Price:         float64(w.Price),
		OriginalPrice: float64(w.OriginalPrice),
		Discount:      float64(w.Discount),
		Layout:        w.Layout,
		ConnectStyle:  w.ConnectStyle,
		Theme:         theme.Partial{Colors: w.Colors, Fonts: w.Fonts},
		Features:      []string(w.Features),
		Tags:          []string(w.Tags),
		IsPopular:     bool(w.IsPopular),
		IsNew:         bool(w.IsNew),
		IsHidden:      bool(w.IsHidden),
		Downloads:     int(w.Downloads),
		CreatedAt:     time.Time(w.CreatedAt),
		UpdatedAt:     time.Time(w.UpdatedAt),
	}
}

// templatePayload is what the card API accepts on store and update: list
// and theme fields as JSON strings, flags as 0/1.
type templatePayload struct {
	ID            string  `json:"id,omitempty"`
	Slug          string  `json:"slug"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	PreviewURL    string  `json:"preview_url"`
	ThumbnailURL  string  `json:"thumbnail_url"`
	IsPremium     int     `json:"is_premium"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	Discount      float64 `json:"discount"`
	Features      string  `json:"features"`
	Colors        string  `json:"colors"`
	Fonts         string  `json:"fonts"`
	Layout        string  `json:"layout"`
	Tags          string  `json:"tags"`
	IsPopular     int     `json:"is_popular"`
	IsNew         int     `json:"is_new"`
	IsHidden      int     `json:"is_hidden"`
	Downloads     int     `json:"downloads"`
	ConnectStyle  string  `json:"connectStyle"`
	CreatedAt     string  `json:"created_at,omitempty"`
	UpdatedAt     string  `json:"updated_at"`
}

func newTemplatePayload(t template.Template, now time.Time) (templatePayload, error) {
	enc := func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	}
	features, err := enc(nonNil(t.Features))
	if err != nil {
		return templatePayload{}, err
	}
	tags, err := enc(nonNil(t.Tags))
	if err != nil {
		return templatePayload{}, err
	}
	colors, err := enc(theme.Colors(t.Theme.Colors))
	if err != nil {
		return templatePayload{}, err
	}
	fonts, err := enc(theme.Fonts(t.Theme.Fonts))
	if err != nil {
		return templatePayload{}, err
	}

	p := templatePayload{
		ID:            t.ID,
		Slug:          t.Slug,
		Name:          t.Name,
		Description:   t.Description,
		PreviewURL:    t.PreviewURL,
		ThumbnailURL:  t.ThumbnailURL,
		IsPremium:     boolInt(t.IsPremium()),
		Category:      string(t.Category),
		Price:         t.Price,
		OriginalPrice: t.OriginalPrice,
		Discount:      t.Discount,
		Features:      features,
		Colors:        colors,
		Fonts:         fonts,
		Layout:        t.Layout,
		Tags:          tags,
		IsPopular:     boolInt(t.IsPopular),
		IsNew:         boolInt(t.IsNew),
		IsHidden:      boolInt(t.IsHidden),
		Downloads:     t.Downloads,
		ConnectStyle:  t.ConnectStyle,
		UpdatedAt:     now.UTC().Format(time.RFC3339),
	}
	if !t.CreatedAt.IsZero() {
		p.CreatedAt = t.CreatedAt.UTC().Format(time.RFC3339)
	}
	return p, nil
}

type wireLink struct {
	ID          flexString `json:"id"`
	Platform    string     `json:"platform"`
	URL         string     `json:"url"`
	DisplayName string     `json:"display_name"`
	IsVisible   flexBool   `json:"is_visible"`
}

type wireProfile struct {
	Bio         string     `json:"bio"`
	Phone       string     `json:"phone"`
	Website     string     `json:"website"`
	Location    string     `json:"location"`
	SocialLinks []wireLink `json:"socialLinks"`
}

type wireUser struct {
	ID          flexString   `json:"id"`
	Name        string       `json:"name"`
	Firstname   string       `json:"firstname"`
	Lastname    string       `json:"lastname"`
	DisplayName string       `json:"display_name"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	AvatarURL   string       `json:"avatar_url"`
	IsAdmin     flexBool     `json:"is_admin"`
	Profile     *wireProfile `json:"profile"`
	CreatedAt   flexTime     `json:"created_at"`
	UpdatedAt   flexTime     `json:"updated_at"`
}

func (w wireUser) toUser() profile.User {
	u := profile.User{
		ID:          string(w.ID),
		Name:        w.Name,
		Firstname:   w.Firstname,
		Lastname:    w.Lastname,
		DisplayName: w.DisplayName,
		Username:    w.Username,
		Email:       w.Email,
		AvatarURL:   w.AvatarURL,
		CreatedAt:   time.Time(w.CreatedAt),
		UpdatedAt:   time.Time(w.UpdatedAt),
	}
	if w.Profile != nil {
		u.Profile = profile.Profile{
			Bio:      w.Profile.Bio,
			Phone:    w.Profile.Phone,
			Website:  w.Profile.Website,
			Location: w.Profile.Location,
		}
		for _, l := range w.Profile.SocialLinks {
			u.Profile.SocialLinks = append(u.Profile.SocialLinks, social.Link{
				ID:          string(l.ID),
				Platform:    l.Platform,
				URL:         l.URL,
				DisplayName: l.DisplayName,
				IsVisible:   bool(l.IsVisible),
			})
		}
	}
	return u
}

// profilePayload is the body of POST /profile.
type profilePayload struct {
	Name        string         `json:"name"`
	Firstname   string         `json:"firstname"`
	Lastname    string         `json:"lastname"`
	DisplayName string         `json:"display_name"`
	Username    string         `json:"username"`
	Bio         string         `json:"bio"`
	Phone       string         `json:"phone"`
	Website     string         `json:"website"`
	Location    string         `json:"location"`
	SocialLinks []social.Link  `json:"social_links"`
	Templates   []string       `json:"used_templates,omitempty"`
}

func newProfilePayload(u profile.User) profilePayload {
	return profilePayload{
		Name:        u.Name,
		Firstname:   u.Firstname,
		Lastname:    u.Lastname,
		DisplayName: u.DisplayName,
		Username:    u.Username,
		Bio:         u.Profile.Bio,
		Phone:       u.Profile.Phone,
		Website:     u.Profile.Website,
		Location:    u.Profile.Location,
		SocialLinks: nonNilLinks(u.Profile.SocialLinks),
		Templates:   u.UsedTemplates,
	}
}

type wireUsedTemplate struct {
	Slug string `json:"slug"`
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilLinks(l []social.Link) []social.Link {
	if l == nil {
		return []social.Link{}
	}
	return l
}
