// Package render composes the view model of a card from a template and an
// optional user.
package render

import (
	"net/url"
	"strings"

	"github.com/janisto/cardfolio/internal/card/share"
	"github.com/janisto/cardfolio/internal/card/social"
	"github.com/janisto/cardfolio/internal/card/theme"
	"github.com/janisto/cardfolio/internal/card/vcard"
)

// Layout names a card layout.
type Layout string

// Supported layouts.
const (
	LayoutProfessional Layout = "professional"
	LayoutCreative     Layout = "creative"
)

// ConnectStyle names a social link renderer.
type ConnectStyle string

// Supported connect styles.
const (
	ConnectGrid ConnectStyle = "grid"
	ConnectList ConnectStyle = "list"
)

// Placeholder text shown when no user is bound to the template.
const (
	PlaceholderName = "Your Name"
	PlaceholderBio  = "A short line about you"
	ConnectHeading  = "Connect with me"
)

// ContactKind identifies a contact row.
type ContactKind string

// Contact row kinds, in display order.
const (
	ContactEmail    ContactKind = "email"
	ContactPhone    ContactKind = "phone"
	ContactWebsite  ContactKind = "website"
	ContactLocation ContactKind = "location"
)

// ActionKind identifies a footer action.
type ActionKind string

// Footer actions.
const (
	ActionQR    ActionKind = "qr"
	ActionShare ActionKind = "share"
	ActionSave  ActionKind = "save"
)

// Template is the design a card is drawn with.
type Template struct {
	Slug         string
	Name         string
	Description  string
	Layout       string
	ConnectStyle string
	Theme        theme.Partial
}

// Person is the public profile a card is drawn for. The embedded contact
// fields feed both the card and its vCard export.
type Person struct {
	vcard.User
	vcard.Profile
	AvatarURL string
	Links     []social.Link
}

// Options carries request-level inputs to Compose.
type Options struct {
	// Origin is the public frontend origin used for share links.
	Origin string
}

// Header is the top block of a card.
type Header struct {
	Name      string `json:"name"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Initials  string `json:"initials"`
}

// Contact is one copyable contact row.
type Contact struct {
	Kind  ContactKind `json:"kind"`
	Value string      `json:"value"`
	Href  string      `json:"href"`
}

// LinkItem is one rendered social link.
type LinkItem struct {
	Platform  string `json:"platform"`
	Label     string `json:"label"`
	URL       string `json:"url"`
	Icon      string `json:"icon"`
	Messaging bool   `json:"messaging"`
}

// Links is the social link section.
type Links struct {
	Style   ConnectStyle `json:"style"`
	Heading string       `json:"heading"`
	Columns int          `json:"columns"`
	Items   []LinkItem   `json:"items"`
}

// Action is a footer button.
type Action struct {
	Kind    ActionKind `json:"kind"`
	Label   string     `json:"label"`
	Enabled bool       `json:"enabled"`
}

// Model is everything a client needs to draw a card.
type Model struct {
	Template    string         `json:"template"`
	Layout      Layout         `json:"layout"`
	Theme       theme.Theme    `json:"theme"`
	Placeholder bool           `json:"placeholder"`
	Header      Header         `json:"header"`
	Contacts    []Contact      `json:"contacts"`
	Links       *Links         `json:"links,omitempty"`
	Actions     []Action       `json:"actions"`
	Share       share.Identity `json:"share"`
}

type layout interface {
	header(p *Person) Header
	contacts(p *Person) []Contact
}

type linkRenderer interface {
	render(links []social.Link) *Links
}

var layouts = map[Layout]layout{
	LayoutProfessional: professional{},
	LayoutCreative:     creative{},
}

var renderers = map[ConnectStyle]linkRenderer{
	ConnectGrid: grid{},
	ConnectList: list{},
}

// ParseLayout returns the layout named s. Unknown names use the professional
// layout.
func ParseLayout(s string) Layout {
	l := Layout(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := layouts[l]; ok {
		return l
	}
	return LayoutProfessional
}

// ParseConnectStyle returns the connect style named s. Unknown names use the
// grid.
func ParseConnectStyle(s string) ConnectStyle {
	c := ConnectStyle(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := renderers[c]; ok {
		return c
	}
	return ConnectGrid
}

// Compose builds the view model for tpl. A nil person renders placeholders.
// Partial themes are resolved against the system defaults.
func Compose(tpl Template, user *Person, opts Options) Model {
	name := ParseLayout(tpl.Layout)
	l := layouts[name]

	m := Model{
		Template:    tpl.Slug,
		Layout:      name,
		Theme:       theme.Resolve(tpl.Theme),
		Placeholder: user == nil,
		Header:      l.header(user),
		Contacts:    l.contacts(user),
	}
	if user != nil {
		m.Links = renderers[ParseConnectStyle(tpl.ConnectStyle)].render(user.Links)
	}

	username := ""
	if user != nil {
		username = user.Username
	}
	m.Share = share.Compose(opts.Origin, username, tpl.Slug, tpl.Name, tpl.Description)

	_, contactErr := ContactCard(user)
	m.Actions = []Action{
		{Kind: ActionQR, Label: "QR Code", Enabled: user != nil},
		{Kind: ActionShare, Label: "Share", Enabled: user != nil},
		{Kind: ActionSave, Label: "Save", Enabled: contactErr == nil},
	}
	return m
}

// ContactCard builds the downloadable contact card of p.
func ContactCard(p *Person) (vcard.Card, error) {
	if p == nil {
		return vcard.Card{}, vcard.ErrNoName
	}
	return vcard.Build(p.User, p.Profile, p.Links)
}

func contactRow(kind ContactKind, value string) Contact {
	c := Contact{Kind: kind, Value: value}
	switch kind {
	case ContactEmail:
		c.Href = "mailto:" + value
	case ContactPhone:
		c.Href = "tel:" + value
	case ContactWebsite:
		c.Href = value
	case ContactLocation:
		c.Href = "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(value)
	}
	return c
}

func initials(name string) string {
	var b strings.Builder
	for _, f := range strings.Fields(name) {
		for _, r := range f {
			b.WriteString(strings.ToUpper(string(r)))
			break
		}
		if b.Len() >= 2 {
			break
		}
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}
