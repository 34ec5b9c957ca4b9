package social

import (
	"strings"

	"github.com/google/uuid"
)

// MaxPhoneDigits bounds the phone number kept for messaging links.
const MaxPhoneDigits = 11

// DefaultPlatform is the platform of the placeholder link offered to a new profile.
const DefaultPlatform = "Instagram"

// Link is a social link owned by a profile. For messaging platforms
// DisplayName holds the phone digits and URL is derived from them.
type Link struct {
	ID          string `json:"id,omitempty" firestore:"id" doc:"Link identifier"`
	Platform    string `json:"platform" firestore:"platform" doc:"Platform name as entered" example:"WhatsApp"`
	URL         string `json:"url,omitempty" firestore:"url" doc:"Link target; derived for messaging platforms"`
	DisplayName string `json:"display_name,omitempty" firestore:"display_name" doc:"Display text, or phone digits for messaging platforms"`
	IsVisible   bool   `json:"is_visible" firestore:"is_visible" doc:"Whether the link is shown publicly and exported"`
}

// NewLink returns the placeholder link for a new profile editor.
func NewLink() Link {
	return Link{ID: uuid.NewString(), Platform: DefaultPlatform, IsVisible: true}
}

// Kind classifies the link's platform.
func (l Link) Kind() Platform {
	return Parse(l.Platform)
}

// SetPlatform changes the platform. When the messaging classification flips,
// URL and DisplayName are cleared because free text and phone digits are not
// interchangeable. Switching between messaging platforms re-derives the URL.
func (l *Link) SetPlatform(name string) {
	before := l.Kind()
	l.Platform = name
	after := l.Kind()

	if before.IsMessaging() != after.IsMessaging() {
		l.URL = ""
		l.DisplayName = ""
		return
	}
	if after.IsMessaging() {
		l.URL = DeriveDeepLink(after, l.DisplayName)
	}
}

// SetHandle stores the display input. Messaging links keep only the first
// MaxPhoneDigits digits and derive the URL from them.
func (l *Link) SetHandle(input string) {
	p := l.Kind()
	if !p.IsMessaging() {
		l.DisplayName = input
		return
	}
	l.DisplayName = phoneDigits(input)
	l.URL = DeriveDeepLink(p, l.DisplayName)
}

// SetURL stores a user-supplied URL. It reports false and leaves the link
// unchanged for messaging links, whose URL is derived.
func (l *Link) SetURL(url string) bool {
	if l.Kind().IsMessaging() {
		return false
	}
	l.URL = url
	return true
}

// Apply replays edited links over the stored ones, matched by ID. The platform
// is set first so a messaging classification flip clears the stored URL and
// DisplayName; incoming values that merely echo the stored ones are then
// discarded. Links without a stored match are built through the same setters.
func Apply(stored, edited []Link) []Link {
	byID := make(map[string]Link, len(stored))
	for _, l := range stored {
		if l.ID != "" {
			byID[l.ID] = l
		}
	}
	out := make([]Link, len(edited))
	for i, in := range edited {
		old, ok := byID[in.ID]
		if !ok {
			old = Link{ID: in.ID}
		}
		l := old
		l.SetPlatform(in.Platform)
		handle, url := in.DisplayName, in.URL
		if old.Kind().IsMessaging() != l.Kind().IsMessaging() {
			if handle == old.DisplayName {
				handle = ""
			}
			if url == old.URL {
				url = ""
			}
		}
		l.SetHandle(handle)
		l.SetURL(url)
		l.IsVisible = in.IsVisible
		out[i] = l
	}
	return out
}

// Normalize returns a copy of links with every messaging link's handle and URL
// re-derived and missing ids assigned. It is applied before persisting a profile.
func Normalize(links []Link) []Link {
	out := make([]Link, len(links))
	for i, l := range links {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		l.Platform = strings.TrimSpace(l.Platform)
		if p := l.Kind(); p.IsMessaging() {
			l.DisplayName = phoneDigits(l.DisplayName)
			l.URL = DeriveDeepLink(p, l.DisplayName)
		}
		out[i] = l
	}
	return out
}

// Visible returns the visible links in their existing order.
func Visible(links []Link) []Link {
	out := make([]Link, 0, len(links))
	for _, l := range links {
		if l.IsVisible {
			out = append(out, l)
		}
	}
	return out
}

func phoneDigits(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == MaxPhoneDigits {
				break
			}
		}
	}
	return b.String()
}
