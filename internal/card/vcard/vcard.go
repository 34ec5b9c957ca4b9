// Package vcard assembles vCard 3.0 contact cards from a user's public profile.
package vcard

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/janisto/cardfolio/internal/card/social"
)

// MIMEType is the media type of Card.Text.
const MIMEType = "text/vcard"

const (
	crlf             = "\r\n"
	fallbackFilename = "contact"
	fallbackType     = "social"
)

// ErrNoName is returned when display name, name and username are all blank.
var ErrNoName = errors.New("contact has no name")

// User holds the identity fields of a contact.
type User struct {
	DisplayName string
	Name        string
	Username    string
	Email       string
}

// Profile holds the optional profile fields of a contact.
type Profile struct {
	Phone    string
	Website  string
	Location string
	Bio      string
}

// Card is a generated contact card ready for download.
type Card struct {
	Text     string
	Filename string
}

// Build renders a contact card. Lines whose source value is blank are
// omitted and hidden links are skipped. Output is deterministic for equal
// inputs.
func Build(user User, profile Profile, links []social.Link) (Card, error) {
	name := firstNonBlank(user.DisplayName, user.Name, user.Username)
	if name == "" {
		return Card{}, ErrNoName
	}

	var b strings.Builder
	line := func(prop, value string) {
		if value == "" {
			return
		}
		b.WriteString(prop)
		b.WriteByte(':')
		b.WriteString(value)
		b.WriteString(crlf)
	}

	line("BEGIN", "VCARD")
	line("VERSION", "3.0")
	line("FN", escapeText(name))
	line("TEL;TYPE=CELL", escapeText(strings.TrimSpace(profile.Phone)))
	line("EMAIL;TYPE=INTERNET", escapeText(strings.TrimSpace(user.Email)))
	line("URL", cleanURI(profile.Website))
	if loc := escapeText(strings.TrimSpace(profile.Location)); loc != "" {
		// pobox;ext;street;locality;region;code;country
		line("ADR;TYPE=HOME", ";;;"+loc+";;;")
	}
	line("NOTE", escapeText(strings.TrimSpace(profile.Bio)))
	for _, l := range social.Visible(links) {
		line("X-SOCIALPROFILE;TYPE="+typeParam(l.Platform), cleanURI(l.URL))
	}
	line("END", "VCARD")

	return Card{
		Text:     strings.TrimSpace(b.String()),
		Filename: Filename(user),
	}, nil
}

// Filename returns the download name for user's card.
func Filename(user User) string {
	base := sanitizeFilename(firstNonBlank(user.DisplayName, user.Username))
	if base == "" {
		base = fallbackFilename
	}
	return base + ".vcf"
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// escapeText applies RFC 2426 text escaping. Line breaks become \n; other
// control characters and Unicode line or paragraph separators are dropped.
func escapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	afterCR := false
	for _, r := range s {
		if r == '\n' && afterCR {
			afterCR = false
			continue
		}
		afterCR = r == '\r'
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case ',':
			b.WriteString(`\,`)
		case ';':
			b.WriteString(`\;`)
		case '\r', '\n':
			b.WriteString(`\n`)
		default:
			if breaksLine(r) {
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// cleanURI strips control characters so a value cannot break the record.
func cleanURI(s string) string {
	return strings.Map(func(r rune) rune {
		if breaksLine(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

// breaksLine reports runes that must never reach a content line verbatim.
// NEL (U+0085) is covered by unicode.IsControl.
func breaksLine(r rune) bool {
	return unicode.IsControl(r) || r == '\u2028' || r == '\u2029' || r == utf8.RuneError
}

func typeParam(platform string) string {
	t := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return -1
		}
	}, strings.ToLower(platform))
	if t == "" {
		return fallbackType
	}
	return t
}

func sanitizeFilename(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(`/\"`, r) {
			return -1
		}
		return r
	}, s))
}
