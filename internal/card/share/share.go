// Package share builds the public profile URL that is both shared and
// encoded in the profile's QR code.
package share

import "strings"

// DefaultTitle is the share title used when no template name is known.
const DefaultTitle = "My Profile"

// Identity is everything a visitor needs to share a profile. URL and
// QRPayload always come from the same ProfileURL call.
type Identity struct {
	URL        string `json:"url" doc:"Canonical public profile URL"`
	QRPayload  string `json:"qr_payload" doc:"String to encode in the QR code"`
	Title      string `json:"title" doc:"Share sheet title"`
	Text       string `json:"text" doc:"Share sheet text"`
	QRFilename string `json:"qr_filename" doc:"Suggested file name for a downloaded QR image"`
}

// ProfileURL joins origin and id. Trailing slashes are removed from origin and
// id is not escaped; identifiers are already limited to a URL-safe alphabet.
func ProfileURL(origin, id string) string {
	return strings.TrimRight(origin, "/") + "/" + id
}

// Compose returns the identity for a profile. username wins over slug.
// title and text describe the profile's template and may be blank.
func Compose(origin, username, slug, title, text string) Identity {
	id := username
	if id == "" {
		id = slug
	}
	u := ProfileURL(origin, id)

	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	base := username
	if base == "" {
		base = "profile"
	}
	return Identity{
		URL:        u,
		QRPayload:  u,
		Title:      title,
		Text:       text,
		QRFilename: base + "-qr.png",
	}
}
