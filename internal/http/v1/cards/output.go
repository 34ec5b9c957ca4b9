package cards

import (
	"github.com/janisto/cardfolio/internal/card/render"
	"github.com/janisto/cardfolio/internal/card/share"
)

// CardOutput for GET /cards/{username}
type CardOutput struct {
	Body render.Model
}

// VCardOutput for GET /cards/{username}/vcard
type VCardOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// ShareOutput for GET /cards/{username}/share
type ShareOutput struct {
	Body share.Identity
}
