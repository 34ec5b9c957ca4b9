package templates

import "github.com/janisto/cardfolio/internal/card/render"

// ListOutput for GET /templates
type ListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body ListData
}

// GetOutput for GET /templates/{slug}
type GetOutput struct {
	Body Template
}

// SaveOutput for PUT /templates/{slug}
type SaveOutput struct {
	Location string `header:"Location" doc:"URL of the saved template"`
	Body     Template
}

// PreviewOutput for POST /templates/preview
type PreviewOutput struct {
	Body render.Model
}
