package templates

import "github.com/janisto/cardfolio/internal/platform/pagination"

// ListInput for GET /templates
type ListInput struct {
	pagination.Params
	Search   string `query:"search"   doc:"Case-insensitive name filter" maxLength:"100"`
	Category string `query:"category" doc:"Only templates of this category" enum:"free,premium"`
	Hidden   bool   `query:"hidden"   doc:"List hidden templates instead of visible ones"`
}

// GetInput for GET /templates/{slug}
type GetInput struct {
	Slug string `path:"slug" doc:"Template slug" example:"minimal-clean"`
}

// SaveInput for PUT /templates/{slug}
type SaveInput struct {
	Slug string `path:"slug" doc:"Current slug; an unknown slug creates the template" pattern:"^[a-z0-9]+(-[a-z0-9]+)*$"`
	Body TemplateBody
}

// PreviewInput for POST /templates/preview
type PreviewInput struct {
	Body TemplateBody
}
