package templates

import (
	"github.com/janisto/cardfolio/internal/card/theme"
	"github.com/janisto/cardfolio/internal/platform/timeutil"
)

// Template is a stored template with its theme resolved and price formatted.
type Template struct {
	ID                   string        `json:"id"                               doc:"Unique identifier"                       example:"3f0c9a52-8a4e-4a38-9d55-0b6a4c1b2d10"`
	Slug                 string        `json:"slug"                             doc:"URL-safe identifier"                     example:"minimal-clean"`
	Name                 string        `json:"name"                             doc:"Display name"                            example:"Minimal Clean"`
	Description          string        `json:"description,omitempty"            doc:"Short description"`
	PreviewURL           string        `json:"preview_url,omitempty"            doc:"Large preview image"`
	ThumbnailURL         string        `json:"thumbnail_url,omitempty"          doc:"Gallery thumbnail"`
	Category             string        `json:"category"                         doc:"Sales category"                          example:"premium" enum:"free,premium"`
	IsPremium            bool          `json:"is_premium"                       doc:"Derived from category"`
	Price                float64       `json:"price"                            doc:"Effective price, zero when free"         example:"199.2"`
	OriginalPrice        float64       `json:"original_price"                   doc:"Price before discount"                   example:"249"`
	Discount             float64       `json:"discount"                         doc:"Discount percent"                        example:"20"`
	PriceDisplay         string        `json:"price_display"                    doc:"Formatted price or Free"                 example:"₱199.20"`
	OriginalPriceDisplay string        `json:"original_price_display,omitempty" doc:"Formatted original price when discounted" example:"₱249.00"`
	Layout               string        `json:"layout"                           doc:"Card layout"                             example:"professional"`
	ConnectStyle         string        `json:"connect_style"                    doc:"Social link renderer"                    example:"grid"`
	Theme                theme.Theme   `json:"theme"                            doc:"Resolved theme"`
	Features             []string      `json:"features"                         doc:"Feature bullet points"`
	Tags                 []string      `json:"tags"                             doc:"Search tags"`
	IsPopular            bool          `json:"is_popular"                       doc:"Shown first in the gallery"`
	IsNew                bool          `json:"is_new"                           doc:"Recently added"`
	IsHidden             bool          `json:"is_hidden"                        doc:"Excluded from the public gallery"`
	Downloads            int           `json:"downloads"                        doc:"Times applied to a profile"`
	CreatedAt            timeutil.Time `json:"created_at"                       doc:"Creation timestamp"                      example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt            timeutil.Time `json:"updated_at"                       doc:"Last update timestamp"                   example:"2024-01-15T10:30:00.000Z"`
}

// Colors is a partial color configuration. Blank slots use system defaults.
type Colors struct {
	Primary    string `json:"primary,omitempty"    example:"#1f2937"`
	Secondary  string `json:"secondary,omitempty"  example:"#6b7280"`
	Accent     string `json:"accent,omitempty"     example:"#3b82f6"`
	Background string `json:"background,omitempty" example:"#ffffff"`
	Text       string `json:"text,omitempty"       example:"#111827"`
}

// Fonts is a partial font configuration.
type Fonts struct {
	Heading string `json:"heading,omitempty" example:"Inter"`
	Body    string `json:"body,omitempty"    example:"Inter"`
}

// TemplateBody is the editable part of a template.
type TemplateBody struct {
	Slug          string   `json:"slug,omitempty"          doc:"Slug; derived from the name when omitted" pattern:"^[a-z0-9]+(-[a-z0-9]+)*$" maxLength:"100"`
	Name          string   `json:"name"                    doc:"Display name"                             minLength:"1"                      maxLength:"100" example:"Minimal Clean"`
	Description   string   `json:"description,omitempty"   doc:"Short description"                        maxLength:"500"`
	PreviewURL    string   `json:"preview_url,omitempty"   doc:"Large preview image"                      format:"uri"`
	ThumbnailURL  string   `json:"thumbnail_url,omitempty" doc:"Gallery thumbnail"                        format:"uri"`
	Category      string   `json:"category,omitempty"      doc:"Sales category, free when omitted"        enum:"free,premium"`
	OriginalPrice float64  `json:"original_price,omitempty" doc:"Price before discount; negative values are clamped to 0"`
	Discount      float64  `json:"discount,omitempty"      doc:"Discount percent; clamped to [0, 100]"`
	Layout        string   `json:"layout,omitempty"        doc:"Card layout"                              enum:"professional,creative"`
	ConnectStyle  string   `json:"connect_style,omitempty" doc:"Social link renderer"                     enum:"grid,list"`
	Colors        Colors   `json:"colors,omitempty"        doc:"Partial colors"`
	Fonts         Fonts    `json:"fonts,omitempty"         doc:"Partial fonts"`
	Features      []string `json:"features,omitempty"      doc:"Feature bullet points"`
	Tags          []string `json:"tags,omitempty"          doc:"Search tags"`
	IsPopular     bool     `json:"is_popular,omitempty"    doc:"Shown first in the gallery"`
	IsNew         bool     `json:"is_new,omitempty"        doc:"Recently added"`
	IsHidden      bool     `json:"is_hidden,omitempty"     doc:"Excluded from the public gallery"`
}

// ListData is the body of a template listing.
type ListData struct {
	Items []Template `json:"items" doc:"Templates on this page"`
	Total int        `json:"total" doc:"Templates matching the filters"`
}
