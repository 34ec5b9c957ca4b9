package profile

import "github.com/janisto/cardfolio/internal/platform/timeutil"

// SocialLink is a link shown on the card.
type SocialLink struct {
	ID          string `json:"id,omitempty"           doc:"Link identifier, assigned when omitted"`
	Platform    string `json:"platform"               doc:"Platform name as entered"                       minLength:"1" maxLength:"50" example:"WhatsApp"`
	URL         string `json:"url,omitempty"          doc:"Link target; derived for messaging platforms"   maxLength:"2048"`
	DisplayName string `json:"display_name,omitempty" doc:"Display text, or phone digits for messaging"    maxLength:"100"`
	IsVisible   bool   `json:"is_visible"             doc:"Whether the link is shown and exported"      required:"false"`
}

// Profile is the caller's card owner record.
type Profile struct {
	ID              string        `json:"id"                         doc:"User identifier"                         example:"user-123"`
	IsNew           bool          `json:"is_new"                     doc:"True until the profile is first saved"`
	Name            string        `json:"name,omitempty"             doc:"Full name"                               example:"Jane Doe"`
	Firstname       string        `json:"firstname,omitempty"        doc:"First name"                              example:"Jane"`
	Lastname        string        `json:"lastname,omitempty"         doc:"Last name"                               example:"Doe"`
	DisplayName     string        `json:"display_name,omitempty"     doc:"Name shown on the card"                  example:"Jane D."`
	Username        string        `json:"username,omitempty"         doc:"Public username"                         example:"janedoe"`
	Email           string        `json:"email,omitempty"            doc:"Contact email"                           example:"jane@example.com"`
	AvatarURL       string        `json:"avatar_url,omitempty"       doc:"Avatar image"`
	Bio             string        `json:"bio,omitempty"              doc:"Short bio"`
	Phone           string        `json:"phone,omitempty"            doc:"Phone numbers, comma separated"          example:"+63 912 345 6789"`
	Website         string        `json:"website,omitempty"          doc:"Websites, comma separated"               example:"https://jane.dev"`
	Location        string        `json:"location,omitempty"         doc:"Free-form location"                      example:"Manila"`
	SocialLinks     []SocialLink  `json:"social_links"               doc:"Social links in display order"`
	CurrentTemplate string        `json:"current_template,omitempty" doc:"Template shown on the public card"       example:"minimal-clean"`
	UsedTemplates   []string      `json:"used_templates"             doc:"Applied templates, most recent first"`
	CreatedAt       timeutil.Time `json:"created_at"                 doc:"Creation timestamp"                      example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt       timeutil.Time `json:"updated_at"                 doc:"Last update timestamp"                   example:"2024-01-15T10:30:00.000Z"`
}
