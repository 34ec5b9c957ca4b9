package profile

// GetInput for GET /profile (no body needed)
type GetInput struct{}

// SaveInput for PUT /profile
type SaveInput struct {
	Body struct {
		Name        string       `json:"name,omitempty"         maxLength:"100" doc:"Full name"`
		Firstname   string       `json:"firstname,omitempty"    maxLength:"100" doc:"First name"`
		Lastname    string       `json:"lastname,omitempty"     maxLength:"100" doc:"Last name"`
		DisplayName string       `json:"display_name,omitempty" maxLength:"100" doc:"Name shown on the card"`
		Username    string       `json:"username,omitempty"     maxLength:"100" doc:"Public username; normalized before saving" example:"jane.doe"`
		Email       string       `json:"email,omitempty"        format:"email"  doc:"Contact email"`
		AvatarURL   string       `json:"avatar_url,omitempty"   format:"uri"    doc:"Avatar image"`
		Bio         string       `json:"bio,omitempty"          maxLength:"500" doc:"Short bio"`
		Phone       string       `json:"phone,omitempty"        maxLength:"200" doc:"Phone numbers, comma separated"`
		Website     string       `json:"website,omitempty"      maxLength:"500" doc:"Websites, comma separated"`
		Location    string       `json:"location,omitempty"     maxLength:"200" doc:"Free-form location"`
		SocialLinks []SocialLink `json:"social_links,omitempty" maxItems:"30"   doc:"Social links in display order"`
		Template    string       `json:"template,omitempty"     pattern:"^[a-z0-9]+(-[a-z0-9]+)*$" doc:"Apply this template to the public card"`
	}
}
