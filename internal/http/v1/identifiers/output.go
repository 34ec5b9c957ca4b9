package identifiers

// SlugOutput for POST /identifiers/slug
type SlugOutput struct {
	Body struct {
		Slug string `json:"slug" doc:"Derived slug, empty when the name has no usable characters" example:"minimal-clean"`
	}
}

// UsernameOutput for GET /identifiers/usernames/{candidate}
type UsernameOutput struct {
	Body Availability
}
