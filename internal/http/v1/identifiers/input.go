package identifiers

// SlugInput for POST /identifiers/slug
type SlugInput struct {
	Body struct {
		Name string `json:"name" doc:"Text to derive a slug from" maxLength:"200" example:"Minimal  Clean!!"`
	}
}

// UsernameInput for GET /identifiers/usernames/{candidate}
type UsernameInput struct {
	Candidate string `path:"candidate" doc:"Raw username input" maxLength:"100" example:"jane.doe"`
}
