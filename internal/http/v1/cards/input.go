package cards

// CardInput for GET /cards/{username}
type CardInput struct {
	Username string `path:"username" doc:"Card owner's username" example:"janedoe"  maxLength:"15" pattern:"^[A-Za-z0-9_]+$"`
	Template string `query:"template" doc:"Render with this template instead of the owner's current one" pattern:"^[a-z0-9]+(-[a-z0-9]+)*$"`
}

// UsernameInput for the vCard and share endpoints.
type UsernameInput struct {
	Username string `path:"username" doc:"Card owner's username" example:"janedoe" maxLength:"15" pattern:"^[A-Za-z0-9_]+$"`
}
