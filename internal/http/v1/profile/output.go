package profile

// GetOutput for GET /profile
type GetOutput struct {
	Body Profile
}

// SaveOutput for PUT /profile
type SaveOutput struct {
	Body Profile
}
