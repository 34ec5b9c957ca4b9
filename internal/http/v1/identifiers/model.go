package identifiers

// Availability reports whether a normalized username can be claimed.
type Availability struct {
	Candidate string `json:"candidate" doc:"Username after normalization"               example:"janedoe"`
	Valid     bool   `json:"valid"     doc:"Whether anything usable remained"`
	Available bool   `json:"available" doc:"Whether the caller may use the username"`
	Checked   bool   `json:"checked"   doc:"False when the answer needed no store lookup"`
}
