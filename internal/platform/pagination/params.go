package pagination

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params embeds into huma input structs.
type Params struct {
	Cursor string `query:"cursor" doc:"Opaque cursor from a previous Link header"`
	Limit  int    `query:"limit"  doc:"Maximum items per page"                    default:"20" minimum:"1" maximum:"100"`
}

// PageSize clamps Limit into [1, MaxLimit], using DefaultLimit when unset.
func (p Params) PageSize() int {
	switch {
	case p.Limit <= 0:
		return DefaultLimit
	case p.Limit > MaxLimit:
		return MaxLimit
	default:
		return p.Limit
	}
}
