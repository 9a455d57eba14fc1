package specification

// NewestFirst orders notes by creation time, most recent first.
func NewestFirst() Specification {
	return OrderBy{Field: "created_at", Desc: true}
}
