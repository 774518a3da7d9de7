package domain

// Author is a catalog author. Names are globally unique (exact match).
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AuthorParams carries validated input for creating an author. The id is
// always assigned by the store; clients cannot supply one.
type AuthorParams struct {
	Name string
}

// AuthorUpdate is a partial update; nil fields are left untouched.
type AuthorUpdate struct {
	Name *string
}
