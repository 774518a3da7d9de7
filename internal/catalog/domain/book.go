package domain

// Book references an existing Author and Recommender by id. The flags
// default to false when the caller omits them on create.
type Book struct {
	ID            int64  `json:"id"`
	AuthorID      int64  `json:"author_id"`
	RecommenderID int64  `json:"recommender_id"`
	Title         string `json:"title"`
	YearPublished int    `json:"year_published"`
	IsPurchased   bool   `json:"is_purchased"`
	IsRead        bool   `json:"is_read"`
}

// BookParams carries validated input for creating a book.
type BookParams struct {
	AuthorID      int64
	RecommenderID int64
	Title         string
	YearPublished int
	IsPurchased   *bool
	IsRead        *bool
}

// BookUpdate is a partial update; nil fields are left untouched. Supplied
// foreign keys must resolve before any field is applied.
type BookUpdate struct {
	AuthorID      *int64
	RecommenderID *int64
	Title         *string
	YearPublished *int
	IsPurchased   *bool
	IsRead        *bool
}
