package domain

// Recommender is whoever suggested a book. Names are globally unique.
type Recommender struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RecommenderParams carries validated input for creating a recommender.
type RecommenderParams struct {
	Name string
}

// RecommenderUpdate is a partial update; nil fields are left untouched.
type RecommenderUpdate struct {
	Name *string
}
