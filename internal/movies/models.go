package movies

// Movie is a catalog entry as the upstream API returns it. Movies are never
// physically deleted, only soft-disabled.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Duration    int     `json:"duration"`
	Genre       string  `json:"genre"`
	Price       float64 `json:"price"`
	IsEnabled   bool    `json:"isEnabled"`
}

// CreateMovieRequest is the payload for creating or updating a movie
type CreateMovieRequest struct {
	Title       string  `json:"title" form:"title" binding:"required"`
	Description string  `json:"description" form:"description" binding:"required"`
	ImageURL    string  `json:"imageUrl" form:"imageUrl"`
	Duration    int     `json:"duration" form:"duration" binding:"required,min=1"`
	Genre       string  `json:"genre" form:"genre" binding:"required"`
	Price       float64 `json:"price" form:"price" binding:"required,min=0"`
}
