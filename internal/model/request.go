package model

type SignupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateMovieRequest struct {
	Title       string  `json:"title"`
	ReleaseDate int     `json:"releaseDate"`
	Genre       Genre   `json:"genre"`
	Actors      []Actor `json:"actors"`
	ImageURL    string  `json:"imageUrl"`
}

// UpdateMovieRequest carries a partial replace. Nil fields are left as stored;
// a present but empty actors array is rejected, not ignored.
type UpdateMovieRequest struct {
	Title       *string  `json:"title"`
	ReleaseDate *int     `json:"releaseDate"`
	Genre       *Genre   `json:"genre"`
	Actors      *[]Actor `json:"actors"`
	ImageURL    *string  `json:"imageUrl"`
}

func (r UpdateMovieRequest) Empty() bool {
	return r.Title == nil && r.ReleaseDate == nil && r.Genre == nil && r.Actors == nil && r.ImageURL == nil
}

type CreateReviewRequest struct {
	MovieID string   `json:"movieId" validate:"required"`
	Review  string   `json:"review" validate:"required"`
	Rating  *float64 `json:"rating" validate:"required,gte=0,lte=5"`
}
