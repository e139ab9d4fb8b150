package model

import "time"

type Genre string

const (
	GenreAction         Genre = "Action"
	GenreAdventure      Genre = "Adventure"
	GenreComedy         Genre = "Comedy"
	GenreDrama          Genre = "Drama"
	GenreFantasy        Genre = "Fantasy"
	GenreHorror         Genre = "Horror"
	GenreMystery        Genre = "Mystery"
	GenreThriller       Genre = "Thriller"
	GenreWestern        Genre = "Western"
	GenreScienceFiction Genre = "Science Fiction"
)

var Genres = []Genre{
	GenreAction,
	GenreAdventure,
	GenreComedy,
	GenreDrama,
	GenreFantasy,
	GenreHorror,
	GenreMystery,
	GenreThriller,
	GenreWestern,
	GenreScienceFiction,
}

// Valid reports whether g is one of the catalog genres. Matching is exact.
func (g Genre) Valid() bool {
	for _, known := range Genres {
		if g == known {
			return true
		}
	}
	return false
}

const (
	MinReleaseYear = 1900
	MaxReleaseYear = 2100
)

type Actor struct {
	ActorName     string `json:"actorName" validate:"required"`
	CharacterName string `json:"characterName" validate:"required"`
}

type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required"`
	ReleaseDate int       `json:"releaseDate" validate:"required,gte=1900,lte=2100"`
	Genre       Genre     `json:"genre" validate:"required,genre"`
	Actors      []Actor   `json:"actors" validate:"required,min=1,dive"`
	ImageURL    string    `json:"imageUrl" validate:"required"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RatedMovie is a movie joined with its reviews. AvgRating is nil when the
// movie has no reviews and is always serialized, as null in that case.
type RatedMovie struct {
	Movie
	Reviews   []Review `json:"reviews"`
	AvgRating *float64 `json:"avgRating"`
}

type MovieListData struct {
	Movies []Movie `json:"movies"`
}

type RatedMovieListData struct {
	Movies []RatedMovie `json:"movies"`
}
