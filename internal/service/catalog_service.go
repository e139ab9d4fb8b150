package service

import (
	"context"
	"fmt"

	"movie-catalog/internal/model"
	"movie-catalog/internal/validate"
	"movie-catalog/pkg/apierror"
)

// CatalogService owns movie and review mutations. Every write is validated
// before the store is touched.
type CatalogService struct {
	movies  MovieStore
	reviews ReviewStore
}

func NewCatalogService(movies MovieStore, reviews ReviewStore) *CatalogService {
	return &CatalogService{movies: movies, reviews: reviews}
}

func (s *CatalogService) ListMovies(ctx context.Context) ([]model.Movie, error) {
	movies, err := s.movies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

func (s *CatalogService) GetMovie(ctx context.Context, id string) (model.Movie, error) {
	return s.movies.FindByID(ctx, id)
}

func (s *CatalogService) CreateMovie(ctx context.Context, req model.CreateMovieRequest) (model.Movie, error) {
	movie := model.Movie{
		Title:       req.Title,
		ReleaseDate: req.ReleaseDate,
		Genre:       req.Genre,
		Actors:      req.Actors,
		ImageURL:    req.ImageURL,
	}
	if err := validate.Struct(movie); err != nil {
		return model.Movie{}, err
	}

	if err := s.movies.Create(ctx, &movie); err != nil {
		return model.Movie{}, fmt.Errorf("create movie: %w", err)
	}
	return movie, nil
}

// UpdateMovie applies the supplied fields over the stored record and
// validates the result as a whole before writing it back.
func (s *CatalogService) UpdateMovie(ctx context.Context, id string, req model.UpdateMovieRequest) (model.Movie, error) {
	if req.Empty() {
		return model.Movie{}, apierror.Validation(map[string]string{
			"body": "at least one of title, releaseDate, genre, actors, imageUrl is required",
		})
	}

	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return model.Movie{}, err
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.ReleaseDate != nil {
		movie.ReleaseDate = *req.ReleaseDate
	}
	if req.Genre != nil {
		movie.Genre = *req.Genre
	}
	if req.Actors != nil {
		movie.Actors = *req.Actors
		if movie.Actors == nil {
			movie.Actors = []model.Actor{}
		}
	}
	if req.ImageURL != nil {
		movie.ImageURL = *req.ImageURL
	}

	if err := validate.Struct(movie); err != nil {
		return model.Movie{}, err
	}

	if err := s.movies.Update(ctx, &movie); err != nil {
		return model.Movie{}, err
	}
	return movie, nil
}

// DeleteMovie leaves the movie's reviews in place.
func (s *CatalogService) DeleteMovie(ctx context.Context, id string) error {
	return s.movies.Delete(ctx, id)
}

func (s *CatalogService) ListReviews(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// CreateReview records a review by username, which comes from the caller's
// token claim. The movie must exist at the time of the call.
func (s *CatalogService) CreateReview(ctx context.Context, username string, req model.CreateReviewRequest) (model.Review, error) {
	if err := validate.Struct(req); err != nil {
		return model.Review{}, err
	}

	if _, err := s.movies.FindByID(ctx, req.MovieID); err != nil {
		return model.Review{}, err
	}

	review := model.Review{
		MovieID:  req.MovieID,
		Username: username,
		Review:   req.Review,
		Rating:   *req.Rating,
	}
	if err := s.reviews.Create(ctx, &review); err != nil {
		return model.Review{}, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

func (s *CatalogService) DeleteReview(ctx context.Context, id string) error {
	return s.reviews.Delete(ctx, id)
}
