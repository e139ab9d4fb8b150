package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"movie-catalog/internal/metrics"
	"movie-catalog/internal/model"
)

// AggregationEngine joins movies to their reviews and derives avgRating.
// It holds no locks and writes nothing; consistency across the join is
// whatever the store's individual reads provide.
type AggregationEngine struct {
	movies  MovieReader
	reviews ReviewReader
	metrics *metrics.Metrics
}

func NewAggregationEngine(movies MovieReader, reviews ReviewReader, m *metrics.Metrics) *AggregationEngine {
	return &AggregationEngine{movies: movies, reviews: reviews, metrics: m}
}

// RateAll returns every movie with its reviews, ordered by avgRating
// descending (movies without reviews last), then title, then id.
func (e *AggregationEngine) RateAll(ctx context.Context) ([]model.RatedMovie, error) {
	started := time.Now()

	movies, err := e.movies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate: list movies: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reviews, err := e.reviews.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate: list reviews: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rated := Join(movies, reviews)
	SortRated(rated)

	e.metrics.ObserveAggregation("all", len(rated), time.Since(started))
	return rated, nil
}

// RateOne aggregates a single movie. A missing movie reports
// model.ErrMovieNotFound.
func (e *AggregationEngine) RateOne(ctx context.Context, movieID string) (model.RatedMovie, error) {
	started := time.Now()

	movie, err := e.movies.FindByID(ctx, movieID)
	if err != nil {
		return model.RatedMovie{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.RatedMovie{}, err
	}

	reviews, err := e.reviews.ListByMovie(ctx, movie.ID)
	if err != nil {
		return model.RatedMovie{}, fmt.Errorf("aggregate: list reviews of %s: %w", movie.ID, err)
	}

	rated := Join([]model.Movie{movie}, reviews)[0]

	e.metrics.ObserveAggregation("one", 1, time.Since(started))
	return rated, nil
}

// Join is a left join of movies to reviews on review.MovieID == movie.ID.
// Every movie appears once, in input order, with its reviews in input order.
// Reviews pointing at no listed movie are dropped.
func Join(movies []model.Movie, reviews []model.Review) []model.RatedMovie {
	byMovie := make(map[string][]model.Review, len(movies))
	for _, rv := range reviews {
		byMovie[rv.MovieID] = append(byMovie[rv.MovieID], rv)
	}

	out := make([]model.RatedMovie, 0, len(movies))
	for _, m := range movies {
		matched := byMovie[m.ID]
		if matched == nil {
			matched = []model.Review{}
		}
		out = append(out, model.RatedMovie{
			Movie:     m,
			Reviews:   matched,
			AvgRating: Average(matched),
		})
	}
	return out
}

// Average is the arithmetic mean of the ratings, or nil for no reviews.
// No rounding is applied.
func Average(reviews []model.Review) *float64 {
	if len(reviews) == 0 {
		return nil
	}

	var sum float64
	for _, rv := range reviews {
		sum += rv.Rating
	}
	avg := sum / float64(len(reviews))
	return &avg
}

func SortRated(rows []model.RatedMovie) {
	slices.SortFunc(rows, CompareRated)
}

// CompareRated orders a before b when a has the higher average. A nil
// average ranks below every number. Ties fall back to byte-wise title
// order and then to id, so the order never depends on input order.
func CompareRated(a, b model.RatedMovie) int {
	switch {
	case a.AvgRating == nil && b.AvgRating != nil:
		return 1
	case a.AvgRating != nil && b.AvgRating == nil:
		return -1
	case a.AvgRating != nil && b.AvgRating != nil:
		if *a.AvgRating > *b.AvgRating {
			return -1
		}
		if *a.AvgRating < *b.AvgRating {
			return 1
		}
	}

	if c := strings.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
