package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"movie-catalog/internal/model"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/repository/memory"
	"movie-catalog/pkg/apierror"
)

func nopeRequest() model.CreateMovieRequest {
	return model.CreateMovieRequest{
		Title:       "Nope",
		ReleaseDate: 2020,
		Genre:       model.GenreHorror,
		Actors:      []model.Actor{{ActorName: "A", CharacterName: "B"}},
		ImageURL:    "x",
	}
}

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()

	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr), "expected validation error, got %v", err)
	require.Equal(t, apierror.CodeValidation, apiErr.Code)
	require.Contains(t, apiErr.Fields, field)
}

func TestCreateMovie(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.New()
	svc := NewCatalogService(store.Movies(), store.Reviews())

	movie, err := svc.CreateMovie(ctx, nopeRequest())
	require.NoError(t, err)
	require.NotEmpty(t, movie.ID)
	require.Equal(t, "x", movie.ImageURL)

	got, err := svc.GetMovie(ctx, movie.ID)
	require.NoError(t, err)
	require.Equal(t, movie.Title, got.Title)
}

func TestCreateMovieEmptyActorsWritesNothing(t *testing.T) {
	t.Parallel()

	movies := new(repository.MockMovieRepository)
	svc := NewCatalogService(movies, new(repository.MockReviewRepository))

	req := nopeRequest()
	req.Actors = []model.Actor{}

	_, err := svc.CreateMovie(context.Background(), req)
	requireValidation(t, err, "actors")
	movies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateMovie(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.New()
	svc := NewCatalogService(store.Movies(), store.Reviews())

	created, err := svc.CreateMovie(ctx, nopeRequest())
	require.NoError(t, err)

	title := "Nope (Director's Cut)"
	updated, err := svc.UpdateMovie(ctx, created.ID, model.UpdateMovieRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, title, updated.Title)
	require.Equal(t, created.Genre, updated.Genre)
	require.Equal(t, created.Actors, updated.Actors)

	t.Run("supplied fields are revalidated", func(t *testing.T) {
		year := 1850
		_, err := svc.UpdateMovie(ctx, created.ID, model.UpdateMovieRequest{ReleaseDate: &year})
		requireValidation(t, err, "releaseDate")

		empty := []model.Actor{}
		_, err = svc.UpdateMovie(ctx, created.ID, model.UpdateMovieRequest{Actors: &empty})
		requireValidation(t, err, "actors")

		stored, err := svc.GetMovie(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, 2020, stored.ReleaseDate)
		require.Len(t, stored.Actors, 1)
	})

	t.Run("empty patch", func(t *testing.T) {
		_, err := svc.UpdateMovie(ctx, created.ID, model.UpdateMovieRequest{})
		requireValidation(t, err, "body")
	})

	t.Run("missing movie", func(t *testing.T) {
		_, err := svc.UpdateMovie(ctx, "missing", model.UpdateMovieRequest{Title: &title})
		require.ErrorIs(t, err, model.ErrMovieNotFound)
	})
}

func TestDeleteMovieIsNotFoundOnRepeat(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.New()
	svc := NewCatalogService(store.Movies(), store.Reviews())

	created, err := svc.CreateMovie(ctx, nopeRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMovie(ctx, created.ID))
	for i := 0; i < 3; i++ {
		require.ErrorIs(t, svc.DeleteMovie(ctx, created.ID), model.ErrMovieNotFound)
	}
}

func TestCreateReview(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.New()
	svc := NewCatalogService(store.Movies(), store.Reviews())

	movie, err := svc.CreateMovie(ctx, nopeRequest())
	require.NoError(t, err)

	rating := 4.0
	review, err := svc.CreateReview(ctx, "alice", model.CreateReviewRequest{MovieID: movie.ID, Review: "tense", Rating: &rating})
	require.NoError(t, err)
	require.Equal(t, "alice", review.Username)
	require.Equal(t, movie.ID, review.MovieID)

	_, err = svc.CreateReview(ctx, "alice", model.CreateReviewRequest{MovieID: "missing", Review: "x", Rating: &rating})
	require.ErrorIs(t, err, model.ErrMovieNotFound)

	tooHigh := 6.0
	_, err = svc.CreateReview(ctx, "alice", model.CreateReviewRequest{MovieID: movie.ID, Review: "x", Rating: &tooHigh})
	requireValidation(t, err, "rating")

	reviews, err := svc.ListReviews(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	require.NoError(t, svc.DeleteReview(ctx, review.ID))
	require.ErrorIs(t, svc.DeleteReview(ctx, review.ID), model.ErrReviewNotFound)
}

func TestCreateReviewChecksMovieBeforeWriting(t *testing.T) {
	t.Parallel()

	movies := new(repository.MockMovieRepository)
	reviews := new(repository.MockReviewRepository)
	movies.On("FindByID", mock.Anything, "m1").Return(model.Movie{}, model.ErrMovieNotFound)

	rating := 3.0
	_, err := NewCatalogService(movies, reviews).CreateReview(context.Background(), "alice",
		model.CreateReviewRequest{MovieID: "m1", Review: "x", Rating: &rating})
	require.ErrorIs(t, err, model.ErrMovieNotFound)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
