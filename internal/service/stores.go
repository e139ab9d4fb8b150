package service

import (
	"context"

	"movie-catalog/internal/model"
)

// UserStore is the Credential Store.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
	Create(ctx context.Context, u *model.User) error
}

type MovieReader interface {
	List(ctx context.Context) ([]model.Movie, error)
	FindByID(ctx context.Context, id string) (model.Movie, error)
}

type MovieStore interface {
	MovieReader
	Create(ctx context.Context, m *model.Movie) error
	Update(ctx context.Context, m *model.Movie) error
	Delete(ctx context.Context, id string) error
}

type ReviewReader interface {
	List(ctx context.Context) ([]model.Review, error)
	ListByMovie(ctx context.Context, movieID string) ([]model.Review, error)
}

type ReviewStore interface {
	ReviewReader
	Create(ctx context.Context, rv *model.Review) error
	Delete(ctx context.Context, id string) error
}
