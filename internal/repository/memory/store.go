// Package memory is an in-process Credential and Catalog Store. Every method
// takes the store lock, so each call is atomic at the record level, the same
// guarantee the Postgres store gives.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"movie-catalog/internal/model"
)

type Store struct {
	mu sync.RWMutex

	usersByUsername map[string]model.User

	movies     map[string]model.Movie
	movieOrder []string

	reviews     map[string]model.Review
	reviewOrder []string

	now func() time.Time
}

func New() *Store {
	return &Store{
		usersByUsername: map[string]model.User{},
		movies:          map[string]model.Movie{},
		reviews:         map[string]model.Review{},
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) Users() *UserStore     { return &UserStore{s: s} }
func (s *Store) Movies() *MovieStore   { return &MovieStore{s: s} }
func (s *Store) Reviews() *ReviewStore { return &ReviewStore{s: s} }

type UserStore struct{ s *Store }

func (u *UserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	user, ok := u.s.usersByUsername[username]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

func (u *UserStore) Create(_ context.Context, user *model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, exists := u.s.usersByUsername[user.Username]; exists {
		return model.ErrUserAlreadyExists
	}

	user.ID = uuid.NewString()
	user.CreatedAt = u.s.now()
	u.s.usersByUsername[user.Username] = *user
	return nil
}

type MovieStore struct{ s *Store }

func (m *MovieStore) List(_ context.Context) ([]model.Movie, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	out := make([]model.Movie, 0, len(m.s.movieOrder))
	for _, id := range m.s.movieOrder {
		out = append(out, cloneMovie(m.s.movies[id]))
	}
	return out, nil
}

func (m *MovieStore) FindByID(_ context.Context, id string) (model.Movie, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	movie, ok := m.s.movies[id]
	if !ok {
		return model.Movie{}, model.ErrMovieNotFound
	}
	return cloneMovie(movie), nil
}

func (m *MovieStore) Create(_ context.Context, movie *model.Movie) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	now := m.s.now()
	movie.ID = uuid.NewString()
	movie.CreatedAt = now
	movie.UpdatedAt = now

	m.s.movies[movie.ID] = cloneMovie(*movie)
	m.s.movieOrder = append(m.s.movieOrder, movie.ID)
	return nil
}

func (m *MovieStore) Update(_ context.Context, movie *model.Movie) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	stored, ok := m.s.movies[movie.ID]
	if !ok {
		return model.ErrMovieNotFound
	}

	movie.CreatedAt = stored.CreatedAt
	movie.UpdatedAt = m.s.now()
	m.s.movies[movie.ID] = cloneMovie(*movie)
	return nil
}

func (m *MovieStore) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.movies[id]; !ok {
		return model.ErrMovieNotFound
	}

	delete(m.s.movies, id)
	m.s.movieOrder = slices.DeleteFunc(m.s.movieOrder, func(v string) bool { return v == id })
	return nil
}

type ReviewStore struct{ s *Store }

func (r *ReviewStore) List(_ context.Context) ([]model.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.Review, 0, len(r.s.reviewOrder))
	for _, id := range r.s.reviewOrder {
		out = append(out, r.s.reviews[id])
	}
	return out, nil
}

func (r *ReviewStore) ListByMovie(_ context.Context, movieID string) ([]model.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.Review, 0)
	for _, id := range r.s.reviewOrder {
		if rv := r.s.reviews[id]; rv.MovieID == movieID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *ReviewStore) Create(_ context.Context, rv *model.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rv.ID = uuid.NewString()
	rv.CreatedAt = r.s.now()

	r.s.reviews[rv.ID] = *rv
	r.s.reviewOrder = append(r.s.reviewOrder, rv.ID)
	return nil
}

func (r *ReviewStore) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reviews[id]; !ok {
		return model.ErrReviewNotFound
	}

	delete(r.s.reviews, id)
	r.s.reviewOrder = slices.DeleteFunc(r.s.reviewOrder, func(v string) bool { return v == id })
	return nil
}

func cloneMovie(m model.Movie) model.Movie {
	m.Actors = slices.Clone(m.Actors)
	return m
}
