package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"movie-catalog/internal/model"
)

const movieColumns = `id, title, release_date, genre, actors, image_url, created_at, updated_at`

type MovieRepository struct {
	db DBTX
}

func NewMovieRepository(db DBTX) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+movieColumns+` FROM movies ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	movies := make([]model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id string) (model.Movie, error) {
	if !validID(id) {
		return model.Movie{}, model.ErrMovieNotFound
	}

	m, err := scanMovie(r.db.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, model.ErrMovieNotFound
	}
	if err != nil {
		return model.Movie{}, err
	}
	return m, nil
}

func (r *MovieRepository) Create(ctx context.Context, m *model.Movie) error {
	actors, err := json.Marshal(m.Actors)
	if err != nil {
		return fmt.Errorf("encode actors: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC()

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO movies (id, title, release_date, genre, actors, image_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, m.Title, m.ReleaseDate, string(m.Genre), string(actors), m.ImageURL, now, now)
	if err != nil {
		return fmt.Errorf("create movie: %w", err)
	}

	m.ID = id
	m.CreatedAt = now
	m.UpdatedAt = now
	return nil
}

// Update replaces every mutable column of m.ID and stamps UpdatedAt.
func (r *MovieRepository) Update(ctx context.Context, m *model.Movie) error {
	if !validID(m.ID) {
		return model.ErrMovieNotFound
	}

	actors, err := json.Marshal(m.Actors)
	if err != nil {
		return fmt.Errorf("encode actors: %w", err)
	}

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE movies
		 SET title = $2, release_date = $3, genre = $4, actors = $5, image_url = $6, updated_at = $7
		 WHERE id = $1`,
		m.ID, m.Title, m.ReleaseDate, string(m.Genre), string(actors), m.ImageURL, now)
	if err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	if err := expectOneRow(res, model.ErrMovieNotFound); err != nil {
		return err
	}

	m.UpdatedAt = now
	return nil
}

// Delete removes the movie only. Its reviews stay in place.
func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return model.ErrMovieNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	return expectOneRow(res, model.ErrMovieNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (model.Movie, error) {
	var (
		m      model.Movie
		genre  string
		actors []byte
	)

	err := row.Scan(&m.ID, &m.Title, &m.ReleaseDate, &genre, &actors, &m.ImageURL, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, err
	}
	if err != nil {
		return model.Movie{}, fmt.Errorf("scan movie: %w", err)
	}

	m.Genre = model.Genre(genre)
	if err := json.Unmarshal(actors, &m.Actors); err != nil {
		return model.Movie{}, fmt.Errorf("decode actors of movie %s: %w", m.ID, err)
	}
	return m, nil
}

func expectOneRow(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
