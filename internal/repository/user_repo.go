package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"movie-catalog/internal/model"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername matches the username exactly; the unique index is case-sensitive.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, username, password_hash, created_at
		 FROM users WHERE username = $1`, username).
		Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

// Create inserts u, filling ID and CreatedAt. A taken username reports
// model.ErrUserAlreadyExists and writes nothing.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, username, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, u.Name, u.Username, u.PasswordHash, now)
	if isUniqueViolation(err) {
		return model.ErrUserAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	u.ID = id
	u.CreatedAt = now
	return nil
}
