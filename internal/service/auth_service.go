package service

import (
	"context"
	"errors"
	"fmt"

	"movie-catalog/internal/auth"
	"movie-catalog/internal/metrics"
	"movie-catalog/internal/model"
	"movie-catalog/internal/validate"
)

type AuthService struct {
	users   UserStore
	hasher  *auth.PasswordHasher
	tokens  *auth.TokenManager
	metrics *metrics.Metrics
}

func NewAuthService(users UserStore, hasher *auth.PasswordHasher, tokens *auth.TokenManager, m *metrics.Metrics) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, metrics: m}
}

// Signup creates a user. A taken username fails with
// model.ErrUserAlreadyExists and leaves the store untouched.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.AuthUser, error) {
	if err := validate.Struct(req); err != nil {
		s.metrics.ObserveSignup("invalid")
		return model.AuthUser{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.metrics.ObserveSignup("error")
		return model.AuthUser{}, err
	}

	user := model.User{
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, model.ErrUserAlreadyExists) {
			s.metrics.ObserveSignup("conflict")
			return model.AuthUser{}, err
		}
		s.metrics.ObserveSignup("error")
		return model.AuthUser{}, fmt.Errorf("signup %q: %w", req.Username, err)
	}

	s.metrics.ObserveSignup("created")
	return user.Public(), nil
}

// Signin checks credentials and issues a token. Unknown users and wrong
// passwords both report model.ErrInvalidCredentials.
func (s *AuthService) Signin(ctx context.Context, req model.SigninRequest) (auth.Token, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if errors.Is(err, model.ErrUserNotFound) {
		s.metrics.ObserveSignin("failure")
		return "", model.ErrInvalidCredentials
	}
	if err != nil {
		s.metrics.ObserveSignin("error")
		return "", fmt.Errorf("signin lookup: %w", err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		s.metrics.ObserveSignin("failure")
		return "", model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		s.metrics.ObserveSignin("error")
		return "", err
	}

	s.metrics.ObserveSignin("success")
	return token, nil
}
