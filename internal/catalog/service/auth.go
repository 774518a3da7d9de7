package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aklatan/buklat/internal/catalog/domain"
	"github.com/aklatan/buklat/internal/catalog/store"
	"github.com/aklatan/buklat/pkg/apierr"
	"github.com/aklatan/buklat/pkg/cryptox"
	"github.com/aklatan/buklat/pkg/idx"
	"github.com/aklatan/buklat/pkg/jwtx"
	"github.com/aklatan/buklat/pkg/slogx"
)

// TokenTypeBearer is the fixed token_type tag returned from login.
const TokenTypeBearer = "bearer"

// Auth orchestrates registration, login and token-based identity resolution.
type Auth struct {
	Store    store.Store
	Codec    *jwtx.Codec
	TokenTTL time.Duration
}

// Register creates a new user account. Username collisions are checked and
// reported before email collisions; callers rely on that precedence. The
// store's unique constraints back the pre-checks up, so a racing duplicate
// still comes back as RegistrationFailed rather than a storage fault.
func (s *Auth) Register(ctx context.Context, username, email, password string) (string, error) {
	l := slogx.FromContext(ctx)

	if _, err := s.Store.Users().GetUserByUsername(ctx, username); err == nil {
		return "", apierr.RegistrationFailed("Username has already been taken.")
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("register: username lookup: %w", err)
	}

	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return "", apierr.RegistrationFailed("Email has already been taken.")
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("register: email lookup: %w", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("register: hash password: %w", err)
	}

	user := domain.User{
		ID:             idx.New().String(),
		Username:       username,
		Email:          email,
		HashedPassword: hash,
		IsActive:       true,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race past the pre-checks. Re-read the username so the
			// message keeps the username-before-email precedence.
			return "", s.classifyBackstop(ctx, username)
		}
		return "", fmt.Errorf("register: create user: %w", err)
	}

	l.Info("user registered", slog.String("username", username))
	return fmt.Sprintf("Welcome to BuklatAPI, %s!", username), nil
}

func (s *Auth) classifyBackstop(ctx context.Context, username string) error {
	if _, err := s.Store.Users().GetUserByUsername(ctx, username); err == nil {
		return apierr.RegistrationFailed("Username has already been taken.")
	}
	return apierr.RegistrationFailed("Email has already been taken.")
}

// Authenticate verifies a username/password pair. A missing user or a wrong
// password both return (nil, nil): authentication failure is an expected
// outcome here, not an error. Only the boundary turns nil into a failure.
func (s *Auth) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("authenticate: user lookup: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.HashedPassword); err != nil {
		return nil, nil
	}

	return &user, nil
}

// Login authenticates and issues a bearer token with the username as subject.
// The failure message never reveals whether the username or the password was
// wrong.
func (s *Auth) Login(ctx context.Context, username, password string) (domain.Token, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return domain.Token{}, err
	}
	if user == nil {
		l.Info("login rejected", slog.String("username", username))
		return domain.Token{}, apierr.AuthenticationFailed()
	}

	token, err := s.Codec.Issue(user.Username, nil, s.TokenTTL)
	if err != nil {
		return domain.Token{}, fmt.Errorf("login: issue token: %w", err)
	}

	return domain.Token{AccessToken: token, TokenType: TokenTypeBearer}, nil
}

// CurrentUser resolves a presented token into the stored identity. Verify
// failures map to InvalidToken with messages that distinguish malformed,
// expired and subject-less tokens; an unknown subject gets the same uniform
// "Invalid credentials" so callers cannot tell token from username problems.
func (s *Auth) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	claims, err := s.Codec.Verify(token)
	if err != nil {
		switch {
		case errors.Is(err, jwtx.ErrExpired):
			return domain.User{}, apierr.InvalidToken("Token has expired.")
		case errors.Is(err, jwtx.ErrMissingSubject):
			return domain.User{}, apierr.InvalidToken("Missing 'sub' claim.")
		default:
			return domain.User{}, apierr.InvalidToken("Invalid token.")
		}
	}

	subject, _ := claims.GetSubject()
	user, err := s.Store.Users().GetUserByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, apierr.InvalidToken("Invalid credentials.")
		}
		return domain.User{}, fmt.Errorf("current user: lookup %q: %w", subject, err)
	}

	return user, nil
}

// RequireActive passes an active user through unchanged and rejects a
// deactivated one. Kept separate from CurrentUser so "valid token, disabled
// account" stays distinguishable from "invalid token" at the boundary.
func RequireActive(user domain.User) (domain.User, error) {
	if !user.IsActive {
		return domain.User{}, apierr.InvalidAccount()
	}
	return user, nil
}
