// Package auth handles registration, password login and bearer token
// verification.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ueser-furina/noote-website/internal/entity"
	"github.com/ueser-furina/noote-website/pkg/logger/slogx"
)

type usersRepository interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (entity.User, error)
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.2 -out-filename=usecase_options.gen.go -from-struct=Options
type Options struct {
	repo     usersRepository `option:"mandatory" validate:"required"`
	secret   string          `option:"mandatory" validate:"required"`
	tokenTTL time.Duration   `default:"168h" validate:"min=1m"`
}

type Usecase struct {
	Options
}

func New(opts Options) (*Usecase, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate auth usecase options: %v", err)
	}

	return &Usecase{Options: opts}, nil
}

// Register creates a new account with a bcrypt password hash.
func (u *Usecase) Register(ctx context.Context, username, email, password string) (entity.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	switch {
	case username == "":
		return entity.User{}, fmt.Errorf("%w: username must not be empty", entity.ErrInvalidRequest)
	case email == "" || !strings.Contains(email, "@"):
		return entity.User{}, fmt.Errorf("%w: email is not valid", entity.ErrInvalidRequest)
	case len(password) < 6:
		return entity.User{}, fmt.Errorf("%w: password must be at least 6 characters", entity.ErrInvalidRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entity.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.repo.CreateUser(ctx, username, email, string(hash))
	if err != nil {
		return entity.User{}, fmt.Errorf("usecase register: %w", err)
	}

	slogx.Info(ctx, "success to register user", slogx.UserId(user.ID))
	return user, nil
}

// Login checks the password and issues a signed token.
func (u *Usecase) Login(ctx context.Context, username, password string) (string, error) {
	user, err := u.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return "", fmt.Errorf("%w: invalid username or password", entity.ErrUnauthenticated)
		}
		return "", fmt.Errorf("usecase login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: invalid username or password", entity.ErrUnauthenticated)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(u.tokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(u.secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	slogx.Info(ctx, "success to login", slogx.UserId(user.ID))
	return token, nil
}

// Authenticate resolves a bearer token into the user it was issued for.
func (u *Usecase) Authenticate(ctx context.Context, token string) (entity.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(u.secret), nil
	})
	if err != nil {
		return entity.User{}, fmt.Errorf("%w: %v", entity.ErrUnauthenticated, err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return entity.User{}, fmt.Errorf("%w: token has no subject", entity.ErrUnauthenticated)
	}

	user, err := u.repo.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return entity.User{}, fmt.Errorf("%w: unknown token subject", entity.ErrUnauthenticated)
		}
		return entity.User{}, fmt.Errorf("usecase authenticate: %w", err)
	}

	return user, nil
}
