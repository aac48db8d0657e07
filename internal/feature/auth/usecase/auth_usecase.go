// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"taskhive/internal/feature/auth/domain"
	"taskhive/internal/feature/auth/domain/entity"
	"taskhive/internal/shared/apperr"
)

const (
	// MinPasswordLength is the minimum number of characters in a password.
	MinPasswordLength = 8
	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72
	maxFieldLength    = 255
)

// UserRepository abstracts the persistence layer for user entities.
// Interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns domain.ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns domain.ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Compare must spend a comparable amount of time when hashed is empty.
	Compare(hashed, plain string) bool
}

// JWTGenerator issues signed access tokens.
type JWTGenerator interface {
	GenerateToken(userID string) (string, error)
}

// authUsecase implements registration and login.
type authUsecase struct {
	users        UserRepository
	hasher       PasswordHasher
	jwtGenerator JWTGenerator
	now          func() time.Time
}

// NewAuthUsecase creates a new authUsecase.
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		hasher:       hasher,
		jwtGenerator: jwtGenerator,
		now:          time.Now,
	}
}

// ValidatePassword checks the password length rules shared with profile updates.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperr.Validationf("password must be at least %d characters long", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return apperr.Validationf("password must be at most %d bytes long", MaxPasswordLength)
	}
	return nil
}

// ValidateName checks a display name after trimming.
func ValidateName(name string) error {
	if name == "" {
		return apperr.Validationf("name must not be empty")
	}
	if utf8.RuneCountInString(name) > maxFieldLength {
		return apperr.Validationf("name must be at most %d characters", maxFieldLength)
	}
	return nil
}

// ValidateEmail checks an email address after trimming. Format is checked at the transport.
func ValidateEmail(email string) error {
	if email == "" {
		return apperr.Validationf("email must not be empty")
	}
	if utf8.RuneCountInString(email) > maxFieldLength {
		return apperr.Validationf("email must be at most %d characters", maxFieldLength)
	}
	return nil
}

// Register creates a user with a hashed password. It does not log the user in.
func (u *authUsecase) Register(ctx context.Context, name, email, password string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}

	user := &entity.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    u.now().UTC().Truncate(time.Microsecond),
	}
	return u.users.Create(ctx, user)
}

// Login authenticates a user and returns a signed token on success.
// An unknown email and a wrong password produce the same error, and the
// password comparison runs in both cases.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	passwordHash := ""
	if user != nil {
		passwordHash = user.PasswordHash
	}

	if !u.hasher.Compare(passwordHash, password) || user == nil {
		return "", ErrInvalidCredentials
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}
