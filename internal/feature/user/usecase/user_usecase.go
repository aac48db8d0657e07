// Package usecase implements the caller's own profile operations.
package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"taskhive/internal/feature/auth/domain"
	"taskhive/internal/feature/auth/domain/entity"
	authusecase "taskhive/internal/feature/auth/usecase"
	"taskhive/internal/shared/apperr"
)

// ErrEmptyUpdate is returned by UpdateSelf when the patch carries no fields.
var ErrEmptyUpdate = apperr.New(apperr.ErrValidation, "nothing to update")

// UserRepository is the part of the user store the profile operations need.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// Update returns domain.ErrUserNotFound or domain.ErrEmailAlreadyExists.
	Update(ctx context.Context, id string, patch entity.UserPatch) error
	// Delete removes the user and, through the store, every task it owns.
	Delete(ctx context.Context, id string) error
}

// PasswordHasher hashes a replacement password.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// ProfilePatch lists the profile fields to change. Nil fields are left untouched.
type ProfilePatch struct {
	Name     *string
	Email    *string
	Password *string
}

type userUsecase struct {
	users  UserRepository
	hasher PasswordHasher
}

// NewUserUsecase creates a new userUsecase.
func NewUserUsecase(users UserRepository, hasher PasswordHasher) *userUsecase {
	return &userUsecase{users: users, hasher: hasher}
}

// GetSelf returns the caller's profile.
func (u *userUsecase) GetSelf(ctx context.Context, uid string) (*entity.User, error) {
	if uuid.Validate(uid) != nil {
		return nil, domain.ErrUserNotFound
	}
	return u.users.FindByID(ctx, uid)
}

// UpdateSelf applies the present fields; a new password is re-hashed.
func (u *userUsecase) UpdateSelf(ctx context.Context, uid string, p ProfilePatch) error {
	if p.Name == nil && p.Email == nil && p.Password == nil {
		return ErrEmptyUpdate
	}

	var patch entity.UserPatch
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if err := authusecase.ValidateName(name); err != nil {
			return err
		}
		patch.Name = &name
	}
	if p.Email != nil {
		email := strings.TrimSpace(*p.Email)
		if err := authusecase.ValidateEmail(email); err != nil {
			return err
		}
		patch.Email = &email
	}
	if p.Password != nil {
		if err := authusecase.ValidatePassword(*p.Password); err != nil {
			return err
		}
		hashed, err := u.hasher.Hash(*p.Password)
		if err != nil {
			return err
		}
		patch.PasswordHash = &hashed
	}

	if uuid.Validate(uid) != nil {
		return domain.ErrUserNotFound
	}
	return u.users.Update(ctx, uid, patch)
}

// DeleteSelf removes the caller and all of the caller's tasks.
func (u *userUsecase) DeleteSelf(ctx context.Context, uid string) error {
	if uuid.Validate(uid) != nil {
		return domain.ErrUserNotFound
	}
	return u.users.Delete(ctx, uid)
}
