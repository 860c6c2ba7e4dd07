package repository

import (
	"context"
	"errors"

	"fairshoppe/internal/domain/entity"
)

var ErrEmailTaken = errors.New("email already registered")

// UserRepository is the users directory. Lookups by email are case-insensitive.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User, passwordHash string) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetPasswordHash(ctx context.Context, id string) (string, error)
	SetPasswordHash(ctx context.Context, id, passwordHash string) error
	Update(ctx context.Context, user *entity.User) error
}
