package usecase

import (
	"context"
	stderrors "errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"fairshoppe/internal/domain/entity"
	"fairshoppe/internal/domain/repository"
	"fairshoppe/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

// UpdateProfileInput changes only the fields that are set.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Address  *string
	Password *string
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != user.Email {
			other, err := uc.userRepo.GetByEmail(ctx, email)
			if err == nil && other.ID != user.ID {
				return nil, errors.Conflict("Email already in use")
			}
			if err != nil && !errors.Is(err, "NOT_FOUND") {
				return nil, err
			}
			user.Email = email
		}
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		if stderrors.Is(err, repository.ErrEmailTaken) {
			return nil, errors.Conflict("Email already in use")
		}
		return nil, errors.Internal("Failed to update user profile", err)
	}

	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errors.Internal("Failed to secure password", err)
		}
		if err := uc.userRepo.SetPasswordHash(ctx, user.ID, string(hash)); err != nil {
			return nil, errors.Internal("Failed to update password", err)
		}
	}

	return user, nil
}
