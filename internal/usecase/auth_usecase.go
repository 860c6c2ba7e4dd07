package usecase

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fairshoppe/internal/domain/entity"
	"fairshoppe/internal/domain/repository"
	"fairshoppe/pkg/errors"
	"fairshoppe/pkg/logger"
)

type TokenIssuer interface {
	GenerateToken(uid string) (string, time.Time, error)
}

type AuthUseCase struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
}

func NewAuthUseCase(userRepo repository.UserRepository, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Address  string
}

type AuthResult struct {
	User      *entity.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *AuthUseCase) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)

	// Check if email already exists
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, errors.Conflict("Email already in use")
	}
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to secure password", err)
	}

	user := &entity.User{
		ID:      uuid.New().String(),
		Name:    strings.TrimSpace(input.Name),
		Email:   email,
		Address: input.Address,
	}

	if err := uc.userRepo.Create(ctx, user, string(hash)); err != nil {
		if stderrors.Is(err, repository.ErrEmailTaken) {
			return nil, errors.Conflict("Email already in use")
		}
		return nil, errors.Internal("Failed to create user record", err)
	}

	logger.Info("User %s signed up", user.ID)
	return uc.issue(user)
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.Unauthorized("Invalid email or password", nil)
		}
		return nil, err
	}

	hash, err := uc.userRepo.GetPasswordHash(ctx, user.ID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.Unauthorized("Invalid email or password", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, errors.Unauthorized("Invalid email or password", nil)
	}

	return uc.issue(user)
}

func (uc *AuthUseCase) issue(user *entity.User) (*AuthResult, error) {
	token, expiresAt, err := uc.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
