package repository

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"fairshoppe/internal/domain/entity"
	"fairshoppe/internal/domain/repository"
	"fairshoppe/pkg/errors"
)

const (
	usersDirectoryKey = "users.json"
	textContentType   = "text/plain; charset=utf-8"
)

// objectUserRepository keeps each profile field as {id}/profile/{field}/{field}.txt
// and a global users.json directory used for email lookups.
type objectUserRepository struct {
	store      repository.ObjectStore
	maxRetries int
}

func NewObjectUserRepository(store repository.ObjectStore, maxRetries int) repository.UserRepository {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &objectUserRepository{
		store:      store,
		maxRetries: maxRetries,
	}
}

func fieldKey(userID, field string) string {
	return fmt.Sprintf("%s/profile/%s/%s.txt", userID, field, field)
}

func (r *objectUserRepository) Create(ctx context.Context, user *entity.User, passwordHash string) error {
	err := r.updateDirectory(ctx, func(users []entity.User) ([]entity.User, error) {
		for _, u := range users {
			if strings.EqualFold(u.Email, user.Email) {
				return nil, repository.ErrEmailTaken
			}
		}
		return append(users, *user), nil
	})
	if err != nil {
		return err
	}

	fields := map[string]string{
		entity.ProfileFieldName:     user.Name,
		entity.ProfileFieldEmail:    user.Email,
		entity.ProfileFieldPassword: passwordHash,
	}
	if user.Address != "" {
		fields[entity.ProfileFieldAddress] = user.Address
	}
	return r.writeFields(ctx, user.ID, fields)
}

func (r *objectUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	name, err := r.readField(ctx, id, entity.ProfileFieldName)
	if err != nil {
		return nil, err
	}
	email, err := r.readField(ctx, id, entity.ProfileFieldEmail)
	if err != nil {
		return nil, err
	}

	// address is optional
	address, err := r.readField(ctx, id, entity.ProfileFieldAddress)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	return &entity.User{
		ID:      id,
		Name:    name,
		Email:   email,
		Address: address,
	}, nil
}

func (r *objectUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	users, _, err := r.readDirectory(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *objectUserRepository) GetPasswordHash(ctx context.Context, id string) (string, error) {
	return r.readField(ctx, id, entity.ProfileFieldPassword)
}

func (r *objectUserRepository) SetPasswordHash(ctx context.Context, id, passwordHash string) error {
	return r.writeFields(ctx, id, map[string]string{entity.ProfileFieldPassword: passwordHash})
}

func (r *objectUserRepository) Update(ctx context.Context, user *entity.User) error {
	err := r.updateDirectory(ctx, func(users []entity.User) ([]entity.User, error) {
		replaced := false
		for i, u := range users {
			if u.ID != user.ID && strings.EqualFold(u.Email, user.Email) {
				return nil, repository.ErrEmailTaken
			}
			if u.ID == user.ID {
				users[i] = *user
				replaced = true
			}
		}
		if !replaced {
			users = append(users, *user)
		}
		return users, nil
	})
	if err != nil {
		return err
	}

	return r.writeFields(ctx, user.ID, map[string]string{
		entity.ProfileFieldName:    user.Name,
		entity.ProfileFieldEmail:   user.Email,
		entity.ProfileFieldAddress: user.Address,
	})
}

func (r *objectUserRepository) readField(ctx context.Context, userID, field string) (string, error) {
	obj, err := r.store.Get(ctx, fieldKey(userID, field))
	if stderrors.Is(err, repository.ErrObjectNotFound) {
		return "", errors.NotFound("User "+field, err)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", field, err)
	}
	return string(obj.Data), nil
}

func (r *objectUserRepository) writeFields(ctx context.Context, userID string, fields map[string]string) error {
	for field, value := range fields {
		if _, err := r.store.Put(ctx, fieldKey(userID, field), []byte(value), textContentType, repository.PutOptions{}); err != nil {
			return fmt.Errorf("failed to write %s: %w", field, err)
		}
	}
	return nil
}

func (r *objectUserRepository) readDirectory(ctx context.Context) ([]entity.User, int64, error) {
	obj, err := r.store.Get(ctx, usersDirectoryKey)
	if stderrors.Is(err, repository.ErrObjectNotFound) {
		return []entity.User{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read users directory: %w", err)
	}

	users := []entity.User{}
	if err := json.Unmarshal(obj.Data, &users); err != nil {
		return nil, 0, fmt.Errorf("users directory is malformed: %w", err)
	}
	return users, obj.Generation, nil
}

// updateDirectory applies mutate under a generation precondition, re-reading
// on conflict.
func (r *objectUserRepository) updateDirectory(ctx context.Context, mutate func([]entity.User) ([]entity.User, error)) error {
	for attempt := 0; attempt < r.maxRetries; attempt++ {
		users, generation, err := r.readDirectory(ctx)
		if err != nil {
			return err
		}

		users, err = mutate(users)
		if err != nil {
			return err
		}

		data, err := json.Marshal(users)
		if err != nil {
			return fmt.Errorf("failed to encode users directory: %w", err)
		}

		_, err = r.store.Put(ctx, usersDirectoryKey, data, jsonContentType, repository.PutOptions{
			IfGeneration: repository.Generation(generation),
		})
		if err == nil {
			return nil
		}
		if !stderrors.Is(err, repository.ErrPreconditionFailed) {
			return fmt.Errorf("failed to write users directory: %w", err)
		}
	}
	return fmt.Errorf("users directory kept changing: %w", repository.ErrPreconditionFailed)
}
