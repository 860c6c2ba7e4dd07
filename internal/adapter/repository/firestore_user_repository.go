package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fairshoppe/internal/domain/entity"
	"fairshoppe/internal/domain/repository"
	"fairshoppe/pkg/errors"
)

type firestoreUser struct {
	ID           string `firestore:"id"`
	Name         string `firestore:"name"`
	Email        string `firestore:"email"`
	Address      string `firestore:"address"`
	PasswordHash string `firestore:"passwordHash"`
}

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) users() *firestore.CollectionRef {
	return r.client.Collection("users")
}

// Create checks the email and creates the document in one transaction.
func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User, passwordHash string) error {
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Documents(r.users().Where("email", "==", user.Email).Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return repository.ErrEmailTaken
		}

		return tx.Create(r.users().Doc(user.ID), firestoreUser{
			ID:           user.ID,
			Name:         user.Name,
			Email:        user.Email,
			Address:      user.Address,
			PasswordHash: passwordHash,
		})
	})
}

func (r *firestoreUserRepository) get(ctx context.Context, id string) (*firestoreUser, error) {
	doc, err := r.users().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, errors.NotFound("User", err)
	}
	if err != nil {
		return nil, err
	}

	var user firestoreUser
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.toEntity(), nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	iter := r.users().Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("User", nil)
	}
	if err != nil {
		return nil, err
	}

	var user firestoreUser
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}
	return user.toEntity(), nil
}

func (r *firestoreUserRepository) GetPasswordHash(ctx context.Context, id string) (string, error) {
	user, err := r.get(ctx, id)
	if err != nil {
		return "", err
	}
	if user.PasswordHash == "" {
		return "", errors.NotFound("Password", nil)
	}
	return user.PasswordHash, nil
}

func (r *firestoreUserRepository) SetPasswordHash(ctx context.Context, id, passwordHash string) error {
	_, err := r.users().Doc(id).Update(ctx, []firestore.Update{
		{Path: "passwordHash", Value: passwordHash},
	})
	return err
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	_, err := r.users().Doc(user.ID).Update(ctx, []firestore.Update{
		{Path: "name", Value: user.Name},
		{Path: "email", Value: user.Email},
		{Path: "address", Value: user.Address},
	})
	if status.Code(err) == codes.NotFound {
		return errors.NotFound("User", err)
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (u *firestoreUser) toEntity() *entity.User {
	return &entity.User{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Address: u.Address,
	}
}
