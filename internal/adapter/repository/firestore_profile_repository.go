package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fairshoppe/internal/domain/entity"
	"fairshoppe/internal/domain/repository"
)

// firestoreProfileRepository stores one document per record under
// profiles/{userId}/{category}/{id}. Appends are server-side creates, so
// there is no shared list to race on.
type firestoreProfileRepository struct {
	client *firestore.Client
}

func NewFirestoreProfileRepository(client *firestore.Client) repository.ProfileRepository {
	return &firestoreProfileRepository{
		client: client,
	}
}

func (r *firestoreProfileRepository) collection(userID string, category entity.ProfileCategory) *firestore.CollectionRef {
	return r.client.Collection("profiles").Doc(userID).Collection(string(category))
}

func (r *firestoreProfileRepository) Append(ctx context.Context, userID string, category entity.ProfileCategory, id string, doc []byte) error {
	_, err := r.collection(userID, category).Doc(id).Create(ctx, map[string]interface{}{
		"id":        id,
		"data":      string(doc),
		"createdAt": firestore.ServerTimestamp,
	})
	if status.Code(err) == codes.AlreadyExists {
		// same record appended twice
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create %s record: %w", category, err)
	}
	return nil
}

func (r *firestoreProfileRepository) List(ctx context.Context, userID string, category entity.ProfileCategory) ([]json.RawMessage, error) {
	iter := r.collection(userID, category).OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	records := []json.RawMessage{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list %s records: %w", category, err)
		}

		data, ok := doc.Data()["data"].(string)
		if !ok {
			return nil, fmt.Errorf("%s record %s has no data", category, doc.Ref.ID)
		}
		records = append(records, json.RawMessage(data))
	}

	return records, nil
}
