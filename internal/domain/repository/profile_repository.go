package repository

import (
	"context"
	"encoding/json"

	"fairshoppe/internal/domain/entity"
)

// ProfileRepository appends records to a user's category list and reads the
// list back in full. Appends never overwrite another writer's records.
type ProfileRepository interface {
	Append(ctx context.Context, userID string, category entity.ProfileCategory, id string, doc []byte) error
	List(ctx context.Context, userID string, category entity.ProfileCategory) ([]json.RawMessage, error)
}
