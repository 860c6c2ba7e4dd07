package repository

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/tidwall/gjson"

	"fairshoppe/internal/domain/entity"
	"fairshoppe/internal/domain/repository"
	"fairshoppe/internal/infrastructure/metrics"
	"fairshoppe/pkg/logger"
)

const jsonContentType = "application/json"

// objectProfileRepository keeps each category as an individual document per
// record plus a list.json holding every record. The list is rewritten with a
// generation precondition so concurrent appends are retried, never lost.
type objectProfileRepository struct {
	store      repository.ObjectStore
	maxRetries int
}

func NewObjectProfileRepository(store repository.ObjectStore, maxRetries int) repository.ProfileRepository {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &objectProfileRepository{
		store:      store,
		maxRetries: maxRetries,
	}
}

func recordKey(userID string, category entity.ProfileCategory, id string) string {
	return fmt.Sprintf("%s/data/%s/%s.json", userID, category, id)
}

func listKey(userID string, category entity.ProfileCategory) string {
	return fmt.Sprintf("%s/data/%s/list.json", userID, category)
}

func (r *objectProfileRepository) Append(ctx context.Context, userID string, category entity.ProfileCategory, id string, doc []byte) error {
	if !gjson.ValidBytes(doc) {
		return fmt.Errorf("profile record %s is not valid JSON", id)
	}

	if _, err := r.store.Put(ctx, recordKey(userID, category, id), doc, jsonContentType, repository.PutOptions{}); err != nil {
		return fmt.Errorf("failed to write %s record: %w", category, err)
	}

	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		list, generation, err := r.readList(ctx, userID, category)
		if err != nil {
			return err
		}

		if containsRecord(list, id) {
			return nil
		}
		list = append(list, json.RawMessage(doc))

		data, err := json.Marshal(list)
		if err != nil {
			return fmt.Errorf("failed to encode %s list: %w", category, err)
		}

		_, err = r.store.Put(ctx, listKey(userID, category), data, jsonContentType, repository.PutOptions{
			IfGeneration: repository.Generation(generation),
		})
		if err == nil {
			return nil
		}
		if !stderrors.Is(err, repository.ErrPreconditionFailed) {
			return fmt.Errorf("failed to write %s list: %w", category, err)
		}

		metrics.ProfileAppendConflict(string(category))
		logger.Debug("Profile list %s for user %s changed concurrently, retrying (%d/%d)", category, userID, attempt, r.maxRetries)
	}

	return fmt.Errorf("gave up appending to %s list after %d attempts: %w", category, r.maxRetries, repository.ErrPreconditionFailed)
}

func (r *objectProfileRepository) List(ctx context.Context, userID string, category entity.ProfileCategory) ([]json.RawMessage, error) {
	list, _, err := r.readList(ctx, userID, category)
	return list, err
}

// readList returns generation 0 when the list does not exist yet.
func (r *objectProfileRepository) readList(ctx context.Context, userID string, category entity.ProfileCategory) ([]json.RawMessage, int64, error) {
	obj, err := r.store.Get(ctx, listKey(userID, category))
	if stderrors.Is(err, repository.ErrObjectNotFound) {
		return []json.RawMessage{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read %s list: %w", category, err)
	}

	list := []json.RawMessage{}
	if err := json.Unmarshal(obj.Data, &list); err != nil {
		return nil, 0, fmt.Errorf("%s list is malformed: %w", category, err)
	}
	return list, obj.Generation, nil
}

func containsRecord(list []json.RawMessage, id string) bool {
	for _, raw := range list {
		if gjson.GetBytes(raw, "id").String() == id {
			return true
		}
	}
	return false
}
