package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fairshoppe/internal/domain/entity"
	"fairshoppe/internal/domain/repository"
	"fairshoppe/pkg/errors"
	"fairshoppe/pkg/logger"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
	}
}

func appendRecord[T any](ctx context.Context, repo repository.ProfileRepository, userID string, category entity.ProfileCategory, id string, record T) error {
	if userID == "" {
		return errors.Unauthorized("A signed-in user is required to save profile data", nil)
	}

	doc, err := json.Marshal(record)
	if err != nil {
		return errors.Internal("Failed to encode profile record", err)
	}

	if err := repo.Append(ctx, userID, category, id, doc); err != nil {
		return errors.Internal(fmt.Sprintf("Failed to save %s record", category), err)
	}
	return nil
}

func listRecords[T any](ctx context.Context, repo repository.ProfileRepository, userID string, category entity.ProfileCategory) ([]T, error) {
	raws, err := repo.List(ctx, userID, category)
	if err != nil {
		return nil, errors.Internal(fmt.Sprintf("Failed to load %s records", category), err)
	}

	records := make([]T, 0, len(raws))
	for _, raw := range raws {
		var record T
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, errors.Internal(fmt.Sprintf("Stored %s record is malformed", category), err)
		}
		records = append(records, record)
	}
	return records, nil
}

func newRecordID(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}

func recordTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

func (uc *ProfileUseCase) SaveGeneratedImage(ctx context.Context, userID string, image entity.GeneratedImage) (*entity.GeneratedImage, error) {
	image.ID = newRecordID(image.ID)
	image.CreatedAt = recordTime(image.CreatedAt)
	if err := appendRecord(ctx, uc.profileRepo, userID, entity.CategoryGeneratedImages, image.ID, image); err != nil {
		return nil, err
	}
	return &image, nil
}

func (uc *ProfileUseCase) SaveUserImage(ctx context.Context, userID string, image entity.UserImage) (*entity.UserImage, error) {
	image.ID = newRecordID(image.ID)
	image.CreatedAt = recordTime(image.CreatedAt)
	if err := appendRecord(ctx, uc.profileRepo, userID, entity.CategoryUserImages, image.ID, image); err != nil {
		return nil, err
	}
	return &image, nil
}

func (uc *ProfileUseCase) SaveEditedImage(ctx context.Context, userID string, image entity.EditedImage) (*entity.EditedImage, error) {
	image.ID = newRecordID(image.ID)
	image.CreatedAt = recordTime(image.CreatedAt)
	if err := appendRecord(ctx, uc.profileRepo, userID, entity.CategoryEditedImages, image.ID, image); err != nil {
		return nil, err
	}
	return &image, nil
}

func (uc *ProfileUseCase) SaveTextData(ctx context.Context, userID string, text entity.TextData) (*entity.TextData, error) {
	text.ID = newRecordID(text.ID)
	text.CreatedAt = recordTime(text.CreatedAt)
	if err := appendRecord(ctx, uc.profileRepo, userID, entity.CategoryTexts, text.ID, text); err != nil {
		return nil, err
	}
	return &text, nil
}

func (uc *ProfileUseCase) SaveDesign(ctx context.Context, userID string, design entity.Design) (*entity.Design, error) {
	design.ID = newRecordID(design.ID)
	design.CreatedAt = recordTime(design.CreatedAt)
	if err := appendRecord(ctx, uc.profileRepo, userID, entity.CategoryDesigns, design.ID, design); err != nil {
		return nil, err
	}
	return &design, nil
}

func (uc *ProfileUseCase) SaveOrder(ctx context.Context, userID string, order entity.Order) (*entity.Order, error) {
	order.ID = newRecordID(order.ID)
	order.CreatedAt = recordTime(order.CreatedAt)
	if err := appendRecord(ctx, uc.profileRepo, userID, entity.CategoryOrders, order.ID, order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (uc *ProfileUseCase) GetGeneratedImages(ctx context.Context, userID string) ([]entity.GeneratedImage, error) {
	return listRecords[entity.GeneratedImage](ctx, uc.profileRepo, userID, entity.CategoryGeneratedImages)
}

func (uc *ProfileUseCase) GetUserImages(ctx context.Context, userID string) ([]entity.UserImage, error) {
	return listRecords[entity.UserImage](ctx, uc.profileRepo, userID, entity.CategoryUserImages)
}

func (uc *ProfileUseCase) GetEditedImages(ctx context.Context, userID string) ([]entity.EditedImage, error) {
	return listRecords[entity.EditedImage](ctx, uc.profileRepo, userID, entity.CategoryEditedImages)
}

func (uc *ProfileUseCase) GetTexts(ctx context.Context, userID string) ([]entity.TextData, error) {
	return listRecords[entity.TextData](ctx, uc.profileRepo, userID, entity.CategoryTexts)
}

func (uc *ProfileUseCase) GetDesigns(ctx context.Context, userID string) ([]entity.Design, error) {
	return listRecords[entity.Design](ctx, uc.profileRepo, userID, entity.CategoryDesigns)
}

func (uc *ProfileUseCase) GetOrders(ctx context.Context, userID string) ([]entity.Order, error) {
	return listRecords[entity.Order](ctx, uc.profileRepo, userID, entity.CategoryOrders)
}

// GetCategory serves the per-category endpoint.
func (uc *ProfileUseCase) GetCategory(ctx context.Context, userID string, category entity.ProfileCategory) (interface{}, error) {
	switch category {
	case entity.CategoryGeneratedImages:
		return uc.GetGeneratedImages(ctx, userID)
	case entity.CategoryUserImages:
		return uc.GetUserImages(ctx, userID)
	case entity.CategoryEditedImages:
		return uc.GetEditedImages(ctx, userID)
	case entity.CategoryTexts:
		return uc.GetTexts(ctx, userID)
	case entity.CategoryDesigns:
		return uc.GetDesigns(ctx, userID)
	case entity.CategoryOrders:
		return uc.GetOrders(ctx, userID)
	default:
		return nil, errors.BadRequest("Unknown profile category: "+string(category), nil)
	}
}

// Load reads every category concurrently. Any failed read fails the whole load.
func (uc *ProfileUseCase) Load(ctx context.Context, userID string) (*entity.ProfileData, error) {
	data := &entity.ProfileData{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		data.GeneratedImages, err = uc.GetGeneratedImages(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		data.UserImages, err = uc.GetUserImages(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		data.EditedImages, err = uc.GetEditedImages(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		data.Texts, err = uc.GetTexts(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		data.Designs, err = uc.GetDesigns(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		data.Orders, err = uc.GetOrders(ctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// recordBestEffort runs a profile save whose failure must not fail the
// request it belongs to. Anonymous callers are skipped.
func recordBestEffort(userID string, category entity.ProfileCategory, save func() error) {
	if userID == "" {
		return
	}
	if err := save(); err != nil {
		logger.LogProfileSaveError(userID, string(category), err)
	}
}
