package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairshoppe/internal/domain/entity"
	"fairshoppe/pkg/errors"
)

func TestProfileRoundTripPreservesTimestamp(t *testing.T) {
	uc := NewProfileUseCase(newMemoryProfileRepo())
	created := time.Date(2024, 3, 9, 14, 30, 15, 123000000, time.UTC)

	saved, err := uc.SaveGeneratedImage(context.Background(), "user-1", entity.GeneratedImage{
		ID:        "img-1",
		URL:       "https://img/1.png",
		Prompt:    "a fox",
		CreatedAt: created,
	})
	require.NoError(t, err)

	images, err := uc.GetGeneratedImages(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, saved.ID, images[0].ID)
	assert.Equal(t, saved.URL, images[0].URL)
	assert.Equal(t, saved.Prompt, images[0].Prompt)
	assert.True(t, images[0].CreatedAt.Equal(created))
}

func TestProfileSaveAssignsIDAndTime(t *testing.T) {
	uc := NewProfileUseCase(newMemoryProfileRepo())

	saved, err := uc.SaveTextData(context.Background(), "user-1", entity.TextData{Content: "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestProfileSaveRequiresUser(t *testing.T) {
	uc := NewProfileUseCase(newMemoryProfileRepo())

	_, err := uc.SaveDesign(context.Background(), "", entity.Design{ProductID: 145})
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestProfileLoadAllCategories(t *testing.T) {
	repo := newMemoryProfileRepo()
	uc := NewProfileUseCase(repo)
	ctx := context.Background()

	_, err := uc.SaveUserImage(ctx, "user-1", entity.UserImage{URL: "https://img/u.png"})
	require.NoError(t, err)
	_, err = uc.SaveOrder(ctx, "user-1", entity.Order{OrderID: "order_1", Quantity: 2})
	require.NoError(t, err)
	_, err = uc.SaveOrder(ctx, "user-1", entity.Order{OrderID: "order_2", Quantity: 1})
	require.NoError(t, err)

	data, err := uc.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, data.UserImages, 1)
	assert.Len(t, data.Orders, 2)
	assert.Equal(t, "order_1", data.Orders[0].OrderID)
	assert.Empty(t, data.GeneratedImages)
	assert.NotNil(t, data.GeneratedImages)
}

func TestProfileGetCategory(t *testing.T) {
	uc := NewProfileUseCase(newMemoryProfileRepo())

	records, err := uc.GetCategory(context.Background(), "user-1", entity.CategoryTexts)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = uc.GetCategory(context.Background(), "user-1", entity.ProfileCategory("friends"))
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}
