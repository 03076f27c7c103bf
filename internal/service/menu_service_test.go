package service

import (
	"context"
	"testing"

	"dishpatch/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMenuService_Create_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockMenuRepo := new(MockMenuRepository)
	svc := NewMenuService(mockMenuRepo, logger)

	mockMenuRepo.On("Create", ctx, mock.AnythingOfType("*model.MenuItem")).Return(nil)

	item, err := svc.Create(ctx, &model.CreateMenuItemRequest{
		RestaurantID: uuid.New(),
		Name:         "Margherita",
		Price:        12.99,
		Category:     "Pizza",
	})

	require.NoError(t, err)
	require.NotNil(t, item)
	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.True(t, item.Available, "new dishes start available")
	assert.False(t, item.CreatedAt.IsZero())

	mockMenuRepo.AssertExpectations(t)
}

func TestMenuService_Create_Validation(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *model.CreateMenuItemRequest
	}{
		{"Nil request", nil},
		{"Missing restaurant", &model.CreateMenuItemRequest{Name: "Pizza", Price: 10}},
		{"Missing name", &model.CreateMenuItemRequest{RestaurantID: uuid.New(), Price: 10}},
		{"Zero price", &model.CreateMenuItemRequest{RestaurantID: uuid.New(), Name: "Pizza", Price: 0}},
		{"Negative price", &model.CreateMenuItemRequest{RestaurantID: uuid.New(), Name: "Pizza", Price: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockMenuRepo := new(MockMenuRepository)
			svc := NewMenuService(mockMenuRepo, logger)

			item, err := svc.Create(ctx, tt.req)

			require.Error(t, err)
			assert.Nil(t, item)
			mockMenuRepo.AssertNotCalled(t, "Create")
		})
	}
}

func TestMenuService_ListByRestaurant(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	restaurantID := uuid.New()
	items := []model.MenuItem{
		{ID: uuid.New(), RestaurantID: restaurantID, Name: "Margherita", Price: 12.99},
	}

	mockMenuRepo := new(MockMenuRepository)
	svc := NewMenuService(mockMenuRepo, logger)

	mockMenuRepo.On("GetByRestaurant", ctx, restaurantID).Return(items, nil)

	got, err := svc.ListByRestaurant(ctx, restaurantID)

	require.NoError(t, err)
	assert.Equal(t, items, got)

	_, err = svc.ListByRestaurant(ctx, uuid.Nil)
	assert.Error(t, err)
}
