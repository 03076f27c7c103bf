package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dishpatch/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMenuService is a mock implementation of service.MenuService.
type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]model.MenuItem, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuItem), args.Error(1)
}

func (m *MockMenuService) Create(ctx context.Context, req *model.CreateMenuItemRequest) (*model.MenuItem, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func TestMenuHandler_List(t *testing.T) {
	logger := zerolog.Nop()
	restaurantID := uuid.New()

	items := []model.MenuItem{
		{ID: uuid.New(), RestaurantID: restaurantID, Name: "Margherita Pizza", Price: 12.99, Category: "Mains", Available: true, CreatedAt: time.Now()},
	}

	tests := []struct {
		name           string
		query          string
		mockReturn     []model.MenuItem
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			query:          "?restaurantId=" + restaurantID.String(),
			mockReturn:     items,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Missing restaurant ID",
			query:          "",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Invalid restaurant ID",
			query:          "?restaurantId=not-a-uuid",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Repository failure",
			query:          "?restaurantId=" + restaurantID.String(),
			mockError:      errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockMenuService)
			handler := NewMenuHandler(mockService, logger)

			if tt.expectService {
				mockService.On("ListByRestaurant", mock.Anything, restaurantID).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/menu"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.List(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService {
				mockService.AssertExpectations(t)
			}
		})
	}
}

func TestMenuHandler_Create(t *testing.T) {
	logger := zerolog.Nop()
	restaurantID := uuid.New()

	created := &model.MenuItem{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Name:         "Caesar Salad",
		Price:        8.50,
		Category:     "Starters",
		Available:    true,
		CreatedAt:    time.Now(),
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockReturn     *model.MenuItem
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name: "Success",
			requestBody: &model.CreateMenuItemRequest{
				RestaurantID: restaurantID,
				Name:         "Caesar Salad",
				Price:        8.50,
				Category:     "Starters",
			},
			mockReturn:     created,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Invalid JSON",
			requestBody:    "not json",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name: "Validation error from service",
			requestBody: &model.CreateMenuItemRequest{
				RestaurantID: restaurantID,
				Price:        8.50,
			},
			mockError:      errors.New("menu item name is required"),
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockMenuService)
			handler := NewMenuHandler(mockService, logger)

			var body []byte
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			if tt.expectService {
				mockService.On("Create", mock.Anything, mock.AnythingOfType("*model.CreateMenuItemRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/menu", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService {
				mockService.AssertExpectations(t)
			}
		})
	}
}
