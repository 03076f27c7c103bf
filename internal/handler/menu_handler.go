package handler

import (
	"encoding/json"
	"net/http"

	"dishpatch/internal/model"
	"dishpatch/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MenuHandler handles menu catalog HTTP requests.
type MenuHandler struct {
	service service.MenuService
	logger  zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(service service.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger.With().Str("handler", "menu").Logger(),
	}
}

// List handles GET /api/menu?restaurantId=... requests.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurantIDStr := r.URL.Query().Get("restaurantId")
	if restaurantIDStr == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "restaurantId query parameter is required", h.logger)
		return
	}

	restaurantID, err := uuid.Parse(restaurantIDStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid restaurant ID format", h.logger)
		return
	}

	items, err := h.service.ListByRestaurant(r.Context(), restaurantID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /api/menu requests.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}
