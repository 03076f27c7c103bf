package handler

import (
	"encoding/json"
	"net/http"

	"dishpatch/internal/lifecycle"
	"dishpatch/internal/model"
	"dishpatch/internal/repository"
	"dishpatch/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// actorRoleHeader carries the caller's role, supplied upstream by the
// identity collaborator. The engine trusts it; authentication is not
// this service's job.
const actorRoleHeader = "X-Actor-Role"

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	order, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderIDFromPath(w, r)
	if !ok {
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Transition handles POST /api/orders/{id}/transition requests.
func (h *OrderHandler) Transition(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderIDFromPath(w, r)
	if !ok {
		return
	}

	role := model.ActorRole(r.Header.Get(actorRoleHeader))
	if role == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "actor role header is required", h.logger)
		return
	}

	var req model.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if req.Target == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "target status is required", h.logger)
		return
	}
	req.Role = role

	order, err := h.service.RequestTransition(r.Context(), orderID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// ListByBucket handles GET /api/orders?view=...&bucket=... requests.
func (h *OrderHandler) ListByBucket(w http.ResponseWriter, r *http.Request) {
	policy, filter, ok := h.viewParams(w, r)
	if !ok {
		return
	}

	bucket := lifecycle.Bucket(r.URL.Query().Get("bucket"))
	if bucket == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "bucket query parameter is required", h.logger)
		return
	}

	orders, err := h.service.ListByBucket(r.Context(), policy, bucket, filter)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// BucketCounts handles GET /api/orders/counts?view=... requests.
func (h *OrderHandler) BucketCounts(w http.ResponseWriter, r *http.Request) {
	policy, filter, ok := h.viewParams(w, r)
	if !ok {
		return
	}

	counts, err := h.service.BucketCounts(r.Context(), policy, filter)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, counts)
}

// orderIDFromPath extracts the {id} path value.
func (h *OrderHandler) orderIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "order ID is required", h.logger)
		return uuid.Nil, false
	}

	orderID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID format", h.logger)
		return uuid.Nil, false
	}

	return orderID, true
}

// viewParams parses the view policy and optional party filters.
func (h *OrderHandler) viewParams(w http.ResponseWriter, r *http.Request) (lifecycle.ViewPolicy, repository.OrderFilter, bool) {
	policy := lifecycle.ViewPolicy(r.URL.Query().Get("view"))
	if !lifecycle.ValidPolicy(policy) {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "view must be restaurant or customer", h.logger)
		return "", repository.OrderFilter{}, false
	}

	var filter repository.OrderFilter
	if v := r.URL.Query().Get("restaurantId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid restaurant ID format", h.logger)
			return "", repository.OrderFilter{}, false
		}
		filter.RestaurantID = id
	}
	if v := r.URL.Query().Get("customerId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid customer ID format", h.logger)
			return "", repository.OrderFilter{}, false
		}
		filter.CustomerID = id
	}

	return policy, filter, true
}
