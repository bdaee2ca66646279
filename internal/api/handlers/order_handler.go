package handlers

import (
	"admin-service/internal/auth"
	"admin-service/internal/models"
	"admin-service/internal/service"
	"context"
	"net/http"
)

type OrderService interface {
	Create(ctx context.Context, in service.CreateOrderInput) (*models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, id string, in service.UpdateOrderInput) (*models.Order, error)
	Cancel(ctx context.Context, id string) (*models.Order, error)
}

type OrderHandler struct {
	svc OrderService
}

func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateOrderInput
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	// orders placed by a signed-in caller default to that caller
	if req.UserID == "" {
		if claims, ok := auth.ClaimsFrom(r.Context()); ok {
			req.UserID = claims.UserID
		}
	}

	order, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "failed to create order")
		return
	}

	w.Header().Set("Location", "/api/orders/get/"+order.ID)
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "order")
	if !ok {
		return
	}

	order, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get order")
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to get orders")
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "order")
	if !ok {
		return
	}

	var req service.UpdateOrderInput
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	order, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err, "failed to update order")
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Cancel backs DELETE: orders are never removed, only cancelled.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "order")
	if !ok {
		return
	}

	order, err := h.svc.Cancel(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to cancel order")
		return
	}

	writeJSON(w, http.StatusOK, order)
}
