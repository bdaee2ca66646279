package handlers

import (
	"admin-service/internal/models"
	"admin-service/internal/service"
	"context"
	"net/http"
)

type MenuService interface {
	Create(ctx context.Context, in service.CreateMenuItemInput) (*models.MenuItem, error)
	Get(ctx context.Context, id string) (*models.MenuItem, error)
	List(ctx context.Context) ([]models.MenuItem, error)
	ListByRole(ctx context.Context, role string) ([]models.MenuItem, error)
	Update(ctx context.Context, id string, in service.UpdateMenuItemInput) (*models.MenuItem, error)
	Delete(ctx context.Context, id string) (*models.MenuItem, error)
}

type MenuHandler struct {
	svc MenuService
}

func NewMenuHandler(svc MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

func (h *MenuHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to get menu items")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *MenuHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "menu item")
	if !ok {
		return
	}

	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get menu item")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) ByRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	items, err := h.svc.ListByRole(r.Context(), req.Role)
	if err != nil {
		writeServiceError(w, err, "failed to get menu items")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateMenuItemInput
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	item, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "failed to create menu item")
		return
	}

	w.Header().Set("Location", "/api/menu/get/"+item.ID)
	writeJSON(w, http.StatusCreated, item)
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "menu item")
	if !ok {
		return
	}

	var req service.UpdateMenuItemInput
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	item, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err, "failed to update menu item")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "menu item")
	if !ok {
		return
	}

	item, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to delete menu item")
		return
	}

	writeJSON(w, http.StatusOK, item)
}
