package handlers

import (
	"admin-service/internal/models"
	"admin-service/internal/service"
	"context"
	"net/http"
)

type ProductService interface {
	Create(ctx context.Context, in service.CreateProductInput) (*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, id string, in service.UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) (*models.Product, error)
}

type ProductHandler struct {
	svc ProductService
}

func NewProductHandler(svc ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "product")
	if !ok {
		return
	}

	product, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get product")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to get products")
		return
	}

	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProductInput
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	p, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "failed to create product")
		return
	}

	w.Header().Set("Location", "/api/products/get/"+p.ID)
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "product")
	if !ok {
		return
	}

	var req service.UpdateProductInput
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	p, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err, "failed to update product")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "product")
	if !ok {
		return
	}

	p, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to delete product")
		return
	}

	writeJSON(w, http.StatusOK, p)
}
