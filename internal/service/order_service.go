package service

import (
	"admin-service/internal/models"
	"admin-service/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ProductReader is the catalog read path the order workflow prices against.
type ProductReader interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

type LineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderInput struct {
	UserID   string        `json:"userId" validate:"required"`
	Products []LineRequest `json:"products"`
	Status   string        `json:"status"`
}

// UpdateOrderInput carries only the fields to change. A nil Products slice
// leaves the line items untouched; a non-nil one replaces them entirely.
type UpdateOrderInput struct {
	UserID   *string       `json:"userId"`
	Products []LineRequest `json:"products"`
	Status   *string       `json:"status"`
}

type OrderService struct {
	orders   repository.OrderRepository
	products ProductReader
	now      func() time.Time
}

func NewOrderService(orders repository.OrderRepository, products ProductReader) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		now:      time.Now,
	}
}

func parseOrderStatus(raw string) (models.OrderStatus, error) {
	status := models.OrderStatus(strings.TrimSpace(raw))
	if !status.Valid() {
		return "", fmt.Errorf("%w: invalid status '%s', must be pending, paid or cancelled", repository.ErrInvalidInput, raw)
	}
	return status, nil
}

// priceLines validates the requested lines and snapshots each product's
// current price. It stops at the first invalid or missing line.
func (s *OrderService) priceLines(ctx context.Context, lines []LineRequest) ([]models.OrderItem, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one product", repository.ErrInvalidInput)
	}

	for _, line := range lines {
		if strings.TrimSpace(line.ProductID) == "" {
			return nil, fmt.Errorf("%w: productId is required", repository.ErrInvalidInput)
		}
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be greater than 0", repository.ErrInvalidInput)
		}
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: product %s", repository.ErrNotFound, line.ProductID)
			}
			return nil, fmt.Errorf("failed to load product %s: %w", line.ProductID, err)
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
			Product:   product,
		})
	}

	return items, nil
}

func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	status := models.OrderStatusPending
	if in.Status != "" {
		parsed, err := parseOrderStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	items, err := s.priceLines(ctx, in.Products)
	if err != nil {
		return nil, err
	}

	totals := ComputeTotals(items)
	now := s.now().UTC()

	order := &models.Order{
		UserID:    in.UserID,
		Items:     items,
		Subtotal:  totals.Subtotal,
		Total:     totals.Total,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (s *OrderService) Update(ctx context.Context, id string, in UpdateOrderInput) (*models.Order, error) {
	var status models.OrderStatus
	if in.Status != nil {
		parsed, err := parseOrderStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.UserID != nil && strings.TrimSpace(*in.UserID) != "" {
		order.UserID = strings.TrimSpace(*in.UserID)
	}

	if in.Products != nil {
		items, err := s.priceLines(ctx, in.Products)
		if err != nil {
			return nil, err
		}
		totals := ComputeTotals(items)
		order.Items = items
		order.Subtotal = totals.Subtotal
		order.Total = totals.Total
	}

	if status != "" {
		order.Status = status
	}

	order.UpdatedAt = s.now().UTC()

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// Cancel moves the order to cancelled. Repeated calls write again and succeed.
func (s *OrderService) Cancel(ctx context.Context, id string) (*models.Order, error) {
	if err := s.orders.UpdateStatus(ctx, id, models.OrderStatusCancelled, s.now().UTC()); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, id)
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.GetAll(ctx)
}
