package service

import (
	"admin-service/internal/models"
	"admin-service/internal/repository"
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateProductInput struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Quantity    *int             `json:"quantity" validate:"required,gte=0"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
}

// UpdateProductInput merges only the supplied fields. Status may flip a
// product back and forth between active and deleted.
type UpdateProductInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Quantity    *int             `json:"quantity" validate:"omitempty,gte=0"`
	Price       *decimal.Decimal `json:"price"`
	Status      *bool            `json:"status"`
}

type ProductService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// checkPrice holds prices to what NUMERIC(12,2) stores without rounding.
func checkPrice(price *decimal.Decimal) error {
	if price == nil {
		return nil
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", repository.ErrInvalidInput)
	}
	if !price.Equal(price.Round(2)) {
		return fmt.Errorf("%w: price cannot have more than 2 decimal places", repository.ErrInvalidInput)
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := checkPrice(in.Price); err != nil {
		return nil, err
	}

	p := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Quantity:    *in.Quantity,
		Price:       *in.Price,
		Status:      models.StatusActive,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *ProductService) Update(ctx context.Context, id string, in UpdateProductInput) (*models.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := checkPrice(in.Price); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Status != nil {
		p.Status = models.StatusFromBool(*in.Status)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete logically removes an active product and returns its final state.
func (s *ProductService) Delete(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	p.Status = models.StatusDeleted
	return p, nil
}
