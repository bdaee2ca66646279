package service

import (
	"admin-service/internal/models"
	"admin-service/internal/repository"
	"admin-service/internal/repository/memory"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func decPtr(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func TestProductService_CreateValidation(t *testing.T) {
	svc := NewProductService(memory.NewStore().Products())

	tests := []struct {
		name  string
		input CreateProductInput
	}{
		{"missing name", CreateProductInput{Description: "x", Quantity: intPtr(1), Price: decPtr("1")}},
		{"blank name", CreateProductInput{Name: "   ", Description: "x", Quantity: intPtr(1), Price: decPtr("1")}},
		{"missing description", CreateProductInput{Name: "x", Quantity: intPtr(1), Price: decPtr("1")}},
		{"missing quantity", CreateProductInput{Name: "x", Description: "x", Price: decPtr("1")}},
		{"negative quantity", CreateProductInput{Name: "x", Description: "x", Quantity: intPtr(-1), Price: decPtr("1")}},
		{"missing price", CreateProductInput{Name: "x", Description: "x", Quantity: intPtr(1)}},
		{"negative price", CreateProductInput{Name: "x", Description: "x", Quantity: intPtr(1), Price: decPtr("-0.01")}},
		{"sub-cent price", CreateProductInput{Name: "x", Description: "x", Quantity: intPtr(1), Price: decPtr("10.005")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, repository.ErrInvalidInput)
		})
	}
}

func TestProductService_Lifecycle(t *testing.T) {
	svc := NewProductService(memory.NewStore().Products())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductInput{
		Name:        " Widget ",
		Description: "A widget",
		Quantity:    intPtr(0),
		Price:       decPtr("10.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget", created.Name)
	assert.Equal(t, models.StatusActive, created.Status)
	assert.NotEmpty(t, created.ID)

	updated, err := svc.Update(ctx, created.ID, UpdateProductInput{
		Name:     strPtr(""),
		Quantity: intPtr(7),
		Price:    decPtr("12.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget", updated.Name, "empty name leaves the field untouched")
	assert.Equal(t, 7, updated.Quantity)
	assert.True(t, updated.Price.Equal(d("12.50")))

	_, err = svc.Update(ctx, created.ID, UpdateProductInput{Quantity: intPtr(-3)})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, deleted.Status)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductService_UpdateStatusFalseHidesProduct(t *testing.T) {
	svc := NewProductService(memory.NewStore().Products())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductInput{
		Name: "Gadget", Description: "g", Quantity: intPtr(1), Price: decPtr("3"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateProductInput{Status: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, updated.Status)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProductService_UpdateMissing(t *testing.T) {
	svc := NewProductService(memory.NewStore().Products())
	_, err := svc.Update(context.Background(), "missing", UpdateProductInput{Name: strPtr("x")})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProductService_PriceScale(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(memory.NewStore().Products())

	_, err := svc.Create(ctx, CreateProductInput{Name: "x", Description: "x", Quantity: intPtr(1)})
	require.ErrorIs(t, err, repository.ErrInvalidInput)
	assert.Contains(t, err.Error(), "price is required")

	p, err := svc.Create(ctx, CreateProductInput{Name: "x", Description: "x", Quantity: intPtr(1), Price: decPtr("10.500")})
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(d("10.50")))

	_, err = svc.Update(ctx, p.ID, UpdateProductInput{Price: decPtr("3.999")})
	require.ErrorIs(t, err, repository.ErrInvalidInput)
	assert.Contains(t, err.Error(), "2 decimal places")

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(d("10.50")))
}
