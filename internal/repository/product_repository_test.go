package repository

import (
	"admin-service/internal/models"
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productRowColumns = []string{"id", "name", "description", "quantity", "price", "status", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestProductRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectExec("INSERT INTO products").
		WithArgs(pgxmock.AnyArg(), "Widget", "A widget", 5, pgxmock.AnyArg(), models.StatusActive, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	p := &models.Product{Name: "Widget", Description: "A widget", Quantity: 5, Price: decimal.RequireFromString("10.00")}
	require.NoError(t, repo.Create(context.Background(), p))

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, models.StatusActive, p.Status)
	assert.False(t, p.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_CreateRejects(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	err := repo.Create(context.Background(), &models.Product{Name: "", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = repo.Create(context.Background(), &models.Product{Name: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	mock.ExpectExec("INSERT INTO products").
		WithArgs("p1", "x", "", 0, pgxmock.AnyArg(), models.StatusActive, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "products_pkey"})

	err = repo.Create(context.Background(), &models.Product{ID: "p1", Name: "x", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`FROM products WHERE id = \$1 AND status = \$2`).
		WithArgs("p1", models.StatusActive).
		WillReturnRows(pgxmock.NewRows(productRowColumns).
			AddRow("p1", "Widget", "A widget", 5, "10.00", models.StatusActive, now, now))

	p, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("10")))
	assert.Equal(t, now, p.CreatedAt)

	mock.ExpectQuery(`FROM products WHERE id = \$1 AND status = \$2`).
		WithArgs("gone", models.StatusActive).
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByID(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByID(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetAll(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery("ORDER BY created_at, id").
		WithArgs(models.StatusActive).
		WillReturnRows(pgxmock.NewRows(productRowColumns).
			AddRow("p1", "A", "a", 1, "1.50", models.StatusActive, now, now).
			AddRow("p2", "B", "b", 2, "2.25", models.StatusActive, now, now))

	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p2", products[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Delete(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectExec("UPDATE products SET status").
		WithArgs(models.StatusDeleted, pgxmock.AnyArg(), "p1", models.StatusActive).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repo.Delete(context.Background(), "p1"))

	mock.ExpectExec("UPDATE products SET status").
		WithArgs(models.StatusDeleted, pgxmock.AnyArg(), "p1", models.StatusActive).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "p1"), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery("UPDATE products").
		WithArgs("x", "", 0, pgxmock.AnyArg(), models.StatusActive, pgxmock.AnyArg(), "p1").
		WillReturnError(pgx.ErrNoRows)

	err := repo.Update(context.Background(), &models.Product{ID: "p1", Name: "x", Price: decimal.NewFromInt(1), Status: models.StatusActive})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), "", "a@example.com", "h", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), models.StatusActive).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &models.User{Email: "a@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "email already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_EmailExists(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("a@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuRepository_Count(t *testing.T) {
	mock := newMock(t)
	repo := NewMenuRepository(mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM menu_items`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
