package repository

import (
	"admin-service/internal/models"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type productRepo struct {
	db DBTX
}

func NewProductRepository(db DBTX) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `
	id,
	name,
	description,
	quantity,
	price,
	status,
	created_at,
	updated_at`

func scanProduct(row scanner) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Quantity,
		&p.Price,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func validateProduct(p *models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name required", ErrInvalidInput)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: product price cannot be negative", ErrInvalidInput)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: product quantity cannot be negative", ErrInvalidInput)
	}
	return nil
}

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}

	sql := `
		INSERT INTO products (
			id,
			name,
			description,
			quantity,
			price,
			status,
			created_at,
			updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = models.StatusActive
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(ctx, sql,
		p.ID,
		p.Name,
		p.Description,
		p.Quantity,
		p.Price,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return fmt.Errorf("%w: product %s already exists", ErrDuplicate, p.ID)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	sql := `SELECT` + productColumns + `
		FROM products WHERE id = $1 AND status = $2
		`

	product, err := scanProduct(r.db.QueryRow(ctx, sql, id, models.StatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by id %s: %w", id, err)
	}

	return product, nil
}

func (r *productRepo) GetAll(ctx context.Context) ([]models.Product, error) {
	sql := `SELECT` + productColumns + `
		FROM products
		WHERE status = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, sql, models.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}

	defer rows.Close()

	products := []models.Product{}

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan products: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return products, nil
}

func (r *productRepo) Update(ctx context.Context, p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if p.ID == "" {
		return fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	sql := `
	UPDATE products
	SET
		name = $1,
		description = $2,
		quantity = $3,
		price = $4,
		status = $5,
		updated_at = $6
	WHERE id = $7
	RETURNING created_at, updated_at
	`

	now := time.Now().UTC()

	err := r.db.QueryRow(ctx, sql,
		p.Name,
		p.Description,
		p.Quantity,
		p.Price,
		p.Status,
		now,
		p.ID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update product %s: %w", p.ID, err)
	}

	return nil
}

// Delete marks an active product as deleted.
func (r *productRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	sql := `UPDATE products SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`

	result, err := r.db.Exec(ctx, sql, models.StatusDeleted, time.Now().UTC(), id, models.StatusActive)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
