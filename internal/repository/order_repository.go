package repository

import (
	"admin-service/internal/models"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type orderRepo struct {
	db DBTX
}

func NewOrderRepository(db DBTX) OrderRepository {
	return &orderRepo{db: db}
}

func validateOrder(order *models.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order cannot be nil", ErrInvalidInput)
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one product", ErrInvalidInput)
	}
	for _, item := range order.Items {
		if item.ProductID == "" {
			return fmt.Errorf("%w: product ID cannot be empty", ErrInvalidInput)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
		if item.Price.IsNegative() {
			return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
		}
	}
	if !order.Status.Valid() {
		return fmt.Errorf("%w: invalid status '%s'", ErrInvalidInput, order.Status)
	}
	return nil
}

func insertItems(ctx context.Context, tx pgx.Tx, orderID string, items []models.OrderItem) error {
	insertItemSQL := `INSERT INTO order_items (order_id, position, product_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, item := range items {
		_, err := tx.Exec(ctx, insertItemSQL, orderID, i, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}
	return nil
}

// Create writes the order row and its line items in one transaction.
func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	if err := validateOrder(order); err != nil {
		return err
	}
	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `INSERT INTO orders (
	id,
	user_id,
	subtotal,
	total,
	status,
	created_at,
	updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.Exec(ctx, insert,
		order.ID,
		order.UserID,
		order.Subtotal,
		order.Total,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err := insertItems(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Update overwrites the order header and replaces its line items.
func (r *orderRepo) Update(ctx context.Context, order *models.Order) error {
	if err := validateOrder(order); err != nil {
		return err
	}
	if order.ID == "" {
		return fmt.Errorf("%w: order ID cannot be empty", ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql := `UPDATE orders
		SET user_id = $1,
			subtotal = $2,
			total = $3,
			status = $4,
			updated_at = $5
		WHERE id = $6
		RETURNING created_at
	`

	err = tx.QueryRow(ctx, sql,
		order.UserID,
		order.Subtotal,
		order.Total,
		order.Status,
		order.UpdatedAt,
		order.ID,
	).Scan(&order.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update order %s: %w", order.ID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("failed to clear order items %s: %w", order.ID, err)
	}

	if err := insertItems(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, updatedAt time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("%w: invalid status '%s'", ErrInvalidInput, status)
	}

	sql := `UPDATE orders
		SET status = $1,
			updated_at = $2
		WHERE id = $3
		`

	result, err := r.db.Exec(ctx, sql, status, updatedAt, id)
	if err != nil {
		return fmt.Errorf("update status order %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

const orderColumns = `
		id,
		user_id,
		subtotal,
		total,
		status,
		created_at,
		updated_at`

func scanOrder(row scanner) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Subtotal,
		&o.Total,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: order ID cannot be empty", ErrInvalidInput)
	}

	sql := `SELECT` + orderColumns + `
		FROM orders
		WHERE id = $1
	`

	order, err := scanOrder(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}

	items, err := r.loadItems(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	order.Items = items[id]

	return order, nil
}

func (r *orderRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	sql := `SELECT` + orderColumns + `
		FROM orders
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}

	defer rows.Close()

	orders := []models.Order{}
	var ids []string

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan all orders: %w", err)
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	rows.Close()

	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, nil
}

// loadItems returns the line items of the given orders keyed by order id,
// each with its product resolved.
func (r *orderRepo) loadItems(ctx context.Context, orderIDs []string) (map[string][]models.OrderItem, error) {
	sql := `SELECT
	oi.order_id,
	oi.product_id,
	oi.quantity,
	oi.price,
	p.id,
	p.name,
	p.description,
	p.quantity,
	p.price,
	p.status,
	p.created_at,
	p.updated_at
	FROM order_items oi
	LEFT JOIN products p ON p.id = oi.product_id
	WHERE oi.order_id = ANY($1::text[])
	ORDER BY oi.order_id, oi.position
	`

	rows, err := r.db.Query(ctx, sql, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	defer rows.Close()

	items := make(map[string][]models.OrderItem, len(orderIDs))

	for rows.Next() {
		var orderID string
		var item models.OrderItem
		var productID pgtype.Text
		var name pgtype.Text
		var description pgtype.Text
		var quantity pgtype.Int4
		var price decimal.NullDecimal
		var status pgtype.Text
		var createdAt pgtype.Timestamptz
		var updatedAt pgtype.Timestamptz

		err := rows.Scan(
			&orderID,
			&item.ProductID,
			&item.Quantity,
			&item.Price,
			&productID,
			&name,
			&description,
			&quantity,
			&price,
			&status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}

		if productID.Valid {
			item.Product = &models.Product{
				ID:          productID.String,
				Name:        name.String,
				Description: description.String,
				Quantity:    int(quantity.Int32),
				Price:       price.Decimal,
				Status:      models.RecordStatus(status.String),
				CreatedAt:   createdAt.Time,
				UpdatedAt:   updatedAt.Time,
			}
		}

		items[orderID] = append(items[orderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return items, nil
}
