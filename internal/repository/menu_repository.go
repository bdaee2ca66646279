package repository

import (
	"admin-service/internal/models"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type menuRepo struct {
	db DBTX
}

func NewMenuRepository(db DBTX) MenuRepository {
	return &menuRepo{db: db}
}

const menuColumns = `
		id,
		title,
		path,
		icon,
		roles,
		status`

func scanMenuItem(row scanner) (*models.MenuItem, error) {
	var m models.MenuItem
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Path,
		&m.Icon,
		&m.Roles,
		&m.Status,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const insertMenuItemSQL = `
	INSERT INTO menu_items (id, title, path, icon, roles, status)
	VALUES ($1, $2, $3, $4, $5, $6)
	`

func prepareMenuItem(m *models.MenuItem) error {
	if m.Title == "" || m.Path == "" || m.Icon == "" {
		return fmt.Errorf("%w: title, path and icon are required", ErrInvalidInput)
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = models.StatusActive
	}
	if m.Roles == nil {
		m.Roles = []string{}
	}
	return nil
}

func menuWriteError(err error, path string) error {
	if _, ok := isUniqueViolation(err); ok {
		return fmt.Errorf("%w: path %s already exists", ErrDuplicate, path)
	}
	return fmt.Errorf("failed to write menu item: %w", err)
}

func (r *menuRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}
	return count, nil
}

func (r *menuRepo) CreateMany(ctx context.Context, items []models.MenuItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := range items {
		m := &items[i]
		if err := prepareMenuItem(m); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, insertMenuItemSQL, m.ID, m.Title, m.Path, m.Icon, m.Roles, m.Status); err != nil {
			return menuWriteError(err, m.Path)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *menuRepo) Create(ctx context.Context, m *models.MenuItem) error {
	if err := prepareMenuItem(m); err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, insertMenuItemSQL, m.ID, m.Title, m.Path, m.Icon, m.Roles, m.Status); err != nil {
		return menuWriteError(err, m.Path)
	}
	return nil
}

func (r *menuRepo) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	sql := `SELECT` + menuColumns + `
		FROM menu_items WHERE id = $1 AND status = $2
	`

	item, err := scanMenuItem(r.db.QueryRow(ctx, sql, id, models.StatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get menu item %s: %w", id, err)
	}
	return item, nil
}

func (r *menuRepo) list(ctx context.Context, sql string, args ...any) ([]models.MenuItem, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}

	defer rows.Close()

	items := []models.MenuItem{}

	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu items: %w", err)
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return items, nil
}

func (r *menuRepo) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	return r.list(ctx, `SELECT`+menuColumns+`
		FROM menu_items
		WHERE status = $1
		ORDER BY seq`, models.StatusActive)
}

func (r *menuRepo) GetByRole(ctx context.Context, role string) ([]models.MenuItem, error) {
	if role == "" {
		return nil, fmt.Errorf("%w: role cannot be empty", ErrInvalidInput)
	}
	return r.list(ctx, `SELECT`+menuColumns+`
		FROM menu_items
		WHERE status = $1 AND $2 = ANY(roles)
		ORDER BY seq`, models.StatusActive, role)
}

func (r *menuRepo) Update(ctx context.Context, m *models.MenuItem) error {
	if m.ID == "" {
		return fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	sql := `
	UPDATE menu_items
	SET
		title = $1,
		path = $2,
		icon = $3,
		roles = $4,
		status = $5
	WHERE id = $6
	`

	result, err := r.db.Exec(ctx, sql, m.Title, m.Path, m.Icon, m.Roles, m.Status, m.ID)
	if err != nil {
		return menuWriteError(err, m.Path)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *menuRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	result, err := r.db.Exec(ctx,
		`UPDATE menu_items SET status = $1 WHERE id = $2 AND status = $3`,
		models.StatusDeleted, id, models.StatusActive,
	)
	if err != nil {
		return fmt.Errorf("failed to delete menu item %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
