package repository

import (
	"admin-service/internal/models"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type userRepo struct {
	db DBTX
}

func NewUserRepository(db DBTX) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `
		id,
		name,
		email,
		password_hash,
		role_type,
		role_description,
		phone,
		created_at,
		deleted_at,
		status`

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role.RoleType,
		&u.Role.Description,
		&u.Phone,
		&u.CreatedAt,
		&u.DeletedAt,
		&u.Status,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	if u.Email == "" || u.PasswordHash == "" {
		return fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	sql := `
		INSERT INTO users (
			id,
			name,
			email,
			password_hash,
			role_type,
			role_description,
			phone,
			created_at,
			status
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now().UTC()
	u.Status = models.StatusActive

	_, err := r.db.Exec(ctx, sql,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role.RoleType,
		u.Role.Description,
		u.Phone,
		u.CreatedAt,
		u.Status,
	)
	if err != nil {
		if pgErr, ok := isUniqueViolation(err); ok {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return fmt.Errorf("%w: email already exists", ErrDuplicate)
			}
			return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	sql := `SELECT` + userColumns + `
		FROM users WHERE id = $1 AND status = $2
	`

	user, err := scanUser(r.db.QueryRow(ctx, sql, id, models.StatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user with id %s: %w", id, err)
	}

	return user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
	}

	sql := `SELECT` + userColumns + `
		FROM users WHERE email = $1 AND status = $2
	`

	user, err := scanUser(r.db.QueryRow(ctx, sql, email, models.StatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// EmailExists looks at every user, deleted ones included.
func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *userRepo) GetAll(ctx context.Context) ([]models.User, error) {
	sql := `SELECT` + userColumns + `
	FROM users
	WHERE status = $1
	ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, sql, models.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}

	defer rows.Close()

	users := []models.User{}

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan users: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return users, nil
}

func (r *userRepo) Update(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		return fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	sql := `
	UPDATE users
	SET
		name = $1,
		password_hash = $2,
		role_type = $3,
		role_description = $4,
		phone = $5
	WHERE id = $6 AND status = $7
	`

	result, err := r.db.Exec(ctx, sql,
		u.Name,
		u.PasswordHash,
		u.Role.RoleType,
		u.Role.Description,
		u.Phone,
		u.ID,
		models.StatusActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", u.ID, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete marks an active user as deleted and records when it happened.
func (r *userRepo) Delete(ctx context.Context, id string, deletedAt time.Time) error {
	if id == "" {
		return fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	sql := `UPDATE users SET status = $1, deleted_at = $2 WHERE id = $3 AND status = $4`

	result, err := r.db.Exec(ctx, sql, models.StatusDeleted, deletedAt, id, models.StatusActive)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
