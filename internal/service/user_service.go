package service

import (
	"admin-service/internal/models"
	"admin-service/internal/repository"
	"context"
	"fmt"
	"strings"
	"time"
)

type RoleInput struct {
	RoleType    string `json:"roleType" validate:"required"`
	Description string `json:"description"`
}

type RegisterInput struct {
	Name     string    `json:"name" validate:"required"`
	Email    string    `json:"email" validate:"required,email"`
	Phone    string    `json:"phone" validate:"required"`
	Password string    `json:"password" validate:"required"`
	Role     RoleInput `json:"role"`
}

type UpdateUserInput struct {
	Name     *string    `json:"name"`
	Phone    *string    `json:"phone"`
	Password *string    `json:"password"`
	Role     *RoleInput `json:"role"`
}

type UserService struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	sessions SessionStore
	now      func() time.Time
}

func NewUserService(users repository.UserRepository, hasher PasswordHasher, sessions SessionStore) *UserService {
	return &UserService{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		now:      time.Now,
	}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := validateInput(in); err != nil {
		return nil, err
	}

	exists, err := s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", repository.ErrDuplicate)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role: models.Role{
			RoleType:    in.Role.RoleType,
			Description: in.Role.Description,
		},
		Phone: in.Phone,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.GetAll(ctx)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetByEmail(ctx, strings.TrimSpace(email))
}

// Update merges the supplied fields into the active user with that email.
// A new password is hashed; a role is only replaced when roleType is set.
func (s *UserService) Update(ctx context.Context, email string, in UpdateUserInput) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", repository.ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil && strings.TrimSpace(*in.Phone) != "" {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if in.Role != nil && in.Role.RoleType != "" {
		description := in.Role.Description
		if description == "" {
			description = user.Role.Description
		}
		user.Role = models.Role{RoleType: in.Role.RoleType, Description: description}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete soft-deletes an active user and revokes any live session.
func (s *UserService) Delete(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	deletedAt := s.now().UTC()
	if err := s.users.Delete(ctx, id, deletedAt); err != nil {
		return nil, err
	}

	if err := s.sessions.Delete(ctx, id); err != nil {
		return nil, err
	}

	user.Status = models.StatusDeleted
	user.DeletedAt = &deletedAt
	return user, nil
}
