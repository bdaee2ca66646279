package service

import (
	"admin-service/internal/models"
	"admin-service/internal/repository"
	"context"
	"fmt"
	"log"
	"strings"
)

// DefaultMenu is written by Seed into an empty registry.
func DefaultMenu() []models.MenuItem {
	return []models.MenuItem{
		{Title: "Home", Path: "/", Icon: "HomeOutlined", Roles: []string{"admin", "user"}, Status: models.StatusActive},
		{Title: "Users", Path: "/users", Icon: "UserOutlined", Roles: []string{"admin"}, Status: models.StatusActive},
		{Title: "Products", Path: "/products", Icon: "ShoppingOutlined", Roles: []string{"admin", "user"}, Status: models.StatusActive},
		{Title: "Orders", Path: "/orders", Icon: "ShoppingCartOutlined", Roles: []string{"admin", "user"}, Status: models.StatusActive},
		{Title: "Reports", Path: "/reports", Icon: "BarChartOutlined", Roles: []string{"admin"}, Status: models.StatusActive},
	}
}

type CreateMenuItemInput struct {
	Title string   `json:"title" validate:"required"`
	Path  string   `json:"path" validate:"required"`
	Icon  string   `json:"icon" validate:"required"`
	Roles []string `json:"roles" validate:"required"`
}

type UpdateMenuItemInput struct {
	Title  *string  `json:"title"`
	Path   *string  `json:"path"`
	Icon   *string  `json:"icon"`
	Roles  []string `json:"roles"`
	Status *bool    `json:"isActive"`
}

type MenuService struct {
	repo repository.MenuRepository
}

func NewMenuService(repo repository.MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

// Seed inserts DefaultMenu when the registry holds no records at all,
// deleted ones included. It reports whether anything was written.
func (s *MenuService) Seed(ctx context.Context) (bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := s.repo.CreateMany(ctx, DefaultMenu()); err != nil {
		return false, fmt.Errorf("failed to seed menu: %w", err)
	}
	log.Printf("menu initialised with %d default items", len(DefaultMenu()))
	return true, nil
}

func (s *MenuService) Create(ctx context.Context, in CreateMenuItemInput) (*models.MenuItem, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Path = strings.TrimSpace(in.Path)
	in.Icon = strings.TrimSpace(in.Icon)

	if err := validateInput(in); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		Title:  in.Title,
		Path:   in.Path,
		Icon:   in.Icon,
		Roles:  in.Roles,
		Status: models.StatusActive,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MenuService) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.GetAll(ctx)
}

func (s *MenuService) ListByRole(ctx context.Context, role string) ([]models.MenuItem, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, fmt.Errorf("%w: role is required", repository.ErrInvalidInput)
	}
	return s.repo.GetByRole(ctx, role)
}

func (s *MenuService) Update(ctx context.Context, id string, in UpdateMenuItemInput) (*models.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		item.Title = strings.TrimSpace(*in.Title)
	}
	if in.Path != nil && strings.TrimSpace(*in.Path) != "" {
		item.Path = strings.TrimSpace(*in.Path)
	}
	if in.Icon != nil && strings.TrimSpace(*in.Icon) != "" {
		item.Icon = strings.TrimSpace(*in.Icon)
	}
	if in.Roles != nil {
		item.Roles = in.Roles
	}
	if in.Status != nil {
		item.Status = models.StatusFromBool(*in.Status)
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MenuService) Delete(ctx context.Context, id string) (*models.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	item.Status = models.StatusDeleted
	return item, nil
}
