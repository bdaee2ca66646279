// Package memory keeps every collection in process memory. It satisfies the
// repository interfaces and is used when no database is configured.
package memory

import (
	"admin-service/internal/models"
	"admin-service/internal/repository"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	products map[string]models.Product
	orders   map[string]models.Order
	users    map[string]models.User
	menu     map[string]models.MenuItem

	// insertion order, for stable listings
	productSeq []string
	orderSeq   []string
	userSeq    []string
	menuSeq    []string
}

func NewStore() *Store {
	return &Store{
		products: make(map[string]models.Product),
		orders:   make(map[string]models.Order),
		users:    make(map[string]models.User),
		menu:     make(map[string]models.MenuItem),
	}
}

func (s *Store) Products() repository.ProductRepository { return productRepo{s} }
func (s *Store) Orders() repository.OrderRepository     { return orderRepo{s} }
func (s *Store) Users() repository.UserRepository       { return userRepo{s} }
func (s *Store) Menu() repository.MenuRepository        { return menuRepo{s} }

// OrderCount is a test hook for "nothing was persisted" assertions.
func (s *Store) OrderCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

type productRepo struct{ s *Store }

func (r productRepo) Create(_ context.Context, p *models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name required", repository.ErrInvalidInput)
	}
	if p.Price.IsNegative() || p.Quantity < 0 {
		return fmt.Errorf("%w: quantity and price cannot be negative", repository.ErrInvalidInput)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, ok := r.s.products[p.ID]; ok {
		return fmt.Errorf("%w: product %s already exists", repository.ErrDuplicate, p.ID)
	}
	if p.Status == "" {
		p.Status = models.StatusActive
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	r.s.products[p.ID] = *p
	r.s.productSeq = append(r.s.productSeq, p.ID)
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok || !p.Status.Active() {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r productRepo) GetAll(_ context.Context) ([]models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	products := []models.Product{}
	for _, id := range r.s.productSeq {
		if p := r.s.products[id]; p.Status.Active() {
			products = append(products, p)
		}
	}
	return products, nil
}

func (r productRepo) Update(_ context.Context, p *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.products[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	r.s.products[p.ID] = *p
	return nil
}

func (r productRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok || !p.Status.Active() {
		return repository.ErrNotFound
	}
	p.Status = models.StatusDeleted
	p.UpdatedAt = time.Now().UTC()
	r.s.products[id] = p
	return nil
}

type orderRepo struct{ s *Store }

func copyItems(items []models.OrderItem) []models.OrderItem {
	out := make([]models.OrderItem, len(items))
	for i, item := range items {
		item.Product = nil
		out[i] = item
	}
	return out
}

// resolve returns a copy of o whose line items reference the current
// product records. Caller holds the read lock.
func (s *Store) resolve(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	for i, item := range o.Items {
		if p, ok := s.products[item.ProductID]; ok {
			item.Product = &p
		}
		items[i] = item
	}
	o.Items = items
	return o
}

func (r orderRepo) Create(_ context.Context, o *models.Order) error {
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one product", repository.ErrInvalidInput)
	}
	if !o.Status.Valid() {
		return fmt.Errorf("%w: invalid status '%s'", repository.ErrInvalidInput, o.Status)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	stored := *o
	stored.Items = copyItems(o.Items)
	r.s.orders[o.ID] = stored
	r.s.orderSeq = append(r.s.orderSeq, o.ID)
	return nil
}

func (r orderRepo) GetByID(_ context.Context, id string) (*models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	resolved := r.s.resolve(o)
	return &resolved, nil
}

func (r orderRepo) GetAll(_ context.Context) ([]models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.s.orderSeq))
	for _, id := range r.s.orderSeq {
		orders = append(orders, r.s.resolve(r.s.orders[id]))
	}
	return orders, nil
}

func (r orderRepo) Update(_ context.Context, o *models.Order) error {
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one product", repository.ErrInvalidInput)
	}
	if !o.Status.Valid() {
		return fmt.Errorf("%w: invalid status '%s'", repository.ErrInvalidInput, o.Status)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.orders[o.ID]
	if !ok {
		return repository.ErrNotFound
	}
	o.CreatedAt = current.CreatedAt
	stored := *o
	stored.Items = copyItems(o.Items)
	r.s.orders[o.ID] = stored
	return nil
}

func (r orderRepo) UpdateStatus(_ context.Context, id string, status models.OrderStatus, updatedAt time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("%w: invalid status '%s'", repository.ErrInvalidInput, status)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	r.s.orders[id] = o
	return nil
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *models.User) error {
	if u.Email == "" || u.PasswordHash == "" {
		return fmt.Errorf("%w: email and password are required", repository.ErrInvalidInput)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return fmt.Errorf("%w: email already exists", repository.ErrDuplicate)
		}
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now().UTC()
	u.Status = models.StatusActive
	r.s.users[u.ID] = *u
	r.s.userSeq = append(r.s.userSeq, u.ID)
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok || !u.Status.Active() {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email && u.Status.Active() {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepo) EmailExists(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r userRepo) GetAll(_ context.Context) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := []models.User{}
	for _, id := range r.s.userSeq {
		if u := r.s.users[id]; u.Status.Active() {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r userRepo) Update(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.users[u.ID]
	if !ok || !current.Status.Active() {
		return repository.ErrNotFound
	}
	current.Name = u.Name
	current.PasswordHash = u.PasswordHash
	current.Role = u.Role
	current.Phone = u.Phone
	r.s.users[u.ID] = current
	return nil
}

func (r userRepo) Delete(_ context.Context, id string, deletedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok || !u.Status.Active() {
		return repository.ErrNotFound
	}
	u.Status = models.StatusDeleted
	u.DeletedAt = &deletedAt
	r.s.users[id] = u
	return nil
}

type menuRepo struct{ s *Store }

func (r menuRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.menu), nil
}

// insert stores m; caller holds the write lock.
func (r menuRepo) insert(m *models.MenuItem) error {
	if m.Title == "" || m.Path == "" || m.Icon == "" {
		return fmt.Errorf("%w: title, path and icon are required", repository.ErrInvalidInput)
	}
	for _, existing := range r.s.menu {
		if existing.Path == m.Path {
			return fmt.Errorf("%w: path %s already exists", repository.ErrDuplicate, m.Path)
		}
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = models.StatusActive
	}
	stored := *m
	stored.Roles = append([]string{}, m.Roles...)
	r.s.menu[m.ID] = stored
	r.s.menuSeq = append(r.s.menuSeq, m.ID)
	return nil
}

func (r menuRepo) CreateMany(_ context.Context, items []models.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range items {
		if err := r.insert(&items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r menuRepo) Create(_ context.Context, m *models.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.insert(m)
}

func (r menuRepo) GetByID(_ context.Context, id string) (*models.MenuItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.menu[id]
	if !ok || !m.Status.Active() {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r menuRepo) filter(keep func(models.MenuItem) bool) []models.MenuItem {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := []models.MenuItem{}
	for _, id := range r.s.menuSeq {
		if m := r.s.menu[id]; keep(m) {
			items = append(items, m)
		}
	}
	return items
}

func (r menuRepo) GetAll(_ context.Context) ([]models.MenuItem, error) {
	return r.filter(func(m models.MenuItem) bool { return m.Status.Active() }), nil
}

func (r menuRepo) GetByRole(_ context.Context, role string) ([]models.MenuItem, error) {
	if role == "" {
		return nil, fmt.Errorf("%w: role cannot be empty", repository.ErrInvalidInput)
	}
	return r.filter(func(m models.MenuItem) bool { return m.VisibleTo(role) }), nil
}

func (r menuRepo) Update(_ context.Context, m *models.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.menu[m.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.s.menu {
		if id != m.ID && existing.Path == m.Path {
			return fmt.Errorf("%w: path %s already exists", repository.ErrDuplicate, m.Path)
		}
	}
	stored := *m
	stored.Roles = append([]string{}, m.Roles...)
	r.s.menu[m.ID] = stored
	return nil
}

func (r menuRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.menu[id]
	if !ok || !m.Status.Active() {
		return repository.ErrNotFound
	}
	m.Status = models.StatusDeleted
	r.s.menu[id] = m
	return nil
}
