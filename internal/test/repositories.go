package test

import (
	"context"
	"time"

	domainErrors "github.com/khanhng/orderflow/internal/domain/errors"
	"github.com/khanhng/orderflow/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash, name string, roles model.RoleSet) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Name: name, Roles: roles}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub keeps order aggregates in-memory and enforces the
// same version-check semantics as the real store.
type OrderRepositoryStub struct {
	Orders map[int64]*model.Order
	Next   int64
	Err    error

	CreateFn func(context.Context, *model.Order) (*model.Order, error)
	UpdateFn func(context.Context, *model.Order, int64) error
}

// NewOrderRepositoryStub constructs the stub with an initialized map.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Next: 1}
}

// Put seeds an order, assigning an ID and version when unset.
func (s *OrderRepositoryStub) Put(order *model.Order) *model.Order {
	if order.ID == 0 {
		order.ID = s.Next
		s.Next++
	}
	if order.Version == 0 {
		order.Version = 1
	}
	clone := cloneOrder(order)
	s.Orders[order.ID] = clone
	return clone
}

// Create stores the order with a fresh ID.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	order.ID = s.Next
	s.Next++
	order.Version = 1
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	s.Orders[order.ID] = cloneOrder(order)
	return cloneOrder(order), nil
}

// GetByID returns a copy of the stored aggregate.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return cloneOrder(order), nil
}

// GetByCode scans stored orders by code.
func (s *OrderRepositoryStub) GetByCode(ctx context.Context, code string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, order := range s.Orders {
		if order.Code == code {
			return cloneOrder(order), nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns copies of all stored orders.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Order, 0, len(s.Orders))
	for _, order := range s.Orders {
		out = append(out, *cloneOrder(order))
	}
	return out, nil
}

// Update writes the aggregate back when the stored version matches.
func (s *OrderRepositoryStub) Update(ctx context.Context, order *model.Order, expectedVersion int64) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, order, expectedVersion)
	}
	if s.Err != nil {
		return s.Err
	}
	stored, ok := s.Orders[order.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return domainErrors.ErrConflict
	}
	order.Version = expectedVersion + 1
	order.UpdatedAt = time.Now()
	s.Orders[order.ID] = cloneOrder(order)
	return nil
}

// Delete removes the order or reports not found.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Orders[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Orders, id)
	return nil
}

// PurgeOlderThan drops orders created before the cutoff.
func (s *OrderRepositoryStub) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	var purged int64
	for id, order := range s.Orders {
		if order.CreatedAt.Before(cutoff) {
			delete(s.Orders, id)
			purged++
		}
	}
	return purged, nil
}

func cloneOrder(order *model.Order) *model.Order {
	clone := *order
	clone.Items = append([]model.Painting(nil), order.Items...)
	clone.History = append([]model.StatusChange(nil), order.History...)
	clone.ProfitShares = append([]model.ProfitShare(nil), order.ProfitShares...)
	clone.Assignments = append([]model.Assignment(nil), order.Assignments...)
	return &clone
}

// DraftRepositoryStub keeps at most one pending draft per order.
type DraftRepositoryStub struct {
	Pending map[int64]*model.OrderDraft
	Next    int64
	Err     error
}

// NewDraftRepositoryStub constructs the stub with an initialized map.
func NewDraftRepositoryStub() *DraftRepositoryStub {
	return &DraftRepositoryStub{Pending: make(map[int64]*model.OrderDraft), Next: 1}
}

// Save replaces any pending draft for the same order.
func (s *DraftRepositoryStub) Save(ctx context.Context, draft *model.OrderDraft) (*model.OrderDraft, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	draft.ID = s.Next
	s.Next++
	draft.CreatedAt = time.Now()
	s.Pending[draft.OrderID] = draft
	return draft, nil
}

// GetPending returns the pending draft or not found.
func (s *DraftRepositoryStub) GetPending(ctx context.Context, orderID int64) (*model.OrderDraft, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	draft, ok := s.Pending[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return draft, nil
}

// DeletePending removes the pending draft, if any.
func (s *DraftRepositoryStub) DeletePending(ctx context.Context, orderID int64) error {
	if s.Err != nil {
		return s.Err
	}
	delete(s.Pending, orderID)
	return nil
}
