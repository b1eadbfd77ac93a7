package test

import (
	"context"

	"github.com/khanhng/orderflow/internal/domain/model"
	"github.com/khanhng/orderflow/internal/events"
	"github.com/khanhng/orderflow/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string, model.RoleSet) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (int64, error)
	UserByIDFn     func(context.Context, int64) (*model.User, error)
}

// Register returns a default worker for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, login, password, name string, roles model.RoleSet) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password, name, roles)
	}
	return &model.User{ID: 1, Login: login, Name: name, Roles: roles}, "token", nil
}

// Authenticate returns a default worker for successful login scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return &model.User{ID: 1, Login: login, Roles: model.RoleSet{model.RoleSale}}, "token", nil
}

// ParseToken returns stored identifier for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// UserByID resolves the authenticated worker.
func (s AuthFacadeStub) UserByID(ctx context.Context, id int64) (*model.User, error) {
	if s.UserByIDFn != nil {
		return s.UserByIDFn(ctx, id)
	}
	return &model.User{ID: id, Login: "worker", Name: "worker", Roles: model.RoleSet{model.RoleAdmin}}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn   func(context.Context, *model.User, model.OrderSnapshot) (*model.Order, error)
	GetFn      func(context.Context, int64) (*model.Order, error)
	ListFn     func(context.Context) ([]model.Order, error)
	UpdateFn   func(context.Context, *model.User, int64, model.OrderSnapshot) (*model.Order, *model.OrderDraft, error)
	StatusFn   func(context.Context, *model.User, int64, model.OrderStatus, string) (*model.Order, error)
	AcceptFn   func(context.Context, *model.User, int64, model.Role) (*model.Order, error)
	CompleteFn func(context.Context, *model.User, int64, usecase.CompleteInput) (*model.Order, error)
	ReceiveFn  func(context.Context, *model.User, int64, usecase.ReceiveCategory) (*model.Order, error)
	ReworkFn   func(context.Context, *model.User, int64, usecase.ReworkKind, string) (*model.Order, error)
	SendBackFn func(context.Context, *model.User, int64, string) (*model.Order, error)
	DeleteFn   func(context.Context, *model.User, int64, string) error
	PurgeFn    func(context.Context, *model.User, string) (int64, error)
}

func defaultOrder(id int64) *model.Order {
	return &model.Order{ID: id, Code: "DH-TEST", Status: model.OrderStatusNew, Type: model.OrderTypeNormal, Version: 1}
}

func (s OrderFacadeStub) CreateOrder(ctx context.Context, actor *model.User, snap model.OrderSnapshot) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, snap)
	}
	return defaultOrder(1), nil
}

func (s OrderFacadeStub) Order(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return defaultOrder(id), nil
}

func (s OrderFacadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []model.Order{*defaultOrder(1)}, nil
}

func (s OrderFacadeStub) UpdateOrder(ctx context.Context, actor *model.User, id int64, snap model.OrderSnapshot) (*model.Order, *model.OrderDraft, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, actor, id, snap)
	}
	return defaultOrder(id), nil, nil
}

func (s OrderFacadeStub) ChangeStatus(ctx context.Context, actor *model.User, id int64, next model.OrderStatus, note string) (*model.Order, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, actor, id, next, note)
	}
	order := defaultOrder(id)
	order.Status = next
	return order, nil
}

func (s OrderFacadeStub) AcceptStep(ctx context.Context, actor *model.User, id int64, role model.Role) (*model.Order, error) {
	if s.AcceptFn != nil {
		return s.AcceptFn(ctx, actor, id, role)
	}
	return defaultOrder(id), nil
}

func (s OrderFacadeStub) CompleteStep(ctx context.Context, actor *model.User, id int64, input usecase.CompleteInput) (*model.Order, error) {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, actor, id, input)
	}
	return defaultOrder(id), nil
}

func (s OrderFacadeStub) ReceiveItems(ctx context.Context, actor *model.User, id int64, category usecase.ReceiveCategory) (*model.Order, error) {
	if s.ReceiveFn != nil {
		return s.ReceiveFn(ctx, actor, id, category)
	}
	return defaultOrder(id), nil
}

func (s OrderFacadeStub) RequestRework(ctx context.Context, actor *model.User, id int64, kind usecase.ReworkKind, reason string) (*model.Order, error) {
	if s.ReworkFn != nil {
		return s.ReworkFn(ctx, actor, id, kind, reason)
	}
	return defaultOrder(id), nil
}

func (s OrderFacadeStub) SendBackToProduction(ctx context.Context, actor *model.User, id int64, reason string) (*model.Order, error) {
	if s.SendBackFn != nil {
		return s.SendBackFn(ctx, actor, id, reason)
	}
	return defaultOrder(id), nil
}

func (s OrderFacadeStub) DeleteOrder(ctx context.Context, actor *model.User, id int64, secret string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, actor, id, secret)
	}
	return nil
}

func (s OrderFacadeStub) PurgeOrders(ctx context.Context, actor *model.User, secret string) (int64, error) {
	if s.PurgeFn != nil {
		return s.PurgeFn(ctx, actor, secret)
	}
	return 0, nil
}

// DraftFacadeStub simulates the financial-edit review surface.
type DraftFacadeStub struct {
	PendingFn func(context.Context, int64) (*model.OrderDraft, error)
	ApproveFn func(context.Context, *model.User, int64) (*model.Order, error)
	RejectFn  func(context.Context, *model.User, int64, string) (*model.Order, error)
}

func (s DraftFacadeStub) PendingDraft(ctx context.Context, orderID int64) (*model.OrderDraft, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, orderID)
	}
	return &model.OrderDraft{ID: 1, OrderID: orderID, Status: model.DraftStatusPending}, nil
}

func (s DraftFacadeStub) ApproveDraft(ctx context.Context, actor *model.User, orderID int64) (*model.Order, error) {
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, actor, orderID)
	}
	return defaultOrder(orderID), nil
}

func (s DraftFacadeStub) RejectDraft(ctx context.Context, actor *model.User, orderID int64, reason string) (*model.Order, error) {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, actor, orderID, reason)
	}
	return defaultOrder(orderID), nil
}

// StreamFacadeStub hands out a pre-filled event channel.
type StreamFacadeStub struct {
	SubscribeFn func(model.RoleSet, int) (<-chan events.Event, func())
	Events      []events.Event
}

func (s StreamFacadeStub) Subscribe(roles model.RoleSet, buffer int) (<-chan events.Event, func()) {
	if s.SubscribeFn != nil {
		return s.SubscribeFn(roles, buffer)
	}
	ch := make(chan events.Event, len(s.Events)+1)
	for _, e := range s.Events {
		ch <- e
	}
	close(ch)
	return ch, func() {}
}

// FulfillmentFacadeStub aggregates facade dependencies for HTTP layer tests.
type FulfillmentFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	DraftFacadeStub
	StreamFacadeStub
}
