package app

import (
	"context"

	"github.com/khanhng/orderflow/internal/domain/model"
	"github.com/khanhng/orderflow/internal/events"
	"github.com/khanhng/orderflow/internal/usecase"
)

// FulfillmentFacade is the single application entry point the HTTP layer
// talks to. It delegates to the use cases and the event bus.
type FulfillmentFacade struct {
	auth   *usecase.AuthUseCase
	orders *usecase.OrderUseCase
	drafts *usecase.DraftUseCase
	bus    *events.Bus
}

func NewFulfillmentFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, drafts *usecase.DraftUseCase, bus *events.Bus) *FulfillmentFacade {
	return &FulfillmentFacade{auth: auth, orders: orders, drafts: drafts, bus: bus}
}

func (f *FulfillmentFacade) Register(ctx context.Context, login, password, name string, roles model.RoleSet) (*model.User, string, error) {
	return f.auth.Register(ctx, login, password, name, roles)
}

func (f *FulfillmentFacade) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, login, password)
}

func (f *FulfillmentFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *FulfillmentFacade) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *FulfillmentFacade) CreateOrder(ctx context.Context, actor *model.User, snap model.OrderSnapshot) (*model.Order, error) {
	return f.orders.Create(ctx, actor, snap)
}

func (f *FulfillmentFacade) Order(ctx context.Context, id int64) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *FulfillmentFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.orders.List(ctx)
}

func (f *FulfillmentFacade) UpdateOrder(ctx context.Context, actor *model.User, id int64, snap model.OrderSnapshot) (*model.Order, *model.OrderDraft, error) {
	return f.orders.Update(ctx, actor, id, snap)
}

func (f *FulfillmentFacade) ChangeStatus(ctx context.Context, actor *model.User, id int64, next model.OrderStatus, note string) (*model.Order, error) {
	return f.orders.ChangeStatus(ctx, actor, id, next, note)
}

func (f *FulfillmentFacade) AcceptStep(ctx context.Context, actor *model.User, id int64, role model.Role) (*model.Order, error) {
	return f.orders.Accept(ctx, actor, id, role)
}

func (f *FulfillmentFacade) CompleteStep(ctx context.Context, actor *model.User, id int64, input usecase.CompleteInput) (*model.Order, error) {
	return f.orders.Complete(ctx, actor, id, input)
}

func (f *FulfillmentFacade) ReceiveItems(ctx context.Context, actor *model.User, id int64, category usecase.ReceiveCategory) (*model.Order, error) {
	return f.orders.Receive(ctx, actor, id, category)
}

func (f *FulfillmentFacade) RequestRework(ctx context.Context, actor *model.User, id int64, kind usecase.ReworkKind, reason string) (*model.Order, error) {
	return f.orders.RequestRework(ctx, actor, id, kind, reason)
}

func (f *FulfillmentFacade) SendBackToProduction(ctx context.Context, actor *model.User, id int64, reason string) (*model.Order, error) {
	return f.orders.ProductionRequest(ctx, actor, id, reason)
}

func (f *FulfillmentFacade) DeleteOrder(ctx context.Context, actor *model.User, id int64, secret string) error {
	return f.orders.Delete(ctx, actor, id, secret)
}

func (f *FulfillmentFacade) PurgeOrders(ctx context.Context, actor *model.User, secret string) (int64, error) {
	return f.orders.Purge(ctx, actor, secret)
}

func (f *FulfillmentFacade) PendingDraft(ctx context.Context, orderID int64) (*model.OrderDraft, error) {
	return f.drafts.Pending(ctx, orderID)
}

func (f *FulfillmentFacade) ApproveDraft(ctx context.Context, actor *model.User, orderID int64) (*model.Order, error) {
	return f.drafts.Approve(ctx, actor, orderID)
}

func (f *FulfillmentFacade) RejectDraft(ctx context.Context, actor *model.User, orderID int64, reason string) (*model.Order, error) {
	return f.drafts.Reject(ctx, actor, orderID, reason)
}

func (f *FulfillmentFacade) Subscribe(roles model.RoleSet, buffer int) (<-chan events.Event, func()) {
	return f.bus.Subscribe(roles, buffer)
}
