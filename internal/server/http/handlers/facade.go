package handlers

import (
	"context"

	"github.com/khanhng/orderflow/internal/domain/model"
	"github.com/khanhng/orderflow/internal/events"
	"github.com/khanhng/orderflow/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password, name string, roles model.RoleSet) (*model.User, string, error)
	Authenticate(ctx context.Context, login, password string) (*model.User, string, error)
	ParseToken(token string) (int64, error)
	UserByID(ctx context.Context, id int64) (*model.User, error)
}

// OrderFacade encapsulates order lifecycle operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, actor *model.User, snap model.OrderSnapshot) (*model.Order, error)
	Order(ctx context.Context, id int64) (*model.Order, error)
	Orders(ctx context.Context) ([]model.Order, error)
	UpdateOrder(ctx context.Context, actor *model.User, id int64, snap model.OrderSnapshot) (*model.Order, *model.OrderDraft, error)
	ChangeStatus(ctx context.Context, actor *model.User, id int64, next model.OrderStatus, note string) (*model.Order, error)
	AcceptStep(ctx context.Context, actor *model.User, id int64, role model.Role) (*model.Order, error)
	CompleteStep(ctx context.Context, actor *model.User, id int64, input usecase.CompleteInput) (*model.Order, error)
	ReceiveItems(ctx context.Context, actor *model.User, id int64, category usecase.ReceiveCategory) (*model.Order, error)
	RequestRework(ctx context.Context, actor *model.User, id int64, kind usecase.ReworkKind, reason string) (*model.Order, error)
	SendBackToProduction(ctx context.Context, actor *model.User, id int64, reason string) (*model.Order, error)
	DeleteOrder(ctx context.Context, actor *model.User, id int64, secret string) error
	PurgeOrders(ctx context.Context, actor *model.User, secret string) (int64, error)
}

// DraftFacade provides the financial-edit review operations.
type DraftFacade interface {
	PendingDraft(ctx context.Context, orderID int64) (*model.OrderDraft, error)
	ApproveDraft(ctx context.Context, actor *model.User, orderID int64) (*model.Order, error)
	RejectDraft(ctx context.Context, actor *model.User, orderID int64, reason string) (*model.Order, error)
}

// StreamFacade exposes the role-filtered event feed.
type StreamFacade interface {
	Subscribe(roles model.RoleSet, buffer int) (<-chan events.Event, func())
}

// FulfillmentFacade aggregates the full set of operations used across handlers.
type FulfillmentFacade interface {
	AuthFacade
	OrderFacade
	DraftFacade
	StreamFacade
}
