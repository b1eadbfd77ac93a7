package usecase

import (
	"go.uber.org/fx"

	"github.com/khanhng/orderflow/internal/config"
	"github.com/khanhng/orderflow/internal/domain/repository"
	"github.com/khanhng/orderflow/internal/events"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewDraftUseCase,
	func(orders repository.OrderRepository, drafts *DraftUseCase, bus events.Publisher, cfg *config.Config) *OrderUseCase {
		return NewOrderUseCase(orders, drafts, bus, cfg.DeleteSecret, cfg.PurgeRetention)
	},
)
