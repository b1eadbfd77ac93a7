package di

import (
	"go.uber.org/fx"

	"github.com/khanhng/orderflow/internal/app"
	"github.com/khanhng/orderflow/internal/config"
	"github.com/khanhng/orderflow/internal/events"
	"github.com/khanhng/orderflow/internal/logger"
	"github.com/khanhng/orderflow/internal/pkg/auth"
	"github.com/khanhng/orderflow/internal/server/http/handlers"
	"github.com/khanhng/orderflow/internal/server/http/router"
	"github.com/khanhng/orderflow/internal/storage/postgres"
	"github.com/khanhng/orderflow/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		events.Module,
		usecase.Module,
		fx.Provide(func(f *app.FulfillmentFacade) handlers.FulfillmentFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
