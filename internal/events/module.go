package events

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/khanhng/orderflow/internal/config"
)

// Module wires the event bus for dependency injection.
var Module = fx.Provide(
	func(cfg *config.Config, logger *slog.Logger) *Bus {
		return NewBus(cfg.EventBuffer, logger)
	},
	func(bus *Bus) Publisher { return bus },
)
