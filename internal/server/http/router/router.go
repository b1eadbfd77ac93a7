package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/khanhng/orderflow/internal/server/http/handlers"
	"github.com/khanhng/orderflow/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.FulfillmentFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/events/stream"})))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	draftHandler := handlers.NewDraftHandler(facade)
	streamHandler := handlers.NewStreamHandler(facade)

	api := engine.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.GET("/auth/me", authHandler.Me)

	authed.POST("/orders", orderHandler.Create)
	authed.GET("/orders", orderHandler.List)
	authed.POST("/orders/purge", orderHandler.Purge)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.PATCH("/orders/:id", orderHandler.Update)
	authed.DELETE("/orders/:id", orderHandler.Delete)
	authed.PATCH("/orders/:id/status", orderHandler.ChangeStatus)
	authed.PATCH("/orders/:id/accept", orderHandler.Accept)
	authed.PATCH("/orders/:id/complete", orderHandler.Complete)
	authed.PATCH("/orders/:id/receive", orderHandler.Receive)
	authed.PATCH("/orders/:id/rework", orderHandler.Rework)
	authed.PATCH("/orders/:id/production-request", orderHandler.ProductionRequest)

	authed.GET("/orders/:id/draft", draftHandler.Pending)
	authed.PATCH("/orders/:id/draft/approve", draftHandler.Approve)
	authed.PATCH("/orders/:id/draft/reject", draftHandler.Reject)

	authed.GET("/events/stream", streamHandler.Stream)

	return engine
}
