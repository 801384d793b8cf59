package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/undangan/internal/domain/model"
	"github.com/polkiloo/undangan/internal/server/http/handlers"
	"github.com/polkiloo/undangan/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware. createLimit
// guards payment creation and may be nil.
func Setup(facade handlers.WeddingFacade, createLimit gin.HandlerFunc, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(middleware.DefaultMaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	packageHandler := handlers.NewPackageHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	notificationHandler := handlers.NewNotificationHandler(facade)
	invitationHandler := handlers.NewInvitationHandler(facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	api.GET("/packages", packageHandler.List)
	api.GET("/packages/:id", packageHandler.Get)

	// Gateway callbacks authenticate by signature, not by token.
	api.POST("/payments/notification", notificationHandler.Handle)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	create := []gin.HandlerFunc{paymentHandler.Create}
	if createLimit != nil {
		create = append([]gin.HandlerFunc{createLimit}, create...)
	}
	authed.POST("/payments/create", create...)
	authed.GET("/payments/orders", paymentHandler.List)
	authed.GET("/payments/orders/:orderId", paymentHandler.Get)
	authed.POST("/payments/orders/:orderId/cancel", paymentHandler.Cancel)
	authed.POST("/invitations", invitationHandler.Create)
	authed.POST("/invitations/check", invitationHandler.Check)

	admin := authed.Group("")
	admin.Use(middleware.RequireRole(string(model.RoleAdmin)))
	admin.GET("/orders", paymentHandler.ListAll)

	return engine
}
