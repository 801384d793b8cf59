package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/undangan/internal/config"
	"github.com/polkiloo/undangan/internal/server/http/handlers"
	"github.com/polkiloo/undangan/internal/server/http/middleware"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newRouter)

type routerParams struct {
	fx.In

	Facade handlers.WeddingFacade
	Config *config.Config
	Logger *slog.Logger
	Redis  *rd.Client
}

func newRouter(p routerParams) *gin.Engine {
	var limit gin.HandlerFunc
	if p.Redis != nil {
		limit = middleware.RateLimit(p.Redis, "payments_create", p.Config.CreateRateLimit, p.Config.CreateRateWindow, p.Logger)
	}
	return Setup(p.Facade, limit, p.Logger)
}
