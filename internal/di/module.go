package di

import (
	"github.com/polkiloo/undangan/internal/adapter/midtrans"
	"github.com/polkiloo/undangan/internal/app"
	"github.com/polkiloo/undangan/internal/config"
	"github.com/polkiloo/undangan/internal/logger"
	"github.com/polkiloo/undangan/internal/pkg/auth"
	"github.com/polkiloo/undangan/internal/pkg/webhook"
	"github.com/polkiloo/undangan/internal/server/http/handlers"
	"github.com/polkiloo/undangan/internal/server/http/router"
	"github.com/polkiloo/undangan/internal/storage/postgres"
	"github.com/polkiloo/undangan/internal/storage/redis"
	"github.com/polkiloo/undangan/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		webhook.Module,
		postgres.Module,
		redis.Module,
		midtrans.Module,
		usecase.Module,
		fx.Provide(func(client midtrans.Client) usecase.PaymentGateway { return client }),
		fx.Provide(func(v *webhook.Verifier) usecase.NotificationVerifier { return v }),
		fx.Provide(func(f *app.WeddingFacade) handlers.WeddingFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
