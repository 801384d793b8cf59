package midtrans

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/undangan/internal/config"
)

// Module exposes the gateway client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(Options{
		SnapURL:   p.Config.MidtransSnapURL,
		APIURL:    p.Config.MidtransAPIURL,
		ServerKey: p.Config.MidtransServerKey,
		Timeout:   p.Config.GatewayTimeout,
	}, p.Logger)
}
