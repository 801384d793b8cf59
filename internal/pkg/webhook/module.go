package webhook

import (
	"go.uber.org/fx"

	"github.com/polkiloo/undangan/internal/config"
)

// Module provides the notification verifier built from the gateway server key.
var Module = fx.Provide(newVerifier)

func newVerifier(cfg *config.Config) (*Verifier, error) {
	return NewVerifier(cfg.MidtransServerKey)
}
