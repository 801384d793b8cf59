package config

import "go.uber.org/fx"

// Module exposes the configuration loader. Load errors abort fx startup.
var Module = fx.Provide(Load)
