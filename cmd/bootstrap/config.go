package bootstrap

import (
	"stayhub/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.SessionConfig { return cfg.Session },
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		func(cfg config.Config) config.BookingConfig { return cfg.Booking },
		func(cfg config.Config) config.AdminConfig { return cfg.Admin },
	),
)
