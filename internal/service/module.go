package service

import (
	"peaceconnect_service/internal/config"
	"peaceconnect_service/internal/repository"

	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the services. Publisher and Cache come from the caller.
var Module = fx.Options(
	fx.Provide(
		ProvideGormDB,
		clockwork.NewRealClock,
		NewEventService,
		NewArticleService,
		NewHelpRequestService,
		NewDashboardService,
		ProvideCatalogService,
	),
)

func ProvideCatalogService(
	cfg *config.Config,
	categories repository.CategoryRepository,
	themes repository.ThemeRepository,
	cache Cache,
	logger *zap.Logger,
) CatalogService {
	return NewCatalogService(categories, themes, cache, cfg.Redis.CacheTTL, logger)
}
