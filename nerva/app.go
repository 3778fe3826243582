package nerva

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/nerva-io/nerva/cache"
	"github.com/nerva-io/nerva/config"
	"github.com/nerva-io/nerva/exceptions"
	"github.com/nerva-io/nerva/logger"
	"github.com/nerva-io/nerva/metrics"
	"github.com/nerva-io/nerva/middleware"
	"github.com/nerva-io/nerva/server"
	"github.com/nerva-io/nerva/types"
)

// Options describes one application run: its module set, the DI contract
// used to instantiate middleware, and the controller metadata snapshot the
// route normalizer works from. Serving HTTP is left to the embedder via
// server.Router.Handler.
type Options struct {
	ConfigPath     string
	Config         *types.FrameworkConfig
	Modules        map[string]interface{}
	Injector       types.Injector
	Controllers    []types.ControllerMetadata
	FilterResolver exceptions.FilterResolver
	Registerer     prometheus.Registerer
}

// Bootstrap wires the framework components and runs middleware registration
// for the given module set. The first failure in any phase aborts startup.
func Bootstrap(ctx context.Context, opts Options) (*Container, error) {
	container := InitContainer()

	var configManager types.ConfigManager
	if opts.ConfigPath != "" {
		manager, err := config.NewManager(opts.ConfigPath)
		if err != nil {
			return nil, types.WrapError(err, "failed to register config manager")
		}
		configManager = manager
	} else {
		configManager = config.NewManagerFromConfig(opts.Config)
	}
	container.SetConfig(configManager)

	frameworkConfig := configManager.GetConfig()

	log, err := logger.New(frameworkConfig.Logger)
	if err != nil {
		return nil, types.WrapError(err, "failed to register logger")
	}
	container.SetLogger(log)

	var collector *metrics.Collector
	if frameworkConfig.Metrics != nil && frameworkConfig.Metrics.Enabled {
		collector = metrics.NewCollector(opts.Registerer)
		container.SetMetrics(collector)
	}

	if frameworkConfig.Cache != nil && frameworkConfig.Cache.Enabled {
		cacheManager, err := cache.NewCacheManager(ctx, frameworkConfig.Cache, log)
		if err != nil {
			return nil, types.WrapError(err, "failed to register cache manager")
		}
		container.SetCache(cacheManager)
	}

	router := server.NewRouter(log)
	container.SetRouter(router)

	manager := middleware.NewManager(
		opts.Injector,
		middleware.NewRouteMapper(opts.Controllers),
		exceptions.NewFactory(opts.FilterResolver, log, collector),
		log,
		collector,
	)
	container.SetMiddlewares(manager)

	if err := manager.Register(ctx, opts.Modules, router); err != nil {
		return nil, types.WrapError(err, "middleware registration failed")
	}

	SetContainer(container)

	log.Info("Middleware registration completed",
		zap.Int("modules", len(opts.Modules)),
		zap.Int("routes", len(router.Routes())),
	)

	return container, nil
}
