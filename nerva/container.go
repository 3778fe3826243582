package nerva

import (
	"sync/atomic"

	"github.com/nerva-io/nerva/metrics"
	"github.com/nerva-io/nerva/types"
)

// Container holds the framework components wired during bootstrap. Slots
// are atomic so components can be swapped during tests without locking.
type Container struct {
	Config      atomic.Pointer[types.ConfigManager]
	Logger      atomic.Pointer[types.Logger]
	Router      atomic.Pointer[types.MethodRouter]
	Cache       atomic.Pointer[types.CacheManager]
	Metrics     atomic.Pointer[*metrics.Collector]
	Middlewares atomic.Pointer[types.MiddlewareOrchestrator]
}

var globalContainer *Container

func InitContainer() *Container {
	return &Container{}
}

func SetContainer(container *Container) {
	globalContainer = container
}

func Config() types.ConfigManager {
	if ptr := globalContainer.Config.Load(); ptr != nil {
		return *ptr
	}
	panic("ConfigManager not initialized")
}

func Logger() types.Logger {
	if ptr := globalContainer.Logger.Load(); ptr != nil {
		return *ptr
	}
	panic("Logger not initialized")
}

func Router() types.MethodRouter {
	if ptr := globalContainer.Router.Load(); ptr != nil {
		return *ptr
	}
	panic("Router not initialized")
}

func Cache() types.CacheManager {
	if ptr := globalContainer.Cache.Load(); ptr != nil {
		return *ptr
	}
	panic("CacheManager not initialized")
}

func Metrics() *metrics.Collector {
	if ptr := globalContainer.Metrics.Load(); ptr != nil {
		return *ptr
	}
	return nil
}

func Middlewares() types.MiddlewareOrchestrator {
	if ptr := globalContainer.Middlewares.Load(); ptr != nil {
		return *ptr
	}
	panic("Middleware orchestrator not initialized")
}

func (c *Container) SetConfig(config types.ConfigManager) {
	c.Config.Store(&config)
}

func (c *Container) SetLogger(logger types.Logger) {
	c.Logger.Store(&logger)
}

func (c *Container) SetRouter(router types.MethodRouter) {
	c.Router.Store(&router)
}

func (c *Container) SetCache(cache types.CacheManager) {
	c.Cache.Store(&cache)
}

func (c *Container) SetMetrics(collector *metrics.Collector) {
	c.Metrics.Store(&collector)
}

func (c *Container) SetMiddlewares(orchestrator types.MiddlewareOrchestrator) {
	c.Middlewares.Store(&orchestrator)
}
