package middleware

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nerva-io/nerva/exceptions"
	"github.com/nerva-io/nerva/metrics"
	"github.com/nerva-io/nerva/types"
)

// Manager orchestrates the two binding phases: resolve every module's
// declared middleware through the injector, then bind the resolved handlers
// into the router behind fault-isolating proxies. Any failure in either
// phase aborts the whole run; a partially bound router is treated as worse
// than a hard startup failure.
type Manager struct {
	registry  *Registry
	resolver  *Resolver
	mapper    *RouteMapper
	filters   *exceptions.Factory
	logger    types.Logger
	collector *metrics.Collector
}

func NewManager(
	injector types.Injector,
	mapper *RouteMapper,
	filters *exceptions.Factory,
	logger types.Logger,
	collector *metrics.Collector,
) *Manager {
	registry := NewRegistry()

	return &Manager{
		registry:  registry,
		resolver:  NewResolver(injector, registry, collector),
		mapper:    mapper,
		filters:   filters,
		logger:    logger,
		collector: collector,
	}
}

func (m *Manager) Registry() *Registry {
	return m.registry
}

func (m *Manager) Register(ctx context.Context, modules map[string]interface{}, router types.MethodRouter) error {
	if err := m.resolveAll(ctx, modules); err != nil {
		return err
	}

	return m.bindAll(ctx, router)
}

func (m *Manager) resolveAll(ctx context.Context, modules map[string]interface{}) error {
	g, gctx := errgroup.WithContext(ctx)

	for name, instance := range modules {
		g.Go(func() error {
			if err := m.loadConfiguration(gctx, name, instance); err != nil {
				return err
			}
			return m.resolver.ResolveModule(gctx, name)
		})
	}

	return g.Wait()
}

func (m *Manager) loadConfiguration(ctx context.Context, moduleName string, instance interface{}) error {
	configurer, ok := instance.(Configurer)
	if !ok {
		return nil
	}

	builder := NewBuilder()
	if err := configurer.Configure(ctx, builder); err != nil {
		return err
	}

	built := builder.Build()
	if err := built.Err(); err != nil {
		return types.WrapError(err, "invalid middleware configuration in module "+moduleName)
	}

	for _, config := range built.Configs() {
		m.registry.AddConfig(config, moduleName)
	}

	m.logger.Debug("Module middleware configuration loaded",
		zap.String("module", moduleName),
		zap.Int("configs", len(built.Configs())),
	)

	return nil
}

func (m *Manager) bindAll(ctx context.Context, router types.MethodRouter) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, moduleName := range m.registry.Modules() {
		g.Go(func() error {
			return m.bindModule(gctx, moduleName, router)
		})
	}

	return g.Wait()
}

func (m *Manager) bindModule(ctx context.Context, moduleName string, router types.MethodRouter) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, config := range m.registry.Configs(moduleName) {
		g.Go(func() error {
			return m.bindConfig(gctx, moduleName, config, router)
		})
	}

	return g.Wait()
}

func (m *Manager) bindConfig(ctx context.Context, moduleName string, config types.MiddlewareConfig, router types.MethodRouter) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, route := range config.ForRoutes {
		g.Go(func() error {
			paths, err := m.mapper.Map(route)
			if err != nil {
				return err
			}

			// Tokens of one configuration bind sequentially so the
			// declared middleware order is preserved per route.
			for _, path := range paths {
				for _, token := range config.Middleware {
					if err := m.bindHandler(gctx, moduleName, token, router, types.MethodAll, path); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}

	return g.Wait()
}

func (m *Manager) bindHandler(
	ctx context.Context,
	moduleName string,
	token types.MiddlewareToken,
	router types.MethodRouter,
	method types.RequestMethod,
	path string,
) error {
	wrapper, found := m.registry.Wrapper(moduleName, token.Name)
	if !found {
		return types.Errorf(types.ErrMiddlewareNotResolved, "%s (module %s)", token.Name, moduleName)
	}

	instance, ok := wrapper.Instance.(types.Middleware)
	if !ok {
		return types.Errorf(types.ErrMiddlewareInvalidType, "%s", token.Name)
	}

	exceptionHandler := m.filters.Create(wrapper.Instance)

	register, err := registration(router, method)
	if err != nil {
		return err
	}

	handler, err := instance.Resolve(ctx)
	if err != nil {
		return types.WrapError(err, "failed to resolve handler for middleware "+token.Name)
	}
	if handler == nil {
		return types.Errorf(types.ErrMiddlewareResolveNil, "%s", token.Name)
	}

	m.bindWithProxy(handler, exceptionHandler, register, moduleName, path)
	return nil
}

func (m *Manager) bindWithProxy(
	handler types.MiddlewareFunc,
	exceptionHandler *exceptions.Handler,
	register func(string, types.RouteHandler),
	moduleName, path string,
) {
	register(path, exceptions.Proxy(handler, exceptionHandler))
	m.collector.BindingRegistered(moduleName)

	m.logger.Debug("Middleware bound",
		zap.String("module", moduleName),
		zap.String("path", path),
	)
}
