package middleware

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nerva-io/nerva/metrics"
	"github.com/nerva-io/nerva/types"
)

// Resolver instantiates every middleware token a module declares, delegating
// object creation to the injector and storing the resulting wrappers in the
// registry.
type Resolver struct {
	injector  types.Injector
	registry  *Registry
	collector *metrics.Collector
}

func NewResolver(injector types.Injector, registry *Registry, collector *metrics.Collector) *Resolver {
	return &Resolver{
		injector:  injector,
		registry:  registry,
		collector: collector,
	}
}

func (r *Resolver) ResolveModule(ctx context.Context, moduleName string) error {
	tokens := distinctTokens(r.registry.Configs(moduleName))
	if len(tokens) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, token := range tokens {
		g.Go(func() error {
			instance, err := r.injector.ResolveMiddleware(gctx, moduleName, token)
			if err != nil {
				return types.WrapError(err, "failed to resolve middleware "+token.Name+" for module "+moduleName)
			}

			r.registry.InsertWrapper(token, instance, moduleName)
			r.collector.MiddlewareResolved(moduleName)
			return nil
		})
	}

	return g.Wait()
}

func distinctTokens(configs []types.MiddlewareConfig) []types.MiddlewareToken {
	seen := make(map[string]struct{})
	var tokens []types.MiddlewareToken

	for _, config := range configs {
		for _, token := range config.Middleware {
			if _, dup := seen[token.Name]; dup {
				continue
			}
			seen[token.Name] = struct{}{}
			tokens = append(tokens, token)
		}
	}

	return tokens
}
