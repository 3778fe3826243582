package middleware

import (
	"context"
	"sync"

	"github.com/nerva-io/nerva/types"
)

// Configurer is the hook a module instance exposes to contribute middleware
// configuration. Modules without it are skipped during configuration loading.
type Configurer interface {
	Configure(ctx context.Context, builder *Builder) error
}

// Builder accumulates middleware configurations for one module. Repeated
// Apply/ForRoutes chains accumulate; nothing is deduplicated.
type Builder struct {
	mu      sync.Mutex
	configs []types.MiddlewareConfig
	err     error
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Apply(tokens ...types.MiddlewareToken) *RouteBinder {
	if len(tokens) == 0 {
		b.fail(types.ErrMiddlewareListEmpty)
	}

	return &RouteBinder{
		builder: b,
		tokens:  tokens,
	}
}

func (b *Builder) fail(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.err == nil {
		b.err = err
	}
}

// Build seals the accumulated configuration. Only values produced here are
// accepted by the orchestrator, so a hook cannot hand back a foreign
// configuration object.
func (b *Builder) Build() BuiltConfig {
	b.mu.Lock()
	defer b.mu.Unlock()

	configs := make([]types.MiddlewareConfig, len(b.configs))
	copy(configs, b.configs)

	return BuiltConfig{
		configs: configs,
		err:     b.err,
	}
}

type BuiltConfig struct {
	configs []types.MiddlewareConfig
	err     error
}

func (bc BuiltConfig) Configs() []types.MiddlewareConfig {
	return bc.configs
}

func (bc BuiltConfig) Err() error {
	return bc.err
}

// RouteBinder carries the tokens of one Apply call until ForRoutes closes
// the configuration.
type RouteBinder struct {
	builder *Builder
	tokens  []types.MiddlewareToken
}

func (rb *RouteBinder) ForRoutes(routes ...types.RoutePattern) *Builder {
	b := rb.builder

	if len(routes) == 0 {
		b.fail(types.ErrRouteListEmpty)
		return b
	}
	if len(rb.tokens) == 0 {
		return b
	}

	tokens := make([]types.MiddlewareToken, len(rb.tokens))
	copy(tokens, rb.tokens)
	forRoutes := make([]types.RoutePattern, len(routes))
	copy(forRoutes, routes)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.configs = append(b.configs, types.MiddlewareConfig{
		Middleware: tokens,
		ForRoutes:  forRoutes,
	})

	return b
}
