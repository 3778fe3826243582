package types

import (
	"context"

	"github.com/valyala/fasthttp"
)

// MiddlewareFunc is the handling function a middleware instance resolves to.
// A returned error is redirected to the binding's exception handler and
// never escapes the router.
type MiddlewareFunc func(rctx *fasthttp.RequestCtx, next NextFunc) error

// Middleware is the capability a resolved instance must expose to be
// bindable. Resolve may block: an asynchronous factory returns only once
// its handler is ready.
type Middleware interface {
	Resolve(ctx context.Context) (MiddlewareFunc, error)
}

// Injector is the instantiation contract with the DI container. For every
// module and declared token it produces the instance the wrapper will own.
type Injector interface {
	ResolveMiddleware(ctx context.Context, moduleName string, token MiddlewareToken) (interface{}, error)
}

type MiddlewareToken struct {
	Name string
}

func Token(name string) MiddlewareToken {
	return MiddlewareToken{Name: name}
}

// RoutePattern is either a bare path or a controller descriptor with an
// optional sub-path.
type RoutePattern struct {
	Path       string
	Controller string
}

func Route(path string) RoutePattern {
	return RoutePattern{Path: path}
}

func ControllerPattern(name, subPath string) RoutePattern {
	return RoutePattern{Controller: name, Path: subPath}
}

type MiddlewareConfig struct {
	Middleware []MiddlewareToken
	ForRoutes  []RoutePattern
}

// MiddlewareWrapper is the module-scoped instantiation of a declared token,
// created once during resolution and owned by the registry.
type MiddlewareWrapper struct {
	Token    MiddlewareToken
	Instance interface{}
	Module   string
}

// MiddlewareOrchestrator drives resolution and binding for a module set.
type MiddlewareOrchestrator interface {
	Register(ctx context.Context, modules map[string]interface{}, router MethodRouter) error
}
