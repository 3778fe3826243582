package types

import (
	"github.com/valyala/fasthttp"
)

type RequestMethod uint8

const (
	MethodAll RequestMethod = iota
	MethodGet
	MethodPost
	MethodPut
	MethodPatch
	MethodDelete
	MethodHead
	MethodOptions
)

func (m RequestMethod) String() string {
	switch m {
	case MethodAll:
		return "ALL"
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	case MethodPut:
		return "PUT"
	case MethodPatch:
		return "PATCH"
	case MethodDelete:
		return "DELETE"
	case MethodHead:
		return "HEAD"
	case MethodOptions:
		return "OPTIONS"
	}
	return "UNKNOWN"
}

type NextFunc func()

// RouteHandler is the signature the router accepts. Handlers bound through
// the middleware pipeline are always fault-isolated before registration.
type RouteHandler func(rctx *fasthttp.RequestCtx, next NextFunc)

// MethodRouter is the registration surface the binding pipeline drives.
// All registers a handler for every verb at the given path.
type MethodRouter interface {
	Get(path string, handler RouteHandler)
	Post(path string, handler RouteHandler)
	Put(path string, handler RouteHandler)
	Patch(path string, handler RouteHandler)
	Delete(path string, handler RouteHandler)
	Head(path string, handler RouteHandler)
	Options(path string, handler RouteHandler)
	All(path string, handler RouteHandler)
}

// ControllerMetadata is the route-metadata snapshot route normalization
// works from. It mirrors what the main router knows about a controller's
// own handlers.
type ControllerMetadata struct {
	Name     string
	BasePath string
	Handlers []HandlerMetadata
}

type HandlerMetadata struct {
	Method RequestMethod
	Path   string
}
