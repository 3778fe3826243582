package server

import (
	"bytes"
	"strings"
	"sync"

	"github.com/valyala/fasthttp"

	"github.com/nerva-io/nerva/types"
)

var methodIndex = map[string]types.RequestMethod{
	"GET":     types.MethodGet,
	"POST":    types.MethodPost,
	"PUT":     types.MethodPut,
	"PATCH":   types.MethodPatch,
	"DELETE":  types.MethodDelete,
	"HEAD":    types.MethodHead,
	"OPTIONS": types.MethodOptions,
}

var (
	getBytes  = []byte("GET")
	postBytes = []byte("POST")
)

// Router is a registration-order chain router over fasthttp. Every route
// matching an incoming request participates in the chain, in the order the
// bindings were registered; a handler decides whether to pass on by calling
// next.
type Router struct {
	mu     sync.RWMutex
	routes []*route
	logger types.Logger
}

type route struct {
	method   types.RequestMethod
	pattern  string
	segments []string
	catchAll bool
	handler  types.RouteHandler
}

func NewRouter(logger types.Logger) *Router {
	return &Router{logger: logger}
}

func (r *Router) Get(path string, handler types.RouteHandler) {
	r.add(types.MethodGet, path, handler)
}

func (r *Router) Post(path string, handler types.RouteHandler) {
	r.add(types.MethodPost, path, handler)
}

func (r *Router) Put(path string, handler types.RouteHandler) {
	r.add(types.MethodPut, path, handler)
}

func (r *Router) Patch(path string, handler types.RouteHandler) {
	r.add(types.MethodPatch, path, handler)
}

func (r *Router) Delete(path string, handler types.RouteHandler) {
	r.add(types.MethodDelete, path, handler)
}

func (r *Router) Head(path string, handler types.RouteHandler) {
	r.add(types.MethodHead, path, handler)
}

func (r *Router) Options(path string, handler types.RouteHandler) {
	r.add(types.MethodOptions, path, handler)
}

func (r *Router) All(path string, handler types.RouteHandler) {
	r.add(types.MethodAll, path, handler)
}

func (r *Router) add(method types.RequestMethod, path string, handler types.RouteHandler) {
	if handler == nil {
		return
	}

	segments, catchAll := parsePattern(path)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.routes = append(r.routes, &route{
		method:   method,
		pattern:  path,
		segments: segments,
		catchAll: catchAll,
		handler:  handler,
	})
}

// Routes lists the registered bindings as "METHOD pattern" strings, in
// registration order.
func (r *Router) Routes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]string, 0, len(r.routes))
	for _, rt := range r.routes {
		routes = append(routes, rt.method.String()+" "+rt.pattern)
	}
	return routes
}

// Handler is the fasthttp entry point for embedding the router into a
// server.
func (r *Router) Handler(rctx *fasthttp.RequestCtx) {
	method, known := requestMethod(rctx.Method())
	if !known {
		rctx.Error("Method not allowed", fasthttp.StatusMethodNotAllowed)
		return
	}

	segments := splitPath(string(rctx.Path()))

	r.mu.RLock()
	chain := make([]*route, 0, 4)
	var params map[string]string
	for _, candidate := range r.routes {
		if candidate.method != types.MethodAll && candidate.method != method {
			continue
		}
		matched, routeParams := candidate.match(segments)
		if !matched {
			continue
		}
		chain = append(chain, candidate)
		if len(routeParams) > 0 {
			if params == nil {
				params = routeParams
			} else {
				for k, v := range routeParams {
					params[k] = v
				}
			}
		}
	}
	r.mu.RUnlock()

	if len(chain) == 0 {
		rctx.Error("Not found", fasthttp.StatusNotFound)
		return
	}

	if len(params) > 0 {
		rctx.SetUserValue("route_params", params)
	}

	index := 0
	var next types.NextFunc
	next = func() {
		if index >= len(chain) {
			return
		}

		current := chain[index]
		index++
		current.handler(rctx, next)
	}

	next()
}

func (rt *route) match(segments []string) (bool, map[string]string) {
	if rt.catchAll {
		if len(segments) < len(rt.segments) {
			return false, nil
		}
	} else if len(segments) != len(rt.segments) {
		return false, nil
	}

	var params map[string]string
	for i, pattern := range rt.segments {
		if pattern == "*" {
			return true, params
		}

		if name, isParam := paramName(pattern); isParam {
			if params == nil {
				params = make(map[string]string, 2)
			}
			params[name] = segments[i]
			continue
		}

		if pattern != segments[i] {
			return false, nil
		}
	}

	return true, params
}

func paramName(segment string) (string, bool) {
	if len(segment) > 2 && segment[0] == '{' && segment[len(segment)-1] == '}' {
		return segment[1 : len(segment)-1], true
	}
	if len(segment) > 1 && segment[0] == ':' {
		return segment[1:], true
	}
	return "", false
}

func parsePattern(path string) ([]string, bool) {
	segments := splitPath(path)

	catchAll := false
	if n := len(segments); n > 0 && segments[n-1] == "*" {
		catchAll = true
		segments = segments[:n-1]
	}

	return segments, catchAll
}

func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

func requestMethod(method []byte) (types.RequestMethod, bool) {
	switch {
	case bytes.Equal(method, getBytes):
		return types.MethodGet, true
	case bytes.Equal(method, postBytes):
		return types.MethodPost, true
	}

	m, known := methodIndex[string(method)]
	return m, known
}
