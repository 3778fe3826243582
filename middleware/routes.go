package middleware

import (
	"strings"

	"github.com/nerva-io/nerva/types"
)

// RouteMapper normalizes declared route patterns into concrete paths. It
// works from a fixed controller-metadata snapshot taken at construction, so
// mapping is pure and deterministic. Wildcard markers pass through as-is.
type RouteMapper struct {
	controllers map[string]types.ControllerMetadata
}

func NewRouteMapper(controllers []types.ControllerMetadata) *RouteMapper {
	snapshot := make(map[string]types.ControllerMetadata, len(controllers))
	for _, controller := range controllers {
		snapshot[controller.Name] = controller
	}

	return &RouteMapper{controllers: snapshot}
}

func (m *RouteMapper) Map(route types.RoutePattern) ([]string, error) {
	if route.Controller == "" {
		return []string{NormalizePath(route.Path)}, nil
	}

	meta, exists := m.controllers[route.Controller]
	if !exists {
		return nil, types.Errorf(types.ErrControllerNotFound, "%s", route.Controller)
	}

	if route.Path != "" {
		return []string{JoinPaths(meta.BasePath, route.Path)}, nil
	}

	if len(meta.Handlers) == 0 {
		return []string{NormalizePath(meta.BasePath)}, nil
	}

	paths := make([]string, 0, len(meta.Handlers))
	seen := make(map[string]struct{}, len(meta.Handlers))
	for _, handler := range meta.Handlers {
		path := JoinPaths(meta.BasePath, handler.Path)
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}

	return paths, nil
}

// NormalizePath guarantees a single leading slash, no trailing slash (except
// the root) and collapsed separators. Wildcard and parameter segments are
// left untouched.
func NormalizePath(path string) string {
	if path == "" || path == "/" {
		return "/"
	}

	segments := strings.Split(path, "/")
	normalized := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		normalized = append(normalized, segment)
	}

	if len(normalized) == 0 {
		return "/"
	}

	return "/" + strings.Join(normalized, "/")
}

func JoinPaths(base, sub string) string {
	base = NormalizePath(base)
	sub = NormalizePath(sub)

	if sub == "/" {
		return base
	}
	if base == "/" {
		return sub
	}

	return base + sub
}
