package middleware

import (
	"reflect"
	"testing"

	"github.com/nerva-io/nerva/types"
)

func testControllers() []types.ControllerMetadata {
	return []types.ControllerMetadata{
		{
			Name:     "CatsController",
			BasePath: "/cats",
			Handlers: []types.HandlerMetadata{
				{Method: types.MethodGet, Path: "/"},
				{Method: types.MethodGet, Path: "/{id}"},
				{Method: types.MethodPost, Path: "/"},
			},
		},
		{
			Name:     "EmptyController",
			BasePath: "/empty",
		},
	}
}

func TestMapBarePath(t *testing.T) {
	mapper := NewRouteMapper(nil)

	tests := []struct {
		in   string
		want string
	}{
		{"/users", "/users"},
		{"users", "/users"},
		{"/users/", "/users"},
		{"//users//list", "/users/list"},
		{"", "/"},
		{"/", "/"},
		{"/files/*", "/files/*"},
		{"/users/{id}", "/users/{id}"},
		{"/users/:id", "/users/:id"},
	}

	for _, tt := range tests {
		paths, err := mapper.Map(types.Route(tt.in))
		if err != nil {
			t.Fatalf("Map(%q) returned error: %v", tt.in, err)
		}
		if len(paths) != 1 || paths[0] != tt.want {
			t.Errorf("Map(%q) = %v, want [%q]", tt.in, paths, tt.want)
		}
	}
}

func TestMapIsPure(t *testing.T) {
	mapper := NewRouteMapper(testControllers())
	route := types.ControllerPattern("CatsController", "")

	first, err := mapper.Map(route)
	if err != nil {
		t.Fatalf("Map returned error: %v", err)
	}

	for i := 0; i < 5; i++ {
		again, err := mapper.Map(route)
		if err != nil {
			t.Fatalf("Map returned error on repeat: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Map is not deterministic: %v vs %v", first, again)
		}
	}
}

func TestMapController(t *testing.T) {
	mapper := NewRouteMapper(testControllers())

	paths, err := mapper.Map(types.ControllerPattern("CatsController", ""))
	if err != nil {
		t.Fatalf("Map returned error: %v", err)
	}

	// Duplicate handler paths collapse; declared order is preserved.
	want := []string{"/cats", "/cats/{id}"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Map(controller) = %v, want %v", paths, want)
	}
}

func TestMapControllerWithSubPath(t *testing.T) {
	mapper := NewRouteMapper(testControllers())

	paths, err := mapper.Map(types.ControllerPattern("CatsController", "/admin"))
	if err != nil {
		t.Fatalf("Map returned error: %v", err)
	}

	want := []string{"/cats/admin"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Map(controller, subpath) = %v, want %v", paths, want)
	}
}

func TestMapControllerWithoutHandlers(t *testing.T) {
	mapper := NewRouteMapper(testControllers())

	paths, err := mapper.Map(types.ControllerPattern("EmptyController", ""))
	if err != nil {
		t.Fatalf("Map returned error: %v", err)
	}

	want := []string{"/empty"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Map(empty controller) = %v, want %v", paths, want)
	}
}

func TestMapUnknownController(t *testing.T) {
	mapper := NewRouteMapper(testControllers())

	_, err := mapper.Map(types.ControllerPattern("DogsController", ""))
	if !types.IsError(err, types.ErrControllerNotFound) {
		t.Errorf("expected ErrControllerNotFound, got %v", err)
	}
}

func TestJoinPaths(t *testing.T) {
	tests := []struct {
		base, sub, want string
	}{
		{"/cats", "/{id}", "/cats/{id}"},
		{"/cats", "/", "/cats"},
		{"/", "/users", "/users"},
		{"cats/", "list", "/cats/list"},
	}

	for _, tt := range tests {
		if got := JoinPaths(tt.base, tt.sub); got != tt.want {
			t.Errorf("JoinPaths(%q, %q) = %q, want %q", tt.base, tt.sub, got, tt.want)
		}
	}
}
