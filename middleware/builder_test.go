package middleware

import (
	"testing"

	"github.com/nerva-io/nerva/types"
)

func TestBuilderAccumulates(t *testing.T) {
	builder := NewBuilder()

	builder.Apply(types.Token("Logger")).
		ForRoutes(types.Route("/users")).
		Apply(types.Token("Auth"), types.Token("Audit")).
		ForRoutes(types.Route("/admin"), types.Route("/internal"))

	built := builder.Build()
	if err := built.Err(); err != nil {
		t.Fatalf("unexpected builder error: %v", err)
	}

	configs := built.Configs()
	if len(configs) != 2 {
		t.Fatalf("expected 2 configs, got %d", len(configs))
	}

	if len(configs[0].Middleware) != 1 || configs[0].Middleware[0].Name != "Logger" {
		t.Errorf("first config middleware = %v", configs[0].Middleware)
	}
	if len(configs[1].Middleware) != 2 || configs[1].Middleware[0].Name != "Auth" || configs[1].Middleware[1].Name != "Audit" {
		t.Errorf("second config middleware order not preserved: %v", configs[1].Middleware)
	}
	if len(configs[1].ForRoutes) != 2 {
		t.Errorf("second config routes = %v", configs[1].ForRoutes)
	}
}

func TestBuilderRejectsEmptyApply(t *testing.T) {
	builder := NewBuilder()
	builder.Apply().ForRoutes(types.Route("/users"))

	built := builder.Build()
	if !types.IsError(built.Err(), types.ErrMiddlewareListEmpty) {
		t.Errorf("expected ErrMiddlewareListEmpty, got %v", built.Err())
	}
	if len(built.Configs()) != 0 {
		t.Errorf("invalid apply must not append configs, got %d", len(built.Configs()))
	}
}

func TestBuilderRejectsEmptyForRoutes(t *testing.T) {
	builder := NewBuilder()
	builder.Apply(types.Token("Logger")).ForRoutes()

	built := builder.Build()
	if !types.IsError(built.Err(), types.ErrRouteListEmpty) {
		t.Errorf("expected ErrRouteListEmpty, got %v", built.Err())
	}
}

func TestBuildSnapshotIsSealed(t *testing.T) {
	builder := NewBuilder()
	builder.Apply(types.Token("Logger")).ForRoutes(types.Route("/users"))

	built := builder.Build()

	// Later mutation of the builder must not leak into the snapshot.
	builder.Apply(types.Token("Auth")).ForRoutes(types.Route("/admin"))

	if len(built.Configs()) != 1 {
		t.Errorf("built snapshot changed after Build: %d configs", len(built.Configs()))
	}
}
