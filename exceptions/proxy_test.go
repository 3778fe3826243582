package exceptions

import (
	"errors"
	"strings"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/nerva-io/nerva/logger"
	"github.com/nerva-io/nerva/types"
	"github.com/nerva-io/nerva/utils"
)

type countingFilter struct {
	matches func(err error) bool
	handled []error
}

func (f *countingFilter) Matches(err error) bool {
	return f.matches(err)
}

func (f *countingFilter) Handle(err error, rctx *fasthttp.RequestCtx, _ types.NextFunc) {
	f.handled = append(f.handled, err)
	rctx.SetStatusCode(fasthttp.StatusTeapot)
}

type staticResolver struct {
	filters []Filter
}

func (r *staticResolver) FiltersFor(interface{}) []Filter {
	return r.filters
}

func newTestHandler(filters ...Filter) *Handler {
	factory := NewFactory(&staticResolver{filters: filters}, logger.Nop(), nil)
	return factory.Create(nil)
}

func TestProxyRoutesReturnedErrorToHandler(t *testing.T) {
	boom := errors.New("boom")
	filter := &countingFilter{matches: func(error) bool { return true }}

	proxy := Proxy(func(*fasthttp.RequestCtx, types.NextFunc) error {
		return boom
	}, newTestHandler(filter))

	var rctx fasthttp.RequestCtx
	proxy(&rctx, func() {})

	if len(filter.handled) != 1 {
		t.Fatalf("error handled %d times, want exactly 1", len(filter.handled))
	}
	if !errors.Is(filter.handled[0], boom) {
		t.Errorf("handled error = %v, want %v", filter.handled[0], boom)
	}
}

func TestProxyRecoversPanic(t *testing.T) {
	filter := &countingFilter{matches: func(error) bool { return true }}

	proxy := Proxy(func(*fasthttp.RequestCtx, types.NextFunc) error {
		panic("middleware blew up")
	}, newTestHandler(filter))

	var rctx fasthttp.RequestCtx
	proxy(&rctx, func() {})

	if len(filter.handled) != 1 {
		t.Fatalf("panic handled %d times, want exactly 1", len(filter.handled))
	}
	if !strings.Contains(filter.handled[0].Error(), "middleware blew up") {
		t.Errorf("panic message lost: %v", filter.handled[0])
	}
}

func TestProxyPassesThroughOnSuccess(t *testing.T) {
	filter := &countingFilter{matches: func(error) bool { return true }}

	nextCalled := false
	proxy := Proxy(func(_ *fasthttp.RequestCtx, next types.NextFunc) error {
		next()
		return nil
	}, newTestHandler(filter))

	var rctx fasthttp.RequestCtx
	proxy(&rctx, func() { nextCalled = true })

	if !nextCalled {
		t.Error("next was not invoked on the success path")
	}
	if len(filter.handled) != 0 {
		t.Errorf("handler invoked %d times on success, want 0", len(filter.handled))
	}
}

func TestHandlerFirstMatchingFilterWins(t *testing.T) {
	skipped := &countingFilter{matches: func(error) bool { return false }}
	first := &countingFilter{matches: func(error) bool { return true }}
	second := &countingFilter{matches: func(error) bool { return true }}

	handler := newTestHandler(skipped, first, second)

	var rctx fasthttp.RequestCtx
	handler.Handle(errors.New("boom"), &rctx, func() {})

	if len(skipped.handled) != 0 {
		t.Error("non-matching filter must not handle")
	}
	if len(first.handled) != 1 {
		t.Errorf("first matching filter handled %d times, want 1", len(first.handled))
	}
	if len(second.handled) != 0 {
		t.Error("later filters must not run after a match")
	}
	if rctx.Response.StatusCode() != fasthttp.StatusTeapot {
		t.Errorf("response status = %d, want filter-set %d", rctx.Response.StatusCode(), fasthttp.StatusTeapot)
	}
}

func TestHandlerFallbackWritesInternalError(t *testing.T) {
	handler := newTestHandler()

	var rctx fasthttp.RequestCtx
	handler.Handle(errors.New("unfiltered"), &rctx, func() {})

	if rctx.Response.StatusCode() != fasthttp.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rctx.Response.StatusCode(), fasthttp.StatusInternalServerError)
	}
	if got := string(rctx.Response.Header.ContentType()); got != "application/json" {
		t.Errorf("content type = %q, want application/json", got)
	}

	var body errorBody
	if err := utils.Unmarshal(rctx.Response.Body(), &body); err != nil {
		t.Fatalf("fallback body is not valid JSON: %v", err)
	}
	if body.Error != "Internal server error" {
		t.Errorf("body.Error = %q", body.Error)
	}
	if body.ErrorID == "" {
		t.Error("fallback response must carry an error id")
	}
	if strings.Contains(string(rctx.Response.Body()), "unfiltered") {
		t.Error("internal error detail must not leak into the response body")
	}
}

func TestProxyHandlesErrorExactlyOnceWhenFilterPanics(t *testing.T) {
	calls := 0

	proxy := Proxy(func(*fasthttp.RequestCtx, types.NextFunc) error {
		return errors.New("boom")
	}, newTestHandler(filterFunc(func(err error, rctx *fasthttp.RequestCtx, next types.NextFunc) {
		calls++
		panic("filter failure")
	})))

	var rctx fasthttp.RequestCtx

	defer func() {
		if rec := recover(); rec == nil {
			t.Fatal("filter panic must escape the proxy, not be re-handled")
		}
		if calls != 1 {
			t.Errorf("error handled %d times, want exactly 1", calls)
		}
	}()

	proxy(&rctx, func() {})
}

type filterFunc func(err error, rctx *fasthttp.RequestCtx, next types.NextFunc)

func (filterFunc) Matches(error) bool { return true }

func (f filterFunc) Handle(err error, rctx *fasthttp.RequestCtx, next types.NextFunc) {
	f(err, rctx, next)
}
