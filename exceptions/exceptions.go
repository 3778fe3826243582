package exceptions

import (
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/nerva-io/nerva/metrics"
	"github.com/nerva-io/nerva/types"
	"github.com/nerva-io/nerva/utils"
)

// Filter handles errors raised by bound middleware during request handling.
// Filters are consulted in order; the first match wins.
type Filter interface {
	Matches(err error) bool
	Handle(err error, rctx *fasthttp.RequestCtx, next types.NextFunc)
}

// FilterResolver produces the ordered filter chain applicable to a resolved
// middleware instance. Inherited and global filter resolution lives with the
// DI container, not here.
type FilterResolver interface {
	FiltersFor(instance interface{}) []Filter
}

type Handler struct {
	filters   []Filter
	logger    types.Logger
	collector *metrics.Collector
}

func (h *Handler) Handle(err error, rctx *fasthttp.RequestCtx, next types.NextFunc) {
	h.collector.ErrorHandled()

	for _, filter := range h.filters {
		if filter.Matches(err) {
			filter.Handle(err, rctx, next)
			return
		}
	}

	h.fallback(err, rctx)
}

type errorBody struct {
	Error   string `json:"error"`
	ErrorID string `json:"error_id"`
}

func (h *Handler) fallback(err error, rctx *fasthttp.RequestCtx) {
	errorID := uuid.NewString()

	fields := []zap.Field{
		zap.Error(err),
		zap.String("error_id", errorID),
		zap.ByteString("method", rctx.Method()),
		zap.ByteString("path", rctx.Path()),
	}
	if pe, ok := err.(*panicError); ok {
		fields = append(fields, zap.ByteString("stack", pe.stack))
	}

	h.logger.Error("Unhandled middleware error", fields...)

	body, mErr := utils.Marshal(errorBody{
		Error:   "Internal server error",
		ErrorID: errorID,
	})
	if mErr != nil {
		rctx.Error("Internal server error", fasthttp.StatusInternalServerError)
		return
	}

	rctx.SetStatusCode(fasthttp.StatusInternalServerError)
	rctx.SetContentType("application/json")
	rctx.SetBody(body)
}

// Factory builds one exception handler per binding, closing over the filter
// chain applicable to that middleware instance.
type Factory struct {
	resolver  FilterResolver
	logger    types.Logger
	collector *metrics.Collector
}

func NewFactory(resolver FilterResolver, logger types.Logger, collector *metrics.Collector) *Factory {
	return &Factory{
		resolver:  resolver,
		logger:    logger,
		collector: collector,
	}
}

func (f *Factory) Create(instance interface{}) *Handler {
	var filters []Filter
	if f.resolver != nil {
		filters = f.resolver.FiltersFor(instance)
	}

	return &Handler{
		filters:   filters,
		logger:    f.logger,
		collector: f.collector,
	}
}
