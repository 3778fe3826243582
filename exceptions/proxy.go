package exceptions

import (
	"runtime"

	"github.com/valyala/fasthttp"

	"github.com/nerva-io/nerva/types"
)

type panicError struct {
	value interface{}
	stack []byte
}

func (p *panicError) Error() string {
	switch v := p.value.(type) {
	case error:
		return "middleware panic: " + v.Error()
	case string:
		return "middleware panic: " + v
	default:
		return "middleware panic"
	}
}

// Proxy wraps a resolved handling function so that a returned error or a
// panic inside one middleware invocation is redirected to the binding's
// exception handler instead of escaping into request dispatch.
func Proxy(handler types.MiddlewareFunc, exceptionHandler *Handler) types.RouteHandler {
	return func(rctx *fasthttp.RequestCtx, next types.NextFunc) {
		handled := false

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if handled {
				// The error was already routed once; a second failure
				// belongs to the exception layer itself.
				panic(rec)
			}
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			exceptionHandler.Handle(&panicError{value: rec, stack: buf[:n]}, rctx, next)
		}()

		if err := handler(rctx, next); err != nil {
			handled = true
			exceptionHandler.Handle(err, rctx, next)
		}
	}
}
