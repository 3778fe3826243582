package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector tracks binding-pipeline and request-time middleware metrics.
// A nil Collector is valid and records nothing.
type Collector struct {
	registry      prometheus.Registerer
	bindings      *prometheus.CounterVec
	handledErrors prometheus.Counter
	resolved      *prometheus.CounterVec
}

func NewCollector(registerer prometheus.Registerer) *Collector {
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registerer,
		bindings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nerva",
			Subsystem: "middleware",
			Name:      "bindings_total",
			Help:      "Middleware bindings registered with the router.",
		}, []string{"module"}),
		handledErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nerva",
			Subsystem: "middleware",
			Name:      "handled_errors_total",
			Help:      "Request-time middleware errors recovered by the proxy layer.",
		}),
		resolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nerva",
			Subsystem: "middleware",
			Name:      "resolved_total",
			Help:      "Middleware instances resolved through the injector.",
		}, []string{"module"}),
	}

	registerer.MustRegister(c.bindings, c.handledErrors, c.resolved)

	return c
}

func (c *Collector) BindingRegistered(module string) {
	if c == nil {
		return
	}
	c.bindings.WithLabelValues(module).Inc()
}

func (c *Collector) ErrorHandled() {
	if c == nil {
		return
	}
	c.handledErrors.Inc()
}

func (c *Collector) MiddlewareResolved(module string) {
	if c == nil {
		return
	}
	c.resolved.WithLabelValues(module).Inc()
}
