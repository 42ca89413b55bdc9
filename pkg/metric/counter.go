package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every navmenu metric.
const Namespace = "navmenu"

const (
	// ViewRequestsName counts menu views served, labeled by status.
	ViewRequestsName = "view_requests_total"

	// ReloadsName counts menu definition reloads, labeled by result.
	ReloadsName = "reloads_total"
)

type IncrementalCounter interface {
	Increment(val ...string)
}

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// Collector returns the underlying counter vector.
func (c *Counter) Collector() *prometheus.CounterVec {
	return c.vec
}

// NewCounterWithRegistry creates a namespaced counter vector and registers
// it with reg.
func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: prometheus.BuildFQName(Namespace, "", name),
		Help: help,
		vec:  counter,
	}
}

// NewViewRequestCounter counts menu views served by status.
func NewViewRequestCounter(reg prometheus.Registerer) *Counter {
	return NewCounterWithRegistry(reg, ViewRequestsName, "Number of menu views served.", "status")
}

// NewReloadCounter counts menu definition reloads by result.
func NewReloadCounter(reg prometheus.Registerer) *Counter {
	return NewCounterWithRegistry(reg, ReloadsName, "Number of menu definition reloads.", "result")
}

// GetHandlerForRegistry returns an HTTP handler for serving Prometheus metrics from a custom registry.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
