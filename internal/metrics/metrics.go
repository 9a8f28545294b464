// Package metrics exposes catalogue cache and command history counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"planner/internal/adapters/filesystem"
	"planner/internal/application/history"
)

// Collector holds all planner metrics on its own registry
type Collector struct {
	registry *prometheus.Registry

	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	bodyLoads     *prometheus.CounterVec
	catalogueSize prometheus.Gauge
	refreshes     prometheus.Counter
	commands      *prometheus.CounterVec
	undoDepth     prometheus.Gauge
	redoDepth     prometheus.Gauge
}

var (
	_ filesystem.CacheObserver = (*Collector)(nil)
	_ history.Observer         = (*Collector)(nil)
)

// NewCollector creates and registers all metrics
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "planner_catalogue_cache_hits_total",
			Help: "Total number of object definitions served from cache",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "planner_catalogue_cache_misses_total",
			Help: "Total number of object definitions not found in cache",
		}),
		bodyLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_catalogue_body_loads_total",
			Help: "Total number of object bodies read from disk",
		}, []string{"result"}),
		catalogueSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "planner_catalogue_objects",
			Help: "Number of objects in the catalogue after the last refresh",
		}),
		refreshes: factory.NewCounter(prometheus.CounterOpts{
			Name: "planner_catalogue_refreshes_total",
			Help: "Total number of successful catalogue refreshes",
		}),
		commands: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_history_operations_total",
			Help: "Total number of history operations",
		}, []string{"op"}),
		undoDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "planner_history_undo_depth",
			Help: "Number of commands that can be undone",
		}),
		redoDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "planner_history_redo_depth",
			Help: "Number of commands that can be redone",
		}),
	}
}

func (c *Collector) CacheHit() { c.cacheHits.Inc() }

func (c *Collector) CacheMiss() { c.cacheMisses.Inc() }

func (c *Collector) BodyLoaded(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.bodyLoads.WithLabelValues(result).Inc()
}

func (c *Collector) CatalogueRefreshed(objects int) {
	c.refreshes.Inc()
	c.catalogueSize.Set(float64(objects))
}

// CommandApplied records a stack operation and the resulting depths
func (c *Collector) CommandApplied(op history.Operation, _ history.Command, undoLen, redoLen int) {
	c.commands.WithLabelValues(string(op)).Inc()
	c.undoDepth.Set(float64(undoLen))
	c.redoDepth.Set(float64(redoLen))
}

// Registry returns the registry holding every planner metric
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
