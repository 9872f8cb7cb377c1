// Package metrics expone los colectores Prometheus del servicio: peticiones HTTP,
// operaciones del ledger y valor/unidades del último snapshot cargado.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores sobre un registry propio (no el global).
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	LedgerOperations    *prometheus.CounterVec
	InventoryValue      prometheus.Gauge
	InventoryUnits      prometheus.Gauge
	InventoryItems      prometheus.Gauge
}

// New registra los colectores con el prefijo indicado (METRICS_PREFIX).
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total de peticiones HTTP",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duración de las peticiones HTTP en segundos",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		LedgerOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_ledger_operations_total",
				Help: "Operaciones del ledger por resultado",
			},
			[]string{"operation", "outcome"},
		),
		InventoryValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "_inventory_value",
			Help: "Valor total (precio x cantidad) del último snapshot",
		}),
		InventoryUnits: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "_inventory_units",
			Help: "Unidades totales en stock del último snapshot",
		}),
		InventoryItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "_inventory_items",
			Help: "Productos distintos en el último snapshot",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.LedgerOperations,
		m.InventoryValue,
		m.InventoryUnits,
		m.InventoryItems,
	)
	return m
}

// ObserveOperation cuenta una operación del ledger (outcome: ok, invalid, store_error).
func (m *Metrics) ObserveOperation(operation, outcome string) {
	m.LedgerOperations.WithLabelValues(operation, outcome).Inc()
}

// ObserveSnapshot actualiza los gauges de inventario.
func (m *Metrics) ObserveSnapshot(value float64, units int64, items int) {
	m.InventoryValue.Set(value)
	m.InventoryUnits.Set(float64(units))
	m.InventoryItems.Set(float64(items))
}

// Registry devuelve el registry (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler sirve /metrics en formato de exposición Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
