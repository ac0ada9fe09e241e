// Package metrics expone las métricas Prometheus del portal.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/portal-notas/internal/application/invoice"
	"github.com/jhoicas/portal-notas/internal/application/state"
)

var (
	_ invoice.Recorder = (*PortalMetrics)(nil)
	_ state.Observer   = (*PortalMetrics)(nil)
)

// PortalMetrics agrupa los contadores de negocio y de HTTP sobre un registro propio.
type PortalMetrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	invoicesSubmitted   prometheus.Counter
	statusChanges       *prometheus.CounterVec
	attachmentsExported prometheus.Counter
	persistFailures     prometheus.Counter
}

// New crea y registra las métricas.
func New() *PortalMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &PortalMetrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_http_requests_total",
				Help: "Total de requests HTTP por ruta, método y status",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portal_http_request_duration_seconds",
				Help:    "Duración de los requests HTTP en segundos",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		invoicesSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "portal_invoices_submitted_total",
			Help: "Notas fiscales publicadas",
		}),
		statusChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_invoice_status_changes_total",
				Help: "Cambios de estado por estado destino",
			},
			[]string{"status"},
		),
		attachmentsExported: factory.NewCounter(prometheus.CounterOpts{
			Name: "portal_attachments_exported_total",
			Help: "Adjuntos descargados o empaquetados",
		}),
		persistFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "portal_persist_failures_total",
			Help: "Guardados del dataset que fallaron",
		}),
	}
}

// Registry devuelve el registro (tests y /metrics).
func (m *PortalMetrics) Registry() *prometheus.Registry { return m.registry }

// InvoiceSubmitted implementa invoice.Recorder.
func (m *PortalMetrics) InvoiceSubmitted() { m.invoicesSubmitted.Inc() }

// StatusChanged implementa invoice.Recorder.
func (m *PortalMetrics) StatusChanged(status string) { m.statusChanges.WithLabelValues(status).Inc() }

// AttachmentsExported implementa invoice.Recorder.
func (m *PortalMetrics) AttachmentsExported(n int) {
	if n > 0 {
		m.attachmentsExported.Add(float64(n))
	}
}

// PersistFailed implementa state.Observer.
func (m *PortalMetrics) PersistFailed() { m.persistFailures.Inc() }

// WatchState publica la versión del dataset como gauge.
func (m *PortalMetrics) WatchState(st *state.Controller) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "portal_dataset_version",
			Help: "Cambios aplicados al dataset desde el arranque",
		},
		func() float64 { return float64(st.Version()) },
	))
}

// Middleware registra cantidad y duración de requests. Usa el patrón de la ruta como
// etiqueta para no disparar la cardinalidad con ids.
func (m *PortalMetrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		if path == "" || path == "/" && c.Path() != "/" {
			path = "unmatched"
		}
		method := c.Method()
		m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler sirve /metrics.
func (m *PortalMetrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
