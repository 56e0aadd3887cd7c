// Package metrics expone las métricas Prometheus del servicio: HTTP y del
// flujo de login social (outcomes y latencia de llamadas al provider).
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors en un registry propio.
type Metrics struct {
	reg *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        prometheus.Gauge

	callbackOutcomes *prometheus.CounterVec
	providerCalls    *prometheus.HistogramVec
}

func New() (*Metrics, error) {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Número total de requests procesadas",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests en vuelo",
		}),
		callbackOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "social_callback_outcomes_total",
			Help: "Callbacks sociales por provider y resultado (outcome o código de error)",
		}, []string{"provider", "outcome"}),
		providerCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "social_provider_call_duration_seconds",
			Help:    "Latencia de las llamadas salientes al provider",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider", "op", "result"}),
	}

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpInflight,
		m.callbackOutcomes,
		m.providerCalls,
	} {
		if err := m.reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler sirve /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry expone el registry (tests y collectors extra).
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// ProviderCall registra una llamada al provider (op = token | profile).
func (m *Metrics) ProviderCall(provider, op string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.providerCalls.WithLabelValues(provider, op, result).Observe(d.Seconds())
}

// Outcome cuenta un callback resuelto o fallido.
func (m *Metrics) Outcome(provider, outcome string) {
	m.callbackOutcomes.WithLabelValues(provider, outcome).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

// WithMetrics instrumenta requests HTTP. El label route es el patrón de chi,
// nunca el path crudo.
func (m *Metrics) WithMetrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.httpInflight.Inc()
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			defer func() {
				m.httpInflight.Dec()
				route := routePattern(r)
				method := strings.ToUpper(r.Method)
				status := rec.status
				if status == 0 {
					status = http.StatusOK
				}
				m.httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
				m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
