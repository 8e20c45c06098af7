// Package metrics colectores Prometheus del terminal: resultados de escaneo,
// documentos generados y latencia de las llamadas al ERP.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appmovement "github.com/jhoicas/depo-terminal/internal/application/movement"
	"github.com/jhoicas/depo-terminal/internal/infrastructure/erp"
)

var (
	_ appmovement.Recorder = (*Recorder)(nil)
	_ erp.Observer         = (*Recorder)(nil)
)

// Recorder agrupa los colectores sobre un registro propio.
type Recorder struct {
	registry  *prometheus.Registry
	scans     *prometheus.CounterVec
	generated *prometheus.CounterVec
	gateway   *prometheus.HistogramVec
}

// NewRecorder registra los colectores (más los de Go y proceso) en un registro nuevo.
func NewRecorder(namespace string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_outcomes_total",
			Help:      "Escaneos de recolección por tipo de documento y resultado.",
		}, []string{"doc_type", "outcome"}),
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_generated_total",
			Help:      "Documentos aceptados por el ERP.",
		}, []string{"doc_type"}),
		gateway: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "erp_request_duration_seconds",
			Help:      "Latencia de las llamadas al ERP por operación y resultado.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "outcome"}),
	}
	r.registry.MustRegister(
		r.scans, r.generated, r.gateway,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ScanOutcome cuenta un escaneo.
func (r *Recorder) ScanOutcome(docType, outcome string) {
	r.scans.WithLabelValues(docType, outcome).Inc()
}

// DocumentGenerated cuenta un documento aceptado.
func (r *Recorder) DocumentGenerated(docType string) {
	r.generated.WithLabelValues(docType).Inc()
}

// ObserveGateway registra la duración de una llamada al ERP.
func (r *Recorder) ObserveGateway(op, outcome string, elapsed time.Duration) {
	r.gateway.WithLabelValues(op, outcome).Observe(elapsed.Seconds())
}

// Handler expone el registro en formato Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry registro subyacente, para pruebas o colectores adicionales.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }
