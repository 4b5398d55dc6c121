package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline Prometheus metrics.
var (
	DocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blueparser",
			Name:      "documents_total",
			Help:      "Documents run through the pipeline",
		},
		[]string{"drawing_type", "status"}, // status: "valid" / "invalid" / "error"
	)

	DocumentDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "blueparser",
			Name:      "document_duration_seconds",
			Help:      "Pipeline duration per document in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"drawing_type"},
	)

	ExtractorFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blueparser",
			Name:      "extractor_failures_total",
			Help:      "Extraction passes that failed and were nulled out",
		},
		[]string{"extractor"},
	)

	BatchJobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blueparser",
			Name:      "batch_jobs_total",
			Help:      "Batch jobs by terminal status",
		},
		[]string{"status"},
	)

	BatchQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "blueparser",
			Name:      "batch_queue_depth",
			Help:      "Jobs waiting in the batch queue",
		},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers the pipeline metrics with the default registry.
// Call once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(DocumentsTotal)
	prometheus.MustRegister(DocumentDuration)
	prometheus.MustRegister(ExtractorFailuresTotal)
	prometheus.MustRegister(BatchJobsTotal)
	prometheus.MustRegister(BatchQueueDepth)
	pipelineMetricsRegistered = true
}

// WriteTextfile dumps the default registry in the node_exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
