package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gocsv"

// Prometheus records dataset measurements.
type Prometheus struct {
	uploads       prometheus.Counter
	rowsUploaded  prometheus.Counter
	rowsStored    prometheus.Gauge
	analysisCalls *prometheus.CounterVec
}

func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)

	return &Prometheus{
		uploads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Accepted CSV uploads",
		}),
		rowsUploaded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_uploaded_total",
			Help:      "Rows appended by accepted uploads",
		}),
		rowsStored: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows_stored",
			Help:      "Rows currently held in memory",
		}),
		analysisCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_requests_total",
			Help:      "Analysis service calls by outcome",
		}, []string{"outcome"}),
	}
}

func (p *Prometheus) ObserveUpload(rows int) {
	p.uploads.Inc()
	p.rowsUploaded.Add(float64(rows))
	p.rowsStored.Add(float64(rows))
}

func (p *Prometheus) ObserveAnalysis(err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	p.analysisCalls.WithLabelValues(outcome).Inc()
}
