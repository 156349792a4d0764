// Package metrics defines the Prometheus collectors exported by the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// UnknownModel labels requests that did not name a model.
const UnknownModel = "unknown"

// Metrics groups the prediction collectors.
type Metrics struct {
	Predictions        *prometheus.CounterVec
	PredictionErrors   *prometheus.CounterVec
	PredictionDuration *prometheus.HistogramVec
}

// New registers the prediction collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Predictions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "model_predictions_total",
				Help: "Total predictions by model",
			},
			[]string{"model"},
		),
		PredictionErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "model_prediction_errors_total",
				Help: "Total failed predictions by model and reason",
			},
			[]string{"model", "reason"},
		),
		PredictionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "model_prediction_duration_seconds",
				Help:    "Duration of prediction dispatch in seconds",
				Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
			},
			[]string{"model"},
		),
	}
}

// ModelLabel returns the label value used for key.
func ModelLabel(key string) string {
	if key == "" {
		return UnknownModel
	}
	return key
}
