package service

import (
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ekisa-team/loanrisk/internal/metrics"
	"github.com/ekisa-team/loanrisk/internal/model"
)

// Prediction is the service the transports call to classify a loan. It wraps
// the dispatcher with metrics and logging.
type Prediction struct {
	dispatcher *model.Dispatcher
	metrics    *metrics.Metrics
	artifacts  []model.Artifact
}

// NewPrediction creates a new Prediction service. m may be nil.
func NewPrediction(dispatcher *model.Dispatcher, m *metrics.Metrics, artifacts []model.Artifact) *Prediction {
	return &Prediction{
		dispatcher: dispatcher,
		metrics:    m,
		artifacts:  artifacts,
	}
}

// Predict classifies features with the model named by key.
func (s *Prediction) Predict(key string, features []float64) model.Outcome {
	start := time.Now()
	out := s.dispatcher.Predict(key, features)
	elapsed := time.Since(start)

	label := metrics.ModelLabel(key)
	if s.metrics != nil {
		s.metrics.Predictions.WithLabelValues(label).Inc()
		s.metrics.PredictionDuration.WithLabelValues(label).Observe(elapsed.Seconds())
		if out.IsError() {
			s.metrics.PredictionErrors.WithLabelValues(label, reason(out.Err())).Inc()
		}
	}

	if out.IsError() {
		slog.Warn("Prediction failed", "model_id", key, "reason", reason(out.Err()), "error", out.Message())
	} else {
		prediction, _ := out.Label()
		slog.Debug("Prediction served", "model_id", key, "prediction", prediction, "duration", elapsed)
	}

	return out
}

// ModelStatus describes whether a configured model is available.
type ModelStatus struct {
	Key       string       `json:"key"`
	Family    model.Family `json:"family"`
	Filename  string       `json:"filename"`
	Available bool         `json:"available"`
	LoadedAt  *time.Time   `json:"loaded_at,omitempty"`
}

// Models lists every configured model and whether it was loaded, followed by
// any loaded model the artifact table does not name.
func (s *Prediction) Models() []ModelStatus {
	loaded := make(map[string]model.Entry)
	for _, entry := range s.dispatcher.Registry().List() {
		loaded[entry.Key] = entry
	}

	statuses := make([]ModelStatus, 0, len(s.artifacts))
	for _, a := range s.artifacts {
		status := ModelStatus{
			Key:      a.Key,
			Family:   a.Family,
			Filename: a.Filename,
		}
		if entry, ok := loaded[a.Key]; ok {
			status = statusOf(entry)
			status.Filename = a.Filename
			delete(loaded, a.Key)
		}
		statuses = append(statuses, status)
	}

	for _, entry := range s.dispatcher.Registry().List() {
		if _, extra := loaded[entry.Key]; extra {
			statuses = append(statuses, statusOf(entry))
		}
	}

	return statuses
}

func statusOf(entry model.Entry) ModelStatus {
	status := ModelStatus{
		Key:       entry.Key,
		Family:    entry.Family,
		Filename:  filepath.Base(entry.Path),
		Available: true,
	}
	if entry.Path == "" {
		status.Filename = ""
	}
	if !entry.LoadedAt.IsZero() {
		loadedAt := entry.LoadedAt
		status.LoadedAt = &loadedAt
	}
	return status
}

// Keys returns the configured model keys in table order.
func (s *Prediction) Keys() []string {
	return model.Keys(s.artifacts)
}

func reason(err error) string {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return "not_found"
	case errors.Is(err, model.ErrInference):
		return "inference"
	default:
		return "unknown"
	}
}
