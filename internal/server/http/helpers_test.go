package http

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ekisa-team/loanrisk/internal/metrics"
	"github.com/ekisa-team/loanrisk/internal/model"
	"github.com/ekisa-team/loanrisk/internal/service"
)

// thresholdClassifier predicts 1 when CreditScore is below 700.
type thresholdClassifier struct{}

func (thresholdClassifier) Family() model.Family { return model.FamilyLogisticRegression }

func (thresholdClassifier) Classify(rec model.Record) (int, error) {
	v, _ := rec.Value(model.ColumnCreditScore)
	if v < 700 {
		return 1, nil
	}
	return 0, nil
}

type failingClassifier struct{}

func (failingClassifier) Family() model.Family { return model.FamilyLDA }

func (failingClassifier) Classify(model.Record) (int, error) {
	return 0, errors.New("incompatible model")
}

func newTestService(t *testing.T) (*service.Prediction, *prometheus.Registry) {
	t.Helper()

	reg := prometheus.NewRegistry()
	d := model.NewDispatcher(model.NewRegistry(map[string]model.Classifier{
		"logistic_regression": thresholdClassifier{},
		"lda":                 failingClassifier{},
	}))

	return service.NewPrediction(d, metrics.New(reg), model.DefaultArtifacts), reg
}
