// Package lda implements a fitted linear discriminant analysis classifier.
//
// Only the decision function is needed at prediction time; the class priors
// and means are carried along for inspection.
package lda

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/ekisa-team/loanrisk/internal/classifier"
	"github.com/ekisa-team/loanrisk/internal/model"
)

// Model is a fitted linear discriminant analysis.
type Model struct {
	classifier.Linear
	Priors []float64   `json:"priors,omitempty"`
	Means  [][]float64 `json:"means,omitempty"`
}

// Decode parses an LDA artifact.
func Decode(data []byte) (model.Classifier, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("lda: %w: %w", classifier.ErrInvalidArtifact, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("lda: %w", err)
	}

	return &m, nil
}

// Validate checks the fitted attributes, including the optional priors and
// class means.
func (m *Model) Validate() error {
	if err := m.Linear.Validate(); err != nil {
		return err
	}

	if len(m.Priors) > 0 {
		if len(m.Priors) != len(m.Classes) {
			return fmt.Errorf("%w: %d priors for %d classes", classifier.ErrInvalidArtifact, len(m.Priors), len(m.Classes))
		}

		var sum float64
		for _, p := range m.Priors {
			sum += p
		}
		if math.Abs(sum-1) > 1e-6 {
			return fmt.Errorf("%w: priors sum to %v", classifier.ErrInvalidArtifact, sum)
		}
	}

	if len(m.Means) > 0 && len(m.Means) != len(m.Classes) {
		return fmt.Errorf("%w: %d class means for %d classes", classifier.ErrInvalidArtifact, len(m.Means), len(m.Classes))
	}

	return nil
}

// Family returns the model family.
func (m *Model) Family() model.Family {
	return model.FamilyLDA
}

// Classify returns the predicted class for rec.
func (m *Model) Classify(rec model.Record) (int, error) {
	return m.Predict(rec)
}
