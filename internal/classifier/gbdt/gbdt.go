// Package gbdt implements a fitted gradient boosting classifier made of
// regression trees, following the scikit-learn estimator layout.
package gbdt

import (
	"encoding/json"
	"fmt"

	"github.com/ekisa-team/loanrisk/internal/classifier"
	"github.com/ekisa-team/loanrisk/internal/model"
)

// Model is a fitted gradient boosting classifier. Estimators holds one slice
// per boosting stage with one tree per output (a single tree for binary
// problems).
type Model struct {
	FeatureNames []string  `json:"feature_names,omitempty"`
	Classes      []float64 `json:"classes"`
	LearningRate float64   `json:"learning_rate"`
	InitRaw      []float64 `json:"init_raw"`
	Estimators   [][]Tree  `json:"estimators"`
	NFeatures    int       `json:"n_features"`
}

// Decode parses a gradient boosting artifact.
func Decode(data []byte) (model.Classifier, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("gbdt: %w: %w", classifier.ErrInvalidArtifact, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("gbdt: %w", err)
	}

	return &m, nil
}

// Validate checks the fitted attributes.
func (m *Model) Validate() error {
	if len(m.Classes) < 2 {
		return fmt.Errorf("%w: need at least 2 classes, got %d", classifier.ErrInvalidArtifact, len(m.Classes))
	}
	if m.NFeatures == 0 {
		m.NFeatures = len(m.FeatureNames)
	}
	if m.NFeatures <= 0 {
		return fmt.Errorf("%w: unknown number of features", classifier.ErrInvalidArtifact)
	}
	if len(m.FeatureNames) > 0 && len(m.FeatureNames) != m.NFeatures {
		return fmt.Errorf("%w: %d feature names but n_features is %d", classifier.ErrInvalidArtifact, len(m.FeatureNames), m.NFeatures)
	}

	outputs := m.outputs()
	if len(m.InitRaw) != outputs {
		return fmt.Errorf("%w: init_raw has %d values, want %d", classifier.ErrInvalidArtifact, len(m.InitRaw), outputs)
	}

	for stage, trees := range m.Estimators {
		if len(trees) != outputs {
			return fmt.Errorf("%w: stage %d has %d trees, want %d", classifier.ErrInvalidArtifact, stage, len(trees), outputs)
		}
		for k := range trees {
			if err := trees[k].Validate(m.NFeatures); err != nil {
				return fmt.Errorf("stage %d tree %d: %w", stage, k, err)
			}
		}
	}

	return nil
}

// Family returns the model family.
func (m *Model) Family() model.Family {
	return model.FamilyGradientBoosting
}

// Classify returns the predicted class for rec.
func (m *Model) Classify(rec model.Record) (int, error) {
	raw, err := m.RawScores(rec)
	if err != nil {
		return 0, err
	}

	if len(raw) == 1 {
		return classifier.BinaryLabel(m.Classes, raw[0] > 0), nil
	}

	return classifier.Label(m.Classes, classifier.Argmax(raw))
}

// RawScores returns the additive raw predictions, one per output.
func (m *Model) RawScores(rec model.Record) ([]float64, error) {
	x, err := rec.Align(m.FeatureNames)
	if err != nil {
		return nil, err
	}
	if len(x) != m.NFeatures {
		return nil, fmt.Errorf("%w: X has %d features, but model is expecting %d features as input", classifier.ErrShapeMismatch, len(x), m.NFeatures)
	}

	raw := append([]float64(nil), m.InitRaw...)
	for _, trees := range m.Estimators {
		for k := range trees {
			raw[k] += m.LearningRate * trees[k].Eval(x)
		}
	}

	return raw, nil
}

func (m *Model) outputs() int {
	if len(m.Classes) == 2 {
		return 1
	}
	return len(m.Classes)
}
