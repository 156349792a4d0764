// Package logistic implements a fitted logistic regression classifier.
package logistic

import (
	"encoding/json"
	"fmt"

	"github.com/ekisa-team/loanrisk/internal/classifier"
	"github.com/ekisa-team/loanrisk/internal/model"
)

// Model is a fitted logistic regression. Binary models predict classes[1]
// when coef·x + intercept > 0; multinomial models take the argmax.
type Model struct {
	classifier.Linear
}

// Decode parses a logistic regression artifact.
func Decode(data []byte) (model.Classifier, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("logistic: %w: %w", classifier.ErrInvalidArtifact, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("logistic: %w", err)
	}

	return &m, nil
}

// Family returns the model family.
func (m *Model) Family() model.Family {
	return model.FamilyLogisticRegression
}

// Classify returns the predicted class for rec.
func (m *Model) Classify(rec model.Record) (int, error) {
	return m.Predict(rec)
}
