// Package classifier holds the pieces shared by the model family
// implementations: the linear decision function and label helpers.
package classifier

import (
	"errors"
	"fmt"
	"math"

	"github.com/ekisa-team/loanrisk/internal/model"
)

// Error definitions for the classifier package.
var (
	ErrInvalidArtifact = errors.New("invalid model artifact")
	ErrShapeMismatch   = errors.New("input shape does not match model")
)

// Linear is a fitted linear decision function with scikit-learn attribute
// layout: one coefficient row per class (a single row for binary problems).
type Linear struct {
	FeatureNames []string    `json:"feature_names,omitempty"`
	Classes      []float64   `json:"classes"`
	Coef         [][]float64 `json:"coef"`
	Intercept    []float64   `json:"intercept"`
}

// Validate checks the internal consistency of the fitted attributes.
func (l *Linear) Validate() error {
	if len(l.Classes) < 2 {
		return fmt.Errorf("%w: need at least 2 classes, got %d", ErrInvalidArtifact, len(l.Classes))
	}
	if len(l.Coef) == 0 {
		return fmt.Errorf("%w: empty coef", ErrInvalidArtifact)
	}
	if len(l.Intercept) != len(l.Coef) {
		return fmt.Errorf("%w: %d coef rows but %d intercepts", ErrInvalidArtifact, len(l.Coef), len(l.Intercept))
	}

	binary := len(l.Classes) == 2
	if binary && len(l.Coef) != 1 {
		return fmt.Errorf("%w: binary model must have 1 coef row, got %d", ErrInvalidArtifact, len(l.Coef))
	}
	if !binary && len(l.Coef) != len(l.Classes) {
		return fmt.Errorf("%w: %d classes but %d coef rows", ErrInvalidArtifact, len(l.Classes), len(l.Coef))
	}

	width := len(l.Coef[0])
	for i, row := range l.Coef {
		if len(row) != width {
			return fmt.Errorf("%w: coef row %d has %d values, want %d", ErrInvalidArtifact, i, len(row), width)
		}
	}
	if len(l.FeatureNames) > 0 && len(l.FeatureNames) != width {
		return fmt.Errorf("%w: %d feature names but %d coefficients", ErrInvalidArtifact, len(l.FeatureNames), width)
	}

	return nil
}

// Decision returns the raw decision scores for rec, one per coef row.
func (l *Linear) Decision(rec model.Record) ([]float64, error) {
	x, err := rec.Align(l.FeatureNames)
	if err != nil {
		return nil, err
	}

	width := len(l.Coef[0])
	if len(x) != width {
		return nil, fmt.Errorf("%w: X has %d features, but model is expecting %d features as input", ErrShapeMismatch, len(x), width)
	}

	scores := make([]float64, len(l.Coef))
	for i, row := range l.Coef {
		scores[i] = Dot(row, x) + l.Intercept[i]
	}

	return scores, nil
}

// Predict returns the class label chosen by the decision function.
func (l *Linear) Predict(rec model.Record) (int, error) {
	scores, err := l.Decision(rec)
	if err != nil {
		return 0, err
	}

	if len(scores) == 1 {
		return BinaryLabel(l.Classes, scores[0] > 0), nil
	}

	return Label(l.Classes, Argmax(scores))
}

// Dot returns the inner product of a and b, which must be of equal length.
func Dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Argmax returns the index of the largest value; ties resolve to the lowest
// index.
func Argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

// Sigmoid is the logistic function.
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Logit is the inverse of Sigmoid.
func Logit(p float64) float64 {
	return math.Log(p / (1 - p))
}

// BinaryLabel picks classes[1] when positive, classes[0] otherwise.
func BinaryLabel(classes []float64, positive bool) int {
	if positive {
		return int(classes[1])
	}
	return int(classes[0])
}

// Label converts the class at index i into an integer label.
func Label(classes []float64, i int) (int, error) {
	if i < 0 || i >= len(classes) {
		return 0, fmt.Errorf("%w: class index %d out of range [0, %d)", ErrShapeMismatch, i, len(classes))
	}
	return int(classes[i]), nil
}
