package logistic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/loanrisk/internal/classifier"
	"github.com/ekisa-team/loanrisk/internal/model"
)

const binaryArtifact = `{
	"feature_names": ["CreditScore", "OCLTV", "DTI", "OrigUPB", "OrigInterestRate"],
	"classes": [0, 1],
	"coef": [[0.01, 0.02, 0.03, 0.0, -0.5]],
	"intercept": [-8.0]
}`

func record(t *testing.T, values ...float64) model.Record {
	t.Helper()
	rec, err := model.NewRecord(model.Columns(), values)
	require.NoError(t, err)
	return rec
}

func TestDecode_Binary(t *testing.T) {
	c, err := Decode([]byte(binaryArtifact))
	require.NoError(t, err)
	assert.Equal(t, model.FamilyLogisticRegression, c.Family())

	// 7.2 + 1.6 + 1.05 - 2.25 - 8 = -0.4
	label, err := c.Classify(record(t, 720, 80, 35, 150000, 4.5))
	require.NoError(t, err)
	assert.Equal(t, 0, label)

	// 8.0 + 1.6 + 1.05 - 2.25 - 8 = 0.4
	label, err = c.Classify(record(t, 800, 80, 35, 150000, 4.5))
	require.NoError(t, err)
	assert.Equal(t, 1, label)
}

func TestDecode_Multinomial(t *testing.T) {
	c, err := Decode([]byte(`{
		"classes": [0, 1, 2],
		"coef": [[1, 0, 0, 0, 0], [0, 1, 0, 0, 0], [0, 0, 1, 0, 0]],
		"intercept": [0, 0, 0]
	}`))
	require.NoError(t, err)

	label, err := c.Classify(record(t, 1, 5, 2, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, label)
}

func TestDecode_Invalid(t *testing.T) {
	cases := map[string]string{
		"not json":          `{`,
		"one class":         `{"classes": [1], "coef": [[1]], "intercept": [0]}`,
		"intercept missing": `{"classes": [0, 1], "coef": [[1, 2]], "intercept": []}`,
		"ragged coef":       `{"classes": [0, 1, 2], "coef": [[1, 2], [1], [3, 4]], "intercept": [0, 0, 0]}`,
		"names mismatch":    `{"feature_names": ["a"], "classes": [0, 1], "coef": [[1, 2]], "intercept": [0]}`,
	}

	for name, artifact := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(artifact))
			require.Error(t, err)
			assert.True(t, errors.Is(err, classifier.ErrInvalidArtifact))
		})
	}
}

func TestModel_ShapeMismatch(t *testing.T) {
	c, err := Decode([]byte(`{"classes": [0, 1], "coef": [[1, 2, 3]], "intercept": [0]}`))
	require.NoError(t, err)

	_, err = c.Classify(record(t, 1, 2, 3, 4, 5))
	require.Error(t, err)
	assert.True(t, errors.Is(err, classifier.ErrShapeMismatch))
}

func TestModel_FeatureOrder(t *testing.T) {
	c, err := Decode([]byte(`{
		"feature_names": ["OCLTV", "CreditScore", "DTI", "OrigUPB", "OrigInterestRate"],
		"classes": [0, 1],
		"coef": [[1, 1, 1, 1, 1]],
		"intercept": [0]
	}`))
	require.NoError(t, err)

	_, err = c.Classify(record(t, 1, 2, 3, 4, 5))
	assert.ErrorContains(t, err, "same order")
}
