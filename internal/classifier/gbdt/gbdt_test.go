package gbdt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/loanrisk/internal/classifier"
	"github.com/ekisa-team/loanrisk/internal/model"
)

// creditStump splits on CreditScore <= 700.
const creditStump = `{
	"children_left": [1, -1, -1],
	"children_right": [2, -1, -1],
	"feature": [0, -2, -2],
	"threshold": [700, -2, -2],
	"value": [0, -1, 1]
}`

const binaryArtifact = `{
	"feature_names": ["CreditScore", "OCLTV", "DTI", "OrigUPB", "OrigInterestRate"],
	"classes": [0, 1],
	"learning_rate": 0.5,
	"init_raw": [0.2],
	"estimators": [[` + creditStump + `], [` + creditStump + `]]
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
	assert.Equal(t, model.FamilyGradientBoosting, c.Family())

	m := c.(*Model)
	assert.Equal(t, 5, m.NFeatures)

	raw, err := m.RawScores(record(t, 720, 80, 35, 150000, 4.5))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.2}, raw, 1e-12)

	label, err := c.Classify(record(t, 720, 80, 35, 150000, 4.5))
	require.NoError(t, err)
	assert.Equal(t, 1, label)

	label, err = c.Classify(record(t, 650, 80, 35, 150000, 4.5))
	require.NoError(t, err)
	assert.Equal(t, 0, label)

	// Split is inclusive on the left.
	label, err = c.Classify(record(t, 700, 80, 35, 150000, 4.5))
	require.NoError(t, err)
	assert.Equal(t, 0, label)
}

func TestDecode_Multiclass(t *testing.T) {
	c, err := Decode([]byte(`{
		"classes": [0, 1, 2],
		"n_features": 5,
		"learning_rate": 1.0,
		"init_raw": [0, 0, 0],
		"estimators": [[
			{"children_left": [-1], "children_right": [-1], "feature": [-2], "threshold": [-2], "value": [0.1]},
			{"children_left": [-1], "children_right": [-1], "feature": [-2], "threshold": [-2], "value": [0.3]},
			{"children_left": [-1], "children_right": [-1], "feature": [-2], "threshold": [-2], "value": [0.2]}
		]]
	}`))
	require.NoError(t, err)

	label, err := c.Classify(record(t, 1, 2, 3, 4, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, label)
}

func TestDecode_Invalid(t *testing.T) {
	cases := map[string]string{
		"not json":      `[]`,
		"no features":   `{"classes": [0, 1], "init_raw": [0], "estimators": []}`,
		"init size":     `{"classes": [0, 1], "n_features": 5, "init_raw": [0, 0], "estimators": []}`,
		"trees size":    `{"classes": [0, 1], "n_features": 5, "init_raw": [0], "estimators": [[]]}`,
		"cycle":         `{"classes": [0, 1], "n_features": 5, "init_raw": [0], "estimators": [[{"children_left": [0, -1], "children_right": [1, -1], "feature": [0, -2], "threshold": [1, -2], "value": [0, 0]}]]}`,
		"bad feature":   `{"classes": [0, 1], "n_features": 5, "init_raw": [0], "estimators": [[{"children_left": [1, -1, -1], "children_right": [2, -1, -1], "feature": [9, -2, -2], "threshold": [1, -2, -2], "value": [0, 0, 0]}]]}`,
		"ragged arrays": `{"classes": [0, 1], "n_features": 5, "init_raw": [0], "estimators": [[{"children_left": [-1], "children_right": [-1], "feature": [-2], "threshold": [], "value": [0]}]]}`,
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
	c, err := Decode([]byte(`{
		"classes": [0, 1],
		"n_features": 3,
		"learning_rate": 0.1,
		"init_raw": [0],
		"estimators": []
	}`))
	require.NoError(t, err)

	_, err = c.Classify(record(t, 1, 2, 3, 4, 5))
	assert.True(t, errors.Is(err, classifier.ErrShapeMismatch))
}
