// Package xgboost evaluates tree ensembles saved with XGBoost's JSON model
// format (Booster.save_model("model.json")).
package xgboost

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/ekisa-team/loanrisk/internal/classifier"
	"github.com/ekisa-team/loanrisk/internal/model"
)

// Supported objectives.
const (
	ObjectiveBinaryLogistic = "binary:logistic"
	ObjectiveBinaryLogitRaw = "binary:logitraw"
	ObjectiveMultiSoftprob  = "multi:softprob"
	ObjectiveMultiSoftmax   = "multi:softmax"
)

// Model is a decoded gradient boosted tree ensemble.
type Model struct {
	featureNames []string
	objective    string
	trees        []tree
	groups       []int
	baseMargin   float64
	numClass     int
	numFeature   int
}

// Decode parses an XGBoost JSON model.
func Decode(data []byte) (model.Classifier, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("xgboost: %w: %w", classifier.ErrInvalidArtifact, err)
	}

	m, err := fromDocument(&doc)
	if err != nil {
		return nil, fmt.Errorf("xgboost: %w", err)
	}

	return m, nil
}

func fromDocument(doc *document) (*Model, error) {
	l := doc.Learner

	if name := l.GradientBooster.Name; name != "" && name != "gbtree" {
		return nil, fmt.Errorf("%w: unsupported booster %q", classifier.ErrInvalidArtifact, name)
	}

	switch l.Objective.Name {
	case ObjectiveBinaryLogistic, ObjectiveBinaryLogitRaw, ObjectiveMultiSoftprob, ObjectiveMultiSoftmax:
	default:
		return nil, fmt.Errorf("%w: unsupported objective %q", classifier.ErrInvalidArtifact, l.Objective.Name)
	}

	baseScore, err := parseParam("base_score", l.ModelParam.BaseScore, 0.5)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", classifier.ErrInvalidArtifact, err)
	}
	numClass, err := parseParam("num_class", l.ModelParam.NumClass, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", classifier.ErrInvalidArtifact, err)
	}
	numFeature, err := parseParam("num_feature", l.ModelParam.NumFeature, float64(len(l.FeatureNames)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", classifier.ErrInvalidArtifact, err)
	}

	m := &Model{
		featureNames: l.FeatureNames,
		objective:    l.Objective.Name,
		numClass:     int(numClass),
		numFeature:   int(numFeature),
		baseMargin:   baseScore,
	}

	if m.objective == ObjectiveBinaryLogistic {
		if baseScore <= 0 || baseScore >= 1 {
			return nil, fmt.Errorf("%w: base_score %v outside (0, 1)", classifier.ErrInvalidArtifact, baseScore)
		}
		m.baseMargin = classifier.Logit(baseScore)
	}

	if m.multiclass() && m.numClass < 2 {
		return nil, fmt.Errorf("%w: objective %s needs num_class >= 2, got %d", classifier.ErrInvalidArtifact, m.objective, m.numClass)
	}
	if m.numFeature <= 0 {
		return nil, fmt.Errorf("%w: unknown number of features", classifier.ErrInvalidArtifact)
	}
	if len(m.featureNames) > 0 && len(m.featureNames) != m.numFeature {
		return nil, fmt.Errorf("%w: %d feature names but num_feature is %d", classifier.ErrInvalidArtifact, len(m.featureNames), m.numFeature)
	}

	trees := l.GradientBooster.Model.Trees
	info := l.GradientBooster.Model.TreeInfo
	if len(info) == 0 {
		info = make([]int, len(trees))
	}
	if len(info) != len(trees) {
		return nil, fmt.Errorf("%w: %d trees but %d tree_info entries", classifier.ErrInvalidArtifact, len(trees), len(info))
	}

	for i := range trees {
		t, err := newTree(&trees[i], m.numFeature)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		if g := info[i]; g < 0 || g >= m.outputs() {
			return nil, fmt.Errorf("%w: tree %d assigned to group %d of %d", classifier.ErrInvalidArtifact, i, g, m.outputs())
		}
		m.trees = append(m.trees, t)
	}
	m.groups = info

	return m, nil
}

// Family returns the model family.
func (m *Model) Family() model.Family {
	return model.FamilyXGBoost
}

// Classify returns the predicted class for rec.
func (m *Model) Classify(rec model.Record) (int, error) {
	margins, err := m.Margins(rec)
	if err != nil {
		return 0, err
	}

	if !m.multiclass() {
		if m.objective == ObjectiveBinaryLogistic {
			if classifier.Sigmoid(margins[0]) > 0.5 {
				return 1, nil
			}
			return 0, nil
		}
		if margins[0] > 0 {
			return 1, nil
		}
		return 0, nil
	}

	return classifier.Argmax(margins), nil
}

// Margins returns the untransformed ensemble output, one value per output
// group.
func (m *Model) Margins(rec model.Record) ([]float64, error) {
	x, err := rec.Align(m.featureNames)
	if err != nil {
		return nil, err
	}
	if len(x) != m.numFeature {
		return nil, fmt.Errorf("%w: feature shape mismatch, expected: %d, got %d", classifier.ErrShapeMismatch, m.numFeature, len(x))
	}

	margins := make([]float64, m.outputs())
	for i := range margins {
		margins[i] = m.baseMargin
	}
	for i := range m.trees {
		margins[m.groups[i]] += m.trees[i].eval(x)
	}

	return margins, nil
}

func (m *Model) multiclass() bool {
	return m.objective == ObjectiveMultiSoftprob || m.objective == ObjectiveMultiSoftmax
}

func (m *Model) outputs() int {
	if m.multiclass() {
		return m.numClass
	}
	return 1
}

// tree is a single regression tree. Leaf values live in splitConditions.
type tree struct {
	left            []int
	right           []int
	splitIndices    []int
	splitConditions []float64
	defaultLeft     []bool
}

func newTree(t *jsonTree, numFeature int) (tree, error) {
	n := len(t.LeftChildren)
	if n == 0 {
		return tree{}, fmt.Errorf("%w: empty tree", classifier.ErrInvalidArtifact)
	}
	if len(t.RightChildren) != n || len(t.SplitIndices) != n || len(t.SplitConditions) != n {
		return tree{}, fmt.Errorf("%w: tree node arrays differ in length", classifier.ErrInvalidArtifact)
	}

	defaultLeft := []bool(t.DefaultLeft)
	if len(defaultLeft) == 0 {
		defaultLeft = make([]bool, n)
	}
	if len(defaultLeft) != n {
		return tree{}, fmt.Errorf("%w: default_left has %d entries, want %d", classifier.ErrInvalidArtifact, len(defaultLeft), n)
	}

	for i := 0; i < n; i++ {
		l, r := t.LeftChildren[i], t.RightChildren[i]
		if l == -1 {
			continue
		}
		if l <= i || r <= i || l >= n || r >= n {
			return tree{}, fmt.Errorf("%w: node %d has invalid children %d/%d", classifier.ErrInvalidArtifact, i, l, r)
		}
		if f := t.SplitIndices[i]; f < 0 || f >= numFeature {
			return tree{}, fmt.Errorf("%w: node %d splits on feature %d of %d", classifier.ErrInvalidArtifact, i, f, numFeature)
		}
	}

	return tree{
		left:            t.LeftChildren,
		right:           t.RightChildren,
		splitIndices:    t.SplitIndices,
		splitConditions: t.SplitConditions,
		defaultLeft:     defaultLeft,
	}, nil
}

func (t *tree) eval(x []float64) float64 {
	node := 0
	for t.left[node] != -1 {
		v := x[t.splitIndices[node]]
		switch {
		case math.IsNaN(v):
			if t.defaultLeft[node] {
				node = t.left[node]
			} else {
				node = t.right[node]
			}
		case v < t.splitConditions[node]:
			node = t.left[node]
		default:
			node = t.right[node]
		}
	}
	return t.splitConditions[node]
}
