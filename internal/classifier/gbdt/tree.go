package gbdt

import (
	"fmt"

	"github.com/ekisa-team/loanrisk/internal/classifier"
)

// leaf marks a node without children.
const leaf = -1

// Tree is a fitted regression tree in array-of-nodes layout.
type Tree struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

// Validate checks that the node arrays agree and that every child points
// forward, which rules out cycles.
func (t *Tree) Validate(width int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("%w: empty tree", classifier.ErrInvalidArtifact)
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("%w: tree node arrays differ in length", classifier.ErrInvalidArtifact)
	}

	for i := 0; i < n; i++ {
		left, right := t.ChildrenLeft[i], t.ChildrenRight[i]
		if left == leaf && right == leaf {
			continue
		}
		if left <= i || right <= i || left >= n || right >= n {
			return fmt.Errorf("%w: node %d has invalid children %d/%d", classifier.ErrInvalidArtifact, i, left, right)
		}
		if f := t.Feature[i]; f < 0 || f >= width {
			return fmt.Errorf("%w: node %d splits on feature %d of %d", classifier.ErrInvalidArtifact, i, f, width)
		}
	}

	return nil
}

// Eval returns the leaf value reached by x.
func (t *Tree) Eval(x []float64) float64 {
	node := 0
	for t.ChildrenLeft[node] != leaf {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}
