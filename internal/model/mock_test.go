package model

import (
	"github.com/stretchr/testify/mock"
)

// --- Mock types ---

type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Family() Family {
	args := m.Called()
	return args.Get(0).(Family)
}

func (m *MockClassifier) Classify(rec Record) (int, error) {
	args := m.Called(rec)
	return args.Int(0), args.Error(1)
}

// constClassifier always predicts the same label.
type constClassifier struct {
	family Family
	label  int
}

func (c constClassifier) Family() Family { return c.family }

func (c constClassifier) Classify(rec Record) (int, error) {
	return c.label, nil
}
