package model

import (
	"fmt"
)

// Dispatcher routes a feature vector to the classifier named by the caller.
type Dispatcher struct {
	registry *Registry
	columns  []string
}

// NewDispatcher creates a dispatcher over registry. A nil registry behaves
// like an empty one.
func NewDispatcher(registry *Registry) *Dispatcher {
	if registry == nil {
		registry = newRegistry(nil)
	}

	return &Dispatcher{
		registry: registry,
		columns:  Columns(),
	}
}

// Registry returns the registry the dispatcher reads from.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Predict classifies features with the model stored under key. It never
// panics: every failure is returned as the error arm of the outcome.
func (d *Dispatcher) Predict(key string, features []float64) Outcome {
	classifier, ok := d.registry.Get(key)
	if !ok {
		return Failed(notFound(key))
	}

	label, err := d.classify(classifier, features)
	if err != nil {
		return Failed(inferenceFailed(err))
	}

	return Predicted(label)
}

func (d *Dispatcher) classify(classifier Classifier, features []float64) (label int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	rec, err := NewRecord(d.columns, features)
	if err != nil {
		return 0, err
	}

	return classifier.Classify(rec)
}
