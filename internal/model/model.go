package model

import (
	"time"
)

// Family identifies the algorithm behind a trained classifier.
type Family string

const (
	// FamilyLogisticRegression is a (multinomial) logistic regression.
	FamilyLogisticRegression Family = "logistic_regression"

	// FamilyXGBoost is an XGBoost gradient boosted tree ensemble.
	FamilyXGBoost Family = "xgboost"

	// FamilyLDA is a linear discriminant analysis classifier.
	FamilyLDA Family = "lda"

	// FamilyGradientBoosting is a scikit-learn style gradient boosting classifier.
	FamilyGradientBoosting Family = "gradient_boosting"
)

// Classifier is a trained model that assigns a class label to a record.
// Implementations must be safe for concurrent use once decoded.
type Classifier interface {
	// Family returns the model family.
	Family() Family

	// Classify returns the predicted class label for a single row.
	Classify(rec Record) (int, error)
}

// Decoder turns a serialized artifact into a Classifier.
type Decoder func(data []byte) (Classifier, error)

// Entry is a classifier held by the registry together with its provenance.
type Entry struct {
	Classifier Classifier `json:"-"`
	LoadedAt   time.Time  `json:"loaded_at"`
	Key        string     `json:"key"`
	Path       string     `json:"path,omitempty"`
	Family     Family     `json:"family"`
}
