package model

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ekisa-team/loanrisk/internal/xfs"
)

// DefaultModelsDir is the directory artifacts are read from when nothing else
// is configured.
const DefaultModelsDir = "models"

// Artifact maps a model key to the file it is decoded from.
type Artifact struct {
	Key      string
	Filename string
	Family   Family
}

// DefaultArtifacts is the fixed table of models the service knows about.
var DefaultArtifacts = []Artifact{
	{Key: "logistic_regression", Filename: "logistic_regression_model.json", Family: FamilyLogisticRegression},
	{Key: "xgboost", Filename: "xgboost_model.json", Family: FamilyXGBoost},
	{Key: "lda", Filename: "lda_model.json", Family: FamilyLDA},
	{Key: "gradient_boosting", Filename: "gradient_boosting_model.json", Family: FamilyGradientBoosting},
}

// Keys returns the keys of the given artifact table in table order.
func Keys(artifacts []Artifact) []string {
	keys := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		keys = append(keys, a.Key)
	}
	return keys
}

// LoadRegistry decodes every artifact present in dir and returns the
// resulting registry. Artifacts that do not exist are skipped with a warning,
// including when dir itself is missing or not a directory. A present file
// that cannot be read or decoded aborts loading.
func LoadRegistry(dir string, artifacts []Artifact, decoders map[Family]Decoder) (*Registry, error) {
	if !xfs.IsDir(dir) {
		slog.Warn("Models directory not found", "dir", dir)
	}

	entries := make(map[string]Entry, len(artifacts))

	for _, artifact := range artifacts {
		path := filepath.Join(dir, artifact.Filename)
		if !xfs.Exists(path) {
			slog.Warn("Model not found", "model_id", artifact.Key, "path", path)
			continue
		}

		entry, err := loadArtifact(path, artifact, decoders)
		if err != nil {
			return nil, fmt.Errorf("model: failed to load %s from %s: %w", artifact.Key, path, err)
		}

		entries[artifact.Key] = entry
		slog.Info("Model loaded into registry", "model_id", artifact.Key, "family", artifact.Family, "path", path)
	}

	return newRegistry(entries), nil
}

// loadArtifact reads and decodes a single artifact.
func loadArtifact(path string, artifact Artifact, decoders map[Family]Decoder) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}

	decode, ok := decoders[artifact.Family]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrDecoderNotFound, artifact.Family)
	}

	classifier, err := decode(data)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to decode %s artifact: %w", artifact.Family, err)
	}

	return Entry{
		Classifier: classifier,
		LoadedAt:   time.Now(),
		Key:        artifact.Key,
		Path:       path,
		Family:     artifact.Family,
	}, nil
}
