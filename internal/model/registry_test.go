package model

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// labelDecoder decodes an artifact whose content is a bare integer label.
func labelDecoder(family Family) Decoder {
	return func(data []byte) (Classifier, error) {
		label, err := strconv.Atoi(string(data))
		if err != nil {
			return nil, err
		}
		return constClassifier{family: family, label: label}, nil
	}
}

func testDecoders() map[Family]Decoder {
	return map[Family]Decoder{
		FamilyLogisticRegression: labelDecoder(FamilyLogisticRegression),
		FamilyXGBoost:            labelDecoder(FamilyXGBoost),
		FamilyLDA:                labelDecoder(FamilyLDA),
		FamilyGradientBoosting:   labelDecoder(FamilyGradientBoosting),
	}
}

func writeArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadRegistry_AllPresent(t *testing.T) {
	dir := t.TempDir()
	for _, a := range DefaultArtifacts {
		writeArtifact(t, dir, a.Filename, "1")
	}

	reg, err := LoadRegistry(dir, DefaultArtifacts, testDecoders())
	require.NoError(t, err)

	assert.Equal(t, 4, reg.Len())

	entries := make(map[string]Entry)
	for _, entry := range reg.List() {
		entries[entry.Key] = entry
	}

	for _, a := range DefaultArtifacts {
		c, ok := reg.Get(a.Key)
		assert.True(t, ok, a.Key)
		assert.Equal(t, a.Family, c.Family())

		entry, ok := entries[a.Key]
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, a.Filename), entry.Path)
		assert.False(t, entry.LoadedAt.IsZero())
	}
}

func TestLoadRegistry_SkipsMissing(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "logistic_regression_model.json", "0")
	writeArtifact(t, dir, "lda_model.json", "1")

	reg, err := LoadRegistry(dir, DefaultArtifacts, testDecoders())
	require.NoError(t, err)

	assert.Equal(t, []string{"lda", "logistic_regression"}, reg.Keys())
	_, ok := reg.Get("xgboost")
	assert.False(t, ok)
	_, ok = reg.Get("gradient_boosting")
	assert.False(t, ok)
}

func TestLoadRegistry_EmptyDirectory(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join(t.TempDir(), "does-not-exist"), DefaultArtifacts, testDecoders())
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.Keys())
}

func TestLoadRegistry_DirIsRegularFile(t *testing.T) {
	parent := t.TempDir()
	writeArtifact(t, parent, "models", "not a directory")

	reg, err := LoadRegistry(filepath.Join(parent, "models"), DefaultArtifacts, testDecoders())
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())
}

func TestLoadRegistry_UnreadableArtifactFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "lda_model.json"), 0o700))

	_, err := LoadRegistry(dir, DefaultArtifacts, testDecoders())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lda")
}

func TestLoadRegistry_CorruptArtifactFails(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "logistic_regression_model.json", "1")
	writeArtifact(t, dir, "xgboost_model.json", "not a model")

	reg, err := LoadRegistry(dir, DefaultArtifacts, testDecoders())
	assert.Nil(t, reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xgboost")
	assert.Contains(t, err.Error(), filepath.Join(dir, "xgboost_model.json"))
}

func TestLoadRegistry_MissingDecoderFails(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "lda_model.json", "1")

	decoders := testDecoders()
	delete(decoders, FamilyLDA)

	_, err := LoadRegistry(dir, DefaultArtifacts, decoders)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecoderNotFound))
}

func TestNewRegistry_SkipsNil(t *testing.T) {
	var reg *Registry
	require.NotPanics(t, func() {
		reg = NewRegistry(map[string]Classifier{
			"lda":     constClassifier{family: FamilyLDA},
			"xgboost": nil,
		})
	})

	assert.Equal(t, []string{"lda"}, reg.Keys())
	_, ok := reg.Get("xgboost")
	assert.False(t, ok)

	out := NewDispatcher(reg).Predict("xgboost", validFeatures)
	assert.Equal(t, "Model 'xgboost' not found.", out.Message())
}

func TestRegistry_List(t *testing.T) {
	reg := NewRegistry(map[string]Classifier{
		"b": constClassifier{family: FamilyLDA},
		"a": constClassifier{family: FamilyXGBoost},
	})

	entries := reg.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Key)
	assert.Equal(t, FamilyXGBoost, entries[0].Family)
	assert.Equal(t, "b", entries[1].Key)
}

func TestKeys(t *testing.T) {
	assert.Equal(t,
		[]string{"logistic_regression", "xgboost", "lda", "gradient_boosting"},
		Keys(DefaultArtifacts),
	)
}
