package xgboost

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// document mirrors the subset of XGBoost's JSON model format needed for
// prediction.
type document struct {
	Learner learner `json:"learner"`
}

type learner struct {
	FeatureNames    []string        `json:"feature_names"`
	GradientBooster gradientBooster `json:"gradient_booster"`
	ModelParam      modelParam      `json:"learner_model_param"`
	Objective       objective       `json:"objective"`
}

type gradientBooster struct {
	Name  string  `json:"name"`
	Model gbModel `json:"model"`
}

type gbModel struct {
	TreeInfo []int      `json:"tree_info"`
	Trees    []jsonTree `json:"trees"`
}

type modelParam struct {
	BaseScore  string `json:"base_score"`
	NumClass   string `json:"num_class"`
	NumFeature string `json:"num_feature"`
}

type objective struct {
	Name string `json:"name"`
}

type jsonTree struct {
	LeftChildren    []int     `json:"left_children"`
	RightChildren   []int     `json:"right_children"`
	SplitIndices    []int     `json:"split_indices"`
	SplitConditions []float64 `json:"split_conditions"`
	DefaultLeft     flags     `json:"default_left"`
}

// flags decodes default_left, which older XGBoost releases write as
// booleans and newer ones as 0/1 integers.
type flags []bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *flags) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(flags, len(raw))
	for i, v := range raw {
		switch s := string(bytes.TrimSpace(v)); s {
		case "true", "1":
			out[i] = true
		case "false", "0":
			out[i] = false
		default:
			return fmt.Errorf("default_left[%d]: unexpected value %s", i, s)
		}
	}

	*f = out
	return nil
}

// parseParam parses a numeric learner parameter. XGBoost stores these as
// strings, and recent releases wrap base_score in brackets.
func parseParam(name, s string, fallback float64) (float64, error) {
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "[]"))
	if s == "" {
		return fallback, nil
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}
