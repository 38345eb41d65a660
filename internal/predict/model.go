package predict

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Model is a loaded regression artifact. FeatureNames fixes the order of
// the vector Predict expects.
type Model interface {
	FeatureNames() []string
	Predict(features []float64) (float64, error)
}

// The artifact is the JSON dump an XGBoost regressor writes with
// save_model. Only the pieces needed for inference are decoded.
type modelFile struct {
	Learner struct {
		FeatureNames    []string `json:"feature_names"`
		GradientBooster struct {
			Name  string `json:"name"`
			Model struct {
				Trees []tree `json:"trees"`
			} `json:"model"`
		} `json:"gradient_booster"`
		LearnerModelParam struct {
			BaseScore string `json:"base_score"`
		} `json:"learner_model_param"`
		Objective struct {
			Name string `json:"name"`
		} `json:"objective"`
	} `json:"learner"`
}

// tree is one boosted decision tree in structure-of-arrays layout. A node
// with left child -1 is a leaf and stores its value in split_conditions.
type tree struct {
	LeftChildren    []int     `json:"left_children"`
	RightChildren   []int     `json:"right_children"`
	SplitIndices    []int     `json:"split_indices"`
	SplitConditions []float64 `json:"split_conditions"`
	DefaultLeft     []int     `json:"default_left"`
}

func (t tree) score(features []float64) float64 {
	node := 0
	for t.LeftChildren[node] != -1 {
		idx := t.SplitIndices[node]
		if features[idx] < t.SplitConditions[node] {
			node = t.LeftChildren[node]
		} else {
			node = t.RightChildren[node]
		}
	}
	return t.SplitConditions[node]
}

// GBTRegressor is a gradient-boosted tree ensemble regressor.
type GBTRegressor struct {
	featureNames []string
	trees        []tree
	baseScore    float64
}

// LoadModel reads an XGBoost JSON artifact from disk.
func LoadModel(path string) (*GBTRegressor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var file modelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}

	if name := file.Learner.GradientBooster.Name; name != "gbtree" {
		return nil, fmt.Errorf("unsupported booster %q", name)
	}
	if len(file.Learner.FeatureNames) == 0 {
		return nil, fmt.Errorf("model artifact carries no feature names")
	}

	baseScore, err := strconv.ParseFloat(file.Learner.LearnerModelParam.BaseScore, 64)
	if err != nil {
		return nil, fmt.Errorf("parse base_score: %w", err)
	}

	return &GBTRegressor{
		featureNames: file.Learner.FeatureNames,
		trees:        file.Learner.GradientBooster.Model.Trees,
		baseScore:    baseScore,
	}, nil
}

func (m *GBTRegressor) FeatureNames() []string {
	return m.featureNames
}

func (m *GBTRegressor) Predict(features []float64) (float64, error) {
	if len(features) != len(m.featureNames) {
		return 0, fmt.Errorf("expected %d features, got %d", len(m.featureNames), len(features))
	}
	sum := m.baseScore
	for _, t := range m.trees {
		sum += t.score(features)
	}
	return sum, nil
}
