package prediction

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

var (
	ErrModelUnavailable = errors.New("placement model unavailable")
	ErrInvalidModel     = errors.New("invalid placement model")
)

// ModelParameters is the pre-trained logistic regression exported by the
// training script. It is read-only once decoded.
type ModelParameters struct {
	ModelType        string         `json:"model_type"`
	Coefficients     []float64      `json:"coefficients"`
	Intercept        float64        `json:"intercept"`
	FeatureNames     []string       `json:"feature_names"`
	ScalerMean       []float64      `json:"scaler_mean"`
	ScalerScale      []float64      `json:"scaler_scale"`
	DegreeClasses    []string       `json:"degree_classes"`
	SkillsVocabulary map[string]int `json:"skills_vocabulary"`
	SkillsIDF        []float64      `json:"skills_idf"`
	TrainingInfo     TrainingInfo   `json:"training_info"`
}

type TrainingInfo struct {
	NFeatures int    `json:"n_features"`
	Accuracy  string `json:"accuracy"`
	TrainedOn string `json:"trained_on"`
}

// FeatureCount is the vector length the model expects.
func (m *ModelParameters) FeatureCount() int {
	return len(m.FeatureNames)
}

// BranchIndex looks the branch up in the model's degree classes. Unknown
// branches resolve to index 0 with ok set to false.
func (m *ModelParameters) BranchIndex(branch string) (int, bool) {
	for i, class := range m.DegreeClasses {
		if class == branch {
			return i, true
		}
	}
	return 0, false
}

// VocabularySize is one past the largest index in the skills vocabulary.
func (m *ModelParameters) VocabularySize() int {
	size := 0
	for _, idx := range m.SkillsVocabulary {
		if idx+1 > size {
			size = idx + 1
		}
	}
	return size
}

const modelSchema = `{
  "type": "object",
  "required": ["coefficients", "intercept", "feature_names", "scaler_mean", "scaler_scale", "degree_classes", "skills_vocabulary", "skills_idf"],
  "properties": {
    "model_type": {"type": "string"},
    "coefficients": {"type": "array", "items": {"type": "number"}, "minItems": 1},
    "intercept": {"type": "number"},
    "feature_names": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "scaler_mean": {"type": "array", "items": {"type": "number"}},
    "scaler_scale": {"type": "array", "items": {"type": "number"}},
    "degree_classes": {"type": "array", "items": {"type": "string"}},
    "skills_vocabulary": {"type": "object", "additionalProperties": {"type": "integer", "minimum": 0}},
    "skills_idf": {"type": "array", "items": {"type": "number"}},
    "training_info": {
      "type": "object",
      "properties": {
        "n_features": {"type": "integer"},
        "accuracy": {"type": "string"},
        "trained_on": {"type": "string"}
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

func loadModelSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(modelSchema))
	})
	return compiledSchema, schemaErr
}

// ParseModelParameters validates the model document against its schema and
// decodes it.
func ParseModelParameters(data []byte) (*ModelParameters, error) {
	schema, err := loadModelSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile model schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidModel, strings.Join(msgs, "; "))
	}

	var params ModelParameters
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}

	if len(params.ScalerMean) != len(params.ScalerScale) {
		return nil, fmt.Errorf("%w: scaler_mean has %d entries, scaler_scale has %d",
			ErrInvalidModel, len(params.ScalerMean), len(params.ScalerScale))
	}

	return &params, nil
}
