package prediction

import (
	"context"
	"fmt"
	"log"
	"math"
)

type Label string

const (
	LabelPlaced    Label = "Placed"
	LabelNotPlaced Label = "NotPlaced"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// Source records which path produced a prediction.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
	SourceDefault  Source = "default"
)

const (
	decisionThreshold = 0.5
	// Model outputs at or beyond these bounds are not trusted.
	minReasonableProb = 0.05
	maxReasonableProb = 0.95
)

type PredictionResult struct {
	Label              Label       `json:"label"`
	ProbabilityPercent int         `json:"probability_percent"`
	Probability        float64     `json:"probability"`
	Confidence         Confidence  `json:"confidence"`
	ExpectedSalary     SalaryRange `json:"expected_salary"`
	Source             Source      `json:"source"`
	Degraded           bool        `json:"degraded"`
	Benchmarks         *Benchmarks `json:"benchmarks,omitempty"`
}

// Predictor scores profiles with the linear model and falls back to the
// statistical estimator when the model is missing or its output is extreme.
type Predictor struct {
	models    ModelSource
	datasets  DatasetSource
	extractor *FeatureExtractor
	estimator *StatisticalEstimator
}

func NewPredictor(models ModelSource, datasets DatasetSource, extractor *FeatureExtractor, estimator *StatisticalEstimator) *Predictor {
	if extractor == nil {
		extractor = NewFeatureExtractor()
	}
	if estimator == nil {
		estimator = NewStatisticalEstimator(NewDatasetNeighbors(datasets))
	}
	return &Predictor{
		models:    models,
		datasets:  datasets,
		extractor: extractor,
		estimator: estimator,
	}
}

// Predict never fails. When neither the model nor the dataset can produce an
// answer the neutral default is returned with Degraded set.
func (p *Predictor) Predict(ctx context.Context, profile StudentProfile) (result PredictionResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Prediction panicked, returning neutral default: %v", r)
			result = neutralResult()
		}
	}()

	prob, err := p.modelProbability(ctx, profile)
	switch {
	case err != nil:
		log.Printf("⚠️ Model prediction unavailable, using statistical fallback: %v", err)
	case math.IsNaN(prob) || prob <= minReasonableProb || prob >= maxReasonableProb:
		log.Printf("⚠️ Model probability %.3f outside reasonable range, using statistical fallback", prob)
	default:
		result = resultFor(prob, SourceModel)
		if est, err := p.estimator.Estimate(ctx, profile); err == nil {
			result.ExpectedSalary = est.Salary
		} else {
			result.ExpectedSalary = expectedSalary(profile, nil)
		}
		p.attachBenchmarks(ctx, profile, &result)
		return result
	}

	est, err := p.estimator.Estimate(ctx, profile)
	if err != nil {
		log.Printf("❌ Statistical fallback unavailable: %v", err)
		return neutralResult()
	}

	log.Printf("📊 Statistical estimate: %d neighbours, %d placed, probability %.3f",
		est.Neighbors, est.PlacedNeighbors, est.Probability)

	result = resultFor(est.Probability, SourceFallback)
	result.ExpectedSalary = est.Salary
	p.attachBenchmarks(ctx, profile, &result)
	return result
}

func (p *Predictor) modelProbability(ctx context.Context, profile StudentProfile) (float64, error) {
	if p.models == nil {
		return 0, ErrModelUnavailable
	}
	m, err := p.models.Model(ctx)
	if err != nil {
		return 0, err
	}

	features, err := p.extractor.Extract(profile, m)
	if err != nil {
		return 0, fmt.Errorf("failed to extract features: %w", err)
	}

	return Score(features, m), nil
}

func (p *Predictor) attachBenchmarks(ctx context.Context, profile StudentProfile, result *PredictionResult) {
	if p.datasets == nil {
		return
	}
	ds, err := p.datasets.Dataset(ctx)
	if err != nil {
		return
	}
	b := ds.Benchmarks(profile)
	result.Benchmarks = &b
}

// ModelInfo reports the training metadata of the loaded model.
func (p *Predictor) ModelInfo(ctx context.Context) (*TrainingInfo, error) {
	if p.models == nil {
		return nil, ErrModelUnavailable
	}
	m, err := p.models.Model(ctx)
	if err != nil {
		return nil, err
	}
	info := m.TrainingInfo
	return &info, nil
}

// Score applies the scaler and the logistic function to a feature vector.
func Score(features FeatureVector, m *ModelParameters) float64 {
	z := m.Intercept
	for i, x := range Scale(features, m) {
		if i >= len(m.Coefficients) {
			break
		}
		z += x * m.Coefficients[i]
	}
	return sigmoid(z)
}

// Scale standardises each feature. Features beyond the scaler statistics and
// features with a zero scale pass through unchanged.
func Scale(features FeatureVector, m *ModelParameters) FeatureVector {
	out := make(FeatureVector, len(features))
	for i, x := range features {
		if i < len(m.ScalerMean) && i < len(m.ScalerScale) && m.ScalerScale[i] != 0 {
			out[i] = (x - m.ScalerMean[i]) / m.ScalerScale[i]
			continue
		}
		out[i] = x
	}
	return out
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// ConfidenceFor bands a probability by its distance from the decision
// threshold.
func ConfidenceFor(prob float64) Confidence {
	if prob >= 0.85 || prob <= 0.15 {
		return ConfidenceHigh
	}
	// rounded so that 0.7 lands on the 0.20 band edge
	d := math.Round(math.Abs(prob-decisionThreshold)*1e9) / 1e9
	switch {
	case d >= 0.35:
		return ConfidenceHigh
	case d >= 0.20:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func resultFor(prob float64, source Source) PredictionResult {
	prob = clamp(prob, 0, 1)
	label := LabelNotPlaced
	percent := int(math.Round(prob * 100))
	if prob >= decisionThreshold {
		label = LabelPlaced
	} else if percent >= 50 {
		// 0.495 <= prob < 0.5 would otherwise read as 50% NotPlaced.
		percent = 49
	}
	return PredictionResult{
		Label:              label,
		ProbabilityPercent: percent,
		Probability:        prob,
		Confidence:         ConfidenceFor(prob),
		Source:             source,
		Degraded:           source != SourceModel,
	}
}

func neutralResult() PredictionResult {
	return PredictionResult{
		Label:              LabelNotPlaced,
		ProbabilityPercent: 50,
		Probability:        decisionThreshold,
		Confidence:         ConfidenceLow,
		ExpectedSalary:     salaryRangeAround(baseSalary),
		Source:             SourceDefault,
		Degraded:           true,
	}
}
