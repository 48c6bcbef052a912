// Package bootstrap builds the prediction and report stack from configuration.
// The API server and placementctl share it.
package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"alfredoptarigan/placement-predictor/internal/assessment"
	"alfredoptarigan/placement-predictor/internal/config"
	"alfredoptarigan/placement-predictor/internal/prediction"
	"alfredoptarigan/placement-predictor/internal/report"
	"alfredoptarigan/placement-predictor/internal/services"
)

type Prediction struct {
	Resources *prediction.Resources
	Predictor *prediction.Predictor
	// Index is nil unless Qdrant is enabled.
	Index services.QdrantNeighborIndex
}

// NewPrediction wires the model, dataset and fallback estimator. With Qdrant
// enabled the estimator asks the index first and scans the dataset when the
// index fails.
func NewPrediction(ctx context.Context, cfg *config.Config) (*Prediction, error) {
	resources := prediction.NewResources(cfg.Model.Path, cfg.Model.DatasetPath, prediction.FetchResource)
	p := &Prediction{Resources: resources}

	var neighbors prediction.NeighborSource = prediction.NewDatasetNeighbors(resources)
	if cfg.Qdrant.Enabled {
		index, err := services.NewQdrantNeighborIndex(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Qdrant: %w", err)
		}
		if err := index.InitCollection(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize Qdrant collection: %w", err)
		}
		p.Index = index
		neighbors = prediction.ChainNeighbors(index, neighbors)
		log.Println("✅ Qdrant initialized successfully")
	}

	extractor := prediction.NewFeatureExtractor(prediction.WithStrictShape(cfg.Model.StrictShape))
	p.Predictor = prediction.NewPredictor(resources, resources, extractor, prediction.NewStatisticalEstimator(neighbors))
	return p, nil
}

// Warm loads the model and dataset ahead of the first request. Failures are
// only logged; the next caller retries the load.
func (p *Prediction) Warm(ctx context.Context, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := p.Resources.Model(ctx); err != nil {
		log.Printf("⚠️ Model not loaded, predictions will use the statistical fallback: %v", err)
	}
	if _, err := p.Resources.Dataset(ctx); err != nil {
		log.Printf("⚠️ Dataset not loaded: %v", err)
	}
}

// NewReportGenerator adds a Gemini summary writer when an API key is set.
func NewReportGenerator(ctx context.Context, cfg *config.Config, catalog *assessment.Catalog) (*report.Generator, error) {
	if cfg.Gemini.APIKey == "" {
		log.Println("⚠️ GEMINI_API_KEY not set, report summaries use the template")
		return report.NewGenerator(catalog, nil), nil
	}

	gemini, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.RetryInitialDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini AI: %w", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	return report.NewGenerator(catalog, services.NewGeminiSummaryWriter(gemini, cfg.Gemini.RetryMaxAttempts)), nil
}
