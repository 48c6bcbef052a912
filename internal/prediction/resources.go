package prediction

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ModelSource hands out the model parameters, loading them on first use.
type ModelSource interface {
	Model(ctx context.Context) (*ModelParameters, error)
}

// DatasetSource hands out the historical dataset, loading it on first use.
type DatasetSource interface {
	Dataset(ctx context.Context) (*Dataset, error)
}

// ModelSourceFunc adapts a function to ModelSource.
type ModelSourceFunc func(ctx context.Context) (*ModelParameters, error)

func (f ModelSourceFunc) Model(ctx context.Context) (*ModelParameters, error) { return f(ctx) }

// DatasetSourceFunc adapts a function to DatasetSource.
type DatasetSourceFunc func(ctx context.Context) (*Dataset, error)

func (f DatasetSourceFunc) Dataset(ctx context.Context) (*Dataset, error) { return f(ctx) }

// Fetcher reads a resource from a file path or an http(s) URL.
type Fetcher func(ctx context.Context, location string) ([]byte, error)

// FetchResource is the default Fetcher.
func FetchResource(ctx context.Context, location string) ([]byte, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request for %s: %w", location, err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", location, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch %s: %s", location, resp.Status)
		}
		return io.ReadAll(resp.Body)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return data, nil
}

// resourceLoadTimeout bounds a shared load, which outlives the caller that
// started it.
const resourceLoadTimeout = time.Minute

// lazyValue loads a value once and keeps it for the life of the process.
// Concurrent first callers share a single load; failures are not cached.
// A caller that gives up only stops waiting, the load carries on for the rest.
type lazyValue[T any] struct {
	mu     sync.RWMutex
	value  T
	loaded bool
	group  singleflight.Group
	load   func(ctx context.Context) (T, error)
}

func (l *lazyValue[T]) get(ctx context.Context) (T, error) {
	var zero T

	l.mu.RLock()
	if l.loaded {
		v := l.value
		l.mu.RUnlock()
		return v, nil
	}
	l.mu.RUnlock()

	ch := l.group.DoChan("load", func() (interface{}, error) {
		l.mu.RLock()
		if l.loaded {
			v := l.value
			l.mu.RUnlock()
			return v, nil
		}
		l.mu.RUnlock()

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resourceLoadTimeout)
		defer cancel()

		loaded, err := l.load(loadCtx)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.value = loaded
		l.loaded = true
		l.mu.Unlock()
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Resources is the process-wide cache of the model JSON and dataset CSV.
type Resources struct {
	modelLocation   string
	datasetLocation string
	fetch           Fetcher

	model   lazyValue[*ModelParameters]
	dataset lazyValue[*Dataset]
}

func NewResources(modelLocation, datasetLocation string, fetch Fetcher) *Resources {
	if fetch == nil {
		fetch = FetchResource
	}

	r := &Resources{
		modelLocation:   modelLocation,
		datasetLocation: datasetLocation,
		fetch:           fetch,
	}
	r.model.load = r.loadModel
	r.dataset.load = r.loadDataset
	return r
}

// Model implements ModelSource.
func (r *Resources) Model(ctx context.Context) (*ModelParameters, error) {
	return r.model.get(ctx)
}

// Dataset implements DatasetSource.
func (r *Resources) Dataset(ctx context.Context) (*Dataset, error) {
	return r.dataset.get(ctx)
}

func (r *Resources) loadModel(ctx context.Context) (*ModelParameters, error) {
	if r.modelLocation == "" {
		return nil, fmt.Errorf("%w: no model location configured", ErrModelUnavailable)
	}

	data, err := r.fetch(ctx, r.modelLocation)
	if err != nil {
		log.Printf("❌ Error loading ML model: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	params, err := ParseModelParameters(data)
	if err != nil {
		log.Printf("❌ Error parsing ML model: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	log.Printf("🤖 ML model loaded: %d features, accuracy %s", params.FeatureCount(), params.TrainingInfo.Accuracy)
	return params, nil
}

func (r *Resources) loadDataset(ctx context.Context) (*Dataset, error) {
	if r.datasetLocation == "" {
		return nil, fmt.Errorf("%w: no dataset location configured", ErrDatasetUnavailable)
	}

	data, err := r.fetch(ctx, r.datasetLocation)
	if err != nil {
		log.Printf("❌ Error loading dataset: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}

	ds, err := ParseDataset(data)
	if err != nil {
		log.Printf("❌ Error parsing dataset: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}

	log.Printf("📊 Dataset loaded successfully: %d records", ds.Len())
	return ds, nil
}
