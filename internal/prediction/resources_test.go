package prediction

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchResource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(testModelJSON), 0o644))

	data, err := FetchResource(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, testModelJSON, string(data))

	_, err = FetchResource(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestFetchResource_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dataset.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	data, err := FetchResource(context.Background(), srv.URL+"/dataset.csv")
	require.NoError(t, err)
	assert.Equal(t, sampleCSV, string(data))

	_, err = FetchResource(context.Background(), srv.URL+"/nope.csv")
	assert.Error(t, err)
}

func TestResources_LoadsOnceUnderConcurrency(t *testing.T) {
	var calls atomic.Int32
	fetch := func(_ context.Context, location string) ([]byte, error) {
		calls.Add(1)
		if location == "model" {
			return []byte(testModelJSON), nil
		}
		return []byte(sampleCSV), nil
	}
	res := NewResources("model", "dataset", fetch)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := res.Model(context.Background())
			assert.NoError(t, err)
			assert.NotNil(t, m)
			ds, err := res.Dataset(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 6, ds.Len())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(2), calls.Load())
}

func TestResources_FailureIsNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	fetch := func(context.Context, string) ([]byte, error) {
		if fail.Load() {
			return nil, errors.New("connection refused")
		}
		return []byte(testModelJSON), nil
	}
	res := NewResources("model", "", fetch)

	_, err := res.Model(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModelUnavailable)

	fail.Store(false)
	m, err := res.Model(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 18, m.FeatureCount())

	_, err = res.Dataset(context.Background())
	assert.ErrorIs(t, err, ErrDatasetUnavailable)
}

func TestResources_InvalidModel(t *testing.T) {
	res := NewResources("model", "dataset", func(context.Context, string) ([]byte, error) {
		return []byte(`{"intercept": 1}`), nil
	})

	_, err := res.Model(context.Background())
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestResources_CanceledCallerDoesNotFailOthers(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	fetch := func(ctx context.Context, _ string) ([]byte, error) {
		calls.Add(1)
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []byte(testModelJSON), nil
	}
	res := NewResources("model", "", fetch)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := res.Model(ctx)
		first <- err
	}()
	<-started

	second := make(chan error, 1)
	go func() {
		_, err := res.Model(context.Background())
		second <- err
	}()

	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	close(release)
	require.NoError(t, <-second)

	m, err := res.Model(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 18, m.FeatureCount())
	assert.Equal(t, int32(1), calls.Load())
}
