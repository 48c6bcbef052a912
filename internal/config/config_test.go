package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "QDRANT_ENABLED", "MODEL_PATH", "MODEL_STRICT_SHAPE", "MODEL_LOAD_TIMEOUT", "GEMINI_MODEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.False(t, cfg.Qdrant.Enabled)
	assert.Equal(t, "./data/placement_model.json", cfg.Model.Path)
	assert.False(t, cfg.Model.StrictShape)
	assert.Equal(t, 15*time.Second, cfg.Model.LoadTimeout)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("QDRANT_ENABLED", "true")
	t.Setenv("MODEL_STRICT_SHAPE", "1")
	t.Setenv("MODEL_LOAD_TIMEOUT", "2m")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("RETRY_MAX_ATTEMPTS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Qdrant.Enabled)
	assert.True(t, cfg.Model.StrictShape)
	assert.Equal(t, 2*time.Minute, cfg.Model.LoadTimeout)
	assert.Equal(t, int64(1024), cfg.Storage.MaxFileSize)
	assert.Equal(t, 3, cfg.Gemini.RetryMaxAttempts)
}

func TestGetEnvAsDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_TIMEOUT", "soon")
	assert.Equal(t, 5*time.Second, getEnvAsDuration("SOME_TIMEOUT", "5s"))
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "placements"}}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=placements sslmode=disable", cfg.GetDatabaseDSN())
}
