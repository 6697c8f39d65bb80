package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanml/internal/errors"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CLEANML_RESULT_FILE", "result.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "result.json", cfg.ResultFile)
	assert.Equal(t, "./plot", cfg.OutputDir)
	assert.Equal(t, "./datasets.yaml", cfg.DatasetFile)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"json source", Config{ResultFile: "r.json", DatasetFile: "d.yaml", OutputDir: "out"}, true},
		{"postgres source", Config{PostgresDSN: "postgres://x", DatasetFile: "d.yaml", OutputDir: "out"}, true},
		{"no source", Config{DatasetFile: "d.yaml", OutputDir: "out"}, false},
		{"both sources", Config{ResultFile: "r.json", PostgresDSN: "postgres://x", DatasetFile: "d.yaml", OutputDir: "out"}, false},
		{"no dataset file", Config{ResultFile: "r.json", OutputDir: "out"}, false},
		{"no output dir", Config{ResultFile: "r.json", DatasetFile: "d.yaml"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
		})
	}
}
