package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyleking/quick-model/internal/config"
	"github.com/kyleking/quick-model/internal/errors"
)

func TestRunConfig(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.Config
		wantErr     bool
		contains    []string
		notContains []string
	}{
		{
			name: "basic configuration display",
			cfg:  config.DefaultConfig(),
			contains: []string{
				"Active Configuration:",
				"Output:",
				"Directory: ./quickmodel",
				"Runtime:",
				"Data Directory: ~/.cache/quick-model",
				"Node: testerbest",
				"Schema Strategy: create_if_no_schema",
				"Max Connections: 4",
				"Level: info",
				"Format: text",
				"Output: stderr",
				"Enabled: false",
				"Verbose: false",
			},
			notContains: []string{"Raw Configuration (JSON):", "File:"},
		},
		{
			name: "configuration with debug enabled",
			cfg: &config.Config{
				Output: config.OutputConfig{Directory: "/tmp/out"},
				Runtime: config.RuntimeConfig{
					NodeName:       "node",
					SchemaStrategy: config.StrategySkip,
					MaxConnections: 1,
				},
				Logging: config.LoggingConfig{
					Level:  "debug",
					Format: "json",
					Output: "file",
					File:   "/tmp/test.log",
				},
				Debug: config.DebugConfig{Enabled: true, Verbose: true},
			},
			contains: []string{
				"Data Directory: (in-memory)",
				"Schema Strategy: skip",
				"Output: file",
				"File: /tmp/test.log",
				"Enabled: true",
				"Raw Configuration (JSON):",
				`"node_name": "node"`,
			},
		},
		{
			name:    "nil configuration error",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			err := runConfig(tt.cfg, &out)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsConfigurationError(err))
				return
			}

			require.NoError(t, err)

			for _, expected := range tt.contains {
				assert.Contains(t, out.String(), expected)
			}

			for _, unexpected := range tt.notContains {
				assert.NotContains(t, out.String(), unexpected)
			}
		})
	}
}
