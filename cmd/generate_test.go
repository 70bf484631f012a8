package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyleking/quick-model/internal/config"
	"github.com/kyleking/quick-model/internal/errors"
	"github.com/kyleking/quick-model/internal/formatter"
	"github.com/kyleking/quick-model/internal/logging"
)

const personDivisionYAML = `project: testProject
map: testMap
namespace: quick.model
entities:
  - name: Person
    attributes:
      - {name: name, type: string}
  - name: Division
    attributes:
      - name: name
`

func writeDefinition(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	return path
}

func TestRunGenerate(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Directory = filepath.Join(t.TempDir(), "out")

	var out, logs bytes.Buffer
	logger := logging.NewWriterLogger(&logs, logging.InfoLevel, "text")

	err := runGenerate(context.Background(), cfg, generateOptions{
		Definition: writeDefinition(t, personDivisionYAML),
		Format:     formatter.FormatShort,
	}, logger, &out)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(cfg.Output.Directory, "quickmodel-testProject.yaml"))
	assert.FileExists(t, filepath.Join(cfg.Output.Directory, "testMap.map.yaml"))

	assert.Contains(t, out.String(), "testProject: 1 map, 2 tables, 2 object entities")
	assert.Contains(t, out.String(), "No findings")
	assert.Contains(t, out.String(), "Saved to "+cfg.Output.Directory)
	assert.Contains(t, logs.String(), "Generating entity Person")
}

func TestRunGenerateDestFlagWins(t *testing.T) {
	dest := t.TempDir()
	definition := writeDefinition(t, personDivisionYAML+"destination: "+filepath.Join(t.TempDir(), "ignored")+"\n")

	var out bytes.Buffer
	err := runGenerate(context.Background(), config.DefaultConfig(), generateOptions{
		Definition: definition,
		Dest:       dest,
	}, logging.Discard(), &out)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dest, "quickmodel-testProject.yaml"))
}

func TestRunGenerateDryRun(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "never")

	var out bytes.Buffer
	err := runGenerate(context.Background(), config.DefaultConfig(), generateOptions{
		Definition: writeDefinition(t, personDivisionYAML),
		Dest:       dest,
		DryRun:     true,
		Format:     formatter.FormatLong,
	}, logging.Discard(), &out)
	require.NoError(t, err)

	assert.NoDirExists(t, dest)
	assert.Contains(t, out.String(), "Entity Person: quick.model.Person -> Person, 1 attribute")
	assert.Contains(t, out.String(), "Dry run, nothing written")
}

func TestRunGenerateErrors(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	tests := []struct {
		name       string
		definition string
		dest       string
		check      func(error) bool
	}{
		{
			name:       "unknown type",
			definition: "project: p\nmap: m\nentities:\n  - name: Person\n    attributes:\n      - {name: age, type: color}\n",
			check:      errors.IsConfigurationError,
		},
		{
			name:       "reserved attribute",
			definition: "project: p\nmap: m\nentities:\n  - name: Person\n    attributes:\n      - {name: id}\n",
			check:      errors.IsConfigurationError,
		},
		{
			name:       "unwritable destination",
			definition: personDivisionYAML,
			dest:       blocker,
			check:      errors.IsPersistenceError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			err := runGenerate(context.Background(), config.DefaultConfig(), generateOptions{
				Definition: writeDefinition(t, tt.definition),
				Dest:       tt.dest,
			}, logging.Discard(), &out)
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
		})
	}
}

func TestRunGenerateMissingDefinition(t *testing.T) {
	var out bytes.Buffer

	err := runGenerate(context.Background(), config.DefaultConfig(), generateOptions{
		Definition: filepath.Join(t.TempDir(), "missing.yaml"),
	}, logging.Discard(), &out)
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
	assert.Empty(t, out.String())
}
