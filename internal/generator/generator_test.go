package generator

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyleking/quick-model/internal/builder"
	apperrors "github.com/kyleking/quick-model/internal/errors"
	"github.com/kyleking/quick-model/internal/logging"
	"github.com/kyleking/quick-model/internal/model"
	"github.com/kyleking/quick-model/internal/project"
	"github.com/kyleking/quick-model/internal/testutil"
	"github.com/kyleking/quick-model/internal/validator"
)

func testConfig(dest string) builder.Config {
	return testutil.NewTestConfig(dest)
}

// corrupt points Person.name at a column that does not exist
func corrupt(schema *model.SchemaModel) {
	schema.Maps[0].ObjectEntities[0].Attributes[0].MappedColumnPath = "missing"
}

func TestRunSavesAndValidates(t *testing.T) {
	dest := t.TempDir()

	var logs bytes.Buffer
	gen := New(project.NewYAMLPersister(), validator.New(), logging.NewWriterLogger(&logs, logging.InfoLevel, "text"))

	result, err := gen.Run(testConfig(dest))
	require.NoError(t, err)

	assert.True(t, result.Saved)
	assert.Empty(t, result.Findings)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, dest, result.Destination)
	assert.Len(t, result.Model.Maps[0].Tables, 2)
	assert.FileExists(t, filepath.Join(dest, "quickmodel-testProject.yaml"))
	assert.FileExists(t, filepath.Join(dest, "testMap.map.yaml"))

	assert.Contains(t, logs.String(), "Generating entity Person")
	assert.Contains(t, logs.String(), "Generating entity Division")
	assert.Contains(t, logs.String(), "run_id="+result.RunID)
}

func TestRunConfigurationErrorAbortsBeforeSave(t *testing.T) {
	persister := testutil.NewMockPersister(testutil.WithSaveError(errors.New("read-only file system")))
	v := testutil.NewRecordingValidator()

	cfg := testConfig(t.TempDir())
	cfg.Entities = append(cfg.Entities, model.NewEntity("Person"))

	result, err := New(persister, v, nil).Run(cfg)
	require.Error(t, err)

	assert.Nil(t, result)
	assert.True(t, apperrors.IsConfigurationError(err))
	assert.Empty(t, persister.Saved())
	assert.Empty(t, v.Seen())
}

func TestRunPersistenceFailureStillValidates(t *testing.T) {
	persister := testutil.NewMockPersister(testutil.WithSaveError(errors.New("read-only file system")))
	v := testutil.NewRecordingValidator()

	result, err := New(persister, v, nil).Run(testConfig("/unwritable"))
	require.Error(t, err)

	assert.True(t, apperrors.IsPersistenceError(err))
	require.NotNil(t, result)
	assert.False(t, result.Saved)
	assert.Equal(t, err, result.SaveErr)
	assert.Len(t, persister.Saved(), 1)
	require.Len(t, v.Seen(), 1)
	assert.Same(t, result.Model, v.Seen()[0])
}

func TestRunLogsFindingsWithoutFailing(t *testing.T) {
	var logs bytes.Buffer
	gen := New(testutil.NewMockPersister(testutil.WithOnSave(corrupt)), validator.New(), logging.NewWriterLogger(&logs, logging.InfoLevel, "text"))

	result, err := gen.Run(testConfig(t.TempDir()))
	require.NoError(t, err)

	require.Len(t, result.Findings, 1)

	var errorLines []string
	for _, line := range strings.Split(logs.String(), "\n") {
		if strings.Contains(line, " ERROR ") {
			errorLines = append(errorLines, line)
		}
	}

	require.Len(t, errorLines, 1)
	assert.Contains(t, errorLines[0],
		`mapped column "missing" does not exist in table "Person" : object attribute testMap.Person.name`)
}

func TestRunWithoutPersister(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "never-created")

	result, err := New(nil, validator.New(), nil).Run(testConfig(dest))
	require.NoError(t, err)

	assert.False(t, result.Saved)
	assert.NoDirExists(t, dest)
}

func TestRunIsolatedModels(t *testing.T) {
	gen := New(nil, validator.New(), nil)

	first, err := gen.Run(testConfig(t.TempDir()))
	require.NoError(t, err)

	second, err := gen.Run(testConfig(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, first.Model, second.Model)
	assert.NotSame(t, first.Model, second.Model)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRunConcurrentCallsShareNothing(t *testing.T) {
	gen := New(nil, validator.New(), nil)

	var (
		mu  sync.Mutex
		ids = make(map[string]bool)
	)

	testutil.RunConcurrent(t, testutil.TestWorkers, func(workerID int) {
		cfg := testutil.NewTestConfig("/unused", testutil.WithStringEntity("Extra", "label"))

		result, err := gen.Run(cfg)
		if !assert.NoError(t, err, "worker %d", workerID) {
			return
		}

		assert.Len(t, result.Model.Maps[0].Tables, 3)
		assert.Empty(t, result.Findings)

		mu.Lock()
		ids[result.RunID] = true
		mu.Unlock()
	})

	assert.Len(t, ids, testutil.TestWorkers)
}
