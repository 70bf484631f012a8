// Package generator runs the build, save and validate steps for one
// entity configuration.
package generator

import (
	"github.com/google/uuid"

	"github.com/kyleking/quick-model/internal/builder"
	"github.com/kyleking/quick-model/internal/logging"
	"github.com/kyleking/quick-model/internal/model"
	"github.com/kyleking/quick-model/internal/project"
	"github.com/kyleking/quick-model/internal/validator"
)

// Result is the outcome of one run. SaveErr is set when the model was
// built and validated but could not be written.
type Result struct {
	RunID       string
	Model       *model.SchemaModel
	Findings    []validator.Finding
	Destination string
	Saved       bool
	SaveErr     error
}

// Generator wires a persister and a validator around the model builder.
// A nil persister skips the save step.
type Generator struct {
	persister project.Persister
	validator validator.Validator
	logger    *logging.Logger
}

// New creates a generator
func New(persister project.Persister, v validator.Validator, logger *logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Discard()
	}

	return &Generator{
		persister: persister,
		validator: v,
		logger:    logger,
	}
}

// Run builds the model for cfg, saves it and validates it. Configuration
// errors abort before anything is built. A save failure is returned
// together with a Result that still carries the validation findings.
func (g *Generator) Run(cfg builder.Config) (*Result, error) {
	runID := uuid.New().String()
	logger := g.logger.WithFields(map[string]any{
		"run_id":  runID,
		"project": cfg.ProjectName,
	})

	schema, err := builder.Build(cfg)
	if err != nil {
		logger.ErrorWithErr("Model configuration rejected", err)
		return nil, err
	}

	for _, m := range schema.Maps {
		for _, t := range m.Tables {
			logger.Infof("Generating entity %s", t.Name)
		}
	}

	result := &Result{
		RunID:       runID,
		Model:       schema,
		Destination: cfg.DestinationDirectory,
	}

	if g.persister != nil {
		result.SaveErr = logger.Track("save", func() error {
			return g.persister.Save(schema, cfg.DestinationDirectory)
		})
		result.Saved = result.SaveErr == nil
	} else {
		logger.Debug("No persister configured, skipping save")
	}

	if g.validator != nil {
		result.Findings = g.validator.Validate(schema)
		for _, f := range result.Findings {
			logger.Error(f.String())
		}
	}

	return result, result.SaveErr
}
