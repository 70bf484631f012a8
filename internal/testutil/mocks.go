package testutil

import (
	"sync"

	"github.com/kyleking/quick-model/internal/errors"
	"github.com/kyleking/quick-model/internal/model"
	"github.com/kyleking/quick-model/internal/validator"
)

// MockPersister records Save calls and fails with an injected cause
type MockPersister struct {
	mu    sync.Mutex
	saved []*model.SchemaModel
	err   error

	// OnSave runs before the call is recorded, e.g. to alter the model
	OnSave func(schema *model.SchemaModel)
}

// MockOption is a functional option for configuring mock persisters
type MockOption func(*MockPersister)

// WithSaveError makes every Save fail with a persistence error wrapping cause
func WithSaveError(cause error) MockOption {
	return func(m *MockPersister) {
		m.err = cause
	}
}

// WithOnSave runs fn on every saved model
func WithOnSave(fn func(schema *model.SchemaModel)) MockOption {
	return func(m *MockPersister) {
		m.OnSave = fn
	}
}

// NewMockPersister creates a mock persister
func NewMockPersister(opts ...MockOption) *MockPersister {
	m := &MockPersister{}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Save implements project.Persister
func (m *MockPersister) Save(schema *model.SchemaModel, destination string) error {
	if m.OnSave != nil {
		m.OnSave(schema)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.saved = append(m.saved, schema)

	if m.err != nil {
		return errors.NewPersistenceError(destination, m.err)
	}

	return nil
}

// Saved returns the models passed to Save so far
func (m *MockPersister) Saved() []*model.SchemaModel {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*model.SchemaModel(nil), m.saved...)
}

// RecordingValidator remembers every model it is asked to validate
type RecordingValidator struct {
	mu       sync.Mutex
	seen     []*model.SchemaModel
	findings []validator.Finding
}

// NewRecordingValidator creates a validator that reports findings for every model
func NewRecordingValidator(findings ...validator.Finding) *RecordingValidator {
	return &RecordingValidator{findings: findings}
}

// Validate implements validator.Validator
func (v *RecordingValidator) Validate(schema *model.SchemaModel) []validator.Finding {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seen = append(v.seen, schema)

	return append([]validator.Finding(nil), v.findings...)
}

// Seen returns the validated models
func (v *RecordingValidator) Seen() []*model.SchemaModel {
	v.mu.Lock()
	defer v.mu.Unlock()

	return append([]*model.SchemaModel(nil), v.seen...)
}
