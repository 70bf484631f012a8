package testutil

import (
	"testing"

	"github.com/kyleking/quick-model/internal/builder"
	"github.com/kyleking/quick-model/internal/model"
)

// ConfigOption is a functional option for configuring test build configs
type ConfigOption func(*builder.Config)

// WithEntities replaces the entity list
func WithEntities(entities ...model.Entity) ConfigOption {
	return func(c *builder.Config) {
		c.Entities = entities
	}
}

// WithStringEntity appends an entity whose attributes are all strings
func WithStringEntity(name string, attributes ...string) ConfigOption {
	return func(c *builder.Config) {
		attrs := make([]model.Attribute, 0, len(attributes))
		for _, a := range attributes {
			attrs = append(attrs, model.NewAttribute(a, model.TypeString))
		}

		c.Entities = append(c.Entities, model.NewEntity(name, attrs...))
	}
}

// NewTestConfig returns the Person/Division configuration writing to dest
func NewTestConfig(dest string, opts ...ConfigOption) builder.Config {
	cfg := builder.Config{
		ProjectName:          TestProjectName,
		MapName:              TestMapName,
		Namespace:            TestNamespace,
		DestinationDirectory: dest,
		Entities: []model.Entity{
			model.NewEntity("Person", model.NewAttribute("name", model.TypeString)),
			model.NewEntity("Division", model.NewAttribute("name", model.TypeString)),
		},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// NewTestModel builds NewTestConfig into a model, failing the test on error
func NewTestModel(t *testing.T, opts ...ConfigOption) *model.SchemaModel {
	t.Helper()

	schema, err := builder.Build(NewTestConfig(t.TempDir(), opts...))
	if err != nil {
		t.Fatalf("failed to build test model: %v", err)
	}

	return schema
}
