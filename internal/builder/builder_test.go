package builder

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyleking/quick-model/internal/errors"
	"github.com/kyleking/quick-model/internal/model"
)

func personDivisionConfig() Config {
	return Config{
		ProjectName:          "testProject",
		MapName:              "testMap",
		Namespace:            "quick.model",
		DestinationDirectory: "/tmp/quickmodel",
		Entities: []model.Entity{
			model.NewEntity("Person", model.NewAttribute("name", model.TypeString)),
			model.NewEntity("Division", model.NewAttribute("name", model.TypeString)),
		},
	}
}

func TestBuildPersonDivision(t *testing.T) {
	schema, err := Build(personDivisionConfig())
	require.NoError(t, err)

	assert.Equal(t, "testProject", schema.ProjectName)
	require.Len(t, schema.Maps, 1)

	m := schema.Maps[0]
	assert.Equal(t, "testMap", m.Name)
	assert.Equal(t, "quick.model", m.DefaultNamespace)
	assert.True(t, m.QuoteIdentifiers)

	expectedColumns := []*model.PhysicalColumn{
		{Name: "id", Type: model.SQLInteger, PrimaryKey: true, Generated: true, Mandatory: true},
		{Name: "name", Type: model.SQLVarchar, MaxLength: 100, Mandatory: false},
	}

	for i, name := range []string{"Person", "Division"} {
		table := m.Tables[i]
		assert.Equal(t, name, table.Name)
		assert.Equal(t, expectedColumns, table.Columns)

		entity := m.ObjectEntities[i]
		assert.Equal(t, name, entity.Name)
		assert.Equal(t, "quick.model."+name, entity.ClassName)

		bound, ok := m.BoundTable(entity)
		require.True(t, ok)
		assert.Same(t, table, bound)

		assert.Equal(t, []*model.ObjectAttribute{
			{Name: "name", MappedColumnPath: "name", ValueType: "string"},
		}, entity.Attributes)
	}
}

func TestBuildCounts(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		t.Run(fmt.Sprintf("%d entities", n), func(t *testing.T) {
			cfg := personDivisionConfig()
			cfg.Entities = nil

			for i := range n {
				attrs := make([]model.Attribute, i)
				for j := range attrs {
					attrs[j] = model.NewAttribute(fmt.Sprintf("attr%d", j), model.TypeString)
				}

				cfg.Entities = append(cfg.Entities, model.NewEntity(fmt.Sprintf("Entity%d", i), attrs...))
			}

			schema, err := Build(cfg)
			require.NoError(t, err)

			m := schema.Maps[0]
			assert.Len(t, m.Tables, n)
			assert.Len(t, m.ObjectEntities, n)

			for i, table := range m.Tables {
				require.Len(t, table.Columns, 1+i)
				assert.Equal(t, PrimaryKeyName, table.Columns[0].Name)
				assert.True(t, table.Columns[0].PrimaryKey)
				assert.Len(t, table.PrimaryKeys(), 1)
				assert.Equal(t, table.Name, m.ObjectEntities[i].TableName)
				assert.Nil(t, m.ObjectEntities[i].Attribute(PrimaryKeyName))
			}
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	first, err := Build(personDivisionConfig())
	require.NoError(t, err)

	second, err := Build(personDivisionConfig())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}

func TestBuildPreservesDeclaredValueType(t *testing.T) {
	cfg := personDivisionConfig()
	cfg.Entities = []model.Entity{
		model.NewEntity("Event",
			model.NewAttribute("title", model.TypeString),
			model.NewAttribute("startsAt", model.TypeTimestamp),
			model.NewAttribute("attendees", model.TypeInteger),
		),
	}

	schema, err := Build(cfg)
	require.NoError(t, err)

	table := schema.Maps[0].Table("Event")
	entity := schema.Maps[0].ObjectEntity("Event")

	for _, name := range []string{"title", "startsAt", "attendees"} {
		column := table.Column(name)
		require.NotNil(t, column)
		assert.Equal(t, model.SQLVarchar, column.Type)
		assert.Equal(t, 100, column.MaxLength)
		assert.False(t, column.Mandatory)
	}

	assert.Equal(t, "time.Time", entity.Attribute("startsAt").ValueType)
	assert.Equal(t, "int32", entity.Attribute("attendees").ValueType)
}

func TestBuildEmptyNamespace(t *testing.T) {
	cfg := personDivisionConfig()
	cfg.Namespace = ""

	schema, err := Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, "Person", schema.Maps[0].ObjectEntity("Person").ClassName)
}

func TestBuildConfigurationErrors(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*Config)
		contains string
	}{
		{
			name: "duplicate entity",
			modify: func(c *Config) {
				c.Entities = append(c.Entities, model.NewEntity("Person"))
			},
			contains: `duplicate entity name "Person"`,
		},
		{
			name: "duplicate attribute",
			modify: func(c *Config) {
				c.Entities = []model.Entity{model.NewEntity("Person",
					model.NewAttribute("name", model.TypeString),
					model.NewAttribute("name", model.TypeString))}
			},
			contains: `duplicate attribute name "name" in entity "Person"`,
		},
		{
			name: "reserved attribute",
			modify: func(c *Config) {
				c.Entities = []model.Entity{model.NewEntity("Person", model.NewAttribute("id", model.TypeString))}
			},
			contains: "clashes with the generated primary key",
		},
		{
			name: "blank attribute",
			modify: func(c *Config) {
				c.Entities = []model.Entity{model.NewEntity("Person", model.NewAttribute(" ", model.TypeString))}
			},
			contains: `attribute #1 of entity "Person" has no name`,
		},
		{
			name: "blank entity",
			modify: func(c *Config) {
				c.Entities = append(c.Entities, model.NewEntity(""))
			},
			contains: "entity #3 has no name",
		},
		{
			name:     "blank project",
			modify:   func(c *Config) { c.ProjectName = "" },
			contains: "projectName must not be empty",
		},
		{
			name:     "blank map",
			modify:   func(c *Config) { c.MapName = "  " },
			contains: "mapName must not be empty",
		},
		{
			name:     "blank destination",
			modify:   func(c *Config) { c.DestinationDirectory = "" },
			contains: "destinationDirectory must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := personDivisionConfig()
			tt.modify(&cfg)

			schema, err := Build(cfg)
			require.Error(t, err)
			assert.Nil(t, schema)
			assert.True(t, errors.IsConfigurationError(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestColumnForIsTotal(t *testing.T) {
	types := []model.SemanticType{
		model.TypeString, model.TypeInteger, model.TypeLong, model.TypeBoolean,
		model.TypeDecimal, model.TypeDate, model.TypeTimestamp, model.TypeBytes,
		model.SemanticType("UNKNOWN"), model.SemanticType(""),
	}

	for _, st := range types {
		t.Run(string(st), func(t *testing.T) {
			assert.Equal(t, ColumnSpec{Type: model.SQLVarchar, MaxLength: 100, Mandatory: false}, ColumnFor(st))
		})
	}
}
