package model

import (
	"github.com/kyleking/quick-model/internal/errors"
)

// PhysicalColumn is a column of a physical table. MaxLength is zero
// when the column has no length limit.
type PhysicalColumn struct {
	Name       string
	Type       SQLType
	MaxLength  int
	PrimaryKey bool
	Generated  bool
	Mandatory  bool
}

// PhysicalTable is the storage-layer table. Columns keep insertion order.
type PhysicalTable struct {
	Name    string
	Columns []*PhysicalColumn
}

// ObjectAttribute exposes one column of the bound table to application code
type ObjectAttribute struct {
	Name             string
	MappedColumnPath string
	ValueType        string
}

// ObjectEntity is the logical entity bound to a physical table by name
type ObjectEntity struct {
	Name       string
	ClassName  string
	TableName  string
	Attributes []*ObjectAttribute
}

// SchemaMap groups physical tables and the object entities bound to them
type SchemaMap struct {
	Name             string
	DefaultNamespace string
	QuoteIdentifiers bool
	Tables           []*PhysicalTable
	ObjectEntities   []*ObjectEntity
}

// SchemaModel is the root of a generated project
type SchemaModel struct {
	ProjectName string
	Maps        []*SchemaMap
}

func duplicate(kind, name, scope string) error {
	return errors.Newf(errors.ErrTypeConfig, "duplicate %s name %q in %s", kind, name, scope)
}

// NewSchemaModel creates an empty model
func NewSchemaModel(projectName string) *SchemaModel {
	return &SchemaModel{ProjectName: projectName}
}

// AddMap appends m unless a map with the same name exists
func (s *SchemaModel) AddMap(m *SchemaMap) error {
	if s.Map(m.Name) != nil {
		return duplicate("map", m.Name, "project "+s.ProjectName)
	}

	s.Maps = append(s.Maps, m)

	return nil
}

// Map returns the map with the given name, or nil
func (s *SchemaModel) Map(name string) *SchemaMap {
	for _, m := range s.Maps {
		if m.Name == name {
			return m
		}
	}

	return nil
}

// NewSchemaMap creates an empty map. Identifier quoting is on by default.
func NewSchemaMap(name, namespace string) *SchemaMap {
	return &SchemaMap{Name: name, DefaultNamespace: namespace, QuoteIdentifiers: true}
}

// AddTable appends t unless a table with the same name exists
func (m *SchemaMap) AddTable(t *PhysicalTable) error {
	if m.Table(t.Name) != nil {
		return duplicate("table", t.Name, "map "+m.Name)
	}

	m.Tables = append(m.Tables, t)

	return nil
}

// Table returns the table with the given name, or nil
func (m *SchemaMap) Table(name string) *PhysicalTable {
	for _, t := range m.Tables {
		if t.Name == name {
			return t
		}
	}

	return nil
}

// AddObjectEntity appends e unless an entity with the same name exists
func (m *SchemaMap) AddObjectEntity(e *ObjectEntity) error {
	if m.ObjectEntity(e.Name) != nil {
		return duplicate("object entity", e.Name, "map "+m.Name)
	}

	m.ObjectEntities = append(m.ObjectEntities, e)

	return nil
}

// ObjectEntity returns the entity with the given name, or nil
func (m *SchemaMap) ObjectEntity(name string) *ObjectEntity {
	for _, e := range m.ObjectEntities {
		if e.Name == name {
			return e
		}
	}

	return nil
}

// BoundTable resolves the table e is bound to within m
func (m *SchemaMap) BoundTable(e *ObjectEntity) (*PhysicalTable, bool) {
	if e.TableName == "" {
		return nil, false
	}

	t := m.Table(e.TableName)

	return t, t != nil
}

// NewPhysicalTable creates a table without columns
func NewPhysicalTable(name string) *PhysicalTable {
	return &PhysicalTable{Name: name}
}

// AddColumn appends c unless a column with the same name exists
func (t *PhysicalTable) AddColumn(c *PhysicalColumn) error {
	if t.Column(c.Name) != nil {
		return duplicate("column", c.Name, "table "+t.Name)
	}

	t.Columns = append(t.Columns, c)

	return nil
}

// Column returns the column with the given name, or nil
func (t *PhysicalTable) Column(name string) *PhysicalColumn {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// PrimaryKeys returns the primary-key columns in column order
func (t *PhysicalTable) PrimaryKeys() []*PhysicalColumn {
	var pks []*PhysicalColumn

	for _, c := range t.Columns {
		if c.PrimaryKey {
			pks = append(pks, c)
		}
	}

	return pks
}

// AddAttribute appends a unless an attribute with the same name exists
func (e *ObjectEntity) AddAttribute(a *ObjectAttribute) error {
	if e.Attribute(a.Name) != nil {
		return duplicate("attribute", a.Name, "object entity "+e.Name)
	}

	e.Attributes = append(e.Attributes, a)

	return nil
}

// Attribute returns the attribute with the given name, or nil
func (e *ObjectEntity) Attribute(name string) *ObjectAttribute {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a
		}
	}

	return nil
}

// Clone returns a deep copy of the model
func (s *SchemaModel) Clone() *SchemaModel {
	out := &SchemaModel{ProjectName: s.ProjectName}

	for _, m := range s.Maps {
		cm := &SchemaMap{
			Name:             m.Name,
			DefaultNamespace: m.DefaultNamespace,
			QuoteIdentifiers: m.QuoteIdentifiers,
		}

		for _, t := range m.Tables {
			ct := &PhysicalTable{Name: t.Name}
			for _, c := range t.Columns {
				col := *c
				ct.Columns = append(ct.Columns, &col)
			}

			cm.Tables = append(cm.Tables, ct)
		}

		for _, e := range m.ObjectEntities {
			ce := &ObjectEntity{Name: e.Name, ClassName: e.ClassName, TableName: e.TableName}
			for _, a := range e.Attributes {
				attr := *a
				ce.Attributes = append(ce.Attributes, &attr)
			}

			cm.ObjectEntities = append(cm.ObjectEntities, ce)
		}

		out.Maps = append(out.Maps, cm)
	}

	return out
}
