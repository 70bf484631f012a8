package project

import (
	"github.com/kyleking/quick-model/internal/model"
)

// descriptorVersion is written into every descriptor so older readers can refuse newer files
const descriptorVersion = 1

type projectDescriptor struct {
	Version int       `yaml:"version"`
	Name    string    `yaml:"name"`
	Maps    []mapFile `yaml:"maps"`
}

type mapFile struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

type mapDescriptor struct {
	Version          int                `yaml:"version"`
	Name             string             `yaml:"name"`
	DefaultNamespace string             `yaml:"default_namespace,omitempty"`
	QuoteIdentifiers bool               `yaml:"quote_identifiers"`
	Tables           []tableDescriptor  `yaml:"tables,omitempty"`
	ObjectEntities   []entityDescriptor `yaml:"object_entities,omitempty"`
}

type tableDescriptor struct {
	Name    string             `yaml:"name"`
	Columns []columnDescriptor `yaml:"columns"`
}

type columnDescriptor struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	MaxLength  int    `yaml:"max_length,omitempty"`
	PrimaryKey bool   `yaml:"primary_key,omitempty"`
	Generated  bool   `yaml:"generated,omitempty"`
	Mandatory  bool   `yaml:"mandatory,omitempty"`
}

type entityDescriptor struct {
	Name       string                `yaml:"name"`
	ClassName  string                `yaml:"class_name"`
	Table      string                `yaml:"table"`
	Attributes []attributeDescriptor `yaml:"attributes,omitempty"`
}

type attributeDescriptor struct {
	Name      string `yaml:"name"`
	Column    string `yaml:"column"`
	ValueType string `yaml:"value_type"`
}

func toMapDescriptor(m *model.SchemaMap) mapDescriptor {
	d := mapDescriptor{
		Version:          descriptorVersion,
		Name:             m.Name,
		DefaultNamespace: m.DefaultNamespace,
		QuoteIdentifiers: m.QuoteIdentifiers,
	}

	for _, t := range m.Tables {
		td := tableDescriptor{Name: t.Name}
		for _, c := range t.Columns {
			td.Columns = append(td.Columns, columnDescriptor{
				Name:       c.Name,
				Type:       string(c.Type),
				MaxLength:  c.MaxLength,
				PrimaryKey: c.PrimaryKey,
				Generated:  c.Generated,
				Mandatory:  c.Mandatory,
			})
		}

		d.Tables = append(d.Tables, td)
	}

	for _, e := range m.ObjectEntities {
		ed := entityDescriptor{Name: e.Name, ClassName: e.ClassName, Table: e.TableName}
		for _, a := range e.Attributes {
			ed.Attributes = append(ed.Attributes, attributeDescriptor{
				Name:      a.Name,
				Column:    a.MappedColumnPath,
				ValueType: a.ValueType,
			})
		}

		d.ObjectEntities = append(d.ObjectEntities, ed)
	}

	return d
}

// toSchemaMap does not enforce name uniqueness; duplicates are left for the validator
func (d mapDescriptor) toSchemaMap() *model.SchemaMap {
	m := &model.SchemaMap{
		Name:             d.Name,
		DefaultNamespace: d.DefaultNamespace,
		QuoteIdentifiers: d.QuoteIdentifiers,
	}

	for _, td := range d.Tables {
		t := &model.PhysicalTable{Name: td.Name}
		for _, cd := range td.Columns {
			t.Columns = append(t.Columns, &model.PhysicalColumn{
				Name:       cd.Name,
				Type:       model.SQLType(cd.Type),
				MaxLength:  cd.MaxLength,
				PrimaryKey: cd.PrimaryKey,
				Generated:  cd.Generated,
				Mandatory:  cd.Mandatory,
			})
		}

		m.Tables = append(m.Tables, t)
	}

	for _, ed := range d.ObjectEntities {
		e := &model.ObjectEntity{Name: ed.Name, ClassName: ed.ClassName, TableName: ed.Table}
		for _, ad := range ed.Attributes {
			e.Attributes = append(e.Attributes, &model.ObjectAttribute{
				Name:             ad.Name,
				MappedColumnPath: ad.Column,
				ValueType:        ad.ValueType,
			})
		}

		m.ObjectEntities = append(m.ObjectEntities, e)
	}

	return m
}
