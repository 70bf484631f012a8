package validator

import (
	"strings"

	"github.com/kyleking/quick-model/internal/model"
)

func path(parts ...string) string {
	return strings.Join(parts, ".")
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func checkMapName(r *report, m *model.SchemaMap) {
	if blank(m.Name) {
		r.add(SourceMap, m.Name, "map has no name")
	}
}

func checkDuplicateTables(r *report, m *model.SchemaMap) {
	seen := make(map[string]bool, len(m.Tables))

	for _, t := range m.Tables {
		if seen[t.Name] {
			r.add(SourceTable, path(m.Name, t.Name), "duplicate table name %q", t.Name)
		}

		seen[t.Name] = true
	}
}

func checkDuplicateEntities(r *report, m *model.SchemaMap) {
	seen := make(map[string]bool, len(m.ObjectEntities))

	for _, e := range m.ObjectEntities {
		if seen[e.Name] {
			r.add(SourceObjectEntity, path(m.Name, e.Name), "duplicate object entity name %q", e.Name)
		}

		seen[e.Name] = true
	}
}

func checkTableName(r *report, m *model.SchemaMap, t *model.PhysicalTable) {
	if blank(t.Name) {
		r.add(SourceTable, path(m.Name, t.Name), "table has no name")
	}
}

func checkColumns(r *report, m *model.SchemaMap, t *model.PhysicalTable) {
	seen := make(map[string]bool, len(t.Columns))

	for _, c := range t.Columns {
		ref := path(m.Name, t.Name, c.Name)

		switch {
		case blank(c.Name):
			r.add(SourceColumn, ref, "column has no name")
		case seen[c.Name]:
			r.add(SourceColumn, ref, "duplicate column name %q", c.Name)
		}

		seen[c.Name] = true

		if c.Type == "" {
			r.add(SourceColumn, ref, "column has no type")
		}

		if c.Type == model.SQLVarchar && c.MaxLength <= 0 {
			r.add(SourceColumn, ref, "VARCHAR column has no max length")
		}
	}
}

func checkPrimaryKey(r *report, m *model.SchemaMap, t *model.PhysicalTable) {
	switch pks := t.PrimaryKeys(); len(pks) {
	case 0:
		r.add(SourceTable, path(m.Name, t.Name), "table has no primary key")
	case 1:
	default:
		r.add(SourceTable, path(m.Name, t.Name), "table has %d primary key columns", len(pks))
	}
}

func checkEntityNames(r *report, m *model.SchemaMap, e *model.ObjectEntity) {
	ref := path(m.Name, e.Name)

	if blank(e.Name) {
		r.add(SourceObjectEntity, ref, "object entity has no name")
	}

	if blank(e.ClassName) {
		r.add(SourceObjectEntity, ref, "object entity has no class name")
	}

	seen := make(map[string]bool, len(e.Attributes))

	for _, a := range e.Attributes {
		if seen[a.Name] {
			r.add(SourceObjectAttribute, path(m.Name, e.Name, a.Name), "duplicate attribute name %q", a.Name)
		}

		seen[a.Name] = true
	}
}

// checkEntityBinding reports orphan entities and attributes. Attributes
// are only checked once the table resolves so one broken binding
// produces one finding.
func checkEntityBinding(r *report, m *model.SchemaMap, e *model.ObjectEntity) {
	table, ok := m.BoundTable(e)
	if !ok {
		if e.TableName == "" {
			r.add(SourceObjectEntity, path(m.Name, e.Name), "object entity is not bound to a table")
		} else {
			r.add(SourceObjectEntity, path(m.Name, e.Name), "bound table %q does not exist", e.TableName)
		}

		return
	}

	for _, a := range e.Attributes {
		ref := path(m.Name, e.Name, a.Name)

		column := table.Column(a.MappedColumnPath)
		switch {
		case column == nil:
			r.add(SourceObjectAttribute, ref, "mapped column %q does not exist in table %q", a.MappedColumnPath, table.Name)
		case column.PrimaryKey:
			r.add(SourceObjectAttribute, ref, "attribute exposes primary key column %q", column.Name)
		}

		if blank(a.ValueType) {
			r.add(SourceObjectAttribute, ref, "attribute has no value type")
		}
	}
}
