package storage

import (
	"fmt"
	"strings"

	"github.com/kyleking/quick-model/internal/model"
)

// quoteIdent renders name as a SQL identifier, double-quoted when the map
// asks for quoting.
func quoteIdent(m *model.SchemaMap, name string) string {
	if !m.QuoteIdentifiers {
		return name
	}

	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// SequenceName is the sequence feeding generated columns of table
func SequenceName(table string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(table) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	return "seq_" + b.String() + "_id"
}

func columnType(c *model.PhysicalColumn) string {
	if c.Type == model.SQLVarchar && c.MaxLength > 0 {
		return fmt.Sprintf("VARCHAR(%d)", c.MaxLength)
	}

	return string(c.Type)
}

// CreateStatements renders the DDL for every table of m, sequences first
func CreateStatements(m *model.SchemaMap) []string {
	var stmts []string

	for _, t := range m.Tables {
		stmts = append(stmts, createTable(m, t)...)
	}

	return stmts
}

func createTable(m *model.SchemaMap, t *model.PhysicalTable) []string {
	var (
		stmts []string
		defs  []string
		keys  []string
		seq   string
	)

	for _, c := range t.Columns {
		def := quoteIdent(m, c.Name) + " " + columnType(c)

		if c.Mandatory || c.PrimaryKey {
			def += " NOT NULL"
		}

		if c.Generated {
			if seq == "" {
				seq = SequenceName(t.Name)
				stmts = append(stmts, fmt.Sprintf("CREATE SEQUENCE IF NOT EXISTS %s START 1", seq))
			}

			def += fmt.Sprintf(" DEFAULT nextval('%s')", seq)
		}

		if c.PrimaryKey {
			keys = append(keys, quoteIdent(m, c.Name))
		}

		defs = append(defs, def)
	}

	if len(keys) > 0 {
		defs = append(defs, "PRIMARY KEY ("+strings.Join(keys, ", ")+")")
	}

	stmts = append(stmts, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		quoteIdent(m, t.Name), strings.Join(defs, ", ")))

	return stmts
}
