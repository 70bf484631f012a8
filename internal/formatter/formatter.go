package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/kyleking/quick-model/internal/model"
	"github.com/kyleking/quick-model/internal/storage"
	"github.com/kyleking/quick-model/internal/validator"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatLong  OutputFormat = "long"
	FormatShort OutputFormat = "short"
)

// ParseFormat maps a flag value to an OutputFormat, defaulting to short
func ParseFormat(s string) OutputFormat {
	if OutputFormat(strings.ToLower(strings.TrimSpace(s))) == FormatLong {
		return FormatLong
	}

	return FormatShort
}

// Formatter renders models, findings and stored records for the terminal
type Formatter struct{}

// NewFormatter creates a new formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// FormatModel renders a schema model
func (f *Formatter) FormatModel(schema *model.SchemaModel, format OutputFormat) string {
	if schema == nil {
		return "-"
	}

	switch format {
	case FormatLong:
		return f.formatLong(schema)
	default:
		return f.formatShort(schema)
	}
}

// Summary counts the maps, tables and object entities of a model
func (f *Formatter) Summary(schema *model.SchemaModel) string {
	var tables, entities int

	for _, m := range schema.Maps {
		tables += len(m.Tables)
		entities += len(m.ObjectEntities)
	}

	return strings.Join([]string{
		countLabel(len(schema.Maps), "map"),
		countLabel(tables, "table"),
		countLabel(entities, "object entity"),
	}, ", ")
}

func (f *Formatter) formatLong(schema *model.SchemaModel) string {
	lines := []string{
		"Project: " + schema.ProjectName,
		"Summary: " + f.Summary(schema),
	}

	for _, m := range schema.Maps {
		lines = append(lines, fmt.Sprintf("Map: %s (namespace: %s, quoted identifiers: %s)",
			m.Name, orDash(m.DefaultNamespace), yesNo(m.QuoteIdentifiers)))

		for _, t := range m.Tables {
			lines = append(lines, fmt.Sprintf("  Table %s: %s", t.Name, countLabel(len(t.Columns), "column")))
			for _, c := range t.Columns {
				lines = append(lines, "    "+formatColumn(c))
			}
		}

		for _, e := range m.ObjectEntities {
			lines = append(lines, fmt.Sprintf("  Entity %s: %s -> %s, %s",
				e.Name, orDash(e.ClassName), orDash(e.TableName), countLabel(len(e.Attributes), "attribute")))
			for _, a := range e.Attributes {
				lines = append(lines, fmt.Sprintf("    %s -> %s (%s)", a.Name, orDash(a.MappedColumnPath), orDash(a.ValueType)))
			}
		}
	}

	return strings.Join(lines, "\n")
}

func (f *Formatter) formatShort(schema *model.SchemaModel) string {
	lines := []string{fmt.Sprintf("%s: %s", schema.ProjectName, f.Summary(schema))}

	for _, m := range schema.Maps {
		names := make([]string, 0, len(m.ObjectEntities))
		for _, e := range m.ObjectEntities {
			names = append(names, e.Name)
		}

		entities := strings.Join(names, ", ")
		lines = append(lines, fmt.Sprintf("  %s: %s", m.Name, orDash(entities)))
	}

	return strings.Join(lines, "\n")
}

// FormatFindings renders validation findings one per line
func (f *Formatter) FormatFindings(findings []validator.Finding) string {
	if len(findings) == 0 {
		return "No findings"
	}

	lines := []string{countLabel(len(findings), "finding") + ":"}
	for _, finding := range findings {
		lines = append(lines, "  "+finding.String())
	}

	return strings.Join(lines, "\n")
}

// FormatRecords renders stored objects of one entity, values sorted by attribute name
func (f *Formatter) FormatRecords(entity string, records []storage.Record) string {
	lines := []string{fmt.Sprintf("%s (%s)", entity, countLabel(len(records), "record"))}

	for _, r := range records {
		names := make([]string, 0, len(r.Values))
		for name := range r.Values {
			names = append(names, name)
		}

		sort.Strings(names)

		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s=%s", name, formatValue(r.Values[name])))
		}

		lines = append(lines, fmt.Sprintf("  %d  %s", r.ID, strings.Join(parts, " ")))
	}

	return strings.Join(lines, "\n")
}

func formatColumn(c *model.PhysicalColumn) string {
	typ := string(c.Type)
	if c.MaxLength > 0 {
		typ = fmt.Sprintf("%s(%d)", c.Type, c.MaxLength)
	}

	var flags []string
	if c.PrimaryKey {
		flags = append(flags, "primary key")
	}

	if c.Generated {
		flags = append(flags, "generated")
	}

	if c.Mandatory {
		flags = append(flags, "mandatory")
	}

	if len(flags) == 0 {
		return fmt.Sprintf("%s %s", c.Name, orDash(typ))
	}

	return fmt.Sprintf("%s %s %s", c.Name, orDash(typ), strings.Join(flags, ", "))
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

// countLabel renders "1 table" or "2 tables"
func countLabel(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}

	return fmt.Sprintf("%d %s", n, inflection.Plural(noun))
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}

	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}
