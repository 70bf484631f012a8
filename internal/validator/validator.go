// Package validator checks a schema model for structural problems.
// Findings are advisory; nothing here returns an error or changes the model.
package validator

import (
	"fmt"

	"github.com/kyleking/quick-model/internal/model"
)

// SourceKind names the kind of model element a finding refers to
type SourceKind string

const (
	SourceProject         SourceKind = "project"
	SourceMap             SourceKind = "map"
	SourceTable           SourceKind = "table"
	SourceColumn          SourceKind = "column"
	SourceObjectEntity    SourceKind = "object entity"
	SourceObjectAttribute SourceKind = "object attribute"
)

// SourceRef identifies the offending model element, e.g. object attribute testMap.Person.name
type SourceRef struct {
	Kind SourceKind
	Path string
}

func (r SourceRef) String() string {
	return string(r.Kind) + " " + r.Path
}

// Finding is one validation observation
type Finding struct {
	Message string
	Source  SourceRef
}

func (f Finding) String() string {
	return f.Message + " : " + f.Source.String()
}

// Validator inspects a model and reports findings
type Validator interface {
	Validate(schema *model.SchemaModel) []Finding
}

type report struct {
	findings []Finding
}

func (r *report) add(kind SourceKind, path, format string, args ...any) {
	r.findings = append(r.findings, Finding{
		Message: fmt.Sprintf(format, args...),
		Source:  SourceRef{Kind: kind, Path: path},
	})
}

type (
	mapRule    func(r *report, m *model.SchemaMap)
	tableRule  func(r *report, m *model.SchemaMap, t *model.PhysicalTable)
	entityRule func(r *report, m *model.SchemaMap, e *model.ObjectEntity)
)

// RuleValidator applies a fixed set of rules per map, table and object entity
type RuleValidator struct {
	mapRules    []mapRule
	tableRules  []tableRule
	entityRules []entityRule
}

// New returns the default validator
func New() *RuleValidator {
	return &RuleValidator{
		mapRules: []mapRule{
			checkMapName,
			checkDuplicateTables,
			checkDuplicateEntities,
		},
		tableRules: []tableRule{
			checkTableName,
			checkColumns,
			checkPrimaryKey,
		},
		entityRules: []entityRule{
			checkEntityNames,
			checkEntityBinding,
		},
	}
}

// Validate returns findings in model order, or nil when there are none
func (v *RuleValidator) Validate(schema *model.SchemaModel) []Finding {
	if schema == nil {
		return nil
	}

	r := &report{}

	if schema.ProjectName == "" {
		r.add(SourceProject, "", "project has no name")
	}

	seen := make(map[string]bool)

	for _, m := range schema.Maps {
		if seen[m.Name] {
			r.add(SourceMap, m.Name, "duplicate map name %q", m.Name)
		}

		seen[m.Name] = true

		for _, rule := range v.mapRules {
			rule(r, m)
		}

		for _, t := range m.Tables {
			for _, rule := range v.tableRules {
				rule(r, m, t)
			}
		}

		for _, e := range m.ObjectEntities {
			for _, rule := range v.entityRules {
				rule(r, m, e)
			}
		}
	}

	return r.findings
}
