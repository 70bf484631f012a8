// Package builder turns entity definitions into a dual-layer schema model.
package builder

import (
	"fmt"
	"strings"

	"github.com/kyleking/quick-model/internal/errors"
	"github.com/kyleking/quick-model/internal/model"
)

// Config describes one generation run
type Config struct {
	ProjectName          string
	MapName              string
	Namespace            string
	DestinationDirectory string
	Entities             []model.Entity
}

// Validate reports the first problem that would prevent a build
func (c Config) Validate() error {
	required := []struct {
		field, value string
	}{
		{"projectName", c.ProjectName},
		{"mapName", c.MapName},
		{"destinationDirectory", c.DestinationDirectory},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.NewConfigError(r.field+" must not be empty", r.field)
		}
	}

	entities := make(map[string]bool, len(c.Entities))

	for i, entity := range c.Entities {
		name := entity.Name()
		if strings.TrimSpace(name) == "" {
			return errors.NewConfigError(fmt.Sprintf("entity #%d has no name", i+1), "entities")
		}

		if entities[name] {
			return errors.NewConfigError(fmt.Sprintf("duplicate entity name %q", name), "entities")
		}

		entities[name] = true

		if err := validateAttributes(entity); err != nil {
			return err
		}
	}

	return nil
}

func validateAttributes(entity model.Entity) error {
	field := fmt.Sprintf("entities[%s].attributes", entity.Name())
	seen := make(map[string]bool)

	for i, attr := range entity.Attributes() {
		name := attr.Name()

		switch {
		case strings.TrimSpace(name) == "":
			return errors.NewConfigError(fmt.Sprintf("attribute #%d of entity %q has no name", i+1, entity.Name()), field)
		case name == PrimaryKeyName:
			return errors.NewConfigError(
				fmt.Sprintf("attribute %q of entity %q clashes with the generated primary key", name, entity.Name()), field)
		case seen[name]:
			return errors.NewConfigError(fmt.Sprintf("duplicate attribute name %q in entity %q", name, entity.Name()), field)
		}

		seen[name] = true
	}

	return nil
}

// Build constructs the schema model for cfg. It returns a configuration
// error without building anything when cfg is invalid.
func Build(cfg Config) (*model.SchemaModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	schema := model.NewSchemaModel(cfg.ProjectName)
	schemaMap := model.NewSchemaMap(cfg.MapName, cfg.Namespace)

	for _, entity := range cfg.Entities {
		if err := addEntity(schemaMap, entity); err != nil {
			return nil, err
		}
	}

	if err := schema.AddMap(schemaMap); err != nil {
		return nil, err
	}

	return schema, nil
}

func addEntity(schemaMap *model.SchemaMap, entity model.Entity) error {
	table := model.NewPhysicalTable(entity.Name())
	if err := table.AddColumn(primaryKeyColumn()); err != nil {
		return err
	}

	objEntity := &model.ObjectEntity{
		Name:      entity.Name(),
		ClassName: QualifiedClassName(schemaMap.DefaultNamespace, entity.Name()),
		TableName: table.Name,
	}

	for _, attr := range entity.Attributes() {
		spec := ColumnFor(attr.Type())

		column := &model.PhysicalColumn{
			Name:      attr.Name(),
			Type:      spec.Type,
			MaxLength: spec.MaxLength,
			Mandatory: spec.Mandatory,
		}
		if err := table.AddColumn(column); err != nil {
			return err
		}

		// value type keeps the declared semantic type even though the
		// column typing ignores it
		if err := objEntity.AddAttribute(&model.ObjectAttribute{
			Name:             attr.Name(),
			MappedColumnPath: column.Name,
			ValueType:        attr.Type().QualifiedName(),
		}); err != nil {
			return err
		}
	}

	if err := schemaMap.AddTable(table); err != nil {
		return err
	}

	return schemaMap.AddObjectEntity(objEntity)
}

// QualifiedClassName joins namespace and entity name. An empty namespace
// yields the bare entity name.
func QualifiedClassName(namespace, entityName string) string {
	if namespace == "" {
		return entityName
	}

	return namespace + "." + entityName
}
