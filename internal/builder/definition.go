package builder

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kyleking/quick-model/internal/errors"
	"github.com/kyleking/quick-model/internal/model"
)

type definitionFile struct {
	Project     string             `yaml:"project"`
	Map         string             `yaml:"map"`
	Namespace   string             `yaml:"namespace"`
	Destination string             `yaml:"destination"`
	Entities    []entityDefinition `yaml:"entities"`
}

type entityDefinition struct {
	Name       string                `yaml:"name"`
	Attributes []attributeDefinition `yaml:"attributes"`
}

type attributeDefinition struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"` // defaults to string
}

// LoadDefinition reads a YAML entity definition file. The destination
// may be empty; callers fill it in before building.
func LoadDefinition(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, errors.ErrTypeConfig, "failed to read definition file %s", path)
	}

	return ParseDefinition(data)
}

// ParseDefinition decodes a YAML entity definition. Unknown keys and
// unknown semantic types are configuration errors.
func ParseDefinition(data []byte) (Config, error) {
	var def definitionFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&def); err != nil {
		return Config{}, errors.Wrap(err, errors.ErrTypeConfig, "failed to parse definition")
	}

	cfg := Config{
		ProjectName:          def.Project,
		MapName:              def.Map,
		Namespace:            def.Namespace,
		DestinationDirectory: def.Destination,
	}

	for _, e := range def.Entities {
		attrs := make([]model.Attribute, 0, len(e.Attributes))

		for _, a := range e.Attributes {
			semanticType := model.TypeString

			if a.Type != "" {
				t, err := model.ParseSemanticType(a.Type)
				if err != nil {
					return Config{}, errors.NewConfigError(
						fmt.Sprintf("attribute %q of entity %q: %v", a.Name, e.Name, err),
						fmt.Sprintf("entities[%s].attributes[%s].type", e.Name, a.Name))
				}

				semanticType = t
			}

			attrs = append(attrs, model.NewAttribute(a.Name, semanticType))
		}

		cfg.Entities = append(cfg.Entities, model.NewEntity(e.Name, attrs...))
	}

	return cfg, nil
}
