// Package project saves schema models as YAML project descriptors and
// reads them back.
package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kyleking/quick-model/internal/errors"
	"github.com/kyleking/quick-model/internal/model"
)

const (
	dirPerm  = 0755
	filePerm = 0644

	projectFilePrefix = "quickmodel-"
	projectFileSuffix = ".yaml"
	mapFileSuffix     = ".map.yaml"
)

// Persister writes a finished model to a destination directory
type Persister interface {
	Save(schema *model.SchemaModel, destination string) error
}

// YAMLPersister writes quickmodel-<project>.yaml plus one <map>.map.yaml per map
type YAMLPersister struct{}

// NewYAMLPersister creates a persister
func NewYAMLPersister() *YAMLPersister {
	return &YAMLPersister{}
}

// ProjectFileName returns the descriptor file name for a project
func ProjectFileName(projectName string) string {
	return projectFilePrefix + projectName + projectFileSuffix
}

// MapFileName returns the descriptor file name for a map
func MapFileName(mapName string) string {
	return mapName + mapFileSuffix
}

// Save writes the descriptors, replacing earlier output in place
func (p *YAMLPersister) Save(schema *model.SchemaModel, destination string) error {
	if strings.TrimSpace(destination) == "" {
		return errors.NewPersistenceError(destination, fmt.Errorf("destination is empty"))
	}

	if err := checkFileName(schema.ProjectName); err != nil {
		return errors.NewPersistenceError(destination, err)
	}

	if err := os.MkdirAll(destination, dirPerm); err != nil {
		return errors.NewPersistenceError(destination, err)
	}

	if info, err := os.Stat(destination); err != nil {
		return errors.NewPersistenceError(destination, err)
	} else if !info.IsDir() {
		return errors.NewPersistenceError(destination, fmt.Errorf("%s is not a directory", destination))
	}

	desc := projectDescriptor{Version: descriptorVersion, Name: schema.ProjectName}

	for _, m := range schema.Maps {
		if err := checkFileName(m.Name); err != nil {
			return errors.NewPersistenceError(destination, err)
		}

		file := MapFileName(m.Name)
		if err := writeYAML(filepath.Join(destination, file), toMapDescriptor(m)); err != nil {
			return errors.NewPersistenceError(destination, err)
		}

		desc.Maps = append(desc.Maps, mapFile{Name: m.Name, File: file})
	}

	// project descriptor last so a reader never sees it before its maps
	if err := writeYAML(filepath.Join(destination, ProjectFileName(schema.ProjectName)), desc); err != nil {
		return errors.NewPersistenceError(destination, err)
	}

	return nil
}

func checkFileName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("name is empty")
	case strings.ContainsAny(name, `/\`) || name == "." || name == "..":
		return fmt.Errorf("name %q cannot be used as a file name", name)
	}

	return nil
}

func writeYAML(path string, v any) error {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	return writeFileAtomic(path, buf.Bytes())
}

// writeFileAtomic replaces path via a temp file in the same directory
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filepath.Base(path), err)
	}

	if err := os.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", filepath.Base(path), err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}

	return nil
}

// Load reads a project previously written by YAMLPersister
func Load(dir, projectName string) (*model.SchemaModel, error) {
	path := filepath.Join(dir, ProjectFileName(projectName))

	var desc projectDescriptor
	if err := readYAML(path, &desc); err != nil {
		return nil, err
	}

	schema := &model.SchemaModel{ProjectName: desc.Name}

	for _, ref := range desc.Maps {
		var md mapDescriptor
		if err := readYAML(filepath.Join(dir, filepath.Base(ref.File)), &md); err != nil {
			return nil, err
		}

		schema.Maps = append(schema.Maps, md.toSchemaMap())
	}

	return schema, nil
}

func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrTypeNotFound, "%s not found", path)
	} else if err != nil {
		return errors.Wrapf(err, errors.ErrTypeFileSystem, "failed to read %s", path)
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, errors.ErrTypeFileSystem, "failed to parse %s", path)
	}

	var version struct {
		Version int `yaml:"version"`
	}
	if err := yaml.Unmarshal(data, &version); err == nil && version.Version > descriptorVersion {
		return errors.Newf(errors.ErrTypeFileSystem, "%s has unsupported version %d", path, version.Version)
	}

	return nil
}

// Discover lists the project names with descriptors in dir, sorted
func Discover(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, projectFilePrefix+"*"+projectFileSuffix))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeFileSystem, "failed to list %s", dir)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		base := filepath.Base(m)
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(base, projectFilePrefix), projectFileSuffix))
	}

	sort.Strings(names)

	return names, nil
}
