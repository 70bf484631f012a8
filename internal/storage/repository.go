package storage

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/kyleking/quick-model/internal/errors"
	"github.com/kyleking/quick-model/internal/model"
)

// Record is one stored object: its generated key plus attribute values
type Record struct {
	ID     int64
	Values map[string]any
}

// Repository reads and writes rows through the object layer of a map
type Repository struct {
	db     *sql.DB
	schema *model.SchemaMap
}

// NewRepository creates a repository over db for the entities of schema
func NewRepository(db *sql.DB, schema *model.SchemaMap) *Repository {
	return &Repository{db: db, schema: schema}
}

type binding struct {
	entity *model.ObjectEntity
	table  *model.PhysicalTable
	key    string
}

func (r *Repository) bind(entityName string) (*binding, error) {
	entity := r.schema.ObjectEntity(entityName)
	if entity == nil {
		return nil, errors.Newf(errors.ErrTypeNotFound, "unknown entity %q in map %s", entityName, r.schema.Name)
	}

	table, ok := r.schema.BoundTable(entity)
	if !ok {
		return nil, errors.Newf(errors.ErrTypeNotFound, "entity %q is bound to missing table %q", entityName, entity.TableName)
	}

	keys := table.PrimaryKeys()
	if len(keys) != 1 {
		return nil, errors.Newf(errors.ErrTypeDatabase, "table %q has %d primary key columns, want 1", table.Name, len(keys))
	}

	return &binding{entity: entity, table: table, key: keys[0].Name}, nil
}

// Insert stores one object and returns its generated key. values is keyed
// by attribute name; attributes left out are stored as NULL.
func (r *Repository) Insert(ctx context.Context, entityName string, values map[string]any) (int64, error) {
	b, err := r.bind(entityName)
	if err != nil {
		return 0, err
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}

	slices.Sort(names)

	columns := make([]string, 0, len(names))
	args := make([]any, 0, len(names))

	for _, name := range names {
		attr := b.entity.Attribute(name)
		if attr == nil {
			return 0, errors.Newf(errors.ErrTypeNotFound, "unknown attribute %q on entity %q", name, entityName)
		}

		columns = append(columns, quoteIdent(r.schema, attr.MappedColumnPath))
		args = append(args, values[name])
	}

	table := quoteIdent(r.schema, b.table.Name)
	key := quoteIdent(r.schema, b.key)

	var query string
	if len(columns) == 0 {
		query = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING %s", table, key)
	} else {
		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
			table, strings.Join(columns, ", "), placeholders(len(columns)), key)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, errors.Wrapf(err, errors.ErrTypeDatabase, "failed to insert %s", entityName)
	}

	return id, nil
}

// SelectAll returns every stored object of an entity ordered by key
func (r *Repository) SelectAll(ctx context.Context, entityName string) ([]Record, error) {
	b, err := r.bind(entityName)
	if err != nil {
		return nil, err
	}

	key := quoteIdent(r.schema, b.key)
	columns := []string{key}

	for _, attr := range b.entity.Attributes {
		columns = append(columns, quoteIdent(r.schema, attr.MappedColumnPath))
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(columns, ", "), quoteIdent(r.schema, b.table.Name), key)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeDatabase, "failed to select %s", entityName)
	}

	defer rows.Close()

	var records []Record

	for rows.Next() {
		var id int64

		values := make([]any, len(b.entity.Attributes))
		dest := make([]any, 0, len(values)+1)
		dest = append(dest, &id)

		for i := range values {
			dest = append(dest, &values[i])
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, errors.ErrTypeDatabase, "failed to scan %s", entityName)
		}

		record := Record{ID: id, Values: make(map[string]any, len(values))}
		for i, attr := range b.entity.Attributes {
			record.Values[attr.Name] = values[i]
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeDatabase, "failed to select %s", entityName)
	}

	return records, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
