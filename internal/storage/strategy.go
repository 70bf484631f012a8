package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/kyleking/quick-model/internal/config"
	"github.com/kyleking/quick-model/internal/errors"
	"github.com/kyleking/quick-model/internal/model"
)

// SchemaStrategy decides whether the tables of a map get created on a data node
type SchemaStrategy interface {
	Apply(ctx context.Context, db *sql.DB, m *model.SchemaMap) error
}

// SkipStrategy leaves the database untouched
type SkipStrategy struct{}

// Apply does nothing
func (SkipStrategy) Apply(context.Context, *sql.DB, *model.SchemaMap) error {
	return nil
}

// CreateIfNoSchemaStrategy creates every table when none of them exist yet
type CreateIfNoSchemaStrategy struct{}

// Apply creates the schema unless at least one table is already there
func (CreateIfNoSchemaStrategy) Apply(ctx context.Context, db *sql.DB, m *model.SchemaMap) error {
	present, _, err := tableStatus(ctx, db, m)
	if err != nil {
		return err
	}

	if len(present) > 0 {
		return nil
	}

	return createSchema(ctx, db, m)
}

// ThrowOnPartialSchemaStrategy creates the schema when no table exists and
// fails when only some of them do.
type ThrowOnPartialSchemaStrategy struct{}

// Apply creates, accepts or rejects the current schema
func (ThrowOnPartialSchemaStrategy) Apply(ctx context.Context, db *sql.DB, m *model.SchemaMap) error {
	present, missing, err := tableStatus(ctx, db, m)
	if err != nil {
		return err
	}

	switch {
	case len(missing) == 0:
		return nil
	case len(present) == 0:
		return createSchema(ctx, db, m)
	default:
		return errors.Newf(errors.ErrTypeDatabase,
			"partial schema for map %s: found %s, missing %s",
			m.Name, strings.Join(present, ", "), strings.Join(missing, ", ")).
			WithSuggestion("Drop the remaining tables or switch to the create_if_no_schema strategy")
	}
}

// StrategyFor resolves a configured strategy name
func StrategyFor(name string) (SchemaStrategy, error) {
	switch name {
	case config.StrategySkip:
		return SkipStrategy{}, nil
	case config.StrategyCreateIfNoSchema:
		return CreateIfNoSchemaStrategy{}, nil
	case config.StrategyThrowOnPartialSchema:
		return ThrowOnPartialSchemaStrategy{}, nil
	default:
		return nil, errors.NewConfigError(fmt.Sprintf("unknown schema strategy %q", name), "schema_strategy")
	}
}

// tableStatus splits the tables of m into those present in db and those missing
func tableStatus(ctx context.Context, db *sql.DB, m *model.SchemaMap) (present, missing []string, err error) {
	rows, err := db.QueryContext(ctx, "SELECT table_name FROM information_schema.tables")
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to list tables")
	}

	defer rows.Close()

	var existing []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to scan table name")
		}

		existing = append(existing, name)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to list tables")
	}

	for _, t := range m.Tables {
		if containsFold(existing, t.Name) {
			present = append(present, t.Name)
		} else {
			missing = append(missing, t.Name)
		}
	}

	return present, missing, nil
}

func containsFold(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}

	return false
}

func createSchema(ctx context.Context, db *sql.DB, m *model.SchemaMap) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrTypeDatabase, "failed to begin transaction")
	}

	defer func() { _ = tx.Rollback() }()

	for _, stmt := range CreateStatements(m) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, errors.ErrTypeDatabase, "failed to execute %q", stmt)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrTypeDatabase, "failed to commit schema")
	}

	return nil
}
