package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/kyleking/quick-model/internal/model"
)

// NewTestDB opens a DuckDB node under a temporary directory and creates
// the tables of schema on it. The factory is closed when the test ends.
func NewTestDB(t *testing.T, schema *model.SchemaMap) *sql.DB {
	t.Helper()

	factory := NewDuckDBFactory(t.TempDir(), 2)
	t.Cleanup(func() {
		if err := factory.Close(); err != nil {
			t.Errorf("failed to close test data source: %v", err)
		}
	})

	ctx := context.Background()

	db, err := factory.DataSource(ctx, "test")
	if err != nil {
		t.Fatalf("failed to open test data source: %v", err)
	}

	if schema != nil {
		if err := (CreateIfNoSchemaStrategy{}).Apply(ctx, db, schema); err != nil {
			t.Fatalf("failed to create test schema: %v", err)
		}
	}

	return db
}
