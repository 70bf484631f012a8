package builder

import "github.com/kyleking/quick-model/internal/model"

// PrimaryKeyName is the name of the surrogate key column added to every table
const PrimaryKeyName = "id"

// ColumnSpec is the physical typing chosen for a semantic type
type ColumnSpec struct {
	Type      model.SQLType
	MaxLength int
	Mandatory bool
}

var defaultColumn = ColumnSpec{Type: model.SQLVarchar, MaxLength: 100, Mandatory: false}

// columnPolicy maps semantic types to column typing. Types without an
// entry get defaultColumn; every attribute is VARCHAR(100) for now.
var columnPolicy = map[model.SemanticType]ColumnSpec{
	model.TypeString: defaultColumn,
}

// ColumnFor returns the column typing for t
func ColumnFor(t model.SemanticType) ColumnSpec {
	if spec, ok := columnPolicy[t]; ok {
		return spec
	}

	return defaultColumn
}

func primaryKeyColumn() *model.PhysicalColumn {
	return &model.PhysicalColumn{
		Name:       PrimaryKeyName,
		Type:       model.SQLInteger,
		PrimaryKey: true,
		Generated:  true,
		Mandatory:  true,
	}
}
