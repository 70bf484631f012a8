package model

import (
	"fmt"
	"strings"
)

// SemanticType identifies the application-level type of an attribute
type SemanticType string

const (
	TypeString    SemanticType = "STRING"
	TypeInteger   SemanticType = "INTEGER"
	TypeLong      SemanticType = "LONG"
	TypeBoolean   SemanticType = "BOOLEAN"
	TypeDecimal   SemanticType = "DECIMAL"
	TypeDate      SemanticType = "DATE"
	TypeTimestamp SemanticType = "TIMESTAMP"
	TypeBytes     SemanticType = "BYTES"
)

var qualifiedNames = map[SemanticType]string{
	TypeString:    "string",
	TypeInteger:   "int32",
	TypeLong:      "int64",
	TypeBoolean:   "bool",
	TypeDecimal:   "float64",
	TypeDate:      "time.Time",
	TypeTimestamp: "time.Time",
	TypeBytes:     "[]byte",
}

// QualifiedName returns the value type recorded on object attributes.
// Unknown types fall back to their tag.
func (t SemanticType) QualifiedName() string {
	if name, ok := qualifiedNames[t]; ok {
		return name
	}

	return string(t)
}

// Known reports whether t is one of the declared semantic types
func (t SemanticType) Known() bool {
	_, ok := qualifiedNames[t]
	return ok
}

// ParseSemanticType accepts a tag in any case, e.g. "string" or "STRING"
func ParseSemanticType(s string) (SemanticType, error) {
	t := SemanticType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Known() {
		return "", fmt.Errorf("unknown semantic type %q", s)
	}

	return t, nil
}

// SQLType is the storage type of a physical column
type SQLType string

const (
	SQLInteger   SQLType = "INTEGER"
	SQLBigInt    SQLType = "BIGINT"
	SQLVarchar   SQLType = "VARCHAR"
	SQLBoolean   SQLType = "BOOLEAN"
	SQLDecimal   SQLType = "DECIMAL"
	SQLDate      SQLType = "DATE"
	SQLTimestamp SQLType = "TIMESTAMP"
	SQLBlob      SQLType = "BLOB"
)

// Attribute is one field of an entity definition
type Attribute struct {
	name         string
	semanticType SemanticType
}

// NewAttribute creates an attribute
func NewAttribute(name string, semanticType SemanticType) Attribute {
	return Attribute{name: name, semanticType: semanticType}
}

// Name returns the attribute name
func (a Attribute) Name() string { return a.name }

// Type returns the declared semantic type
func (a Attribute) Type() SemanticType { return a.semanticType }

// Entity is a named, ordered list of attributes
type Entity struct {
	name       string
	attributes []Attribute
}

// NewEntity creates an entity. The attribute slice is copied.
func NewEntity(name string, attributes ...Attribute) Entity {
	return Entity{name: name, attributes: append([]Attribute(nil), attributes...)}
}

// Name returns the entity name
func (e Entity) Name() string { return e.name }

// Attributes returns a copy of the attributes in declaration order
func (e Entity) Attributes() []Attribute {
	return append([]Attribute(nil), e.attributes...)
}
