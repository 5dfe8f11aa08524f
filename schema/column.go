package schema

import (
	"reflect"
	"strings"

	schemakit "github.com/shibukawa/schemakit"
)

// Column is a normalized column definition.
//
// The desired type is expressed either as a host Go type (DataType, mapped to
// native syntax through the provider type map) or as explicit per-provider
// native type strings (ProviderDataTypes, which win when present for the
// target provider). When a column is hydrated from a live catalog, the native
// type is recorded under the source provider and DataType carries the mapped
// Go type.
//
// A column may carry denormalized foreign key reference fields in addition to
// a table-level ForeignKeyConstraint. DDL generation reconciles the two: an
// explicit table-level constraint for the column wins, otherwise the column
// fields produce a generated constraint. See Table columns handling in the
// provider methods.
type Column struct {
	ColumnName        string                            `json:"columnName" yaml:"columnName"`
	DataType          reflect.Type                      `json:"-" yaml:"-"`
	ProviderDataTypes map[schemakit.ProviderType]string `json:"providerDataTypes,omitempty" yaml:"providerDataTypes,omitempty"`

	Length    *int `json:"length,omitempty" yaml:"length,omitempty"`
	Precision *int `json:"precision,omitempty" yaml:"precision,omitempty"`
	Scale     *int `json:"scale,omitempty" yaml:"scale,omitempty"`

	IsUnicode     bool `json:"isUnicode,omitempty" yaml:"isUnicode,omitempty"`
	IsFixedLength bool `json:"isFixedLength,omitempty" yaml:"isFixedLength,omitempty"`

	IsNullable      bool `json:"isNullable" yaml:"isNullable"`
	IsPrimaryKey    bool `json:"isPrimaryKey,omitempty" yaml:"isPrimaryKey,omitempty"`
	IsAutoIncrement bool `json:"isAutoIncrement,omitempty" yaml:"isAutoIncrement,omitempty"`
	IsUnique        bool `json:"isUnique,omitempty" yaml:"isUnique,omitempty"`
	IsIndexed       bool `json:"isIndexed,omitempty" yaml:"isIndexed,omitempty"`

	DefaultExpression string `json:"defaultExpression,omitempty" yaml:"defaultExpression,omitempty"`
	CheckExpression   string `json:"checkExpression,omitempty" yaml:"checkExpression,omitempty"`

	IsForeignKey         bool             `json:"isForeignKey,omitempty" yaml:"isForeignKey,omitempty"`
	ReferencedTableName  string           `json:"referencedTableName,omitempty" yaml:"referencedTableName,omitempty"`
	ReferencedColumnName string           `json:"referencedColumnName,omitempty" yaml:"referencedColumnName,omitempty"`
	OnDelete             ForeignKeyAction `json:"onDelete,omitempty" yaml:"onDelete,omitempty"`
	OnUpdate             ForeignKeyAction `json:"onUpdate,omitempty" yaml:"onUpdate,omitempty"`
}

// NewColumn creates a column definition for a host Go type.
func NewColumn(columnName string, dataType reflect.Type) Column {
	return Column{ColumnName: columnName, DataType: dataType}
}

// ProviderDataType returns the explicit native type for the given provider,
// or "" when none was supplied.
func (c *Column) ProviderDataType(p schemakit.ProviderType) string {
	if c.ProviderDataTypes == nil {
		return ""
	}
	return c.ProviderDataTypes[p]
}

// SetProviderDataType records a native type string for one provider.
func (c *Column) SetProviderDataType(p schemakit.ProviderType, sqlType string) *Column {
	if c.ProviderDataTypes == nil {
		c.ProviderDataTypes = make(map[schemakit.ProviderType]string)
	}
	c.ProviderDataTypes[p] = sqlType
	return c
}

// SetProviderDataTypes parses a provider data type string such as
// "{postgresql:jsonb,sqlserver:nvarchar(max)}" and records each entry.
func (c *Column) SetProviderDataTypes(spec string) *Column {
	for p, sqlType := range schemakit.ParseProviderDataTypes(spec) {
		c.SetProviderDataType(p, sqlType)
	}
	return c
}

func equalIdent(a, b string) bool {
	return strings.EqualFold(a, b)
}
