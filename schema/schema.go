// Package schema holds the normalized in-memory schema model: tables,
// columns, indexes, views and the five constraint kinds. Entities are plain
// mutable values created per operation, either from caller input or hydrated
// from an engine catalog. The backing engine's own catalog is always the
// source of truth; nothing here is persisted.
package schema

import "time"

// Table is a normalized table definition. A table owns one or many columns,
// zero or one primary key, and zero or many of each other constraint kind
// and index.
type Table struct {
	SchemaName            string                 `json:"schemaName,omitempty" yaml:"schemaName,omitempty"`
	TableName             string                 `json:"tableName" yaml:"tableName"`
	Columns               []Column               `json:"columns" yaml:"columns"`
	PrimaryKeyConstraint  *PrimaryKeyConstraint  `json:"primaryKeyConstraint,omitempty" yaml:"primaryKeyConstraint,omitempty"`
	CheckConstraints      []CheckConstraint      `json:"checkConstraints,omitempty" yaml:"checkConstraints,omitempty"`
	DefaultConstraints    []DefaultConstraint    `json:"defaultConstraints,omitempty" yaml:"defaultConstraints,omitempty"`
	UniqueConstraints     []UniqueConstraint     `json:"uniqueConstraints,omitempty" yaml:"uniqueConstraints,omitempty"`
	ForeignKeyConstraints []ForeignKeyConstraint `json:"foreignKeyConstraints,omitempty" yaml:"foreignKeyConstraints,omitempty"`
	Indexes               []Index                `json:"indexes,omitempty" yaml:"indexes,omitempty"`
}

// NewTable creates a table definition with the given columns.
func NewTable(schemaName, tableName string, columns ...Column) *Table {
	return &Table{
		SchemaName: schemaName,
		TableName:  tableName,
		Columns:    columns,
	}
}

// Column returns the named column, or nil. Lookup is case-insensitive the way
// every supported engine resolves unquoted identifiers.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if equalIdent(t.Columns[i].ColumnName, name) {
			return &t.Columns[i]
		}
	}
	return nil
}

// View is a normalized view definition. Definition holds only the SELECT
// body, never the engine's "CREATE VIEW ... AS" prologue.
type View struct {
	SchemaName string `json:"schemaName,omitempty" yaml:"schemaName,omitempty"`
	ViewName   string `json:"viewName" yaml:"viewName"`
	Definition string `json:"definition" yaml:"definition"`
}

// NewView creates a view definition from a SELECT body.
func NewView(schemaName, viewName, definition string) *View {
	return &View{SchemaName: schemaName, ViewName: viewName, Definition: definition}
}

// DatabaseInfo describes the engine a model was hydrated from.
type DatabaseInfo struct {
	Type        string    `json:"type" yaml:"type"`
	Version     string    `json:"version" yaml:"version"`
	Name        string    `json:"name,omitempty" yaml:"name,omitempty"`
	ExtractedAt time.Time `json:"extractedAt,omitempty" yaml:"extractedAt,omitempty"`
}
