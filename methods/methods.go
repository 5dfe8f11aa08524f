// Package methods defines the uniform DDL/catalog operation contract every
// provider implements, the factory registry that dispatches a live connection
// to the right implementation, and the Client facade that presents one flat
// API across all engines.
package methods

import (
	"context"
	"database/sql"

	schemakit "github.com/shibukawa/schemakit"
	"github.com/shibukawa/schemakit/datatypes"
	"github.com/shibukawa/schemakit/schema"
	"github.com/shibukawa/schemakit/typemap"
)

// Querier is the execution surface every operation runs against. *sql.DB,
// *sql.Tx and *sql.Conn all satisfy it; passing a *sql.Tx is how a caller
// supplies an ambient transaction, and the toolkit never opens, commits or
// rolls one back on its own.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DatabaseMethods is the uniform operation contract, one implementation per
// engine. Semantics shared by every operation:
//
//   - Existence probes are read-only and report an absent entity as
//     (false, nil), never as an error.
//   - Get operations return nil / an empty slice when nothing matches.
//   - CreateXIfNotExists returns true only when it actually created
//     something and false when the entity already existed.
//   - DropXIfExists and RenameXIfExists mirror that: false means there was
//     nothing to do.
//   - Engine errors propagate verbatim; nothing is retried or translated.
//   - nameFilter parameters accept "*" and "?" wildcards; empty matches all.
type DatabaseMethods interface {
	ProviderType() schemakit.ProviderType

	// DatabaseVersion parses the engine's version banner. A banner without a
	// recognizable version is an error because capability gates depend on it.
	DatabaseVersion(ctx context.Context, q Querier) (schemakit.Version, error)

	// SupportsSchemas reports whether the engine has a schema namespace
	// distinct from the database itself (false for SQLite and MySQL).
	SupportsSchemas() bool
	DoesSchemaExist(ctx context.Context, q Querier, schemaName string) (bool, error)
	GetSchemaNames(ctx context.Context, q Querier, nameFilter string) ([]string, error)
	CreateSchemaIfNotExists(ctx context.Context, q Querier, schemaName string) (bool, error)
	DropSchemaIfExists(ctx context.Context, q Querier, schemaName string) (bool, error)

	DoesTableExist(ctx context.Context, q Querier, schemaName, tableName string) (bool, error)
	GetTableNames(ctx context.Context, q Querier, schemaName, nameFilter string) ([]string, error)
	GetTable(ctx context.Context, q Querier, schemaName, tableName string) (*schema.Table, error)
	GetTables(ctx context.Context, q Querier, schemaName, nameFilter string) ([]*schema.Table, error)
	CreateTableIfNotExists(ctx context.Context, q Querier, table *schema.Table) (bool, error)
	DropTableIfExists(ctx context.Context, q Querier, schemaName, tableName string) (bool, error)
	RenameTableIfExists(ctx context.Context, q Querier, schemaName, tableName, newTableName string) (bool, error)
	TruncateTableIfExists(ctx context.Context, q Querier, schemaName, tableName string) (bool, error)

	DoesColumnExist(ctx context.Context, q Querier, schemaName, tableName, columnName string) (bool, error)
	GetColumnNames(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]string, error)
	GetColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (*schema.Column, error)
	GetColumns(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]schema.Column, error)
	CreateColumnIfNotExists(ctx context.Context, q Querier, schemaName, tableName string, column *schema.Column) (bool, error)
	DropColumnIfExists(ctx context.Context, q Querier, schemaName, tableName, columnName string) (bool, error)
	RenameColumnIfExists(ctx context.Context, q Querier, schemaName, tableName, columnName, newColumnName string) (bool, error)

	DoesPrimaryKeyConstraintExist(ctx context.Context, q Querier, schemaName, tableName string) (bool, error)
	GetPrimaryKeyConstraint(ctx context.Context, q Querier, schemaName, tableName string) (*schema.PrimaryKeyConstraint, error)
	CreatePrimaryKeyConstraintIfNotExists(ctx context.Context, q Querier, pk *schema.PrimaryKeyConstraint) (bool, error)
	DropPrimaryKeyConstraintIfExists(ctx context.Context, q Querier, schemaName, tableName string) (bool, error)

	DoesCheckConstraintExist(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error)
	DoesCheckConstraintExistOnColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (bool, error)
	GetCheckConstraint(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (*schema.CheckConstraint, error)
	GetCheckConstraintOnColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (*schema.CheckConstraint, error)
	GetCheckConstraints(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]schema.CheckConstraint, error)
	GetCheckConstraintNames(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]string, error)
	CreateCheckConstraintIfNotExists(ctx context.Context, q Querier, constraint *schema.CheckConstraint) (bool, error)
	DropCheckConstraintIfExists(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error)

	DoesDefaultConstraintExist(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error)
	DoesDefaultConstraintExistOnColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (bool, error)
	GetDefaultConstraint(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (*schema.DefaultConstraint, error)
	GetDefaultConstraintOnColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (*schema.DefaultConstraint, error)
	GetDefaultConstraints(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]schema.DefaultConstraint, error)
	GetDefaultConstraintNames(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]string, error)
	CreateDefaultConstraintIfNotExists(ctx context.Context, q Querier, constraint *schema.DefaultConstraint) (bool, error)
	DropDefaultConstraintIfExists(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error)

	DoesUniqueConstraintExist(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error)
	GetUniqueConstraint(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (*schema.UniqueConstraint, error)
	GetUniqueConstraints(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]schema.UniqueConstraint, error)
	GetUniqueConstraintNames(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]string, error)
	CreateUniqueConstraintIfNotExists(ctx context.Context, q Querier, constraint *schema.UniqueConstraint) (bool, error)
	DropUniqueConstraintIfExists(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error)

	DoesForeignKeyConstraintExist(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error)
	DoesForeignKeyConstraintExistOnColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (bool, error)
	GetForeignKeyConstraint(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (*schema.ForeignKeyConstraint, error)
	GetForeignKeyConstraintOnColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (*schema.ForeignKeyConstraint, error)
	GetForeignKeyConstraints(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]schema.ForeignKeyConstraint, error)
	GetForeignKeyConstraintNames(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]string, error)
	CreateForeignKeyConstraintIfNotExists(ctx context.Context, q Querier, constraint *schema.ForeignKeyConstraint) (bool, error)
	DropForeignKeyConstraintIfExists(ctx context.Context, q Querier, schemaName, tableName, constraintName string) (bool, error)

	DoesIndexExist(ctx context.Context, q Querier, schemaName, tableName, indexName string) (bool, error)
	DoesIndexExistOnColumn(ctx context.Context, q Querier, schemaName, tableName, columnName string) (bool, error)
	GetIndex(ctx context.Context, q Querier, schemaName, tableName, indexName string) (*schema.Index, error)
	GetIndexes(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]schema.Index, error)
	GetIndexNames(ctx context.Context, q Querier, schemaName, tableName, nameFilter string) ([]string, error)
	CreateIndexIfNotExists(ctx context.Context, q Querier, index *schema.Index) (bool, error)
	DropIndexIfExists(ctx context.Context, q Querier, schemaName, tableName, indexName string) (bool, error)

	DoesViewExist(ctx context.Context, q Querier, schemaName, viewName string) (bool, error)
	GetView(ctx context.Context, q Querier, schemaName, viewName string) (*schema.View, error)
	GetViews(ctx context.Context, q Querier, schemaName, nameFilter string) ([]*schema.View, error)
	GetViewNames(ctx context.Context, q Querier, schemaName, nameFilter string) ([]string, error)
	CreateViewIfNotExists(ctx context.Context, q Querier, view *schema.View) (bool, error)
	// UpdateViewIfExists replaces an existing view's definition. Engines
	// without CREATE OR REPLACE drop and recreate internally.
	UpdateViewIfExists(ctx context.Context, q Querier, schemaName, viewName, definition string) (bool, error)
	RenameViewIfExists(ctx context.Context, q Querier, schemaName, viewName, newViewName string) (bool, error)
	DropViewIfExists(ctx context.Context, q Querier, schemaName, viewName string) (bool, error)

	// Data type discovery, served from the in-memory registry without I/O.
	AvailableDataTypes(includeAdvanced bool) []*datatypes.DataTypeInfo
	DataTypeByName(name string) *datatypes.DataTypeInfo
	DataTypesForCategory(category datatypes.Category) []*datatypes.DataTypeInfo
	AvailableCategories() []datatypes.Category

	TypeMap() typemap.TypeMap
}
