package methods

import (
	"context"
	"database/sql"

	schemakit "github.com/shibukawa/schemakit"
	"github.com/shibukawa/schemakit/datatypes"
	"github.com/shibukawa/schemakit/schema"
	"github.com/shibukawa/schemakit/typemap"
)

// Client is the uniform facade over a live connection: every operation
// mirrors the DatabaseMethods contract and simply forwards to the provider
// implementation resolved for the connection's driver. No business logic
// lives here.
type Client struct {
	q Querier
	m DatabaseMethods
}

// NewClient resolves the provider for db and wraps it. The connection stays
// caller-owned; the client never closes it.
func NewClient(db *sql.DB) (*Client, error) {
	m, err := For(db)
	if err != nil {
		return nil, err
	}
	return &Client{q: db, m: m}, nil
}

// WithTx returns a client executing against the given transaction instead of
// the connection. The transaction stays caller-owned: the client never
// commits or rolls it back.
func (c *Client) WithTx(tx *sql.Tx) *Client {
	return &Client{q: tx, m: c.m}
}

// Methods exposes the resolved provider implementation.
func (c *Client) Methods() DatabaseMethods { return c.m }

func (c *Client) ProviderType() schemakit.ProviderType { return c.m.ProviderType() }

func (c *Client) DatabaseVersion(ctx context.Context) (schemakit.Version, error) {
	return c.m.DatabaseVersion(ctx, c.q)
}

func (c *Client) SupportsSchemas() bool { return c.m.SupportsSchemas() }

func (c *Client) DoesSchemaExist(ctx context.Context, schemaName string) (bool, error) {
	return c.m.DoesSchemaExist(ctx, c.q, schemaName)
}

func (c *Client) GetSchemaNames(ctx context.Context, nameFilter string) ([]string, error) {
	return c.m.GetSchemaNames(ctx, c.q, nameFilter)
}

func (c *Client) CreateSchemaIfNotExists(ctx context.Context, schemaName string) (bool, error) {
	return c.m.CreateSchemaIfNotExists(ctx, c.q, schemaName)
}

func (c *Client) DropSchemaIfExists(ctx context.Context, schemaName string) (bool, error) {
	return c.m.DropSchemaIfExists(ctx, c.q, schemaName)
}

func (c *Client) DoesTableExist(ctx context.Context, schemaName, tableName string) (bool, error) {
	return c.m.DoesTableExist(ctx, c.q, schemaName, tableName)
}

func (c *Client) GetTableNames(ctx context.Context, schemaName, nameFilter string) ([]string, error) {
	return c.m.GetTableNames(ctx, c.q, schemaName, nameFilter)
}

func (c *Client) GetTable(ctx context.Context, schemaName, tableName string) (*schema.Table, error) {
	return c.m.GetTable(ctx, c.q, schemaName, tableName)
}

func (c *Client) GetTables(ctx context.Context, schemaName, nameFilter string) ([]*schema.Table, error) {
	return c.m.GetTables(ctx, c.q, schemaName, nameFilter)
}

func (c *Client) CreateTableIfNotExists(ctx context.Context, table *schema.Table) (bool, error) {
	return c.m.CreateTableIfNotExists(ctx, c.q, table)
}

func (c *Client) DropTableIfExists(ctx context.Context, schemaName, tableName string) (bool, error) {
	return c.m.DropTableIfExists(ctx, c.q, schemaName, tableName)
}

func (c *Client) RenameTableIfExists(ctx context.Context, schemaName, tableName, newTableName string) (bool, error) {
	return c.m.RenameTableIfExists(ctx, c.q, schemaName, tableName, newTableName)
}

func (c *Client) TruncateTableIfExists(ctx context.Context, schemaName, tableName string) (bool, error) {
	return c.m.TruncateTableIfExists(ctx, c.q, schemaName, tableName)
}

func (c *Client) DoesColumnExist(ctx context.Context, schemaName, tableName, columnName string) (bool, error) {
	return c.m.DoesColumnExist(ctx, c.q, schemaName, tableName, columnName)
}

func (c *Client) GetColumnNames(ctx context.Context, schemaName, tableName, nameFilter string) ([]string, error) {
	return c.m.GetColumnNames(ctx, c.q, schemaName, tableName, nameFilter)
}

func (c *Client) GetColumn(ctx context.Context, schemaName, tableName, columnName string) (*schema.Column, error) {
	return c.m.GetColumn(ctx, c.q, schemaName, tableName, columnName)
}

func (c *Client) GetColumns(ctx context.Context, schemaName, tableName, nameFilter string) ([]schema.Column, error) {
	return c.m.GetColumns(ctx, c.q, schemaName, tableName, nameFilter)
}

func (c *Client) CreateColumnIfNotExists(ctx context.Context, schemaName, tableName string, column *schema.Column) (bool, error) {
	return c.m.CreateColumnIfNotExists(ctx, c.q, schemaName, tableName, column)
}

func (c *Client) DropColumnIfExists(ctx context.Context, schemaName, tableName, columnName string) (bool, error) {
	return c.m.DropColumnIfExists(ctx, c.q, schemaName, tableName, columnName)
}

func (c *Client) RenameColumnIfExists(ctx context.Context, schemaName, tableName, columnName, newColumnName string) (bool, error) {
	return c.m.RenameColumnIfExists(ctx, c.q, schemaName, tableName, columnName, newColumnName)
}

func (c *Client) DoesPrimaryKeyConstraintExist(ctx context.Context, schemaName, tableName string) (bool, error) {
	return c.m.DoesPrimaryKeyConstraintExist(ctx, c.q, schemaName, tableName)
}

func (c *Client) GetPrimaryKeyConstraint(ctx context.Context, schemaName, tableName string) (*schema.PrimaryKeyConstraint, error) {
	return c.m.GetPrimaryKeyConstraint(ctx, c.q, schemaName, tableName)
}

func (c *Client) CreatePrimaryKeyConstraintIfNotExists(ctx context.Context, pk *schema.PrimaryKeyConstraint) (bool, error) {
	return c.m.CreatePrimaryKeyConstraintIfNotExists(ctx, c.q, pk)
}

func (c *Client) DropPrimaryKeyConstraintIfExists(ctx context.Context, schemaName, tableName string) (bool, error) {
	return c.m.DropPrimaryKeyConstraintIfExists(ctx, c.q, schemaName, tableName)
}

func (c *Client) DoesCheckConstraintExist(ctx context.Context, schemaName, tableName, constraintName string) (bool, error) {
	return c.m.DoesCheckConstraintExist(ctx, c.q, schemaName, tableName, constraintName)
}

func (c *Client) DoesCheckConstraintExistOnColumn(ctx context.Context, schemaName, tableName, columnName string) (bool, error) {
	return c.m.DoesCheckConstraintExistOnColumn(ctx, c.q, schemaName, tableName, columnName)
}

func (c *Client) GetCheckConstraint(ctx context.Context, schemaName, tableName, constraintName string) (*schema.CheckConstraint, error) {
	return c.m.GetCheckConstraint(ctx, c.q, schemaName, tableName, constraintName)
}

func (c *Client) GetCheckConstraintOnColumn(ctx context.Context, schemaName, tableName, columnName string) (*schema.CheckConstraint, error) {
	return c.m.GetCheckConstraintOnColumn(ctx, c.q, schemaName, tableName, columnName)
}

func (c *Client) GetCheckConstraints(ctx context.Context, schemaName, tableName, nameFilter string) ([]schema.CheckConstraint, error) {
	return c.m.GetCheckConstraints(ctx, c.q, schemaName, tableName, nameFilter)
}

func (c *Client) GetCheckConstraintNames(ctx context.Context, schemaName, tableName, nameFilter string) ([]string, error) {
	return c.m.GetCheckConstraintNames(ctx, c.q, schemaName, tableName, nameFilter)
}

func (c *Client) CreateCheckConstraintIfNotExists(ctx context.Context, constraint *schema.CheckConstraint) (bool, error) {
	return c.m.CreateCheckConstraintIfNotExists(ctx, c.q, constraint)
}

func (c *Client) DropCheckConstraintIfExists(ctx context.Context, schemaName, tableName, constraintName string) (bool, error) {
	return c.m.DropCheckConstraintIfExists(ctx, c.q, schemaName, tableName, constraintName)
}

func (c *Client) DoesDefaultConstraintExist(ctx context.Context, schemaName, tableName, constraintName string) (bool, error) {
	return c.m.DoesDefaultConstraintExist(ctx, c.q, schemaName, tableName, constraintName)
}

func (c *Client) DoesDefaultConstraintExistOnColumn(ctx context.Context, schemaName, tableName, columnName string) (bool, error) {
	return c.m.DoesDefaultConstraintExistOnColumn(ctx, c.q, schemaName, tableName, columnName)
}

func (c *Client) GetDefaultConstraint(ctx context.Context, schemaName, tableName, constraintName string) (*schema.DefaultConstraint, error) {
	return c.m.GetDefaultConstraint(ctx, c.q, schemaName, tableName, constraintName)
}

func (c *Client) GetDefaultConstraintOnColumn(ctx context.Context, schemaName, tableName, columnName string) (*schema.DefaultConstraint, error) {
	return c.m.GetDefaultConstraintOnColumn(ctx, c.q, schemaName, tableName, columnName)
}

func (c *Client) GetDefaultConstraints(ctx context.Context, schemaName, tableName, nameFilter string) ([]schema.DefaultConstraint, error) {
	return c.m.GetDefaultConstraints(ctx, c.q, schemaName, tableName, nameFilter)
}

func (c *Client) GetDefaultConstraintNames(ctx context.Context, schemaName, tableName, nameFilter string) ([]string, error) {
	return c.m.GetDefaultConstraintNames(ctx, c.q, schemaName, tableName, nameFilter)
}

func (c *Client) CreateDefaultConstraintIfNotExists(ctx context.Context, constraint *schema.DefaultConstraint) (bool, error) {
	return c.m.CreateDefaultConstraintIfNotExists(ctx, c.q, constraint)
}

func (c *Client) DropDefaultConstraintIfExists(ctx context.Context, schemaName, tableName, constraintName string) (bool, error) {
	return c.m.DropDefaultConstraintIfExists(ctx, c.q, schemaName, tableName, constraintName)
}

func (c *Client) DoesUniqueConstraintExist(ctx context.Context, schemaName, tableName, constraintName string) (bool, error) {
	return c.m.DoesUniqueConstraintExist(ctx, c.q, schemaName, tableName, constraintName)
}

func (c *Client) GetUniqueConstraint(ctx context.Context, schemaName, tableName, constraintName string) (*schema.UniqueConstraint, error) {
	return c.m.GetUniqueConstraint(ctx, c.q, schemaName, tableName, constraintName)
}

func (c *Client) GetUniqueConstraints(ctx context.Context, schemaName, tableName, nameFilter string) ([]schema.UniqueConstraint, error) {
	return c.m.GetUniqueConstraints(ctx, c.q, schemaName, tableName, nameFilter)
}

func (c *Client) GetUniqueConstraintNames(ctx context.Context, schemaName, tableName, nameFilter string) ([]string, error) {
	return c.m.GetUniqueConstraintNames(ctx, c.q, schemaName, tableName, nameFilter)
}

func (c *Client) CreateUniqueConstraintIfNotExists(ctx context.Context, constraint *schema.UniqueConstraint) (bool, error) {
	return c.m.CreateUniqueConstraintIfNotExists(ctx, c.q, constraint)
}

func (c *Client) DropUniqueConstraintIfExists(ctx context.Context, schemaName, tableName, constraintName string) (bool, error) {
	return c.m.DropUniqueConstraintIfExists(ctx, c.q, schemaName, tableName, constraintName)
}

func (c *Client) DoesForeignKeyConstraintExist(ctx context.Context, schemaName, tableName, constraintName string) (bool, error) {
	return c.m.DoesForeignKeyConstraintExist(ctx, c.q, schemaName, tableName, constraintName)
}

func (c *Client) DoesForeignKeyConstraintExistOnColumn(ctx context.Context, schemaName, tableName, columnName string) (bool, error) {
	return c.m.DoesForeignKeyConstraintExistOnColumn(ctx, c.q, schemaName, tableName, columnName)
}

func (c *Client) GetForeignKeyConstraint(ctx context.Context, schemaName, tableName, constraintName string) (*schema.ForeignKeyConstraint, error) {
	return c.m.GetForeignKeyConstraint(ctx, c.q, schemaName, tableName, constraintName)
}

func (c *Client) GetForeignKeyConstraintOnColumn(ctx context.Context, schemaName, tableName, columnName string) (*schema.ForeignKeyConstraint, error) {
	return c.m.GetForeignKeyConstraintOnColumn(ctx, c.q, schemaName, tableName, columnName)
}

func (c *Client) GetForeignKeyConstraints(ctx context.Context, schemaName, tableName, nameFilter string) ([]schema.ForeignKeyConstraint, error) {
	return c.m.GetForeignKeyConstraints(ctx, c.q, schemaName, tableName, nameFilter)
}

func (c *Client) GetForeignKeyConstraintNames(ctx context.Context, schemaName, tableName, nameFilter string) ([]string, error) {
	return c.m.GetForeignKeyConstraintNames(ctx, c.q, schemaName, tableName, nameFilter)
}

func (c *Client) CreateForeignKeyConstraintIfNotExists(ctx context.Context, constraint *schema.ForeignKeyConstraint) (bool, error) {
	return c.m.CreateForeignKeyConstraintIfNotExists(ctx, c.q, constraint)
}

func (c *Client) DropForeignKeyConstraintIfExists(ctx context.Context, schemaName, tableName, constraintName string) (bool, error) {
	return c.m.DropForeignKeyConstraintIfExists(ctx, c.q, schemaName, tableName, constraintName)
}

func (c *Client) DoesIndexExist(ctx context.Context, schemaName, tableName, indexName string) (bool, error) {
	return c.m.DoesIndexExist(ctx, c.q, schemaName, tableName, indexName)
}

func (c *Client) DoesIndexExistOnColumn(ctx context.Context, schemaName, tableName, columnName string) (bool, error) {
	return c.m.DoesIndexExistOnColumn(ctx, c.q, schemaName, tableName, columnName)
}

func (c *Client) GetIndex(ctx context.Context, schemaName, tableName, indexName string) (*schema.Index, error) {
	return c.m.GetIndex(ctx, c.q, schemaName, tableName, indexName)
}

func (c *Client) GetIndexes(ctx context.Context, schemaName, tableName, nameFilter string) ([]schema.Index, error) {
	return c.m.GetIndexes(ctx, c.q, schemaName, tableName, nameFilter)
}

func (c *Client) GetIndexNames(ctx context.Context, schemaName, tableName, nameFilter string) ([]string, error) {
	return c.m.GetIndexNames(ctx, c.q, schemaName, tableName, nameFilter)
}

func (c *Client) CreateIndexIfNotExists(ctx context.Context, index *schema.Index) (bool, error) {
	return c.m.CreateIndexIfNotExists(ctx, c.q, index)
}

func (c *Client) DropIndexIfExists(ctx context.Context, schemaName, tableName, indexName string) (bool, error) {
	return c.m.DropIndexIfExists(ctx, c.q, schemaName, tableName, indexName)
}

func (c *Client) DoesViewExist(ctx context.Context, schemaName, viewName string) (bool, error) {
	return c.m.DoesViewExist(ctx, c.q, schemaName, viewName)
}

func (c *Client) GetView(ctx context.Context, schemaName, viewName string) (*schema.View, error) {
	return c.m.GetView(ctx, c.q, schemaName, viewName)
}

func (c *Client) GetViews(ctx context.Context, schemaName, nameFilter string) ([]*schema.View, error) {
	return c.m.GetViews(ctx, c.q, schemaName, nameFilter)
}

func (c *Client) GetViewNames(ctx context.Context, schemaName, nameFilter string) ([]string, error) {
	return c.m.GetViewNames(ctx, c.q, schemaName, nameFilter)
}

func (c *Client) CreateViewIfNotExists(ctx context.Context, view *schema.View) (bool, error) {
	return c.m.CreateViewIfNotExists(ctx, c.q, view)
}

func (c *Client) UpdateViewIfExists(ctx context.Context, schemaName, viewName, definition string) (bool, error) {
	return c.m.UpdateViewIfExists(ctx, c.q, schemaName, viewName, definition)
}

func (c *Client) RenameViewIfExists(ctx context.Context, schemaName, viewName, newViewName string) (bool, error) {
	return c.m.RenameViewIfExists(ctx, c.q, schemaName, viewName, newViewName)
}

func (c *Client) DropViewIfExists(ctx context.Context, schemaName, viewName string) (bool, error) {
	return c.m.DropViewIfExists(ctx, c.q, schemaName, viewName)
}

func (c *Client) AvailableDataTypes(includeAdvanced bool) []*datatypes.DataTypeInfo {
	return c.m.AvailableDataTypes(includeAdvanced)
}

func (c *Client) DataTypeByName(name string) *datatypes.DataTypeInfo {
	return c.m.DataTypeByName(name)
}

func (c *Client) DataTypesForCategory(category datatypes.Category) []*datatypes.DataTypeInfo {
	return c.m.DataTypesForCategory(category)
}

func (c *Client) AvailableCategories() []datatypes.Category {
	return c.m.AvailableCategories()
}

func (c *Client) TypeMap() typemap.TypeMap { return c.m.TypeMap() }
