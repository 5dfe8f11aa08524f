// Package sqlserver implements the DDL/catalog methods contract for
// Microsoft SQL Server. Registering the package (blank import) makes
// go-mssqldb connections dispatchable through methods.For.
package sqlserver

import (
	"context"
	"database/sql/driver"

	mssql "github.com/microsoft/go-mssqldb"

	schemakit "github.com/shibukawa/schemakit"
	"github.com/shibukawa/schemakit/datatypes"
	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/typemap"
)

func init() {
	methods.RegisterFactory(schemakit.ProviderSqlServer, factory{})
}

type factory struct{}

func (factory) SupportsDriver(d driver.Driver) bool {
	_, ok := d.(*mssql.Driver)
	return ok
}

func (factory) Methods() methods.DatabaseMethods { return New() }

// Querier aliases the contract's execution surface for brevity.
type Querier = methods.Querier

// Methods is the SQL Server implementation of the operation contract.
type Methods struct {
	methods.Base
}

// New creates the SQL Server methods implementation.
func New() *Methods {
	return &Methods{
		Base: methods.Base{
			Provider:   schemakit.ProviderSqlServer,
			Types:      typemap.SqlServerTypeMap{},
			Registry:   datatypes.SqlServer,
			QuoteOpen:  "[",
			QuoteClose: "]",
		},
	}
}

var _ methods.DatabaseMethods = (*Methods)(nil)

func (m *Methods) DatabaseVersion(ctx context.Context, q methods.Querier) (schemakit.Version, error) {
	return methods.QueryVersion(ctx, q,
		"SELECT CAST(SERVERPROPERTY('ProductVersion') AS NVARCHAR(128))")
}

// schemaOr resolves an empty schema name to the engine default.
func schemaOr(schemaName string) string {
	if schemaName == "" {
		return "dbo"
	}
	return schemaName
}

func (m *Methods) SupportsSchemas() bool { return true }

func (m *Methods) DoesSchemaExist(ctx context.Context, q Querier, schemaName string) (bool, error) {
	if err := methods.Require(schemaName, methods.ErrSchemaNameRequired); err != nil {
		return false, err
	}
	return methods.FetchBool(ctx, q,
		`SELECT count(*) FROM sys.schemas WHERE name = @p1`, schemaName)
}

func (m *Methods) GetSchemaNames(ctx context.Context, q Querier, nameFilter string) ([]string, error) {
	names, err := methods.FetchStrings(ctx, q, `
		SELECT name FROM sys.schemas
		WHERE schema_id < 16384 AND name NOT IN ('sys', 'INFORMATION_SCHEMA', 'guest')
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return methods.FilterNames(names, nameFilter), nil
}

func (m *Methods) CreateSchemaIfNotExists(ctx context.Context, q Querier, schemaName string) (bool, error) {
	exists, err := m.DoesSchemaExist(ctx, q, schemaName)
	if err != nil || exists {
		return false, err
	}
	// CREATE SCHEMA must be the only statement in its batch.
	if _, err := q.ExecContext(ctx, "CREATE SCHEMA "+m.QuoteName(schemaName)); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Methods) DropSchemaIfExists(ctx context.Context, q Querier, schemaName string) (bool, error) {
	exists, err := m.DoesSchemaExist(ctx, q, schemaName)
	if err != nil || !exists {
		return false, err
	}
	if _, err := q.ExecContext(ctx, "DROP SCHEMA "+m.QuoteName(schemaName)); err != nil {
		return false, err
	}
	return true, nil
}
