// Package postgres implements the DDL/catalog methods contract for
// PostgreSQL. Registering the package (blank import) makes pgx-backed
// connections dispatchable through methods.For.
package postgres

import (
	"context"
	"database/sql/driver"

	"github.com/jackc/pgx/v5/stdlib"

	schemakit "github.com/shibukawa/schemakit"
	"github.com/shibukawa/schemakit/datatypes"
	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/typemap"
)

func init() {
	methods.RegisterFactory(schemakit.ProviderPostgreSQL, factory{})
}

type factory struct{}

func (factory) SupportsDriver(d driver.Driver) bool {
	_, ok := d.(*stdlib.Driver)
	return ok
}

func (factory) Methods() methods.DatabaseMethods { return New() }

// Querier aliases the contract's execution surface for brevity.
type Querier = methods.Querier

// Methods is the PostgreSQL implementation of the operation contract.
type Methods struct {
	methods.Base
}

// New creates the PostgreSQL methods implementation.
func New() *Methods {
	return &Methods{
		Base: methods.Base{
			Provider:   schemakit.ProviderPostgreSQL,
			Types:      typemap.PostgresTypeMap{},
			Registry:   datatypes.Postgres,
			QuoteOpen:  `"`,
			QuoteClose: `"`,
		},
	}
}

var _ methods.DatabaseMethods = (*Methods)(nil)

func (m *Methods) DatabaseVersion(ctx context.Context, q methods.Querier) (schemakit.Version, error) {
	return methods.QueryVersion(ctx, q, "SELECT version()")
}

// schemaOr resolves an empty schema name to the engine default.
func schemaOr(schemaName string) string {
	if schemaName == "" {
		return "public"
	}
	return schemaName
}

func (m *Methods) SupportsSchemas() bool { return true }

func (m *Methods) DoesSchemaExist(ctx context.Context, q Querier, schemaName string) (bool, error) {
	if err := methods.Require(schemaName, methods.ErrSchemaNameRequired); err != nil {
		return false, err
	}
	return methods.FetchBool(ctx, q,
		`SELECT count(*) FROM information_schema.schemata WHERE schema_name = $1`, schemaName)
}

func (m *Methods) GetSchemaNames(ctx context.Context, q Querier, nameFilter string) ([]string, error) {
	names, err := methods.FetchStrings(ctx, q, `
		SELECT schema_name FROM information_schema.schemata
		WHERE schema_name NOT IN ('information_schema', 'pg_catalog', 'pg_toast')
		  AND schema_name NOT LIKE 'pg_temp_%' AND schema_name NOT LIKE 'pg_toast_temp_%'
		ORDER BY schema_name`)
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
	if _, err := q.ExecContext(ctx, "DROP SCHEMA "+m.QuoteName(schemaName)+" CASCADE"); err != nil {
		return false, err
	}
	return true, nil
}
