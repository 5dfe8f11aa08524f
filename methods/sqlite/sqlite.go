// Package sqlite implements the DDL/catalog methods contract for SQLite.
// Registering the package (blank import) makes mattn/go-sqlite3 connections
// dispatchable through methods.For.
//
// SQLite's ALTER TABLE only covers rename and add/drop column. Every other
// structural change (primary key, check, foreign key, default) goes through
// a table rebuild: create the altered table under a scratch name, copy the
// rows, drop the original, rename.
package sqlite

import (
	"context"
	"database/sql/driver"

	"github.com/mattn/go-sqlite3"

	schemakit "github.com/shibukawa/schemakit"
	"github.com/shibukawa/schemakit/datatypes"
	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/typemap"
)

func init() {
	methods.RegisterFactory(schemakit.ProviderSqlite, factory{})
}

type factory struct{}

func (factory) SupportsDriver(d driver.Driver) bool {
	_, ok := d.(*sqlite3.SQLiteDriver)
	return ok
}

func (factory) Methods() methods.DatabaseMethods { return New() }

// Querier aliases the contract's execution surface for brevity.
type Querier = methods.Querier

// Methods is the SQLite implementation of the operation contract.
type Methods struct {
	methods.Base
}

// New creates the SQLite methods implementation.
func New() *Methods {
	return &Methods{
		Base: methods.Base{
			Provider:   schemakit.ProviderSqlite,
			Types:      typemap.SqliteTypeMap{},
			Registry:   datatypes.Sqlite,
			QuoteOpen:  `"`,
			QuoteClose: `"`,
		},
	}
}

var _ methods.DatabaseMethods = (*Methods)(nil)

func (m *Methods) DatabaseVersion(ctx context.Context, q methods.Querier) (schemakit.Version, error) {
	return methods.QueryVersion(ctx, q, "SELECT sqlite_version()")
}

func (m *Methods) SupportsSchemas() bool { return false }

func (m *Methods) DoesSchemaExist(ctx context.Context, q Querier, schemaName string) (bool, error) {
	return false, nil
}

func (m *Methods) GetSchemaNames(ctx context.Context, q Querier, nameFilter string) ([]string, error) {
	return nil, nil
}

func (m *Methods) CreateSchemaIfNotExists(ctx context.Context, q Querier, schemaName string) (bool, error) {
	return false, methods.ErrSchemasNotSupported
}

func (m *Methods) DropSchemaIfExists(ctx context.Context, q Querier, schemaName string) (bool, error) {
	return false, methods.ErrSchemasNotSupported
}
