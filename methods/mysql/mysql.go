// Package mysql implements the DDL/catalog methods contract for MySQL and
// MariaDB. Registering the package (blank import) makes go-sql-driver
// connections dispatchable through methods.For.
package mysql

import (
	"context"
	"database/sql/driver"
	"sync"

	"github.com/go-sql-driver/mysql"

	schemakit "github.com/shibukawa/schemakit"
	"github.com/shibukawa/schemakit/datatypes"
	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/typemap"
)

func init() {
	methods.RegisterFactory(schemakit.ProviderMySQL, factory{})
}

type factory struct{}

func (factory) SupportsDriver(d driver.Driver) bool {
	switch d.(type) {
	case mysql.MySQLDriver, *mysql.MySQLDriver:
		return true
	}
	return false
}

func (factory) Methods() methods.DatabaseMethods { return New() }

// Querier aliases the contract's execution surface for brevity.
type Querier = methods.Querier

// Methods is the MySQL implementation of the operation contract.
//
// MySQL has no schema namespace below the database, so every schemaName
// parameter is ignored for DDL and catalog queries run against the current
// database (DATABASE()).
type Methods struct {
	methods.Base

	checkOnce      sync.Once
	checksFeatured bool
}

// New creates the MySQL methods implementation.
func New() *Methods {
	return &Methods{
		Base: methods.Base{
			Provider:   schemakit.ProviderMySQL,
			Types:      typemap.MySQLTypeMap{},
			Registry:   datatypes.MySQL,
			QuoteOpen:  "`",
			QuoteClose: "`",
		},
	}
}

var _ methods.DatabaseMethods = (*Methods)(nil)

func (m *Methods) DatabaseVersion(ctx context.Context, q methods.Querier) (schemakit.Version, error) {
	return methods.QueryVersion(ctx, q, "SELECT VERSION()")
}

// supportsCheckConstraints reports whether the server enforces CHECK
// constraints (MySQL 8.0.16+). The answer is cached for the lifetime of the
// Methods value.
func (m *Methods) supportsCheckConstraints(ctx context.Context, q Querier) bool {
	m.checkOnce.Do(func() {
		v, err := m.DatabaseVersion(ctx, q)
		m.checksFeatured = err == nil && v.AtLeast(8, 0, 16)
	})
	return m.checksFeatured
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
