package methods

import "errors"

// Input validation errors. These surface before any I/O is attempted so a
// failed call can never leave a partial mutation behind.
var (
	ErrSchemaNameRequired     = errors.New("schema name is required")
	ErrTableNameRequired      = errors.New("table name is required")
	ErrColumnNameRequired     = errors.New("column name is required")
	ErrConstraintNameRequired = errors.New("constraint name is required")
	ErrIndexNameRequired      = errors.New("index name is required")
	ErrViewNameRequired       = errors.New("view name is required")
	ErrNewNameRequired        = errors.New("new name is required")
	ErrNoColumnsSpecified     = errors.New("at least one column is required")
	ErrExpressionRequired     = errors.New("constraint expression is required")
	ErrDefinitionRequired     = errors.New("view definition is required")
	ErrNoTypeMapping          = errors.New("no SQL type mapping for column type")
)

// Catalog/DDL handling errors.
var (
	// ErrMalformedViewDefinition is returned when a catalog-stored view
	// definition has no locatable top-level AS boundary. Silently stripping
	// at the wrong place would corrupt the definition, so this is fatal.
	ErrMalformedViewDefinition = errors.New("view definition has no locatable AS boundary")

	// ErrSchemasNotSupported marks schema DDL on engines without a schema
	// namespace (SQLite, MySQL). Read probes still answer normally.
	ErrSchemasNotSupported = errors.New("engine has no schema namespace")
)
