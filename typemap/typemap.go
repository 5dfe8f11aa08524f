package typemap

import (
	"fmt"
	"reflect"
	"sync"

	schemakit "github.com/shibukawa/schemakit"
)

// Defaults are the dimensions applied when the source descriptor omits them.
const (
	DefaultStringLength     = 255
	DefaultBinaryLength     = 255
	DefaultDecimalPrecision = 16
	DefaultDecimalScale     = 4
	DefaultGuidStringLength = 36
)

// TypeMap converts between Go type descriptors and one engine's native SQL
// type syntax. Implementations are stateless and safe for concurrent use.
type TypeMap interface {
	ProviderType() schemakit.ProviderType

	// IsUnicodeByDefault reports whether the engine stores plain string types
	// as unicode. Engines answering false (SQL Server) must pick distinct
	// native names depending on the descriptor's IsUnicode flag.
	IsUnicodeByDefault() bool

	// GoType maps a raw native type string to a Go type descriptor.
	GoType(sqlType string) (*GoTypeDescriptor, bool)

	// GoTypeFor maps a pre-parsed native type descriptor to a Go descriptor.
	GoTypeFor(d *SQLTypeDescriptor) (*GoTypeDescriptor, bool)

	// SQLType maps a Go type descriptor to a fully formed native type.
	SQLType(d *GoTypeDescriptor) (*SQLTypeDescriptor, bool)
}

// For returns the builtin type map for a provider, or nil for ProviderOther.
func For(p schemakit.ProviderType) TypeMap {
	switch p {
	case schemakit.ProviderSqlite:
		return SqliteTypeMap{}
	case schemakit.ProviderSqlServer:
		return SqlServerTypeMap{}
	case schemakit.ProviderMySQL:
		return MySQLTypeMap{}
	case schemakit.ProviderPostgreSQL:
		return PostgresTypeMap{}
	default:
		return nil
	}
}

// ConflictPolicy decides what happens when a custom mapping is registered for
// a (provider, base type) pair that already has one.
type ConflictPolicy int

const (
	SkipIfExists ConflictPolicy = iota
	Override
	ErrorIfExists
)

// RegisterOptions configures custom mapping registration. Registration is an
// explicit, caller-invoked startup step, never an implicit side effect.
type RegisterOptions struct {
	Policy ConflictPolicy
}

var (
	customMu      sync.RWMutex
	customGoTypes = map[schemakit.ProviderType]map[string]reflect.Type{}
)

// RegisterGoType registers a custom native-base-type-to-Go-type mapping for
// one provider, consulted before the builtin tables. Safe to call repeatedly;
// the conflict policy decides how an existing registration is treated.
func RegisterGoType(p schemakit.ProviderType, baseTypeName string, goType reflect.Type, opts RegisterOptions) error {
	customMu.Lock()
	defer customMu.Unlock()

	byBase := customGoTypes[p]
	if byBase == nil {
		byBase = make(map[string]reflect.Type)
		customGoTypes[p] = byBase
	}

	key := ParseSQLType(baseTypeName).BaseTypeName
	if _, exists := byBase[key]; exists {
		switch opts.Policy {
		case SkipIfExists:
			return nil
		case ErrorIfExists:
			return fmt.Errorf("%w: %s/%s", ErrMappingAlreadyRegistered, p, key)
		}
	}

	byBase[key] = goType
	return nil
}

// ResetCustomMappings clears all custom registrations. Test isolation only.
func ResetCustomMappings() {
	customMu.Lock()
	defer customMu.Unlock()
	customGoTypes = map[schemakit.ProviderType]map[string]reflect.Type{}
}

// customGoTypeFor looks up a registered custom mapping.
func customGoTypeFor(p schemakit.ProviderType, baseTypeName string) (reflect.Type, bool) {
	customMu.RLock()
	defer customMu.RUnlock()

	t, ok := customGoTypes[p][baseTypeName]
	return t, ok
}
