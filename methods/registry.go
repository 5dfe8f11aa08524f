package methods

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"reflect"
	"sync"

	schemakit "github.com/shibukawa/schemakit"
)

// Factory produces the methods implementation for connections it recognizes.
// SupportsDriver inspects the connection's driver (including wrapper drivers
// a test or profiling layer may install).
type Factory interface {
	SupportsDriver(d driver.Driver) bool
	Methods() DatabaseMethods
}

var (
	nativeFactories sync.Map // schemakit.ProviderType -> Factory
	customFactories sync.Map // string -> Factory
	methodsCache    sync.Map // reflect.Type (driver) -> DatabaseMethods
)

// RegisterFactory registers (or replaces) the factory for a native provider.
// Provider packages call this from init; tests replace entries to inject
// wrappers.
func RegisterFactory(p schemakit.ProviderType, f Factory) {
	nativeFactories.Store(p, f)
	invalidateCache()
}

// RegisterCustomFactory registers (or replaces) a custom factory under an
// arbitrary name. Custom factories are consulted before native ones; when
// several match, which one wins is unspecified.
func RegisterCustomFactory(name string, f Factory) {
	customFactories.Store(name, f)
	invalidateCache()
}

func invalidateCache() {
	methodsCache.Range(func(k, _ any) bool {
		methodsCache.Delete(k)
		return true
	})
}

// For resolves the methods implementation for a live connection by probing
// the registered factories against the connection's driver, custom factories
// first. The resolved instance is memoized per concrete driver type, so
// repeated dispatch is a single map load. No match yields
// schemakit.ErrUnsupportedProvider naming the driver's concrete type.
func For(db *sql.DB) (DatabaseMethods, error) {
	return ForDriver(db.Driver())
}

// ForDriver is the driver-level dispatch behind For.
func ForDriver(d driver.Driver) (DatabaseMethods, error) {
	key := reflect.TypeOf(d)
	if cached, ok := methodsCache.Load(key); ok {
		return cached.(DatabaseMethods), nil
	}

	var resolved DatabaseMethods

	customFactories.Range(func(_, v any) bool {
		f := v.(Factory)
		if f.SupportsDriver(d) {
			resolved = f.Methods()
			return false
		}
		return true
	})

	if resolved == nil {
		nativeFactories.Range(func(_, v any) bool {
			f := v.(Factory)
			if f.SupportsDriver(d) {
				resolved = f.Methods()
				return false
			}
			return true
		})
	}

	if resolved == nil {
		return nil, fmt.Errorf("%w: no methods factory matches driver %v", schemakit.ErrUnsupportedProvider, key)
	}

	methodsCache.Store(key, resolved)
	return resolved, nil
}
