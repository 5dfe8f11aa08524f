package methods

import (
	"database/sql/driver"
	"testing"

	"github.com/alecthomas/assert/v2"
	schemakit "github.com/shibukawa/schemakit"
)

type fakeDriver struct{}

func (fakeDriver) Open(name string) (driver.Conn, error) { return nil, driver.ErrBadConn }

type wrapperDriver struct{ inner driver.Driver }

func (w wrapperDriver) Open(name string) (driver.Conn, error) { return w.inner.Open(name) }

type stubFactory struct {
	supports func(driver.Driver) bool
	methods  DatabaseMethods
}

func (f stubFactory) SupportsDriver(d driver.Driver) bool { return f.supports(d) }
func (f stubFactory) Methods() DatabaseMethods            { return f.methods }

// stubMethods only needs identity; the DatabaseMethods surface is never
// called in dispatch tests.
type stubMethods struct {
	DatabaseMethods
	tag string
}

func TestForDriverUnsupported(t *testing.T) {
	_, err := ForDriver(fakeDriver{})
	assert.IsError(t, err, schemakit.ErrUnsupportedProvider)
}

func TestForDriverNativeDispatch(t *testing.T) {
	t.Cleanup(func() { nativeFactories.Delete(schemakit.ProviderType("test-native")) })
	t.Cleanup(invalidateCache)

	native := stubMethods{tag: "native"}
	RegisterFactory("test-native", stubFactory{
		supports: func(d driver.Driver) bool { _, ok := d.(fakeDriver); return ok },
		methods:  native,
	})

	resolved, err := ForDriver(fakeDriver{})
	assert.NoError(t, err)
	assert.Equal(t, "native", resolved.(stubMethods).tag)

	// Memoized: a second resolution returns the identical value.
	again, err := ForDriver(fakeDriver{})
	assert.NoError(t, err)
	assert.Equal(t, resolved, again)
}

func TestForDriverCustomFactoryWinsOverNative(t *testing.T) {
	t.Cleanup(func() {
		nativeFactories.Delete(schemakit.ProviderType("test-native"))
		customFactories.Delete("test-custom")
		invalidateCache()
	})

	matchFake := func(d driver.Driver) bool { _, ok := d.(fakeDriver); return ok }

	RegisterFactory("test-native", stubFactory{
		supports: matchFake,
		methods:  stubMethods{tag: "native"},
	})
	RegisterCustomFactory("test-custom", stubFactory{
		supports: matchFake,
		methods:  stubMethods{tag: "custom"},
	})

	resolved, err := ForDriver(fakeDriver{})
	assert.NoError(t, err)
	assert.Equal(t, "custom", resolved.(stubMethods).tag)
}

func TestRegisterInvalidatesMemoization(t *testing.T) {
	t.Cleanup(func() {
		nativeFactories.Delete(schemakit.ProviderType("test-native"))
		invalidateCache()
	})

	matchFake := func(d driver.Driver) bool { _, ok := d.(fakeDriver); return ok }

	RegisterFactory("test-native", stubFactory{
		supports: matchFake,
		methods:  stubMethods{tag: "first"},
	})
	resolved, err := ForDriver(fakeDriver{})
	assert.NoError(t, err)
	assert.Equal(t, "first", resolved.(stubMethods).tag)

	// Re-registration overwrites and drops the cached resolution.
	RegisterFactory("test-native", stubFactory{
		supports: matchFake,
		methods:  stubMethods{tag: "second"},
	})
	resolved, err = ForDriver(fakeDriver{})
	assert.NoError(t, err)
	assert.Equal(t, "second", resolved.(stubMethods).tag)
}

func TestForDriverSeesWrapperDrivers(t *testing.T) {
	t.Cleanup(func() {
		customFactories.Delete("test-wrapper")
		invalidateCache()
	})

	RegisterCustomFactory("test-wrapper", stubFactory{
		supports: func(d driver.Driver) bool {
			_, ok := d.(wrapperDriver)
			return ok
		},
		methods: stubMethods{tag: "wrapped"},
	})

	resolved, err := ForDriver(wrapperDriver{inner: fakeDriver{}})
	assert.NoError(t, err)
	assert.Equal(t, "wrapped", resolved.(stubMethods).tag)
}
