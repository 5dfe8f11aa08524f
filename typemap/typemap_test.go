package typemap

import (
	"reflect"
	"testing"

	"github.com/alecthomas/assert/v2"
	schemakit "github.com/shibukawa/schemakit"
)

func TestParseSQLType(t *testing.T) {
	tests := []struct {
		input         string
		base          string
		length        *int
		precision     *int
		scale         *int
		isUnicode     bool
		isFixedLength bool
	}{
		{input: "varchar(255)", base: "varchar", length: intPtr(255)},
		{input: "NVARCHAR(100)", base: "nvarchar", length: intPtr(100), isUnicode: true},
		{input: "nvarchar(max)", base: "nvarchar", length: intPtr(UnboundedLength), isUnicode: true},
		{input: "varbinary(MAX)", base: "varbinary", length: intPtr(UnboundedLength)},
		{input: "decimal(10,2)", base: "decimal", precision: intPtr(10), scale: intPtr(2)},
		{input: "numeric(16, 4)", base: "numeric", precision: intPtr(16), scale: intPtr(4)},
		{input: "char(8)", base: "char", length: intPtr(8), isFixedLength: true},
		{input: "text", base: "text"},
		{input: "timestamp(6) with time zone", base: "timestamp with time zone", precision: intPtr(6)},
		{input: "time(3) with time zone", base: "time with time zone", precision: intPtr(3)},
		{input: "character varying(40)[]", base: "character varying", length: intPtr(40)},
		{input: "double precision", base: "double precision"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := ParseSQLType(tt.input)
			assert.Equal(t, tt.input, d.SQLTypeName)
			assert.Equal(t, tt.base, d.BaseTypeName)
			assert.Equal(t, tt.length, d.Length)
			assert.Equal(t, tt.precision, d.Precision)
			assert.Equal(t, tt.scale, d.Scale)
			assert.Equal(t, tt.isUnicode, d.IsUnicode)
			assert.Equal(t, tt.isFixedLength, d.IsFixedLength)
		})
	}
}

func TestRoundTripPreservesCategory(t *testing.T) {
	providers := []schemakit.ProviderType{
		schemakit.ProviderSqlite,
		schemakit.ProviderSqlServer,
		schemakit.ProviderMySQL,
		schemakit.ProviderPostgreSQL,
	}

	goTypes := []reflect.Type{
		BoolType, Int16Type, Int32Type, Int64Type,
		Float32Type, Float64Type, DecimalType, UUIDType,
		TimeType, StringType, BytesType,
	}

	// SQLite's affinity model widens some categories on the way back:
	// float32 comes back as float64 and uuids as their string storage form.
	sqliteWidened := map[goClass]goClass{
		classFloat32: classFloat64,
		classUUID:    classString,
	}

	for _, p := range providers {
		tm := For(p)
		assert.NotZero(t, tm)

		for _, goType := range goTypes {
			t.Run(string(p)+"/"+goType.String(), func(t *testing.T) {
				sd, ok := tm.SQLType(NewGoType(goType))
				assert.True(t, ok)

				gd, ok := tm.GoType(sd.SQLTypeName)
				assert.True(t, ok)

				expected := classifyGoType(goType)
				if p == schemakit.ProviderSqlite {
					if widened, ok := sqliteWidened[expected]; ok {
						expected = widened
					}
				}
				assert.Equal(t, expected, classifyGoType(gd.Elem()))
			})
		}
	}
}

func TestDecimalParametersPreserved(t *testing.T) {
	for _, p := range []schemakit.ProviderType{
		schemakit.ProviderSqlServer, schemakit.ProviderMySQL, schemakit.ProviderPostgreSQL,
	} {
		tm := For(p)

		sd, ok := tm.SQLType(NewGoType(DecimalType).WithPrecision(12, 3))
		assert.True(t, ok)
		assert.Equal(t, 12, *sd.Precision)
		assert.Equal(t, 3, *sd.Scale)

		gd, ok := tm.GoType(sd.SQLTypeName)
		assert.True(t, ok)
		assert.Equal(t, 12, *gd.Precision)
		assert.Equal(t, 3, *gd.Scale)
	}
}

func TestDecimalDefaultsApplied(t *testing.T) {
	tm := For(schemakit.ProviderPostgreSQL)

	sd, ok := tm.SQLType(NewGoType(DecimalType))
	assert.True(t, ok)
	assert.Equal(t, "numeric(16,4)", sd.SQLTypeName)
	assert.Equal(t, DefaultDecimalPrecision, *sd.Precision)
	assert.Equal(t, DefaultDecimalScale, *sd.Scale)
}

func TestStringLengthDefaultsApplied(t *testing.T) {
	tm := For(schemakit.ProviderMySQL)

	sd, ok := tm.SQLType(NewGoType(StringType))
	assert.True(t, ok)
	assert.Equal(t, DefaultStringLength, *sd.Length)
}

func TestUnboundedStringMapsToTextTypes(t *testing.T) {
	tests := []struct {
		provider schemakit.ProviderType
		expected string
	}{
		{schemakit.ProviderPostgreSQL, "text"},
		{schemakit.ProviderSqlite, "text"},
		{schemakit.ProviderMySQL, "longtext"},
		{schemakit.ProviderSqlServer, "varchar(max)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			tm := For(tt.provider)
			sd, ok := tm.SQLType(NewGoType(StringType).WithLength(UnboundedLength))
			assert.True(t, ok)
			assert.Equal(t, tt.expected, sd.SQLTypeName)
		})
	}
}

func TestSqlServerUnicodePicksDistinctNames(t *testing.T) {
	tm := SqlServerTypeMap{}
	assert.False(t, tm.IsUnicodeByDefault())

	plain, ok := tm.SQLType(NewGoType(StringType).WithLength(100))
	assert.True(t, ok)
	assert.Equal(t, "varchar(100)", plain.SQLTypeName)

	unicode, ok := tm.SQLType(NewGoType(StringType).WithLength(100).Unicode())
	assert.True(t, ok)
	assert.Equal(t, "nvarchar(100)", unicode.SQLTypeName)

	fixed, ok := tm.SQLType(NewGoType(StringType).WithLength(8).FixedLength().Unicode())
	assert.True(t, ok)
	assert.Equal(t, "nchar(8)", fixed.SQLTypeName)
}

func TestPointerTypesUnwrap(t *testing.T) {
	tm := For(schemakit.ProviderPostgreSQL)

	direct, ok := tm.SQLType(NewGoType(Int64Type))
	assert.True(t, ok)

	viaPointer, ok := tm.SQLType(NewGoType(reflect.PointerTo(Int64Type)))
	assert.True(t, ok)
	assert.Equal(t, direct.SQLTypeName, viaPointer.SQLTypeName)
}

func TestUnmappedTypeReturnsFalse(t *testing.T) {
	for _, p := range []schemakit.ProviderType{
		schemakit.ProviderSqlite, schemakit.ProviderSqlServer,
		schemakit.ProviderMySQL, schemakit.ProviderPostgreSQL,
	} {
		tm := For(p)
		gd, ok := tm.GoType("no_such_type_anywhere")
		assert.False(t, ok)
		assert.Zero(t, gd)
	}
}

func TestRegisterGoTypeCustomMapping(t *testing.T) {
	t.Cleanup(ResetCustomMappings)

	_, ok := PostgresTypeMap{}.GoType("citext")
	assert.False(t, ok)

	err := RegisterGoType(schemakit.ProviderPostgreSQL, "citext", StringType, RegisterOptions{})
	assert.NoError(t, err)

	gd, ok := PostgresTypeMap{}.GoType("citext")
	assert.True(t, ok)
	assert.Equal(t, StringType, gd.Type)

	// SkipIfExists keeps the first registration.
	err = RegisterGoType(schemakit.ProviderPostgreSQL, "citext", Int64Type, RegisterOptions{Policy: SkipIfExists})
	assert.NoError(t, err)
	gd, _ = PostgresTypeMap{}.GoType("citext")
	assert.Equal(t, StringType, gd.Type)

	// Override replaces it.
	err = RegisterGoType(schemakit.ProviderPostgreSQL, "citext", Int64Type, RegisterOptions{Policy: Override})
	assert.NoError(t, err)
	gd, _ = PostgresTypeMap{}.GoType("citext")
	assert.Equal(t, Int64Type, gd.Type)

	// ErrorIfExists rejects the conflict.
	err = RegisterGoType(schemakit.ProviderPostgreSQL, "citext", StringType, RegisterOptions{Policy: ErrorIfExists})
	assert.Error(t, err)
}
