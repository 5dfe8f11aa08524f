package typemap

import (
	"fmt"

	schemakit "github.com/shibukawa/schemakit"
)

// PostgresTypeMap converts between Go types and PostgreSQL native type
// syntax. PostgreSQL text types are always unicode, so the IsUnicode flag
// never changes the chosen native name.
type PostgresTypeMap struct{}

func (PostgresTypeMap) ProviderType() schemakit.ProviderType { return schemakit.ProviderPostgreSQL }
func (PostgresTypeMap) IsUnicodeByDefault() bool             { return true }

func (m PostgresTypeMap) GoType(sqlType string) (*GoTypeDescriptor, bool) {
	return m.GoTypeFor(ParseSQLType(sqlType))
}

func (m PostgresTypeMap) GoTypeFor(d *SQLTypeDescriptor) (*GoTypeDescriptor, bool) {
	if t, ok := customGoTypeFor(schemakit.ProviderPostgreSQL, d.BaseTypeName); ok {
		return goDescriptorFrom(t, d, false), true
	}
	if t, ok := spatialGoTypeFor(schemakit.ProviderPostgreSQL, d.BaseTypeName); ok {
		return goDescriptorFrom(t, d, false), true
	}

	switch d.BaseTypeName {
	case "boolean", "bool":
		return goDescriptorFrom(BoolType, d, false), true
	case "smallint", "int2", "smallserial", "serial2":
		return goDescriptorFrom(Int16Type, d, false), true
	case "integer", "int", "int4", "serial", "serial4":
		return goDescriptorFrom(Int32Type, d, false), true
	case "bigint", "int8", "bigserial", "serial8":
		return goDescriptorFrom(Int64Type, d, false), true
	case "real", "float4":
		return goDescriptorFrom(Float32Type, d, false), true
	case "double precision", "float8", "float":
		return goDescriptorFrom(Float64Type, d, false), true
	case "numeric", "decimal", "money":
		return goDescriptorFrom(DecimalType, d, false), true
	case "uuid":
		return goDescriptorFrom(UUIDType, d, false), true
	case "text":
		return goDescriptorFrom(StringType, d, true), true
	case "varchar", "character varying":
		return goDescriptorFrom(StringType, d, d.Length == nil), true
	case "char", "character", "bpchar":
		return goDescriptorFrom(StringType, d, false), true
	case "bytea":
		return goDescriptorFrom(BytesType, d, true), true
	case "date", "time", "timetz", "time with time zone", "time without time zone",
		"timestamp", "timestamptz", "timestamp with time zone", "timestamp without time zone":
		return goDescriptorFrom(TimeType, d, false), true
	case "interval":
		return goDescriptorFrom(StringType, d, false), true
	case "json", "jsonb":
		return goDescriptorFrom(MapType, d, false), true
	case "xml":
		return goDescriptorFrom(StringType, d, true), true
	case "inet", "cidr", "macaddr", "macaddr8":
		return goDescriptorFrom(StringType, d, false), true
	case "int4range", "int8range", "numrange", "tsrange", "tstzrange", "daterange":
		return goDescriptorFrom(StringType, d, false), true
	case "bit", "bit varying", "varbit", "tsvector", "tsquery":
		return goDescriptorFrom(StringType, d, false), true
	default:
		return nil, false
	}
}

func (m PostgresTypeMap) SQLType(gd *GoTypeDescriptor) (*SQLTypeDescriptor, bool) {
	t := gd.Elem()

	if name, ok := spatialSQLTypeFor(schemakit.ProviderPostgreSQL, t); ok {
		return ParseSQLType(name), true
	}

	switch classifyGoType(t) {
	case classBool:
		return ParseSQLType("boolean"), true
	case classInt8, classInt16:
		return ParseSQLType("smallint"), true
	case classInt32:
		return ParseSQLType("integer"), true
	case classInt64:
		return ParseSQLType("bigint"), true
	case classFloat32:
		return ParseSQLType("real"), true
	case classFloat64:
		return ParseSQLType("double precision"), true
	case classDecimal:
		p, s := precisionOrDefault(gd.Precision, gd.Scale)
		return ParseSQLType(fmt.Sprintf("numeric(%d,%d)", p, s)), true
	case classUUID:
		return ParseSQLType("uuid"), true
	case classTime:
		return ParseSQLType("timestamp with time zone"), true
	case classBytes:
		return ParseSQLType("bytea"), true
	case classString:
		length := lengthOrDefault(gd.Length, DefaultStringLength)
		if length == UnboundedLength {
			return ParseSQLType("text"), true
		}
		if gd.IsFixedLength {
			return ParseSQLType(fmt.Sprintf("char(%d)", length)), true
		}
		return ParseSQLType(fmt.Sprintf("varchar(%d)", length)), true
	case classJSON:
		return ParseSQLType("jsonb"), true
	default:
		return nil, false
	}
}
