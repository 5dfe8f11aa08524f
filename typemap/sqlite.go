package typemap

import (
	"fmt"

	schemakit "github.com/shibukawa/schemakit"
)

// SqliteTypeMap converts between Go types and SQLite type names. SQLite
// resolves any declared type to one of five storage affinities, so the map
// emits conventional rich names (the affinity rules keep them valid) and
// reads both the rich names and the bare affinity names back.
type SqliteTypeMap struct{}

func (SqliteTypeMap) ProviderType() schemakit.ProviderType { return schemakit.ProviderSqlite }
func (SqliteTypeMap) IsUnicodeByDefault() bool             { return true }

func (m SqliteTypeMap) GoType(sqlType string) (*GoTypeDescriptor, bool) {
	return m.GoTypeFor(ParseSQLType(sqlType))
}

func (m SqliteTypeMap) GoTypeFor(d *SQLTypeDescriptor) (*GoTypeDescriptor, bool) {
	if t, ok := customGoTypeFor(schemakit.ProviderSqlite, d.BaseTypeName); ok {
		return goDescriptorFrom(t, d, false), true
	}
	if t, ok := spatialGoTypeFor(schemakit.ProviderSqlite, d.BaseTypeName); ok {
		return goDescriptorFrom(t, d, false), true
	}

	switch d.BaseTypeName {
	case "boolean", "bool":
		return goDescriptorFrom(BoolType, d, false), true
	case "tinyint":
		return goDescriptorFrom(Int8Type, d, false), true
	case "smallint", "int2":
		return goDescriptorFrom(Int16Type, d, false), true
	case "mediumint", "int":
		return goDescriptorFrom(Int32Type, d, false), true
	case "integer", "bigint", "int8", "unsigned big int":
		return goDescriptorFrom(Int64Type, d, false), true
	case "real", "double", "double precision", "float":
		return goDescriptorFrom(Float64Type, d, false), true
	case "decimal", "numeric":
		return goDescriptorFrom(DecimalType, d, false), true
	case "uuid", "guid", "uniqueidentifier":
		return goDescriptorFrom(UUIDType, d, false), true
	case "text", "clob":
		return goDescriptorFrom(StringType, d, true), true
	case "varchar", "nvarchar", "character varying", "varying character", "native character":
		return goDescriptorFrom(StringType, d, d.Length == nil), true
	case "char", "nchar", "character":
		return goDescriptorFrom(StringType, d, false), true
	case "blob":
		return goDescriptorFrom(BytesType, d, true), true
	case "date", "time", "datetime", "timestamp":
		return goDescriptorFrom(TimeType, d, false), true
	case "json", "jsonb":
		return goDescriptorFrom(MapType, d, false), true
	case "":
		// Untyped columns (SQLite allows them) get blob affinity.
		return goDescriptorFrom(BytesType, d, true), true
	default:
		return nil, false
	}
}

func (m SqliteTypeMap) SQLType(gd *GoTypeDescriptor) (*SQLTypeDescriptor, bool) {
	t := gd.Elem()

	if name, ok := spatialSQLTypeFor(schemakit.ProviderSqlite, t); ok {
		return ParseSQLType(name), true
	}

	switch classifyGoType(t) {
	case classBool:
		return ParseSQLType("boolean"), true
	case classInt8:
		return ParseSQLType("tinyint"), true
	case classInt16:
		return ParseSQLType("smallint"), true
	case classInt32:
		return ParseSQLType("int"), true
	case classInt64:
		return ParseSQLType("integer"), true
	case classFloat32, classFloat64:
		return ParseSQLType("real"), true
	case classDecimal:
		p, s := precisionOrDefault(gd.Precision, gd.Scale)
		return ParseSQLType(fmt.Sprintf("numeric(%d,%d)", p, s)), true
	case classUUID:
		return ParseSQLType(fmt.Sprintf("varchar(%d)", DefaultGuidStringLength)), true
	case classTime:
		return ParseSQLType("datetime"), true
	case classBytes:
		return ParseSQLType("blob"), true
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
		return ParseSQLType("text"), true
	default:
		return nil, false
	}
}
