package typemap

import (
	"fmt"

	schemakit "github.com/shibukawa/schemakit"
)

// MySQLTypeMap converts between Go types and MySQL/MariaDB native type
// syntax. Modern MySQL stores text as utf8mb4, so string types are unicode
// regardless of the IsUnicode flag.
type MySQLTypeMap struct{}

func (MySQLTypeMap) ProviderType() schemakit.ProviderType { return schemakit.ProviderMySQL }
func (MySQLTypeMap) IsUnicodeByDefault() bool             { return true }

func (m MySQLTypeMap) GoType(sqlType string) (*GoTypeDescriptor, bool) {
	return m.GoTypeFor(ParseSQLType(sqlType))
}

func (m MySQLTypeMap) GoTypeFor(d *SQLTypeDescriptor) (*GoTypeDescriptor, bool) {
	if t, ok := customGoTypeFor(schemakit.ProviderMySQL, d.BaseTypeName); ok {
		return goDescriptorFrom(t, d, false), true
	}
	if t, ok := spatialGoTypeFor(schemakit.ProviderMySQL, d.BaseTypeName); ok {
		return goDescriptorFrom(t, d, false), true
	}

	switch d.BaseTypeName {
	case "tinyint":
		// tinyint(1) is the conventional boolean spelling.
		if d.Length != nil && *d.Length == 1 {
			return goDescriptorFrom(BoolType, d, false), true
		}
		return goDescriptorFrom(Int8Type, d, false), true
	case "bool", "boolean":
		return goDescriptorFrom(BoolType, d, false), true
	case "smallint", "year":
		return goDescriptorFrom(Int16Type, d, false), true
	case "int", "integer", "mediumint":
		return goDescriptorFrom(Int32Type, d, false), true
	case "bigint":
		return goDescriptorFrom(Int64Type, d, false), true
	case "float":
		return goDescriptorFrom(Float32Type, d, false), true
	case "double", "double precision", "real":
		return goDescriptorFrom(Float64Type, d, false), true
	case "decimal", "numeric", "dec", "fixed":
		return goDescriptorFrom(DecimalType, d, false), true
	case "char", "character":
		if d.Length != nil && *d.Length == DefaultGuidStringLength {
			return goDescriptorFrom(UUIDType, d, false), true
		}
		return goDescriptorFrom(StringType, d, false), true
	case "varchar", "character varying":
		return goDescriptorFrom(StringType, d, d.Length == nil), true
	case "tinytext", "text", "mediumtext", "longtext":
		return goDescriptorFrom(StringType, d, true), true
	case "enum", "set":
		return goDescriptorFrom(StringType, d, false), true
	case "binary", "varbinary":
		return goDescriptorFrom(BytesType, d, false), true
	case "tinyblob", "blob", "mediumblob", "longblob":
		return goDescriptorFrom(BytesType, d, true), true
	case "date", "time", "datetime", "timestamp":
		return goDescriptorFrom(TimeType, d, false), true
	case "json":
		return goDescriptorFrom(MapType, d, false), true
	case "bit":
		return goDescriptorFrom(Int64Type, d, false), true
	default:
		return nil, false
	}
}

func (m MySQLTypeMap) SQLType(gd *GoTypeDescriptor) (*SQLTypeDescriptor, bool) {
	t := gd.Elem()

	if name, ok := spatialSQLTypeFor(schemakit.ProviderMySQL, t); ok {
		return ParseSQLType(name), true
	}

	switch classifyGoType(t) {
	case classBool:
		return ParseSQLType("tinyint(1)"), true
	case classInt8:
		return ParseSQLType("tinyint"), true
	case classInt16:
		return ParseSQLType("smallint"), true
	case classInt32:
		return ParseSQLType("int"), true
	case classInt64:
		return ParseSQLType("bigint"), true
	case classFloat32:
		return ParseSQLType("float"), true
	case classFloat64:
		return ParseSQLType("double"), true
	case classDecimal:
		p, s := precisionOrDefault(gd.Precision, gd.Scale)
		return ParseSQLType(fmt.Sprintf("decimal(%d,%d)", p, s)), true
	case classUUID:
		return ParseSQLType(fmt.Sprintf("char(%d)", DefaultGuidStringLength)), true
	case classTime:
		return ParseSQLType("datetime(6)"), true
	case classBytes:
		length := lengthOrDefault(gd.Length, UnboundedLength)
		if length == UnboundedLength {
			return ParseSQLType("longblob"), true
		}
		if gd.IsFixedLength {
			return ParseSQLType(fmt.Sprintf("binary(%d)", length)), true
		}
		return ParseSQLType(fmt.Sprintf("varbinary(%d)", length)), true
	case classString:
		length := lengthOrDefault(gd.Length, DefaultStringLength)
		if length == UnboundedLength {
			return ParseSQLType("longtext"), true
		}
		if gd.IsFixedLength {
			return ParseSQLType(fmt.Sprintf("char(%d)", length)), true
		}
		return ParseSQLType(fmt.Sprintf("varchar(%d)", length)), true
	case classJSON:
		return ParseSQLType("json"), true
	default:
		return nil, false
	}
}
