package typemap

import (
	"fmt"

	schemakit "github.com/shibukawa/schemakit"
)

// SqlServerTypeMap converts between Go types and SQL Server native type
// syntax. SQL Server is not unicode by default: a descriptor's IsUnicode flag
// switches between the var/char and nvar/nchar families, and unbounded
// storage is spelled "(max)".
type SqlServerTypeMap struct{}

func (SqlServerTypeMap) ProviderType() schemakit.ProviderType { return schemakit.ProviderSqlServer }
func (SqlServerTypeMap) IsUnicodeByDefault() bool             { return false }

func (m SqlServerTypeMap) GoType(sqlType string) (*GoTypeDescriptor, bool) {
	return m.GoTypeFor(ParseSQLType(sqlType))
}

func (m SqlServerTypeMap) GoTypeFor(d *SQLTypeDescriptor) (*GoTypeDescriptor, bool) {
	if t, ok := customGoTypeFor(schemakit.ProviderSqlServer, d.BaseTypeName); ok {
		return goDescriptorFrom(t, d, false), true
	}
	if t, ok := spatialGoTypeFor(schemakit.ProviderSqlServer, d.BaseTypeName); ok {
		return goDescriptorFrom(t, d, false), true
	}

	switch d.BaseTypeName {
	case "bit":
		return goDescriptorFrom(BoolType, d, false), true
	case "tinyint":
		return goDescriptorFrom(Int8Type, d, false), true
	case "smallint":
		return goDescriptorFrom(Int16Type, d, false), true
	case "int":
		return goDescriptorFrom(Int32Type, d, false), true
	case "bigint":
		return goDescriptorFrom(Int64Type, d, false), true
	case "real":
		return goDescriptorFrom(Float32Type, d, false), true
	case "float":
		return goDescriptorFrom(Float64Type, d, false), true
	case "decimal", "numeric", "money", "smallmoney":
		return goDescriptorFrom(DecimalType, d, false), true
	case "uniqueidentifier":
		return goDescriptorFrom(UUIDType, d, false), true
	case "char", "varchar", "nchar", "nvarchar":
		return goDescriptorFrom(StringType, d, false), true
	case "text", "ntext":
		return goDescriptorFrom(StringType, d, true), true
	case "binary", "varbinary":
		return goDescriptorFrom(BytesType, d, false), true
	case "image":
		return goDescriptorFrom(BytesType, d, true), true
	case "date", "time", "datetime", "datetime2", "smalldatetime", "datetimeoffset":
		return goDescriptorFrom(TimeType, d, false), true
	case "json":
		return goDescriptorFrom(MapType, d, false), true
	case "xml":
		return goDescriptorFrom(StringType, d, true), true
	case "rowversion", "timestamp":
		return goDescriptorFrom(BytesType, d, false), true
	case "sql_variant", "sysname":
		return goDescriptorFrom(StringType, d, false), true
	default:
		return nil, false
	}
}

func (m SqlServerTypeMap) SQLType(gd *GoTypeDescriptor) (*SQLTypeDescriptor, bool) {
	t := gd.Elem()

	if name, ok := spatialSQLTypeFor(schemakit.ProviderSqlServer, t); ok {
		return ParseSQLType(name), true
	}

	switch classifyGoType(t) {
	case classBool:
		return ParseSQLType("bit"), true
	case classInt8:
		return ParseSQLType("tinyint"), true
	case classInt16:
		return ParseSQLType("smallint"), true
	case classInt32:
		return ParseSQLType("int"), true
	case classInt64:
		return ParseSQLType("bigint"), true
	case classFloat32:
		return ParseSQLType("real"), true
	case classFloat64:
		return ParseSQLType("float"), true
	case classDecimal:
		p, s := precisionOrDefault(gd.Precision, gd.Scale)
		return ParseSQLType(fmt.Sprintf("decimal(%d,%d)", p, s)), true
	case classUUID:
		return ParseSQLType("uniqueidentifier"), true
	case classTime:
		return ParseSQLType("datetime2"), true
	case classBytes:
		length := lengthOrDefault(gd.Length, UnboundedLength)
		if length == UnboundedLength {
			return ParseSQLType("varbinary(max)"), true
		}
		if gd.IsFixedLength {
			return ParseSQLType(fmt.Sprintf("binary(%d)", length)), true
		}
		return ParseSQLType(fmt.Sprintf("varbinary(%d)", length)), true
	case classString:
		return m.stringSQLType(gd), true
	case classJSON:
		// nvarchar(max) keeps JSON readable on engines without a json type.
		return ParseSQLType("nvarchar(max)"), true
	default:
		return nil, false
	}
}

func (m SqlServerTypeMap) stringSQLType(gd *GoTypeDescriptor) *SQLTypeDescriptor {
	length := lengthOrDefault(gd.Length, DefaultStringLength)

	family := "varchar"
	if gd.IsFixedLength {
		family = "char"
	}
	if gd.IsUnicode {
		family = "n" + family
	}

	if length == UnboundedLength {
		return ParseSQLType(family + "(max)")
	}
	return ParseSQLType(fmt.Sprintf("%s(%d)", family, length))
}
