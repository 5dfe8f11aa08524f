package datatypes

import schemakit "github.com/shibukawa/schemakit"

// MySQL is the MySQL/MariaDB data type catalog.
var MySQL = NewRegistry(schemakit.ProviderMySQL, registerMySQLDataTypes)

func registerMySQLDataTypes(add func(...*DataTypeInfo)) {
	add(
		CreateSimpleType("boolean", []string{"bool"}, CategoryBoolean, true),

		CreateIntegerType("tinyint", nil, true),
		CreateIntegerType("smallint", nil, true),
		advanced(CreateIntegerType("mediumint", nil, false)),
		CreateIntegerType("int", []string{"integer"}, true),
		CreateIntegerType("bigint", nil, true),
		advanced(CreateIntegerType("year", nil, false)),

		CreateDecimalType("decimal", []string{"numeric", "dec", "fixed"}, true, 65, 16, 30, 4),
		CreateSimpleType("float", nil, CategoryDecimal, true),
		CreateSimpleType("double", []string{"double precision", "real"}, CategoryDecimal, true),

		CreateStringType("char", []string{"character"}, false, 255, 1),
		CreateStringType("varchar", []string{"character varying"}, true, 16383, 255),
		advanced(CreateStringType("tinytext", nil, false, -1, 0)),
		CreateStringType("text", nil, true, -1, 0),
		advanced(CreateStringType("mediumtext", nil, false, -1, 0)),
		CreateStringType("longtext", nil, true, -1, 0),
		advanced(CreateSimpleType("enum", nil, CategoryText, false)),
		advanced(CreateSimpleType("set", nil, CategoryText, false)),

		CreateBinaryType("binary", nil, false, 255, 1),
		CreateBinaryType("varbinary", nil, true, 65535, 255),
		advanced(CreateBinaryType("tinyblob", nil, false, -1, 0)),
		CreateBinaryType("blob", nil, true, -1, 0),
		advanced(CreateBinaryType("mediumblob", nil, false, -1, 0)),
		CreateBinaryType("longblob", nil, true, -1, 0),

		CreateDateTimeType("date", nil, true, 0, 0),
		CreateDateTimeType("time", nil, false, 6, 0),
		CreateDateTimeType("datetime", nil, true, 6, 6),
		CreateDateTimeType("timestamp", nil, true, 6, 0),

		CreateSimpleType("json", nil, CategoryJSON, true),

		advanced(CreateSimpleType("bit", nil, CategoryOther, false)),

		advanced(CreateSimpleType("geometry", nil, CategorySpatial, false)),
		advanced(CreateSimpleType("point", nil, CategorySpatial, false)),
		advanced(CreateSimpleType("linestring", nil, CategorySpatial, false)),
		advanced(CreateSimpleType("polygon", nil, CategorySpatial, false)),
		advanced(CreateSimpleType("multipoint", nil, CategorySpatial, false)),
		advanced(CreateSimpleType("multilinestring", nil, CategorySpatial, false)),
		advanced(CreateSimpleType("multipolygon", nil, CategorySpatial, false)),
		advanced(CreateSimpleType("geometrycollection", nil, CategorySpatial, false)),
	)
}
