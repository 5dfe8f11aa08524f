package datatypes

import schemakit "github.com/shibukawa/schemakit"

// SqlServer is the SQL Server data type catalog.
var SqlServer = NewRegistry(schemakit.ProviderSqlServer, registerSqlServerDataTypes)

func registerSqlServerDataTypes(add func(...*DataTypeInfo)) {
	add(
		CreateSimpleType("bit", nil, CategoryBoolean, true),

		CreateIntegerType("tinyint", nil, true),
		CreateIntegerType("smallint", nil, true),
		CreateIntegerType("int", nil, true),
		CreateIntegerType("bigint", nil, true),

		CreateDecimalType("decimal", []string{"numeric"}, true, 38, 16, 38, 4),
		CreateSimpleType("real", nil, CategoryDecimal, true),
		CreateSimpleType("float", nil, CategoryDecimal, true),
		advanced(CreateSimpleType("money", nil, CategoryDecimal, false)),
		advanced(CreateSimpleType("smallmoney", nil, CategoryDecimal, false)),

		CreateStringType("char", nil, false, 8000, 1),
		CreateStringType("varchar", nil, true, 8000, 255),
		CreateStringType("nchar", nil, false, 4000, 1),
		CreateStringType("nvarchar", nil, true, 4000, 255),
		advanced(CreateStringType("text", nil, false, -1, 0)),
		advanced(CreateStringType("ntext", nil, false, -1, 0)),
		advanced(CreateStringType("xml", nil, false, -1, 0)),

		CreateBinaryType("binary", nil, false, 8000, 1),
		CreateBinaryType("varbinary", nil, true, 8000, 255),
		advanced(CreateBinaryType("image", nil, false, -1, 0)),

		CreateDateTimeType("date", nil, true, 0, 0),
		CreateDateTimeType("time", nil, false, 7, 7),
		CreateDateTimeType("datetime", nil, false, 0, 0),
		CreateDateTimeType("datetime2", nil, true, 7, 7),
		advanced(CreateDateTimeType("smalldatetime", nil, false, 0, 0)),
		advanced(CreateDateTimeType("datetimeoffset", nil, false, 7, 7)),

		CreateSimpleType("uniqueidentifier", nil, CategoryOther, true),

		advanced(CreateSimpleType("geometry", nil, CategorySpatial, false)),
		advanced(CreateSimpleType("geography", nil, CategorySpatial, false)),
		advanced(CreateSimpleType("hierarchyid", nil, CategoryOther, false)),
		advanced(CreateSimpleType("rowversion", []string{"timestamp"}, CategoryOther, false)),
		advanced(CreateSimpleType("sql_variant", nil, CategoryOther, false)),
		advanced(CreateSimpleType("sysname", nil, CategoryOther, false)),
	)
}
