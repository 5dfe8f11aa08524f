package datatypes

import schemakit "github.com/shibukawa/schemakit"

// Sqlite is the SQLite data type catalog. SQLite resolves declared types to
// storage affinities, so the catalog lists the conventional rich names the
// toolkit emits plus the bare affinity names.
var Sqlite = NewRegistry(schemakit.ProviderSqlite, registerSqliteDataTypes)

func registerSqliteDataTypes(add func(...*DataTypeInfo)) {
	add(
		CreateSimpleType("boolean", []string{"bool"}, CategoryBoolean, true),

		advanced(CreateIntegerType("tinyint", nil, false)),
		advanced(CreateIntegerType("smallint", []string{"int2"}, false)),
		advanced(CreateIntegerType("mediumint", nil, false)),
		CreateIntegerType("int", nil, true),
		CreateIntegerType("integer", []string{"bigint", "int8"}, true),

		CreateDecimalType("numeric", []string{"decimal"}, true, 38, 16, 38, 4),
		CreateSimpleType("real", []string{"double", "double precision", "float"}, CategoryDecimal, true),

		CreateStringType("text", []string{"clob"}, true, -1, 0),
		CreateStringType("varchar", []string{"character varying", "varying character"}, true, 1000000000, 255),
		CreateStringType("char", []string{"character"}, false, 1000000000, 1),
		advanced(CreateStringType("nvarchar", []string{"native character"}, false, 1000000000, 255)),
		advanced(CreateStringType("nchar", nil, false, 1000000000, 1)),

		CreateBinaryType("blob", nil, true, -1, 0),

		CreateDateTimeType("date", nil, true, 0, 0),
		CreateDateTimeType("time", nil, false, 0, 0),
		CreateDateTimeType("datetime", []string{"timestamp"}, true, 0, 0),

		advanced(CreateSimpleType("json", nil, CategoryJSON, false)),
		advanced(CreateSimpleType("uuid", []string{"guid"}, CategoryOther, false)),
	)
}
