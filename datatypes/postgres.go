package datatypes

import schemakit "github.com/shibukawa/schemakit"

// Postgres is the PostgreSQL data type catalog.
var Postgres = NewRegistry(schemakit.ProviderPostgreSQL, registerPostgresDataTypes)

func registerPostgresDataTypes(add func(...*DataTypeInfo)) {
	add(
		CreateSimpleType("boolean", []string{"bool"}, CategoryBoolean, true),

		CreateIntegerType("smallint", []string{"int2"}, true),
		CreateIntegerType("integer", []string{"int", "int4"}, true),
		CreateIntegerType("bigint", []string{"int8"}, true),
		advanced(CreateIntegerType("smallserial", []string{"serial2"}, false)),
		CreateIntegerType("serial", []string{"serial4"}, true),
		advanced(CreateIntegerType("bigserial", []string{"serial8"}, false)),

		CreateDecimalType("numeric", []string{"decimal"}, true, 1000, 16, 1000, 4),
		CreateSimpleType("real", []string{"float4"}, CategoryDecimal, true),
		CreateSimpleType("double precision", []string{"float8"}, CategoryDecimal, true),
		advanced(CreateSimpleType("money", nil, CategoryDecimal, false)),

		CreateStringType("text", nil, true, -1, 0),
		CreateStringType("varchar", []string{"character varying"}, true, 10485760, 255),
		CreateStringType("char", []string{"character", "bpchar"}, false, 10485760, 1),
		advanced(CreateStringType("xml", nil, false, -1, 0)),

		CreateBinaryType("bytea", nil, true, -1, 0),

		CreateDateTimeType("date", nil, true, 0, 0),
		CreateDateTimeType("time", []string{"time without time zone"}, false, 6, 6),
		advanced(CreateDateTimeType("timetz", []string{"time with time zone"}, false, 6, 6)),
		CreateDateTimeType("timestamp", []string{"timestamp without time zone"}, true, 6, 6),
		CreateDateTimeType("timestamptz", []string{"timestamp with time zone"}, true, 6, 6),
		advanced(CreateSimpleType("interval", nil, CategoryDateTime, false)),

		CreateSimpleType("json", nil, CategoryJSON, false),
		CreateSimpleType("jsonb", nil, CategoryJSON, true),

		CreateSimpleType("uuid", nil, CategoryOther, true),

		advanced(CreateSimpleType("inet", nil, CategoryNetwork, false)),
		advanced(CreateSimpleType("cidr", nil, CategoryNetwork, false)),
		advanced(CreateSimpleType("macaddr", nil, CategoryNetwork, false)),
		advanced(CreateSimpleType("macaddr8", nil, CategoryNetwork, false)),

		advanced(CreateSimpleType("int4range", nil, CategoryRange, false)),
		advanced(CreateSimpleType("int8range", nil, CategoryRange, false)),
		advanced(CreateSimpleType("numrange", nil, CategoryRange, false)),
		advanced(CreateSimpleType("tsrange", nil, CategoryRange, false)),
		advanced(CreateSimpleType("tstzrange", nil, CategoryRange, false)),
		advanced(CreateSimpleType("daterange", nil, CategoryRange, false)),

		advanced(CreateSimpleType("point", nil, CategorySpatial, false)),
		advanced(CreateSimpleType("line", nil, CategorySpatial, false)),
		advanced(CreateSimpleType("lseg", nil, CategorySpatial, false)),
		advanced(CreateSimpleType("box", nil, CategorySpatial, false)),
		advanced(CreateSimpleType("path", nil, CategorySpatial, false)),
		advanced(CreateSimpleType("polygon", nil, CategorySpatial, false)),
		advanced(CreateSimpleType("circle", nil, CategorySpatial, false)),
		advanced(CreateSimpleType("geometry", nil, CategorySpatial, false)),
		advanced(CreateSimpleType("geography", nil, CategorySpatial, false)),

		advanced(CreateSimpleType("tsvector", nil, CategoryOther, false)),
		advanced(CreateSimpleType("tsquery", nil, CategoryOther, false)),
		advanced(CreateSimpleType("bit", nil, CategoryOther, false)),
		advanced(CreateSimpleType("varbit", []string{"bit varying"}, CategoryOther, false)),
	)
}
