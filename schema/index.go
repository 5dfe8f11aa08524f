package schema

// Index is a table index over one or more ordered columns.
type Index struct {
	SchemaName string          `json:"schemaName,omitempty" yaml:"schemaName,omitempty"`
	TableName  string          `json:"tableName" yaml:"tableName"`
	IndexName  string          `json:"indexName" yaml:"indexName"`
	Columns    []OrderedColumn `json:"columns" yaml:"columns"`
	IsUnique   bool            `json:"isUnique,omitempty" yaml:"isUnique,omitempty"`
}

// NewIndex creates an index definition; an empty indexName is replaced by the
// deterministic generated name.
func NewIndex(schemaName, tableName, indexName string, columns ...OrderedColumn) *Index {
	if indexName == "" {
		indexName = GenerateIndexName(tableName, ColumnNames(columns)...)
	}
	return &Index{
		SchemaName: schemaName,
		TableName:  tableName,
		IndexName:  indexName,
		Columns:    columns,
	}
}

// Unique marks the index unique and returns it for chaining.
func (ix *Index) Unique() *Index {
	ix.IsUnique = true
	return ix
}
