package schema

// SortOrder is the sort direction of an ordered column reference.
type SortOrder string

const (
	Ascending  SortOrder = "ASC"
	Descending SortOrder = "DESC"
)

// OrderedColumn is a column reference annotated with a sort direction, used
// in multi-column index and constraint definitions.
type OrderedColumn struct {
	ColumnName string    `json:"columnName" yaml:"columnName"`
	Order      SortOrder `json:"order,omitempty" yaml:"order,omitempty"`
}

// Asc creates an ascending ordered column reference.
func Asc(columnName string) OrderedColumn {
	return OrderedColumn{ColumnName: columnName, Order: Ascending}
}

// Desc creates a descending ordered column reference.
func Desc(columnName string) OrderedColumn {
	return OrderedColumn{ColumnName: columnName, Order: Descending}
}

// ColumnNames projects the bare column names out of ordered references.
func ColumnNames(columns []OrderedColumn) []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.ColumnName
	}
	return names
}

// ForeignKeyAction is a referential action on delete/update.
type ForeignKeyAction string

const (
	ActionNoAction   ForeignKeyAction = "NO ACTION"
	ActionCascade    ForeignKeyAction = "CASCADE"
	ActionSetNull    ForeignKeyAction = "SET NULL"
	ActionSetDefault ForeignKeyAction = "SET DEFAULT"
	ActionRestrict   ForeignKeyAction = "RESTRICT"
)

// ParseForeignKeyAction normalizes a catalog action spelling ("CASCADE",
// "SET_NULL", "c", ...) to a ForeignKeyAction, defaulting to NO ACTION.
func ParseForeignKeyAction(s string) ForeignKeyAction {
	switch normalizeName(s) {
	case "cascade", "c":
		return ActionCascade
	case "set_null", "setnull", "n":
		return ActionSetNull
	case "set_default", "setdefault", "d":
		return ActionSetDefault
	case "restrict", "r":
		return ActionRestrict
	default:
		return ActionNoAction
	}
}

// PrimaryKeyConstraint is a table's single primary key over one or more
// ordered columns.
type PrimaryKeyConstraint struct {
	SchemaName     string          `json:"schemaName,omitempty" yaml:"schemaName,omitempty"`
	TableName      string          `json:"tableName" yaml:"tableName"`
	ConstraintName string          `json:"constraintName" yaml:"constraintName"`
	Columns        []OrderedColumn `json:"columns" yaml:"columns"`
}

// NewPrimaryKeyConstraint creates a primary key; an empty constraintName is
// replaced by the deterministic generated name.
func NewPrimaryKeyConstraint(schemaName, tableName, constraintName string, columns ...OrderedColumn) *PrimaryKeyConstraint {
	if constraintName == "" {
		constraintName = GeneratePrimaryKeyName(tableName, ColumnNames(columns)...)
	}
	return &PrimaryKeyConstraint{
		SchemaName:     schemaName,
		TableName:      tableName,
		ConstraintName: constraintName,
		Columns:        columns,
	}
}

// ForeignKeyConstraint references columns of another table.
type ForeignKeyConstraint struct {
	SchemaName           string           `json:"schemaName,omitempty" yaml:"schemaName,omitempty"`
	TableName            string           `json:"tableName" yaml:"tableName"`
	ConstraintName       string           `json:"constraintName" yaml:"constraintName"`
	SourceColumns        []OrderedColumn  `json:"sourceColumns" yaml:"sourceColumns"`
	ReferencedSchemaName string           `json:"referencedSchemaName,omitempty" yaml:"referencedSchemaName,omitempty"`
	ReferencedTableName  string           `json:"referencedTableName" yaml:"referencedTableName"`
	ReferencedColumns    []OrderedColumn  `json:"referencedColumns" yaml:"referencedColumns"`
	OnDelete             ForeignKeyAction `json:"onDelete,omitempty" yaml:"onDelete,omitempty"`
	OnUpdate             ForeignKeyAction `json:"onUpdate,omitempty" yaml:"onUpdate,omitempty"`
}

// NewForeignKeyConstraint creates a foreign key; an empty constraintName is
// replaced by the deterministic generated name.
func NewForeignKeyConstraint(
	schemaName, tableName, constraintName string,
	sourceColumns []OrderedColumn,
	referencedTableName string,
	referencedColumns []OrderedColumn,
) *ForeignKeyConstraint {
	if constraintName == "" {
		constraintName = GenerateForeignKeyName(tableName, ColumnNames(sourceColumns), referencedTableName, ColumnNames(referencedColumns))
	}
	return &ForeignKeyConstraint{
		SchemaName:          schemaName,
		TableName:           tableName,
		ConstraintName:      constraintName,
		SourceColumns:       sourceColumns,
		ReferencedTableName: referencedTableName,
		ReferencedColumns:   referencedColumns,
		OnDelete:            ActionNoAction,
		OnUpdate:            ActionNoAction,
	}
}

// UniqueConstraint enforces uniqueness over one or more ordered columns.
type UniqueConstraint struct {
	SchemaName     string          `json:"schemaName,omitempty" yaml:"schemaName,omitempty"`
	TableName      string          `json:"tableName" yaml:"tableName"`
	ConstraintName string          `json:"constraintName" yaml:"constraintName"`
	Columns        []OrderedColumn `json:"columns" yaml:"columns"`
}

// NewUniqueConstraint creates a unique constraint; an empty constraintName is
// replaced by the deterministic generated name.
func NewUniqueConstraint(schemaName, tableName, constraintName string, columns ...OrderedColumn) *UniqueConstraint {
	if constraintName == "" {
		constraintName = GenerateUniqueConstraintName(tableName, ColumnNames(columns)...)
	}
	return &UniqueConstraint{
		SchemaName:     schemaName,
		TableName:      tableName,
		ConstraintName: constraintName,
		Columns:        columns,
	}
}

// CheckConstraint is a boolean SQL expression constraint, optionally tied to
// a single column.
type CheckConstraint struct {
	SchemaName     string `json:"schemaName,omitempty" yaml:"schemaName,omitempty"`
	TableName      string `json:"tableName" yaml:"tableName"`
	ColumnName     string `json:"columnName,omitempty" yaml:"columnName,omitempty"`
	ConstraintName string `json:"constraintName" yaml:"constraintName"`
	Expression     string `json:"expression" yaml:"expression"`
}

// NewCheckConstraint creates a check constraint; an empty constraintName is
// replaced by the deterministic generated name.
func NewCheckConstraint(schemaName, tableName, columnName, constraintName, expression string) *CheckConstraint {
	if constraintName == "" {
		constraintName = GenerateCheckConstraintName(tableName, columnName)
	}
	return &CheckConstraint{
		SchemaName:     schemaName,
		TableName:      tableName,
		ColumnName:     columnName,
		ConstraintName: constraintName,
		Expression:     expression,
	}
}

// DefaultConstraint supplies a column's default expression. Engines without
// named default objects (everything except SQL Server) emulate the name by
// pairing the generated/stored name with the column's DEFAULT attribute.
type DefaultConstraint struct {
	SchemaName     string `json:"schemaName,omitempty" yaml:"schemaName,omitempty"`
	TableName      string `json:"tableName" yaml:"tableName"`
	ColumnName     string `json:"columnName" yaml:"columnName"`
	ConstraintName string `json:"constraintName" yaml:"constraintName"`
	Expression     string `json:"expression" yaml:"expression"`
}

// NewDefaultConstraint creates a default constraint; an empty constraintName
// is replaced by the deterministic generated name.
func NewDefaultConstraint(schemaName, tableName, columnName, constraintName, expression string) *DefaultConstraint {
	if constraintName == "" {
		constraintName = GenerateDefaultConstraintName(tableName, columnName)
	}
	return &DefaultConstraint{
		SchemaName:     schemaName,
		TableName:      tableName,
		ColumnName:     columnName,
		ConstraintName: constraintName,
		Expression:     expression,
	}
}
