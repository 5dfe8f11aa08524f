package methods

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	schemakit "github.com/shibukawa/schemakit"
	"github.com/shibukawa/schemakit/schema"
	"github.com/shibukawa/schemakit/typemap"
)

func TestMatchesFilter(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		matches bool
	}{
		{"users", "", true},
		{"users", "users", true},
		{"users", "USERS", true},
		{"users", "use*", true},
		{"users", "*ers", true},
		{"users", "user?", true},
		{"users", "u*s", true},
		{"users", "orders", false},
		{"users", "use", false},
		{"users", "?", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.matches, MatchesFilter(tt.name, tt.filter))
	}
}

func TestFilterNames(t *testing.T) {
	names := []string{"zebra", "users", "user_roles", "orders"}

	assert.Equal(t, []string{"orders", "user_roles", "users", "zebra"}, FilterNames(names, ""))
	assert.Equal(t, []string{"user_roles", "users"}, FilterNames(names, "user*"))
	assert.Zero(t, FilterNames(names, "missing*"))
}

func TestRequire(t *testing.T) {
	assert.NoError(t, Require("users", ErrTableNameRequired))
	assert.IsError(t, Require("", ErrTableNameRequired), ErrTableNameRequired)
	assert.IsError(t, Require("   ", ErrTableNameRequired), ErrTableNameRequired)
}

func testBase() *Base {
	return &Base{
		Provider:   schemakit.ProviderPostgreSQL,
		Types:      typemap.PostgresTypeMap{},
		QuoteOpen:  `"`,
		QuoteClose: `"`,
	}
}

func TestQuoteName(t *testing.T) {
	b := testBase()
	assert.Equal(t, `"users"`, b.QuoteName("users"))
	assert.Equal(t, `"odd""name"`, b.QuoteName(`odd"name`))

	bracket := &Base{QuoteOpen: "[", QuoteClose: "]"}
	assert.Equal(t, "[users]", bracket.QuoteName("users"))
	assert.Equal(t, "[odd]]name]", bracket.QuoteName("odd]name"))
}

func TestQualified(t *testing.T) {
	b := testBase()
	assert.Equal(t, `"users"`, b.Qualified("", "users"))
	assert.Equal(t, `"public"."users"`, b.Qualified("public", "users"))
}

func TestColumnTypeSQL(t *testing.T) {
	b := testBase()

	col := schema.NewColumn("name", typemap.StringType)
	col.Length = intPtr(100)
	sqlType, err := b.ColumnTypeSQL(&col)
	assert.NoError(t, err)
	assert.Equal(t, "varchar(100)", sqlType)

	// Explicit provider type wins over the mapped one.
	col.SetProviderDataType(schemakit.ProviderPostgreSQL, "citext")
	sqlType, err = b.ColumnTypeSQL(&col)
	assert.NoError(t, err)
	assert.Equal(t, "citext", sqlType)

	// nil Go type with no explicit provider type classifies as JSON storage.
	ch := schema.NewColumn("payload", nil)
	sqlType, err = b.ColumnTypeSQL(&ch)
	assert.NoError(t, err)
	assert.Equal(t, "jsonb", sqlType)
}

func TestOrderedColumnList(t *testing.T) {
	b := testBase()
	cols := []schema.OrderedColumn{schema.Asc("a"), schema.Desc("b")}

	assert.Equal(t, `"a", "b" DESC`, b.OrderedColumnList(cols, true))
	assert.Equal(t, `"a", "b"`, b.OrderedColumnList(cols, false))
}

func TestForeignKeyClause(t *testing.T) {
	b := testBase()

	fk := schema.NewForeignKeyConstraint("", "orders", "",
		[]schema.OrderedColumn{schema.Asc("user_id")},
		"users",
		[]schema.OrderedColumn{schema.Asc("id")})
	fk.OnDelete = schema.ActionCascade

	clause := b.ForeignKeyClause(fk)
	assert.Contains(t, clause, `FOREIGN KEY ("user_id")`)
	assert.Contains(t, clause, `REFERENCES "users" ("id")`)
	assert.Contains(t, clause, "ON DELETE CASCADE")
	assert.NotContains(t, clause, "ON UPDATE")
}

func TestNormalizeTablePromotesColumnFlags(t *testing.T) {
	id := schema.NewColumn("id", typemap.Int64Type)
	id.IsPrimaryKey = true

	email := schema.NewColumn("email", typemap.StringType)
	email.IsUnique = true
	email.IsIndexed = true

	age := schema.NewColumn("age", typemap.Int32Type)
	age.CheckExpression = "age >= 0"

	created := schema.NewColumn("created_at", typemap.TimeType)
	created.DefaultExpression = "CURRENT_TIMESTAMP"

	userID := schema.NewColumn("user_id", typemap.Int64Type)
	userID.IsForeignKey = true
	userID.ReferencedTableName = "users"
	userID.ReferencedColumnName = "id"
	userID.OnDelete = schema.ActionCascade

	table := schema.NewTable("", "accounts", id, email, age, created, userID)
	normalized := NormalizeTable(table)

	// The input stays untouched.
	assert.Zero(t, table.PrimaryKeyConstraint)
	assert.Zero(t, len(table.UniqueConstraints))

	assert.NotZero(t, normalized.PrimaryKeyConstraint)
	assert.Equal(t, 1, len(normalized.PrimaryKeyConstraint.Columns))
	assert.Equal(t, "id", normalized.PrimaryKeyConstraint.Columns[0].ColumnName)

	assert.Equal(t, 1, len(normalized.UniqueConstraints))
	assert.Equal(t, 1, len(normalized.Indexes))
	assert.Equal(t, 1, len(normalized.CheckConstraints))
	assert.Equal(t, "age >= 0", normalized.CheckConstraints[0].Expression)
	assert.Equal(t, 1, len(normalized.DefaultConstraints))
	assert.Equal(t, 1, len(normalized.ForeignKeyConstraints))
	assert.Equal(t, schema.ActionCascade, normalized.ForeignKeyConstraints[0].OnDelete)
}

func TestNormalizeTableKeepsExplicitConstraints(t *testing.T) {
	email := schema.NewColumn("email", typemap.StringType)
	email.IsUnique = true

	table := schema.NewTable("", "accounts", email)
	table.UniqueConstraints = append(table.UniqueConstraints,
		*schema.NewUniqueConstraint("", "accounts", "uq_custom", schema.Asc("email")))

	normalized := NormalizeTable(table)

	// The explicit constraint already covers the column; no duplicate.
	assert.Equal(t, 1, len(normalized.UniqueConstraints))
	assert.Equal(t, "uq_custom", normalized.UniqueConstraints[0].ConstraintName)
}

func intPtr(n int) *int { return &n }
