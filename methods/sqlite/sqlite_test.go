package sqlite

import (
	"database/sql"
	"testing"

	"github.com/alecthomas/assert/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/schema"
	"github.com/shibukawa/schemakit/typemap"
)

// openTestDB opens an in-memory database pinned to a single connection so
// every statement sees the same database.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	assert.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func usersTable() *schema.Table {
	id := schema.NewColumn("id", typemap.Int64Type)
	id.IsPrimaryKey = true
	id.IsAutoIncrement = true

	email := schema.NewColumn("email", typemap.StringType)
	email.Length = intPtr(320)
	email.IsUnique = true

	name := schema.NewColumn("name", typemap.StringType)
	name.IsNullable = true

	age := schema.NewColumn("age", typemap.Int32Type)
	age.IsNullable = true

	return schema.NewTable("", "users", id, email, name, age)
}

func intPtr(n int) *int { return &n }

func TestDispatchThroughRegistry(t *testing.T) {
	db := openTestDB(t)

	resolved, err := methods.For(db)
	assert.NoError(t, err)
	assert.Equal(t, "sqlite", string(resolved.ProviderType()))
}

func TestDatabaseVersion(t *testing.T) {
	db := openTestDB(t)
	m := New()

	v, err := m.DatabaseVersion(t.Context(), db)
	assert.NoError(t, err)
	assert.Equal(t, 3, v.Major)
}

func TestSchemaOperationsAreDegenerate(t *testing.T) {
	db := openTestDB(t)
	m := New()
	ctx := t.Context()

	assert.False(t, m.SupportsSchemas())

	exists, err := m.DoesSchemaExist(ctx, db, "main")
	assert.NoError(t, err)
	assert.False(t, exists)

	names, err := m.GetSchemaNames(ctx, db, "")
	assert.NoError(t, err)
	assert.Zero(t, names)

	_, err = m.CreateSchemaIfNotExists(ctx, db, "app")
	assert.IsError(t, err, methods.ErrSchemasNotSupported)

	_, err = m.DropSchemaIfExists(ctx, db, "app")
	assert.IsError(t, err, methods.ErrSchemasNotSupported)
}

func TestTableLifecycle(t *testing.T) {
	db := openTestDB(t)
	m := New()
	ctx := t.Context()

	created, err := m.CreateTableIfNotExists(ctx, db, usersTable())
	assert.NoError(t, err)
	assert.True(t, created)

	// Idempotent: second creation is a no-op.
	created, err = m.CreateTableIfNotExists(ctx, db, usersTable())
	assert.NoError(t, err)
	assert.False(t, created)

	exists, err := m.DoesTableExist(ctx, db, "", "users")
	assert.NoError(t, err)
	assert.True(t, exists)

	table, err := m.GetTable(ctx, db, "", "users")
	assert.NoError(t, err)
	assert.NotZero(t, table)
	assert.Equal(t, 4, len(table.Columns))
	assert.NotZero(t, table.PrimaryKeyConstraint)
	assert.True(t, table.Column("id").IsAutoIncrement)
	assert.True(t, table.Column("email").IsUnique)
	assert.True(t, table.Column("name").IsNullable)
	assert.False(t, table.Column("email").IsNullable)

	names, err := m.GetTableNames(ctx, db, "", "use*")
	assert.NoError(t, err)
	assert.Equal(t, []string{"users"}, names)

	renamed, err := m.RenameTableIfExists(ctx, db, "", "users", "people")
	assert.NoError(t, err)
	assert.True(t, renamed)

	exists, err = m.DoesTableExist(ctx, db, "", "people")
	assert.NoError(t, err)
	assert.True(t, exists)

	dropped, err := m.DropTableIfExists(ctx, db, "", "people")
	assert.NoError(t, err)
	assert.True(t, dropped)

	// Idempotent: dropping again is a no-op, not an error.
	dropped, err = m.DropTableIfExists(ctx, db, "", "people")
	assert.NoError(t, err)
	assert.False(t, dropped)
}

func TestCompositePrimaryKeyIgnoresAutoIncrement(t *testing.T) {
	db := openTestDB(t)
	m := New()
	ctx := t.Context()

	tenantID := schema.NewColumn("tenant_id", typemap.Int64Type)
	tenantID.IsPrimaryKey = true
	seq := schema.NewColumn("seq", typemap.Int64Type)
	seq.IsPrimaryKey = true
	seq.IsAutoIncrement = true
	label := schema.NewColumn("label", typemap.StringType)
	label.IsNullable = true

	// The inline INTEGER PRIMARY KEY AUTOINCREMENT form only exists for a
	// single-column key; a composite key must come out as one table clause.
	created, err := m.CreateTableIfNotExists(ctx, db, schema.NewTable("", "events", tenantID, seq, label))
	assert.NoError(t, err)
	assert.True(t, created)

	table, err := m.GetTable(ctx, db, "", "events")
	assert.NoError(t, err)
	assert.NotZero(t, table)
	assert.NotZero(t, table.PrimaryKeyConstraint)
	assert.Equal(t, 2, len(table.PrimaryKeyConstraint.Columns))

	_, err = db.ExecContext(ctx, `INSERT INTO events (tenant_id, seq) VALUES (1, 1), (1, 2)`)
	assert.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO events (tenant_id, seq) VALUES (1, 1)`)
	assert.Error(t, err)
}

func TestTruncateTable(t *testing.T) {
	db := openTestDB(t)
	m := New()
	ctx := t.Context()

	_, err := m.CreateTableIfNotExists(ctx, db, usersTable())
	assert.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO users (email) VALUES ('a@example.com'), ('b@example.com')`)
	assert.NoError(t, err)

	truncated, err := m.TruncateTableIfExists(ctx, db, "", "users")
	assert.NoError(t, err)
	assert.True(t, truncated)

	var count int
	assert.NoError(t, db.QueryRowContext(ctx, "SELECT count(*) FROM users").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestColumnLifecycle(t *testing.T) {
	db := openTestDB(t)
	m := New()
	ctx := t.Context()

	_, err := m.CreateTableIfNotExists(ctx, db, usersTable())
	assert.NoError(t, err)

	bio := schema.NewColumn("bio", typemap.StringType)
	bio.IsNullable = true
	created, err := m.CreateColumnIfNotExists(ctx, db, "", "users", &bio)
	assert.NoError(t, err)
	assert.True(t, created)

	created, err = m.CreateColumnIfNotExists(ctx, db, "", "users", &bio)
	assert.NoError(t, err)
	assert.False(t, created)

	col, err := m.GetColumn(ctx, db, "", "users", "bio")
	assert.NoError(t, err)
	assert.NotZero(t, col)
	assert.True(t, col.IsNullable)

	renamed, err := m.RenameColumnIfExists(ctx, db, "", "users", "bio", "about")
	assert.NoError(t, err)
	assert.True(t, renamed)

	exists, err := m.DoesColumnExist(ctx, db, "", "users", "about")
	assert.NoError(t, err)
	assert.True(t, exists)

	dropped, err := m.DropColumnIfExists(ctx, db, "", "users", "about")
	assert.NoError(t, err)
	assert.True(t, dropped)

	dropped, err = m.DropColumnIfExists(ctx, db, "", "users", "about")
	assert.NoError(t, err)
	assert.False(t, dropped)
}

func TestPrimaryKeyLifecycleRebuildsTable(t *testing.T) {
	db := openTestDB(t)
	m := New()
	ctx := t.Context()

	code := schema.NewColumn("code", typemap.StringType)
	code.Length = intPtr(16)
	label := schema.NewColumn("label", typemap.StringType)
	label.IsNullable = true

	_, err := m.CreateTableIfNotExists(ctx, db, schema.NewTable("", "tags", code, label))
	assert.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO tags (code, label) VALUES ('go', 'Golang'), ('db', 'Databases')`)
	assert.NoError(t, err)

	exists, err := m.DoesPrimaryKeyConstraintExist(ctx, db, "", "tags")
	assert.NoError(t, err)
	assert.False(t, exists)

	pk := schema.NewPrimaryKeyConstraint("", "tags", "", schema.Asc("code"))
	created, err := m.CreatePrimaryKeyConstraintIfNotExists(ctx, db, pk)
	assert.NoError(t, err)
	assert.True(t, created)

	// The rebuild must keep the rows.
	var count int
	assert.NoError(t, db.QueryRowContext(ctx, "SELECT count(*) FROM tags").Scan(&count))
	assert.Equal(t, 2, count)

	got, err := m.GetPrimaryKeyConstraint(ctx, db, "", "tags")
	assert.NoError(t, err)
	assert.NotZero(t, got)
	assert.Equal(t, 1, len(got.Columns))
	assert.Equal(t, "code", got.Columns[0].ColumnName)

	created, err = m.CreatePrimaryKeyConstraintIfNotExists(ctx, db, pk)
	assert.NoError(t, err)
	assert.False(t, created)

	dropped, err := m.DropPrimaryKeyConstraintIfExists(ctx, db, "", "tags")
	assert.NoError(t, err)
	assert.True(t, dropped)

	exists, err = m.DoesPrimaryKeyConstraintExist(ctx, db, "", "tags")
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, db.QueryRowContext(ctx, "SELECT count(*) FROM tags").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestCheckConstraintLifecycle(t *testing.T) {
	db := openTestDB(t)
	m := New()
	ctx := t.Context()

	_, err := m.CreateTableIfNotExists(ctx, db, usersTable())
	assert.NoError(t, err)

	check := schema.NewCheckConstraint("", "users", "age", "", "age >= 0")
	created, err := m.CreateCheckConstraintIfNotExists(ctx, db, check)
	assert.NoError(t, err)
	assert.True(t, created)

	// The constraint is enforced after the rebuild.
	_, err = db.ExecContext(ctx, `INSERT INTO users (email, age) VALUES ('x@example.com', -1)`)
	assert.Error(t, err)

	got, err := m.GetCheckConstraint(ctx, db, "", "users", check.ConstraintName)
	assert.NoError(t, err)
	assert.NotZero(t, got)
	assert.Equal(t, "age >= 0", got.Expression)

	names, err := m.GetCheckConstraintNames(ctx, db, "", "users", "")
	assert.NoError(t, err)
	assert.Equal(t, []string{check.ConstraintName}, names)

	dropped, err := m.DropCheckConstraintIfExists(ctx, db, "", "users", check.ConstraintName)
	assert.NoError(t, err)
	assert.True(t, dropped)

	_, err = db.ExecContext(ctx, `INSERT INTO users (email, age) VALUES ('x@example.com', -1)`)
	assert.NoError(t, err)
}

func TestDefaultConstraintLifecycle(t *testing.T) {
	db := openTestDB(t)
	m := New()
	ctx := t.Context()

	_, err := m.CreateTableIfNotExists(ctx, db, usersTable())
	assert.NoError(t, err)

	dc := schema.NewDefaultConstraint("", "users", "age", "", "18")
	created, err := m.CreateDefaultConstraintIfNotExists(ctx, db, dc)
	assert.NoError(t, err)
	assert.True(t, created)

	_, err = db.ExecContext(ctx, `INSERT INTO users (email) VALUES ('d@example.com')`)
	assert.NoError(t, err)

	var age int
	assert.NoError(t, db.QueryRowContext(ctx,
		`SELECT age FROM users WHERE email = 'd@example.com'`).Scan(&age))
	assert.Equal(t, 18, age)

	got, err := m.GetDefaultConstraintOnColumn(ctx, db, "", "users", "age")
	assert.NoError(t, err)
	assert.NotZero(t, got)
	assert.Equal(t, "18", got.Expression)

	dropped, err := m.DropDefaultConstraintIfExists(ctx, db, "", "users", got.ConstraintName)
	assert.NoError(t, err)
	assert.True(t, dropped)

	got, err = m.GetDefaultConstraintOnColumn(ctx, db, "", "users", "age")
	assert.NoError(t, err)
	assert.Zero(t, got)
}

func TestUniqueConstraintLifecycle(t *testing.T) {
	db := openTestDB(t)
	m := New()
	ctx := t.Context()

	_, err := m.CreateTableIfNotExists(ctx, db, usersTable())
	assert.NoError(t, err)

	uc := schema.NewUniqueConstraint("", "users", "", schema.Asc("name"))
	created, err := m.CreateUniqueConstraintIfNotExists(ctx, db, uc)
	assert.NoError(t, err)
	assert.True(t, created)

	_, err = db.ExecContext(ctx, `INSERT INTO users (email, name) VALUES ('a@example.com', 'dup')`)
	assert.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO users (email, name) VALUES ('b@example.com', 'dup')`)
	assert.Error(t, err)

	got, err := m.GetUniqueConstraint(ctx, db, "", "users", uc.ConstraintName)
	assert.NoError(t, err)
	assert.NotZero(t, got)
	assert.Equal(t, 1, len(got.Columns))

	dropped, err := m.DropUniqueConstraintIfExists(ctx, db, "", "users", uc.ConstraintName)
	assert.NoError(t, err)
	assert.True(t, dropped)

	_, err = db.ExecContext(ctx, `INSERT INTO users (email, name) VALUES ('c@example.com', 'dup')`)
	assert.NoError(t, err)
}

func TestRebuildKeepsTableClauseUnique(t *testing.T) {
	db := openTestDB(t)
	m := New()
	ctx := t.Context()

	// A table created outside the toolkit: the UNIQUE table clause is backed
	// by a reserved sqlite_autoindex_* index that DDL cannot name.
	_, err := db.ExecContext(ctx, `CREATE TABLE items (id INTEGER, sku TEXT, UNIQUE(sku))`)
	assert.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO items (id, sku) VALUES (1, 'a-1')`)
	assert.NoError(t, err)

	// The constraint surfaces under the deterministic name.
	ucName := schema.GenerateUniqueConstraintName("items", "sku")
	names, err := m.GetUniqueConstraintNames(ctx, db, "", "items", "")
	assert.NoError(t, err)
	assert.Equal(t, []string{ucName}, names)

	// Adding a check constraint rebuilds the table; the rebuild must not try
	// to recreate the reserved index name, and the constraint must survive.
	check := schema.NewCheckConstraint("", "items", "id", "", "id > 0")
	created, err := m.CreateCheckConstraintIfNotExists(ctx, db, check)
	assert.NoError(t, err)
	assert.True(t, created)

	var count int
	assert.NoError(t, db.QueryRowContext(ctx, "SELECT count(*) FROM items").Scan(&count))
	assert.Equal(t, 1, count)

	_, err = db.ExecContext(ctx, `INSERT INTO items (id, sku) VALUES (2, 'a-1')`)
	assert.Error(t, err)

	got, err := m.GetUniqueConstraint(ctx, db, "", "items", ucName)
	assert.NoError(t, err)
	assert.NotZero(t, got)
	assert.Equal(t, "sku", got.Columns[0].ColumnName)

	// The deterministic name is also addressable for dropping.
	dropped, err := m.DropUniqueConstraintIfExists(ctx, db, "", "items", ucName)
	assert.NoError(t, err)
	assert.True(t, dropped)

	_, err = db.ExecContext(ctx, `INSERT INTO items (id, sku) VALUES (2, 'a-1')`)
	assert.NoError(t, err)
}

func TestDropTableClauseUniqueRebuildsTable(t *testing.T) {
	db := openTestDB(t)
	m := New()
	ctx := t.Context()

	_, err := db.ExecContext(ctx, `CREATE TABLE parts (id INTEGER, code TEXT, UNIQUE(code))`)
	assert.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO parts (id, code) VALUES (1, 'p-1')`)
	assert.NoError(t, err)

	// Dropping directly by the deterministic name goes through a rebuild,
	// since the backing index is reserved and cannot be dropped by name.
	ucName := schema.GenerateUniqueConstraintName("parts", "code")
	dropped, err := m.DropUniqueConstraintIfExists(ctx, db, "", "parts", ucName)
	assert.NoError(t, err)
	assert.True(t, dropped)

	var count int
	assert.NoError(t, db.QueryRowContext(ctx, "SELECT count(*) FROM parts").Scan(&count))
	assert.Equal(t, 1, count)

	_, err = db.ExecContext(ctx, `INSERT INTO parts (id, code) VALUES (2, 'p-1')`)
	assert.NoError(t, err)
}

func TestForeignKeyLifecycleRebuildsTable(t *testing.T) {
	db := openTestDB(t)
	m := New()
	ctx := t.Context()

	_, err := m.CreateTableIfNotExists(ctx, db, usersTable())
	assert.NoError(t, err)

	postID := schema.NewColumn("id", typemap.Int64Type)
	postID.IsPrimaryKey = true
	postID.IsAutoIncrement = true
	userID := schema.NewColumn("user_id", typemap.Int64Type)
	_, err = m.CreateTableIfNotExists(ctx, db, schema.NewTable("", "posts", postID, userID))
	assert.NoError(t, err)

	fk := schema.NewForeignKeyConstraint("", "posts", "",
		[]schema.OrderedColumn{schema.Asc("user_id")},
		"users",
		[]schema.OrderedColumn{schema.Asc("id")})
	fk.OnDelete = schema.ActionCascade

	created, err := m.CreateForeignKeyConstraintIfNotExists(ctx, db, fk)
	assert.NoError(t, err)
	assert.True(t, created)

	got, err := m.GetForeignKeyConstraintOnColumn(ctx, db, "", "posts", "user_id")
	assert.NoError(t, err)
	assert.NotZero(t, got)
	assert.Equal(t, "users", got.ReferencedTableName)
	assert.Equal(t, schema.ActionCascade, got.OnDelete)

	dropped, err := m.DropForeignKeyConstraintIfExists(ctx, db, "", "posts", got.ConstraintName)
	assert.NoError(t, err)
	assert.True(t, dropped)

	got, err = m.GetForeignKeyConstraintOnColumn(ctx, db, "", "posts", "user_id")
	assert.NoError(t, err)
	assert.Zero(t, got)
}

func TestIndexLifecycle(t *testing.T) {
	db := openTestDB(t)
	m := New()
	ctx := t.Context()

	_, err := m.CreateTableIfNotExists(ctx, db, usersTable())
	assert.NoError(t, err)

	ix := schema.NewIndex("", "users", "", schema.Asc("name"), schema.Desc("age"))
	created, err := m.CreateIndexIfNotExists(ctx, db, ix)
	assert.NoError(t, err)
	assert.True(t, created)

	created, err = m.CreateIndexIfNotExists(ctx, db, ix)
	assert.NoError(t, err)
	assert.False(t, created)

	got, err := m.GetIndex(ctx, db, "", "users", ix.IndexName)
	assert.NoError(t, err)
	assert.NotZero(t, got)
	assert.Equal(t, 2, len(got.Columns))

	onColumn, err := m.DoesIndexExistOnColumn(ctx, db, "", "users", "name")
	assert.NoError(t, err)
	assert.True(t, onColumn)

	dropped, err := m.DropIndexIfExists(ctx, db, "", "users", ix.IndexName)
	assert.NoError(t, err)
	assert.True(t, dropped)

	dropped, err = m.DropIndexIfExists(ctx, db, "", "users", ix.IndexName)
	assert.NoError(t, err)
	assert.False(t, dropped)
}

func TestViewLifecycle(t *testing.T) {
	db := openTestDB(t)
	m := New()
	ctx := t.Context()

	_, err := m.CreateTableIfNotExists(ctx, db, usersTable())
	assert.NoError(t, err)

	view := schema.NewView("", "active_users", "SELECT id, email FROM users WHERE age >= 18")
	created, err := m.CreateViewIfNotExists(ctx, db, view)
	assert.NoError(t, err)
	assert.True(t, created)

	created, err = m.CreateViewIfNotExists(ctx, db, view)
	assert.NoError(t, err)
	assert.False(t, created)

	got, err := m.GetView(ctx, db, "", "active_users")
	assert.NoError(t, err)
	assert.NotZero(t, got)
	assert.Contains(t, got.Definition, "SELECT id, email FROM users")

	updated, err := m.UpdateViewIfExists(ctx, db, "", "active_users", "SELECT id FROM users")
	assert.NoError(t, err)
	assert.True(t, updated)

	got, err = m.GetView(ctx, db, "", "active_users")
	assert.NoError(t, err)
	assert.Contains(t, got.Definition, "SELECT id FROM users")
	assert.NotContains(t, got.Definition, "email")

	renamed, err := m.RenameViewIfExists(ctx, db, "", "active_users", "adults")
	assert.NoError(t, err)
	assert.True(t, renamed)

	names, err := m.GetViewNames(ctx, db, "", "")
	assert.NoError(t, err)
	assert.Equal(t, []string{"adults"}, names)

	dropped, err := m.DropViewIfExists(ctx, db, "", "adults")
	assert.NoError(t, err)
	assert.True(t, dropped)

	dropped, err = m.DropViewIfExists(ctx, db, "", "adults")
	assert.NoError(t, err)
	assert.False(t, dropped)
}

func TestInvalidInputFailsBeforeIO(t *testing.T) {
	db := openTestDB(t)
	m := New()
	ctx := t.Context()

	_, err := m.DoesTableExist(ctx, db, "", "")
	assert.IsError(t, err, methods.ErrTableNameRequired)

	_, err = m.CreateTableIfNotExists(ctx, db, schema.NewTable("", "empty"))
	assert.IsError(t, err, methods.ErrNoColumnsSpecified)

	_, err = m.CreateViewIfNotExists(ctx, db, schema.NewView("", "v", ""))
	assert.IsError(t, err, methods.ErrDefinitionRequired)
}
