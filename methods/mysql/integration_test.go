package mysql_test

import (
	"database/sql"
	"testing"

	"github.com/alecthomas/assert/v2"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/shibukawa/schemakit/methods"
	_ "github.com/shibukawa/schemakit/methods/mysql"
	"github.com/shibukawa/schemakit/schema"
	"github.com/shibukawa/schemakit/typemap"
)

// TestMySQLIntegration runs the provider contract against a real MySQL
// database.
func TestMySQLIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := t.Context()

	mysqlContainer, err := tcmysql.Run(ctx,
		"mysql:8.4",
		tcmysql.WithDatabase("testdb"),
		tcmysql.WithUsername("testuser"),
		tcmysql.WithPassword("testpass"),
	)
	assert.NoError(t, err)

	defer func() {
		assert.NoError(t, mysqlContainer.Terminate(ctx))
	}()

	connStr, err := mysqlContainer.ConnectionString(ctx)
	assert.NoError(t, err)

	db, err := sql.Open("mysql", connStr)
	assert.NoError(t, err)

	defer db.Close()

	client, err := methods.NewClient(db)
	assert.NoError(t, err)
	assert.Equal(t, "mysql", string(client.Methods().ProviderType()))

	t.Run("DatabaseVersion", func(t *testing.T) {
		v, err := client.DatabaseVersion(ctx)
		assert.NoError(t, err)
		assert.True(t, v.AtLeast(8, 0, 16))
	})

	t.Run("SchemaOperationsAreDegenerate", func(t *testing.T) {
		assert.False(t, client.SupportsSchemas())

		_, err := client.CreateSchemaIfNotExists(ctx, "app")
		assert.IsError(t, err, methods.ErrSchemasNotSupported)
	})

	t.Run("TableLifecycle", func(t *testing.T) {
		id := schema.NewColumn("id", typemap.Int64Type)
		id.IsPrimaryKey = true
		id.IsAutoIncrement = true
		flag := schema.NewColumn("is_active", typemap.BoolType)
		token := schema.NewColumn("token", typemap.UUIDType)
		email := schema.NewColumn("email", typemap.StringType)
		email.Length = intPtr(320)
		email.IsUnique = true

		created, err := client.CreateTableIfNotExists(ctx, schema.NewTable("", "users", id, flag, token, email))
		assert.NoError(t, err)
		assert.True(t, created)

		created, err = client.CreateTableIfNotExists(ctx, schema.NewTable("", "users", id))
		assert.NoError(t, err)
		assert.False(t, created)

		table, err := client.GetTable(ctx, "", "users")
		assert.NoError(t, err)
		assert.NotZero(t, table)
		assert.NotZero(t, table.PrimaryKeyConstraint)
		assert.True(t, table.Column("id").IsAutoIncrement)
		// tinyint(1) and char(36) round-trip back to their Go classes.
		assert.Equal(t, typemap.BoolType, table.Column("is_active").DataType)
		assert.Equal(t, typemap.UUIDType, table.Column("token").DataType)

		renamed, err := client.RenameTableIfExists(ctx, "", "users", "members")
		assert.NoError(t, err)
		assert.True(t, renamed)

		_, err = db.ExecContext(ctx,
			"INSERT INTO members (is_active, token, email) VALUES (1, '00000000-0000-0000-0000-000000000000', 'a@example.com')")
		assert.NoError(t, err)

		truncated, err := client.TruncateTableIfExists(ctx, "", "members")
		assert.NoError(t, err)
		assert.True(t, truncated)

		var count int
		assert.NoError(t, db.QueryRowContext(ctx, "SELECT count(*) FROM members").Scan(&count))
		assert.Equal(t, 0, count)

		dropped, err := client.DropTableIfExists(ctx, "", "members")
		assert.NoError(t, err)
		assert.True(t, dropped)
	})

	t.Run("ConstraintLifecycle", func(t *testing.T) {
		userID := schema.NewColumn("id", typemap.Int64Type)
		userID.IsPrimaryKey = true
		username := schema.NewColumn("username", typemap.StringType)
		username.Length = intPtr(64)
		age := schema.NewColumn("age", typemap.Int32Type)
		age.IsNullable = true

		_, err := client.CreateTableIfNotExists(ctx, schema.NewTable("", "users", userID, username, age))
		assert.NoError(t, err)

		postID := schema.NewColumn("id", typemap.Int64Type)
		postID.IsPrimaryKey = true
		authorID := schema.NewColumn("author_id", typemap.Int64Type)

		_, err = client.CreateTableIfNotExists(ctx, schema.NewTable("", "posts", postID, authorID))
		assert.NoError(t, err)

		check := schema.NewCheckConstraint("", "users", "age", "", "age >= 0")
		created, err := client.CreateCheckConstraintIfNotExists(ctx, check)
		assert.NoError(t, err)
		assert.True(t, created)

		gotCheck, err := client.GetCheckConstraint(ctx, "", "users", check.ConstraintName)
		assert.NoError(t, err)
		assert.NotZero(t, gotCheck)

		dc := schema.NewDefaultConstraint("", "users", "age", "", "18")
		created, err = client.CreateDefaultConstraintIfNotExists(ctx, dc)
		assert.NoError(t, err)
		assert.True(t, created)

		_, err = db.ExecContext(ctx, "INSERT INTO users (id, username) VALUES (1, 'alice')")
		assert.NoError(t, err)

		var age18 int
		assert.NoError(t, db.QueryRowContext(ctx, "SELECT age FROM users WHERE id = 1").Scan(&age18))
		assert.Equal(t, 18, age18)

		uc := schema.NewUniqueConstraint("", "users", "", schema.Asc("username"))
		created, err = client.CreateUniqueConstraintIfNotExists(ctx, uc)
		assert.NoError(t, err)
		assert.True(t, created)

		fk := schema.NewForeignKeyConstraint("", "posts", "",
			[]schema.OrderedColumn{schema.Asc("author_id")},
			"users",
			[]schema.OrderedColumn{schema.Asc("id")})
		fk.OnDelete = schema.ActionCascade
		created, err = client.CreateForeignKeyConstraintIfNotExists(ctx, fk)
		assert.NoError(t, err)
		assert.True(t, created)

		gotFK, err := client.GetForeignKeyConstraint(ctx, "", "posts", fk.ConstraintName)
		assert.NoError(t, err)
		assert.NotZero(t, gotFK)
		assert.Equal(t, "users", gotFK.ReferencedTableName)
		assert.Equal(t, schema.ActionCascade, gotFK.OnDelete)

		dropped, err := client.DropForeignKeyConstraintIfExists(ctx, "", "posts", fk.ConstraintName)
		assert.NoError(t, err)
		assert.True(t, dropped)

		dropped, err = client.DropUniqueConstraintIfExists(ctx, "", "users", uc.ConstraintName)
		assert.NoError(t, err)
		assert.True(t, dropped)

		dropped, err = client.DropDefaultConstraintIfExists(ctx, "", "users", dc.ConstraintName)
		assert.NoError(t, err)
		assert.True(t, dropped)

		dropped, err = client.DropCheckConstraintIfExists(ctx, "", "users", check.ConstraintName)
		assert.NoError(t, err)
		assert.True(t, dropped)
	})

	t.Run("IndexLifecycle", func(t *testing.T) {
		ix := schema.NewIndex("", "users", "", schema.Asc("username"), schema.Desc("age"))
		created, err := client.CreateIndexIfNotExists(ctx, ix)
		assert.NoError(t, err)
		assert.True(t, created)

		got, err := client.GetIndex(ctx, "", "users", ix.IndexName)
		assert.NoError(t, err)
		assert.NotZero(t, got)
		assert.Equal(t, 2, len(got.Columns))

		onColumn, err := client.DoesIndexExistOnColumn(ctx, "", "users", "username")
		assert.NoError(t, err)
		assert.True(t, onColumn)

		dropped, err := client.DropIndexIfExists(ctx, "", "users", ix.IndexName)
		assert.NoError(t, err)
		assert.True(t, dropped)
	})

	t.Run("ViewLifecycle", func(t *testing.T) {
		view := schema.NewView("", "adults", "SELECT id, username FROM users WHERE age >= 18")
		created, err := client.CreateViewIfNotExists(ctx, view)
		assert.NoError(t, err)
		assert.True(t, created)

		got, err := client.GetView(ctx, "", "adults")
		assert.NoError(t, err)
		assert.NotZero(t, got)
		assert.Contains(t, got.Definition, "username")

		updated, err := client.UpdateViewIfExists(ctx, "", "adults", "SELECT id FROM users")
		assert.NoError(t, err)
		assert.True(t, updated)

		renamed, err := client.RenameViewIfExists(ctx, "", "adults", "grownups")
		assert.NoError(t, err)
		assert.True(t, renamed)

		dropped, err := client.DropViewIfExists(ctx, "", "grownups")
		assert.NoError(t, err)
		assert.True(t, dropped)
	})

	t.Run("ColumnLifecycle", func(t *testing.T) {
		bio := schema.NewColumn("bio", typemap.StringType)
		bio.IsNullable = true
		created, err := client.CreateColumnIfNotExists(ctx, "", "users", &bio)
		assert.NoError(t, err)
		assert.True(t, created)

		renamed, err := client.RenameColumnIfExists(ctx, "", "users", "bio", "about")
		assert.NoError(t, err)
		assert.True(t, renamed)

		dropped, err := client.DropColumnIfExists(ctx, "", "users", "about")
		assert.NoError(t, err)
		assert.True(t, dropped)
	})
}

func intPtr(n int) *int { return &n }
