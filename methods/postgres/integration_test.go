package postgres_test

import (
	"database/sql"
	"testing"

	"github.com/alecthomas/assert/v2"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver (pgx)
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/shibukawa/schemakit/methods"
	_ "github.com/shibukawa/schemakit/methods/postgres"
	"github.com/shibukawa/schemakit/schema"
	"github.com/shibukawa/schemakit/typemap"
)

// TestPostgreSQLIntegration runs the provider contract against a real
// PostgreSQL database.
func TestPostgreSQLIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := t.Context()

	postgresContainer, err := tcpostgres.Run(ctx,
		"postgres:17-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		tcpostgres.BasicWaitStrategies(),
	)
	assert.NoError(t, err)

	defer func() {
		assert.NoError(t, postgresContainer.Terminate(ctx))
	}()

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	assert.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	assert.NoError(t, err)

	defer db.Close()

	client, err := methods.NewClient(db)
	assert.NoError(t, err)
	assert.Equal(t, "postgresql", string(client.Methods().ProviderType()))

	t.Run("DatabaseVersion", func(t *testing.T) {
		v, err := client.DatabaseVersion(ctx)
		assert.NoError(t, err)
		assert.True(t, v.Major >= 17)
	})

	t.Run("SchemaLifecycle", func(t *testing.T) {
		assert.True(t, client.Methods().SupportsSchemas())

		created, err := client.CreateSchemaIfNotExists(ctx, "app")
		assert.NoError(t, err)
		assert.True(t, created)

		created, err = client.CreateSchemaIfNotExists(ctx, "app")
		assert.NoError(t, err)
		assert.False(t, created)

		names, err := client.GetSchemaNames(ctx, "a*")
		assert.NoError(t, err)
		assert.Equal(t, []string{"app"}, names)

		dropped, err := client.DropSchemaIfExists(ctx, "app")
		assert.NoError(t, err)
		assert.True(t, dropped)

		dropped, err = client.DropSchemaIfExists(ctx, "app")
		assert.NoError(t, err)
		assert.False(t, dropped)
	})

	t.Run("TableLifecycle", func(t *testing.T) {
		id := schema.NewColumn("id", typemap.Int64Type)
		id.IsPrimaryKey = true
		id.IsAutoIncrement = true
		email := schema.NewColumn("email", typemap.StringType)
		email.Length = intPtr(320)
		email.IsUnique = true
		balance := schema.NewColumn("balance", typemap.DecimalType)
		balance.Precision = intPtr(12)
		balance.Scale = intPtr(2)
		payload := schema.NewColumn("payload", typemap.MapType)
		payload.IsNullable = true

		created, err := client.CreateTableIfNotExists(ctx, schema.NewTable("public", "accounts", id, email, balance, payload))
		assert.NoError(t, err)
		assert.True(t, created)

		created, err = client.CreateTableIfNotExists(ctx, schema.NewTable("public", "accounts", id))
		assert.NoError(t, err)
		assert.False(t, created)

		table, err := client.GetTable(ctx, "public", "accounts")
		assert.NoError(t, err)
		assert.NotZero(t, table)
		assert.Equal(t, 4, len(table.Columns))
		assert.NotZero(t, table.PrimaryKeyConstraint)
		assert.True(t, table.Column("id").IsAutoIncrement)
		assert.True(t, table.Column("email").IsUnique)
		assert.Equal(t, 12, *table.Column("balance").Precision)
		assert.Equal(t, 2, *table.Column("balance").Scale)

		// Identity column accepts inserts without an explicit id.
		_, err = db.ExecContext(ctx,
			`INSERT INTO accounts (email, balance, payload) VALUES ('a@example.com', 10.50, '{"tier":"free"}')`)
		assert.NoError(t, err)

		renamed, err := client.RenameTableIfExists(ctx, "public", "accounts", "customer_accounts")
		assert.NoError(t, err)
		assert.True(t, renamed)

		truncated, err := client.TruncateTableIfExists(ctx, "public", "customer_accounts")
		assert.NoError(t, err)
		assert.True(t, truncated)

		dropped, err := client.DropTableIfExists(ctx, "public", "customer_accounts")
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

		_, err := client.CreateTableIfNotExists(ctx, schema.NewTable("public", "users", userID, username, age))
		assert.NoError(t, err)

		postID := schema.NewColumn("id", typemap.Int64Type)
		postID.IsPrimaryKey = true
		authorID := schema.NewColumn("author_id", typemap.Int64Type)

		_, err = client.CreateTableIfNotExists(ctx, schema.NewTable("public", "posts", postID, authorID))
		assert.NoError(t, err)

		check := schema.NewCheckConstraint("public", "users", "age", "", "age >= 0")
		created, err := client.CreateCheckConstraintIfNotExists(ctx, check)
		assert.NoError(t, err)
		assert.True(t, created)

		gotCheck, err := client.GetCheckConstraint(ctx, "public", "users", check.ConstraintName)
		assert.NoError(t, err)
		assert.NotZero(t, gotCheck)
		assert.Contains(t, gotCheck.Expression, "age")

		dc := schema.NewDefaultConstraint("public", "users", "age", "", "18")
		created, err = client.CreateDefaultConstraintIfNotExists(ctx, dc)
		assert.NoError(t, err)
		assert.True(t, created)

		gotDefault, err := client.GetDefaultConstraintOnColumn(ctx, "public", "users", "age")
		assert.NoError(t, err)
		assert.NotZero(t, gotDefault)

		uc := schema.NewUniqueConstraint("public", "users", "", schema.Asc("username"))
		created, err = client.CreateUniqueConstraintIfNotExists(ctx, uc)
		assert.NoError(t, err)
		assert.True(t, created)

		fk := schema.NewForeignKeyConstraint("public", "posts", "",
			[]schema.OrderedColumn{schema.Asc("author_id")},
			"users",
			[]schema.OrderedColumn{schema.Asc("id")})
		fk.OnDelete = schema.ActionCascade
		created, err = client.CreateForeignKeyConstraintIfNotExists(ctx, fk)
		assert.NoError(t, err)
		assert.True(t, created)

		gotFK, err := client.GetForeignKeyConstraint(ctx, "public", "posts", fk.ConstraintName)
		assert.NoError(t, err)
		assert.NotZero(t, gotFK)
		assert.Equal(t, "users", gotFK.ReferencedTableName)
		assert.Equal(t, schema.ActionCascade, gotFK.OnDelete)

		dropped, err := client.DropForeignKeyConstraintIfExists(ctx, "public", "posts", fk.ConstraintName)
		assert.NoError(t, err)
		assert.True(t, dropped)

		dropped, err = client.DropUniqueConstraintIfExists(ctx, "public", "users", uc.ConstraintName)
		assert.NoError(t, err)
		assert.True(t, dropped)

		dropped, err = client.DropDefaultConstraintIfExists(ctx, "public", "users", dc.ConstraintName)
		assert.NoError(t, err)
		assert.True(t, dropped)

		dropped, err = client.DropCheckConstraintIfExists(ctx, "public", "users", check.ConstraintName)
		assert.NoError(t, err)
		assert.True(t, dropped)
	})

	t.Run("IndexLifecycle", func(t *testing.T) {
		ix := schema.NewIndex("public", "users", "", schema.Asc("username"), schema.Desc("age"))
		created, err := client.CreateIndexIfNotExists(ctx, ix)
		assert.NoError(t, err)
		assert.True(t, created)

		got, err := client.GetIndex(ctx, "public", "users", ix.IndexName)
		assert.NoError(t, err)
		assert.NotZero(t, got)
		assert.Equal(t, 2, len(got.Columns))
		assert.Equal(t, schema.Descending, got.Columns[1].Order)

		dropped, err := client.DropIndexIfExists(ctx, "public", "users", ix.IndexName)
		assert.NoError(t, err)
		assert.True(t, dropped)
	})

	t.Run("ViewLifecycle", func(t *testing.T) {
		view := schema.NewView("public", "adults", "SELECT id, username FROM users WHERE age >= 18")
		created, err := client.CreateViewIfNotExists(ctx, view)
		assert.NoError(t, err)
		assert.True(t, created)

		got, err := client.GetView(ctx, "public", "adults")
		assert.NoError(t, err)
		assert.NotZero(t, got)
		assert.Contains(t, got.Definition, "username")
		assert.NotContains(t, got.Definition, "CREATE VIEW")

		updated, err := client.UpdateViewIfExists(ctx, "public", "adults", "SELECT id FROM users")
		assert.NoError(t, err)
		assert.True(t, updated)

		renamed, err := client.RenameViewIfExists(ctx, "public", "adults", "grownups")
		assert.NoError(t, err)
		assert.True(t, renamed)

		names, err := client.GetViewNames(ctx, "public", "grown*")
		assert.NoError(t, err)
		assert.Equal(t, []string{"grownups"}, names)

		dropped, err := client.DropViewIfExists(ctx, "public", "grownups")
		assert.NoError(t, err)
		assert.True(t, dropped)
	})

	t.Run("ColumnLifecycle", func(t *testing.T) {
		bio := schema.NewColumn("bio", typemap.StringType)
		bio.IsNullable = true
		created, err := client.CreateColumnIfNotExists(ctx, "public", "users", &bio)
		assert.NoError(t, err)
		assert.True(t, created)

		renamed, err := client.RenameColumnIfExists(ctx, "public", "users", "bio", "about")
		assert.NoError(t, err)
		assert.True(t, renamed)

		dropped, err := client.DropColumnIfExists(ctx, "public", "users", "about")
		assert.NoError(t, err)
		assert.True(t, dropped)
	})

	t.Run("TransactionScoped", func(t *testing.T) {
		tx, err := db.BeginTx(ctx, nil)
		assert.NoError(t, err)

		txClient := client.WithTx(tx)
		created, err := txClient.CreateTableIfNotExists(ctx,
			schema.NewTable("public", "scratch", schema.NewColumn("n", typemap.Int32Type)))
		assert.NoError(t, err)
		assert.True(t, created)
		assert.NoError(t, tx.Rollback())

		// Rolled back DDL leaves no trace.
		exists, err := client.DoesTableExist(ctx, "public", "scratch")
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

func intPtr(n int) *int { return &n }
