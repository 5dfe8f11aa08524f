package sqlserver

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/schemakit/methods"
	"github.com/shibukawa/schemakit/schema"
	"github.com/shibukawa/schemakit/typemap"
)

// The tests below assert the statements the implementation hands to the
// engine. Catalog queries run against a recording fake driver that answers
// with configured single-column rows, so no server is needed.

type execCall struct {
	query string
	args  []driver.Value
}

type recorder struct {
	queryRows [][]driver.Value
	execs     []execCall
}

type fakeConnector struct{ rec *recorder }

func (c fakeConnector) Connect(_ context.Context) (driver.Conn, error) {
	return fakeConn{rec: c.rec}, nil
}
func (fakeConnector) Driver() driver.Driver { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("use the connector")
}

type fakeConn struct{ rec *recorder }

func (fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements not supported")
}
func (fakeConn) Close() error              { return nil }
func (fakeConn) Begin() (driver.Tx, error) { return nil, errors.New("transactions not supported") }

func (c fakeConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	vals := make([]driver.Value, len(args))
	for i, a := range args {
		vals[i] = a.Value
	}
	c.rec.execs = append(c.rec.execs, execCall{query: query, args: vals})
	return driver.ResultNoRows, nil
}

func (c fakeConn) QueryContext(_ context.Context, _ string, _ []driver.NamedValue) (driver.Rows, error) {
	return &fakeRows{rows: c.rec.queryRows}, nil
}

type fakeRows struct {
	rows [][]driver.Value
	next int
}

func (*fakeRows) Columns() []string { return []string{"n"} }
func (*fakeRows) Close() error      { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.next >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.next])
	r.next++
	return nil
}

// openRecordingDB returns a database whose every catalog query yields the
// given counts, one row each, and whose executed statements are captured.
func openRecordingDB(t *testing.T, counts ...int64) (*sql.DB, *recorder) {
	t.Helper()

	rec := &recorder{}
	for _, n := range counts {
		rec.queryRows = append(rec.queryRows, []driver.Value{n})
	}
	db := sql.OpenDB(fakeConnector{rec: rec})
	t.Cleanup(func() { db.Close() })
	return db, rec
}

func widgetsTable() *schema.Table {
	id := schema.NewColumn("id", typemap.Int64Type)
	id.IsPrimaryKey = true
	id.IsAutoIncrement = true

	title := schema.NewColumn("title", typemap.StringType)
	title.Length = intPtr(200)
	title.IsIndexed = true

	price := schema.NewColumn("price", typemap.DecimalType)
	price.Precision = intPtr(12)
	price.Scale = intPtr(2)
	price.CheckExpression = "price > 0"

	quantity := schema.NewColumn("quantity", typemap.Int32Type)
	quantity.DefaultExpression = "0"

	sku := schema.NewColumn("sku", typemap.StringType)
	sku.Length = intPtr(40)
	sku.IsUnique = true

	return schema.NewTable("", "widgets", id, title, price, quantity, sku)
}

func intPtr(n int) *int { return &n }

func TestSchemaOrDefaultsToDbo(t *testing.T) {
	assert.Equal(t, "dbo", schemaOr(""))
	assert.Equal(t, "sales", schemaOr("sales"))
}

func TestBuildCreateTableSQL(t *testing.T) {
	m := New()

	createSQL, indexSQL, err := m.buildCreateTableSQL(methods.NormalizeTable(widgetsTable()))
	assert.NoError(t, err)

	assert.Equal(t, "CREATE TABLE [dbo].[widgets] (\n"+
		"  [id] bigint IDENTITY(1,1) NOT NULL CONSTRAINT [pk_widgets_id] PRIMARY KEY,\n"+
		"  [title] varchar(200) NOT NULL,\n"+
		"  [price] decimal(12,2) NOT NULL,\n"+
		"  [quantity] int NOT NULL CONSTRAINT [df_widgets_quantity] DEFAULT 0,\n"+
		"  [sku] varchar(40) NOT NULL,\n"+
		"  CONSTRAINT [ck_widgets_price] CHECK (price > 0),\n"+
		"  CONSTRAINT [uc_widgets_sku] UNIQUE ([sku])\n"+
		")", createSQL)
	assert.Equal(t, []string{
		"CREATE INDEX [ix_widgets_title] ON [dbo].[widgets] ([title])",
	}, indexSQL)
}

func TestCompositeKeyEmitsTableClause(t *testing.T) {
	tenant := schema.NewColumn("tenant_id", typemap.Int32Type)
	tenant.IsPrimaryKey = true

	seq := schema.NewColumn("seq", typemap.Int64Type)
	seq.IsPrimaryKey = true
	seq.IsAutoIncrement = true

	table := methods.NormalizeTable(schema.NewTable("", "events", tenant, seq))
	createSQL, indexSQL, err := New().buildCreateTableSQL(table)
	assert.NoError(t, err)
	assert.Zero(t, indexSQL)

	// IDENTITY stays on the column while the key moves to a table clause.
	assert.Equal(t, "CREATE TABLE [dbo].[events] (\n"+
		"  [tenant_id] int NOT NULL,\n"+
		"  [seq] bigint IDENTITY(1,1) NOT NULL,\n"+
		"  CONSTRAINT [pk_events_tenant_id_seq] PRIMARY KEY ([tenant_id], [seq])\n"+
		")", createSQL)
}

func TestBuildCreateIndexSQL(t *testing.T) {
	m := New()

	ix := schema.NewIndex("", "orders", "", schema.Desc("placed_at"), schema.Asc("customer_id"))
	ix.IsUnique = true
	assert.Equal(t,
		"CREATE UNIQUE INDEX [ix_orders_placed_at_customer_id] ON [dbo].[orders] ([placed_at] DESC, [customer_id])",
		m.buildCreateIndexSQL(ix))
}

func TestCreateTableStatementFlow(t *testing.T) {
	db, rec := openRecordingDB(t, 0)
	m := New()

	created, err := m.CreateTableIfNotExists(t.Context(), db, widgetsTable())
	assert.NoError(t, err)
	assert.True(t, created)

	assert.Equal(t, 2, len(rec.execs))
	assert.True(t, strings.HasPrefix(rec.execs[0].query, "CREATE TABLE [dbo].[widgets] ("))
	assert.Equal(t, "CREATE INDEX [ix_widgets_title] ON [dbo].[widgets] ([title])", rec.execs[1].query)
}

func TestRenameTableUsesSpRename(t *testing.T) {
	db, rec := openRecordingDB(t, 1)
	m := New()

	renamed, err := m.RenameTableIfExists(t.Context(), db, "", "widgets", "gadgets")
	assert.NoError(t, err)
	assert.True(t, renamed)

	assert.Equal(t, 1, len(rec.execs))
	assert.Equal(t, "EXEC sp_rename @p1, @p2", rec.execs[0].query)
	assert.Equal(t, []driver.Value{"dbo.widgets", "gadgets"}, rec.execs[0].args)
}

func TestRenameColumnUsesSpRename(t *testing.T) {
	db, rec := openRecordingDB(t, 1)
	m := New()

	renamed, err := m.RenameColumnIfExists(t.Context(), db, "sales", "widgets", "title", "caption")
	assert.NoError(t, err)
	assert.True(t, renamed)

	assert.Equal(t, 1, len(rec.execs))
	assert.Equal(t, "EXEC sp_rename @p1, @p2, 'COLUMN'", rec.execs[0].query)
	assert.Equal(t, []driver.Value{"sales.widgets.title", "caption"}, rec.execs[0].args)
}

func TestRenameViewUsesSpRename(t *testing.T) {
	db, rec := openRecordingDB(t, 1)
	m := New()

	renamed, err := m.RenameViewIfExists(t.Context(), db, "", "active_widgets", "current_widgets")
	assert.NoError(t, err)
	assert.True(t, renamed)

	assert.Equal(t, 1, len(rec.execs))
	assert.Equal(t, "EXEC sp_rename @p1, @p2", rec.execs[0].query)
	assert.Equal(t, []driver.Value{"dbo.active_widgets", "current_widgets"}, rec.execs[0].args)
}

func TestConstraintStatements(t *testing.T) {
	m := New()
	ctx := t.Context()

	t.Run("primary key", func(t *testing.T) {
		db, rec := openRecordingDB(t, 0)

		pk := schema.NewPrimaryKeyConstraint("", "orders", "", schema.Asc("id"))
		created, err := m.CreatePrimaryKeyConstraintIfNotExists(ctx, db, pk)
		assert.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t,
			"ALTER TABLE [dbo].[orders] ADD CONSTRAINT [pk_orders_id] PRIMARY KEY ([id])",
			rec.execs[0].query)
	})

	t.Run("check", func(t *testing.T) {
		db, rec := openRecordingDB(t)

		cc := schema.NewCheckConstraint("", "orders", "status", "", "status <> ''")
		created, err := m.CreateCheckConstraintIfNotExists(ctx, db, cc)
		assert.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t,
			"ALTER TABLE [dbo].[orders] ADD CONSTRAINT [ck_orders_status] CHECK (status <> '')",
			rec.execs[0].query)
	})

	t.Run("default", func(t *testing.T) {
		db, rec := openRecordingDB(t)

		dc := schema.NewDefaultConstraint("", "orders", "status", "", "'new'")
		created, err := m.CreateDefaultConstraintIfNotExists(ctx, db, dc)
		assert.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t,
			"ALTER TABLE [dbo].[orders] ADD CONSTRAINT [df_orders_status] DEFAULT 'new' FOR [status]",
			rec.execs[0].query)
	})

	t.Run("unique", func(t *testing.T) {
		db, rec := openRecordingDB(t)

		uc := schema.NewUniqueConstraint("", "orders", "", schema.Asc("number"))
		created, err := m.CreateUniqueConstraintIfNotExists(ctx, db, uc)
		assert.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t,
			"ALTER TABLE [dbo].[orders] ADD CONSTRAINT [uc_orders_number] UNIQUE ([number])",
			rec.execs[0].query)
	})

	t.Run("foreign key", func(t *testing.T) {
		db, rec := openRecordingDB(t)

		fk := schema.NewForeignKeyConstraint("", "orders", "",
			[]schema.OrderedColumn{schema.Asc("customer_id")},
			"customers",
			[]schema.OrderedColumn{schema.Asc("id")})
		fk.ReferencedSchemaName = "dbo"
		fk.OnDelete = schema.ActionCascade

		created, err := m.CreateForeignKeyConstraintIfNotExists(ctx, db, fk)
		assert.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t,
			"ALTER TABLE [dbo].[orders] ADD CONSTRAINT [fk_orders_customer_id_customers_id] "+
				"FOREIGN KEY ([customer_id]) REFERENCES [dbo].[customers] ([id]) ON DELETE CASCADE",
			rec.execs[0].query)
	})
}

func TestRenderNativeType(t *testing.T) {
	assert.Equal(t, "nvarchar(max)", renderNativeType("nvarchar", -1, 0, 0))
	assert.Equal(t, "nvarchar(50)", renderNativeType("nvarchar", 100, 0, 0))
	assert.Equal(t, "varchar(80)", renderNativeType("varchar", 80, 0, 0))
	assert.Equal(t, "varbinary(max)", renderNativeType("varbinary", -1, 0, 0))
	assert.Equal(t, "decimal(12,2)", renderNativeType("decimal", 9, 12, 2))
	assert.Equal(t, "int", renderNativeType("int", 4, 10, 0))
}

func TestStripOuterParens(t *testing.T) {
	assert.Equal(t, "0", stripOuterParens("((0))"))
	assert.Equal(t, "getdate()", stripOuterParens("(getdate())"))
	assert.Equal(t, "'new'", stripOuterParens("('new')"))
}
