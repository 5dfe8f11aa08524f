package structmap

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/schemakit"
	"github.com/shibukawa/schemakit/schema"
)

type User struct {
	ID        int64     `db:"id" schemakit:"primarykey,autoincrement"`
	Email     string    `db:"email" schemakit:"length:320,unique"`
	TeamID    *int64    `db:"team_id" schemakit:"references:teams(id),ondelete:cascade"`
	Balance   float64   `db:"balance" schemakit:"precision:10,scale:2"`
	Note      string    `db:"note" schemakit:"provider:{postgresql:jsonb,sqlserver:nvarchar(max)}"`
	CreatedAt time.Time `db:"created_at" schemakit:"default:CURRENT_TIMESTAMP"`
	internal  string    //nolint:unused // unexported fields are skipped
	Skipped   string    `db:"-"`
}

func TestTableFromStruct(t *testing.T) {
	table, err := Table(User{})
	assert.NoError(t, err)
	assert.Equal(t, "user", table.TableName)
	assert.Equal(t, 6, len(table.Columns))

	id := table.Column("id")
	assert.True(t, id.IsPrimaryKey)
	assert.True(t, id.IsAutoIncrement)
	assert.False(t, id.IsNullable)

	email := table.Column("email")
	assert.True(t, email.IsUnique)
	assert.Equal(t, 320, *email.Length)

	team := table.Column("team_id")
	assert.True(t, team.IsNullable) // pointer field
	assert.True(t, team.IsForeignKey)
	assert.Equal(t, "teams", team.ReferencedTableName)
	assert.Equal(t, "id", team.ReferencedColumnName)
	assert.Equal(t, schema.ActionCascade, team.OnDelete)

	balance := table.Column("balance")
	assert.Equal(t, 10, *balance.Precision)
	assert.Equal(t, 2, *balance.Scale)

	note := table.Column("note")
	assert.Equal(t, "jsonb", note.ProviderDataType(schemakit.ProviderPostgreSQL))
	assert.Equal(t, "nvarchar(max)", note.ProviderDataType(schemakit.ProviderSqlServer))

	assert.Zero(t, table.Column("skipped"))
	assert.Zero(t, table.Column("internal"))
}

type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Order struct {
	AuditFields
	ID     int64  `db:"id" schemakit:"pk"`
	Status string `db:"status" schemakit:"check:status in ('open','closed')"`
}

func TestEmbeddedStructFlattened(t *testing.T) {
	table, err := Table(Order{})
	assert.NoError(t, err)
	assert.Equal(t, "order", table.TableName)
	assert.Equal(t, 4, len(table.Columns))
	assert.NotZero(t, table.Column("created_at"))
	assert.NotZero(t, table.Column("updated_at"))
	assert.Equal(t, "status in ('open','closed')", table.Column("status").CheckExpression)
}

type named struct {
	ID int64 `db:"id"`
}

func (named) TableName() string { return "renamed" }

func TestTableNameOverrides(t *testing.T) {
	table, err := Table(named{})
	assert.NoError(t, err)
	assert.Equal(t, "renamed", table.TableName)

	table, err = TableNamed(named{}, "app", "explicit")
	assert.NoError(t, err)
	assert.Equal(t, "app", table.SchemaName)
	assert.Equal(t, "explicit", table.TableName)
}

func TestUntaggedFieldUsesSnakeCase(t *testing.T) {
	type HTTPRoute struct {
		RouteID   int64
		PathMatch string
	}
	table, err := Table(HTTPRoute{})
	assert.NoError(t, err)
	assert.Equal(t, "http_route", table.TableName)
	assert.NotZero(t, table.Column("route_id"))
	assert.NotZero(t, table.Column("path_match"))
}

func TestTableErrors(t *testing.T) {
	_, err := Table(42)
	assert.IsError(t, err, ErrNotAStruct)

	type Empty struct{}
	_, err = Table(Empty{})
	assert.IsError(t, err, ErrNoMappedColumns)

	type badLength struct {
		Name string `db:"name" schemakit:"length:abc"`
	}
	_, err = Table(badLength{})
	assert.IsError(t, err, ErrBadTagOption)

	type badRef struct {
		TeamID int64 `db:"team_id" schemakit:"references:teams"`
	}
	_, err = Table(badRef{})
	assert.IsError(t, err, ErrBadReferenceSpec)
}
