package schema

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestGeneratedNamesAreDeterministic(t *testing.T) {
	first := GenerateForeignKeyName("orders", []string{"user_id"}, "users", []string{"id"})
	second := GenerateForeignKeyName("orders", []string{"user_id"}, "users", []string{"id"})
	assert.Equal(t, first, second)
}

func TestGeneratedNameShapes(t *testing.T) {
	assert.Equal(t, "pk_users_id", GeneratePrimaryKeyName("users", "id"))
	assert.Equal(t, "pk_users_tenant_id_id", GeneratePrimaryKeyName("users", "tenant_id", "id"))
	assert.Equal(t, "ck_users_age", GenerateCheckConstraintName("users", "age"))
	assert.Equal(t, "df_users_created_at", GenerateDefaultConstraintName("users", "created_at"))
	assert.Equal(t, "uc_users_email", GenerateUniqueConstraintName("users", "email"))
	assert.Equal(t, "ix_users_last_name_first_name", GenerateIndexName("users", "last_name", "first_name"))
	assert.Equal(t, "fk_orders_user_id_users_id",
		GenerateForeignKeyName("orders", []string{"user_id"}, "users", []string{"id"}))
}

func TestGeneratedNamesNormalizeIdentifiers(t *testing.T) {
	// Quoted or mixed-case identifiers must yield the same name as their
	// plain lowercase spelling, since engines resolve them to the same object.
	assert.Equal(t, GeneratePrimaryKeyName("users", "id"), GeneratePrimaryKeyName("Users", "ID"))
	assert.Equal(t, GenerateIndexName("users", "id"), GenerateIndexName(`"users"`, `"id"`))
	assert.Equal(t, GenerateIndexName("my_table", "col"), GenerateIndexName("[my_table]", "[col]"))
}

func TestTableColumnLookupIsCaseInsensitive(t *testing.T) {
	table := NewTable("", "users",
		NewColumn("ID", nil),
		NewColumn("Email", nil),
	)

	assert.NotZero(t, table.Column("id"))
	assert.NotZero(t, table.Column("EMAIL"))
	assert.Zero(t, table.Column("missing"))
}
