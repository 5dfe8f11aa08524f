package datatypes

import (
	"sort"
	"testing"

	"github.com/alecthomas/assert/v2"
	schemakit "github.com/shibukawa/schemakit"
)

func allRegistries() []*Registry {
	return []*Registry{Sqlite, SqlServer, MySQL, Postgres}
}

func TestForProvider(t *testing.T) {
	assert.Equal(t, Sqlite, ForProvider(schemakit.ProviderSqlite))
	assert.Equal(t, SqlServer, ForProvider(schemakit.ProviderSqlServer))
	assert.Equal(t, MySQL, ForProvider(schemakit.ProviderMySQL))
	assert.Equal(t, Postgres, ForProvider(schemakit.ProviderPostgreSQL))
	assert.Zero(t, ForProvider(schemakit.ProviderOther))
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	for _, r := range allRegistries() {
		info := r.DataTypeByName("int")
		assert.NotZero(t, info)

		assert.Equal(t, info, r.DataTypeByName("INT"))
		assert.Equal(t, info, r.DataTypeByName("Int"))
	}
}

func TestAliasLookup(t *testing.T) {
	info := Postgres.DataTypeByName("int8")
	assert.NotZero(t, info)
	assert.Equal(t, "bigint", info.Name)

	info = Postgres.DataTypeByName("INT4")
	assert.NotZero(t, info)
	assert.Equal(t, "integer", info.Name)
}

func TestUnknownNameReturnsNil(t *testing.T) {
	for _, r := range allRegistries() {
		assert.Zero(t, r.DataTypeByName("no_such_type"))
		assert.Zero(t, r.DataTypeByName(""))
	}
}

func TestAvailableDataTypesOrdering(t *testing.T) {
	for _, r := range allRegistries() {
		types := r.AvailableDataTypes(true)
		assert.True(t, len(types) > 0)

		ordered := sort.SliceIsSorted(types, func(i, j int) bool {
			a, b := types[i], types[j]
			if a.Category != b.Category {
				return categoryOrder[a.Category] < categoryOrder[b.Category]
			}
			return a.Name < b.Name
		})
		assert.True(t, ordered)

		// The common subset is a strict filter of the full list.
		common := r.AvailableDataTypes(false)
		assert.True(t, len(common) <= len(types))
		for _, info := range common {
			assert.True(t, info.IsCommon)
		}
	}
}

func TestDataTypesForCategory(t *testing.T) {
	for _, r := range allRegistries() {
		integers := r.DataTypesForCategory(CategoryInteger)
		assert.True(t, len(integers) > 0)
		for _, info := range integers {
			assert.Equal(t, CategoryInteger, info.Category)
			// Integer types never carry length/precision/scale parameters.
			assert.False(t, info.SupportsLength)
			assert.False(t, info.SupportsPrecision)
			assert.False(t, info.SupportsScale)
		}

		assert.Zero(t, len(r.DataTypesForCategory("nonexistent")))
	}
}

func TestAvailableCategories(t *testing.T) {
	for _, r := range allRegistries() {
		categories := r.AvailableCategories()
		assert.True(t, len(categories) > 0)

		seen := make(map[Category]bool)
		lastOrder := -1
		for _, c := range categories {
			assert.False(t, seen[c])
			seen[c] = true
			assert.True(t, categoryOrder[c] >= lastOrder)
			lastOrder = categoryOrder[c]
		}

		assert.True(t, seen[CategoryInteger])
		assert.True(t, seen[CategoryText])
		assert.True(t, seen[CategoryDateTime])
	}
}

func TestDecimalTypesCarryPrecisionAndScale(t *testing.T) {
	for _, r := range allRegistries() {
		info := r.DataTypeByName("decimal")
		if info == nil {
			info = r.DataTypeByName("numeric")
		}
		assert.NotZero(t, info)
		assert.True(t, info.SupportsPrecision)
		assert.True(t, info.SupportsScale)
		assert.True(t, info.MaxPrecision > 0)
	}
}
