// Package datatypes is the per-provider catalog of supported named SQL types,
// used by the discovery APIs. Registries are built once at package
// initialization and immutable afterwards.
package datatypes

import (
	"sort"

	"golang.org/x/text/cases"

	schemakit "github.com/shibukawa/schemakit"
)

// Category buckets data types for discovery and documentation consumers.
type Category string

const (
	CategoryBoolean  Category = "boolean"
	CategoryInteger  Category = "integer"
	CategoryDecimal  Category = "decimal"
	CategoryText     Category = "text"
	CategoryBinary   Category = "binary"
	CategoryDateTime Category = "datetime"
	CategoryJSON     Category = "json"
	CategorySpatial  Category = "spatial"
	CategoryNetwork  Category = "network"
	CategoryRange    Category = "range"
	CategoryArray    Category = "array"
	CategoryOther    Category = "other"
)

// categoryOrder fixes the deterministic output order. UI and documentation
// consumers depend on this ordering being stable.
var categoryOrder = map[Category]int{
	CategoryBoolean:  0,
	CategoryInteger:  1,
	CategoryDecimal:  2,
	CategoryText:     3,
	CategoryBinary:   4,
	CategoryDateTime: 5,
	CategoryJSON:     6,
	CategorySpatial:  7,
	CategoryNetwork:  8,
	CategoryRange:    9,
	CategoryArray:    10,
	CategoryOther:    11,
}

// DataTypeInfo describes one named SQL type a provider supports. Constructed
// once at registry build time and immutable thereafter.
type DataTypeInfo struct {
	Name       string   `json:"name" yaml:"name"`
	Aliases    []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Category   Category `json:"category" yaml:"category"`
	IsCommon   bool     `json:"isCommon" yaml:"isCommon"`
	IsAdvanced bool     `json:"isAdvanced,omitempty" yaml:"isAdvanced,omitempty"`
	IsCustom   bool     `json:"isCustom,omitempty" yaml:"isCustom,omitempty"`

	SupportsLength bool `json:"supportsLength,omitempty" yaml:"supportsLength,omitempty"`
	MinLength      int  `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength      int  `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	DefaultLength  int  `json:"defaultLength,omitempty" yaml:"defaultLength,omitempty"`

	SupportsPrecision bool `json:"supportsPrecision,omitempty" yaml:"supportsPrecision,omitempty"`
	MinPrecision      int  `json:"minPrecision,omitempty" yaml:"minPrecision,omitempty"`
	MaxPrecision      int  `json:"maxPrecision,omitempty" yaml:"maxPrecision,omitempty"`
	DefaultPrecision  int  `json:"defaultPrecision,omitempty" yaml:"defaultPrecision,omitempty"`

	SupportsScale bool `json:"supportsScale,omitempty" yaml:"supportsScale,omitempty"`
	MinScale      int  `json:"minScale,omitempty" yaml:"minScale,omitempty"`
	MaxScale      int  `json:"maxScale,omitempty" yaml:"maxScale,omitempty"`
	DefaultScale  int  `json:"defaultScale,omitempty" yaml:"defaultScale,omitempty"`
}

// fold provides unicode-correct case-insensitive keys for the alias index.
var fold = cases.Fold()

// Registry is one provider's immutable data type catalog with a
// case-insensitive name/alias index.
type Registry struct {
	provider schemakit.ProviderType
	types    []*DataTypeInfo
	index    map[string]*DataTypeInfo
}

// NewRegistry builds a registry by running the provider's registration
// function, then sorting (category, name) and building the alias index.
func NewRegistry(provider schemakit.ProviderType, register func(add func(...*DataTypeInfo))) *Registry {
	r := &Registry{
		provider: provider,
		index:    make(map[string]*DataTypeInfo),
	}

	register(func(infos ...*DataTypeInfo) {
		r.types = append(r.types, infos...)
	})

	sort.SliceStable(r.types, func(i, j int) bool {
		a, b := r.types[i], r.types[j]
		if a.Category != b.Category {
			return categoryOrder[a.Category] < categoryOrder[b.Category]
		}
		return a.Name < b.Name
	})

	for _, info := range r.types {
		r.index[fold.String(info.Name)] = info
	}
	// Aliases never shadow a canonical name.
	for _, info := range r.types {
		for _, alias := range info.Aliases {
			key := fold.String(alias)
			if _, exists := r.index[key]; !exists {
				r.index[key] = info
			}
		}
	}

	return r
}

// Provider returns the provider this registry describes.
func (r *Registry) Provider() schemakit.ProviderType { return r.provider }

// AvailableDataTypes returns all registered types, or only the common subset,
// in the deterministic (category, name) order.
func (r *Registry) AvailableDataTypes(includeAdvanced bool) []*DataTypeInfo {
	if includeAdvanced {
		out := make([]*DataTypeInfo, len(r.types))
		copy(out, r.types)
		return out
	}

	out := make([]*DataTypeInfo, 0, len(r.types))
	for _, info := range r.types {
		if info.IsCommon {
			out = append(out, info)
		}
	}
	return out
}

// DataTypeByName looks a type up by canonical name or alias,
// case-insensitively. Returns nil on miss.
func (r *Registry) DataTypeByName(name string) *DataTypeInfo {
	return r.index[fold.String(name)]
}

// DataTypesForCategory returns the registered types of one category.
func (r *Registry) DataTypesForCategory(category Category) []*DataTypeInfo {
	var out []*DataTypeInfo
	for _, info := range r.types {
		if info.Category == category {
			out = append(out, info)
		}
	}
	return out
}

// AvailableCategories returns the categories with at least one registered
// type, in the deterministic order.
func (r *Registry) AvailableCategories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, info := range r.types {
		if !seen[info.Category] {
			seen[info.Category] = true
			out = append(out, info.Category)
		}
	}
	return out
}

// ForProvider returns the builtin registry for a provider, or nil for
// ProviderOther.
func ForProvider(p schemakit.ProviderType) *Registry {
	switch p {
	case schemakit.ProviderSqlite:
		return Sqlite
	case schemakit.ProviderSqlServer:
		return SqlServer
	case schemakit.ProviderMySQL:
		return MySQL
	case schemakit.ProviderPostgreSQL:
		return Postgres
	default:
		return nil
	}
}
