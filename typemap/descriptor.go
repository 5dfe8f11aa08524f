// Package typemap converts between host Go types and each engine's native
// SQL type syntax. Conversions are deterministic, side-effect free and total:
// an unmapped type reports ok=false instead of failing, so callers can fall
// back to generic text/JSON storage.
package typemap

import (
	"reflect"
	"strconv"
	"strings"
)

// UnboundedLength is the normalized cross-provider representation of
// "no length limit" / MAX storage, regardless of how the source engine
// spells it ("varchar(max)", "text", unset length).
const UnboundedLength = -1

// GoTypeDescriptor wraps a host Go type plus the optional dimensions that
// qualify it on the SQL side. Length, precision and scale are mutually
// exclusive dimensions per type category: text and binary types use Length,
// decimal types use Precision and Scale. Values are never mutated after
// construction.
type GoTypeDescriptor struct {
	Type          reflect.Type
	Length        *int
	Precision     *int
	Scale         *int
	IsUnicode     bool
	IsFixedLength bool
}

// NewGoType creates a descriptor for a bare Go type.
func NewGoType(t reflect.Type) *GoTypeDescriptor {
	return &GoTypeDescriptor{Type: t}
}

// WithLength returns a copy carrying a length dimension.
func (d *GoTypeDescriptor) WithLength(length int) *GoTypeDescriptor {
	c := *d
	c.Length = &length
	return &c
}

// WithPrecision returns a copy carrying precision and scale dimensions.
func (d *GoTypeDescriptor) WithPrecision(precision, scale int) *GoTypeDescriptor {
	c := *d
	c.Precision = &precision
	c.Scale = &scale
	return &c
}

// Unicode returns a copy flagged as requiring unicode storage.
func (d *GoTypeDescriptor) Unicode() *GoTypeDescriptor {
	c := *d
	c.IsUnicode = true
	return &c
}

// FixedLength returns a copy flagged as fixed-length storage.
func (d *GoTypeDescriptor) FixedLength() *GoTypeDescriptor {
	c := *d
	c.IsFixedLength = true
	return &c
}

// Elem unwraps pointer types; a *string column maps like a string column.
func (d *GoTypeDescriptor) Elem() reflect.Type {
	t := d.Type
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// SQLTypeDescriptor wraps a fully formed engine-native type name string plus
// the metadata extracted from it. The metadata always agrees with what the
// string encodes; UnboundedLength (-1) marks MAX/unbounded storage.
type SQLTypeDescriptor struct {
	SQLTypeName   string // full native spelling, e.g. "decimal(10,2)"
	BaseTypeName  string // lowercased base, e.g. "decimal"
	Length        *int
	Precision     *int
	Scale         *int
	IsUnicode     bool
	IsFixedLength bool
}

// precisionBases are base type names whose single parenthesized argument is a
// precision, not a character/byte length.
var precisionBases = map[string]bool{
	"decimal": true, "numeric": true, "dec": true, "number": true,
	"float": true, "real": true, "double": true, "double precision": true,
	"time": true, "datetime": true, "datetime2": true, "datetimeoffset": true,
	"timestamp": true, "timestamptz": true, "timetz": true, "interval": true,
	"timestamp with time zone": true, "timestamp without time zone": true,
	"time with time zone": true, "time without time zone": true,
}

var fixedLengthBases = map[string]bool{
	"char": true, "nchar": true, "character": true, "binary": true, "bpchar": true,
}

// ParseSQLType parses an engine-native type string ("nvarchar(255)",
// "decimal(10,2)", "varchar(max)", "character varying(40)[]") into a
// descriptor. It never fails: an unparseable remainder simply leaves the
// dimension fields unset.
func ParseSQLType(sqlType string) *SQLTypeDescriptor {
	full := strings.TrimSpace(sqlType)
	d := &SQLTypeDescriptor{SQLTypeName: full}

	body := strings.TrimSuffix(strings.ToLower(full), "[]")

	base := body
	var args string
	if open := strings.IndexByte(body, '('); open >= 0 {
		if close := strings.LastIndexByte(body, ')'); close > open {
			// Keep a separator: "timestamp(6) with time zone" must yield the
			// base "timestamp with time zone", not a run-together token.
			base = strings.TrimSpace(body[:open]) + " " + strings.TrimSpace(body[close+1:])
			args = body[open+1 : close]
		}
	}

	d.BaseTypeName = strings.Join(strings.Fields(base), " ")
	d.IsUnicode = strings.HasPrefix(d.BaseTypeName, "n") && isUnicodeBase(d.BaseTypeName)
	d.IsFixedLength = fixedLengthBases[d.BaseTypeName]

	if args == "" {
		return d
	}

	parts := strings.Split(args, ",")
	first := strings.TrimSpace(parts[0])

	if strings.EqualFold(first, "max") {
		unbounded := UnboundedLength
		d.Length = &unbounded
		return d
	}

	n, err := strconv.Atoi(first)
	if err != nil {
		return d
	}

	if precisionBases[d.BaseTypeName] {
		d.Precision = &n
		if len(parts) > 1 {
			if scale, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
				d.Scale = &scale
			}
		}
		return d
	}

	d.Length = &n
	return d
}

func isUnicodeBase(base string) bool {
	switch base {
	case "nchar", "nvarchar", "ntext", "national char", "national varchar", "national character", "national character varying":
		return true
	}
	return false
}

func intPtr(n int) *int { return &n }
