package typemap

import (
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Well-known Go types used across the provider tables.
var (
	TimeType    = reflect.TypeOf(time.Time{})
	DecimalType = reflect.TypeOf(decimal.Decimal{})
	UUIDType    = reflect.TypeOf(uuid.UUID{})
	BytesType   = reflect.TypeOf([]byte(nil))
	StringType  = reflect.TypeOf("")
	BoolType    = reflect.TypeOf(false)
	Int8Type    = reflect.TypeOf(int8(0))
	Int16Type   = reflect.TypeOf(int16(0))
	Int32Type   = reflect.TypeOf(int32(0))
	Int64Type   = reflect.TypeOf(int64(0))
	Float32Type = reflect.TypeOf(float32(0))
	Float64Type = reflect.TypeOf(float64(0))
	MapType     = reflect.TypeOf(map[string]any{})
)

// goClass buckets a Go type into the category that drives native type choice.
type goClass int

const (
	classBool goClass = iota
	classInt8
	classInt16
	classInt32
	classInt64
	classFloat32
	classFloat64
	classDecimal
	classUUID
	classTime
	classString
	classBytes
	classJSON // maps, slices, structs without a dedicated mapping
)

func classifyGoType(t reflect.Type) goClass {
	if t == nil {
		return classJSON
	}

	switch t {
	case TimeType:
		return classTime
	case DecimalType:
		return classDecimal
	case UUIDType:
		return classUUID
	case BytesType:
		return classBytes
	}

	switch t.Kind() {
	case reflect.Bool:
		return classBool
	case reflect.Int8, reflect.Uint8:
		return classInt8
	case reflect.Int16, reflect.Uint16:
		return classInt16
	case reflect.Int32, reflect.Uint32, reflect.Int, reflect.Uint:
		return classInt32
	case reflect.Int64, reflect.Uint64:
		return classInt64
	case reflect.Float32:
		return classFloat32
	case reflect.Float64:
		return classFloat64
	case reflect.String:
		return classString
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return classBytes
		}
		return classJSON
	default:
		return classJSON
	}
}

// lengthOrDefault resolves a text/binary length: explicit value wins,
// otherwise the fallback. UnboundedLength passes through unchanged.
func lengthOrDefault(length *int, fallback int) int {
	if length != nil {
		return *length
	}
	return fallback
}

// precisionOrDefault resolves decimal precision/scale from a descriptor.
func precisionOrDefault(precision, scale *int) (int, int) {
	p, s := DefaultDecimalPrecision, DefaultDecimalScale
	if precision != nil {
		p = *precision
		s = 0
	}
	if scale != nil {
		s = *scale
	}
	return p, s
}

// goDescriptorFrom copies the dimensions of a parsed SQL descriptor onto a Go
// type, normalizing unbounded storage for the given base names.
func goDescriptorFrom(t reflect.Type, d *SQLTypeDescriptor, unbounded bool) *GoTypeDescriptor {
	gd := &GoTypeDescriptor{
		Type:          t,
		Length:        d.Length,
		Precision:     d.Precision,
		Scale:         d.Scale,
		IsUnicode:     d.IsUnicode,
		IsFixedLength: d.IsFixedLength,
	}
	if unbounded && gd.Length == nil {
		gd.Length = intPtr(UnboundedLength)
	}
	return gd
}
