// Package field defines the closed set of target-type descriptors that column
// and attribute types are mapped into before code generation.
package field

import "fmt"

// A Type represents one shape in the descriptor set. Leaf types denote a
// concrete Go type; wrapper types compose another descriptor.
type Type uint8

// List of all descriptor types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeDecimal
	TypeString
	TypeBytes
	TypeDate
	TypeTime
	TypeTimeTZ
	TypeTimestamp
	TypeTimestampTZ
	TypeUUID
	TypeJSON
	TypeIPNet
	TypeMAC
	TypeBits
	TypeInterval
	TypeMoney
	TypeTSQuery
	TypeTSVector
	TypeXML
	TypeCustom
	TypeNullable
	TypeSlice
	TypeRange
	endTypes
)

var typeNames = [...]string{
	TypeInvalid:     "invalid",
	TypeBool:        "bool",
	TypeInt8:        "int8",
	TypeInt16:       "int16",
	TypeInt32:       "int32",
	TypeInt64:       "int64",
	TypeFloat32:     "float32",
	TypeFloat64:     "float64",
	TypeDecimal:     "decimal",
	TypeString:      "string",
	TypeBytes:       "bytes",
	TypeDate:        "date",
	TypeTime:        "time",
	TypeTimeTZ:      "timetz",
	TypeTimestamp:   "timestamp",
	TypeTimestampTZ: "timestamptz",
	TypeUUID:        "uuid",
	TypeJSON:        "json",
	TypeIPNet:       "ipnet",
	TypeMAC:         "mac",
	TypeBits:        "bits",
	TypeInterval:    "interval",
	TypeMoney:       "money",
	TypeTSQuery:     "tsquery",
	TypeTSVector:    "tsvector",
	TypeXML:         "xml",
	TypeCustom:      "custom",
	TypeNullable:    "nullable",
	TypeSlice:       "slice",
	TypeRange:       "range",
}

// String returns the descriptor name for diagnostics.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("invalid=%v", uint8(t))
}

// Valid reports if the given type is a valid descriptor type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports if the given type is a numeric leaf type.
func (t Type) Numeric() bool {
	return t >= TypeInt8 && t <= TypeDecimal
}

// Temporal reports if the given type is a date/time leaf type.
func (t Type) Temporal() bool {
	return t >= TypeDate && t <= TypeTimestampTZ || t == TypeInterval
}

// Wrapper reports if the given type composes an inner descriptor.
func (t Type) Wrapper() bool {
	return t == TypeNullable || t == TypeSlice || t == TypeRange
}

// A TypeInfo is a recursive target-type descriptor. Leaf descriptors carry
// only a Type (and, for TypeCustom, the display identifier); wrapper
// descriptors carry the wrapped descriptor in Elem.
type TypeInfo struct {
	Type  Type
	Ident string    // display name, set for TypeCustom only.
	Elem  *TypeInfo // inner descriptor, set for wrapper types only.
}

// New returns a leaf descriptor for the given type.
func New(t Type) *TypeInfo {
	return &TypeInfo{Type: t}
}

// Custom returns a custom-named descriptor carrying the target identifier.
func Custom(ident string) *TypeInfo {
	return &TypeInfo{Type: TypeCustom, Ident: ident}
}

// Nullable wraps the given descriptor in a nullable wrapper. The wrapping is
// independent of the base classification; callers apply it exactly once for a
// nullable column.
func Nullable(elem *TypeInfo) *TypeInfo {
	return &TypeInfo{Type: TypeNullable, Elem: elem}
}

// Slice wraps the given descriptor in a sequence wrapper.
func Slice(elem *TypeInfo) *TypeInfo {
	return &TypeInfo{Type: TypeSlice, Elem: elem}
}

// Range wraps the given descriptor in a range wrapper. The inner descriptor
// is the range bound type.
func Range(elem *TypeInfo) *TypeInfo {
	return &TypeInfo{Type: TypeRange, Elem: elem}
}

// goTypes maps leaf descriptors to the Go type text emitted for them.
// TypeCustom and wrapper types are resolved in String.
var goTypes = map[Type]string{
	TypeBool:        "bool",
	TypeInt8:        "int8",
	TypeInt16:       "int16",
	TypeInt32:       "int32",
	TypeInt64:       "int64",
	TypeFloat32:     "float32",
	TypeFloat64:     "float64",
	TypeDecimal:     "decimal.Decimal",
	TypeString:      "string",
	TypeBytes:       "[]byte",
	TypeDate:        "time.Time",
	TypeTime:        "time.Time",
	TypeTimeTZ:      "time.Time",
	TypeTimestamp:   "time.Time",
	TypeTimestampTZ: "time.Time",
	TypeUUID:        "uuid.UUID",
	TypeJSON:        "json.RawMessage",
	TypeIPNet:       "netip.Prefix",
	TypeMAC:         "net.HardwareAddr",
	TypeBits:        "types.BitString",
	TypeInterval:    "time.Duration",
	TypeMoney:       "types.Money",
	TypeTSQuery:     "types.TSQuery",
	TypeTSVector:    "types.TSVector",
	TypeXML:         "string",
}

// String returns the Go type text the descriptor renders to.
func (t *TypeInfo) String() string {
	switch t.Type {
	case TypeNullable:
		return "*" + t.Elem.String()
	case TypeSlice:
		return "[]" + t.Elem.String()
	case TypeRange:
		return "types.Range[" + t.Elem.String() + "]"
	case TypeCustom:
		return t.Ident
	default:
		if s, ok := goTypes[t.Type]; ok {
			return s
		}
		return typeNames[TypeInvalid]
	}
}

// Nillable reports if the descriptor is nullable-wrapped.
func (t *TypeInfo) Nillable() bool {
	return t.Type == TypeNullable
}

// Unwrap returns the leaf descriptor under any chain of wrappers.
func (t *TypeInfo) Unwrap() *TypeInfo {
	for t.Type.Wrapper() {
		t = t.Elem
	}
	return t
}
