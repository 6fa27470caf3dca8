package sqlite

import (
	"strings"

	"github.com/syssam/autostruct/names"
	"github.com/syssam/autostruct/schema/field"
)

// categories classifies the declared type names SQLite schemas commonly use.
// Names outside the table fall back to the affinity rules, and only then to a
// custom-named descriptor.
var categories = map[string]field.Type{
	"bool":    field.TypeBool,
	"boolean": field.TypeBool,

	"tinyint":   field.TypeInt8,
	"smallint":  field.TypeInt16,
	"int2":      field.TypeInt16,
	"mediumint": field.TypeInt32,
	"int":       field.TypeInt32,
	"int4":      field.TypeInt32,
	"integer":   field.TypeInt64,
	"bigint":    field.TypeInt64,
	"int8":      field.TypeInt64,

	"real":   field.TypeFloat64,
	"double": field.TypeFloat64,
	"float":  field.TypeFloat64,

	"decimal": field.TypeDecimal,
	"numeric": field.TypeDecimal,

	"char":     field.TypeString,
	"varchar":  field.TypeString,
	"nchar":    field.TypeString,
	"nvarchar": field.TypeString,
	"text":     field.TypeString,
	"clob":     field.TypeString,

	"blob": field.TypeBytes,

	"date":      field.TypeDate,
	"time":      field.TypeTime,
	"datetime":  field.TypeTimestamp,
	"timestamp": field.TypeTimestamp,

	"json": field.TypeJSON,
}

// MapType maps a declared SQLite column type to its target-type descriptor.
// The declared name is normalized by dropping any length suffix, e.g.
// "VARCHAR(255)" classifies as "varchar". Names matching neither the table
// nor an affinity rule degrade to a custom-named descriptor.
func MapType(name string) *field.TypeInfo {
	normalized := strings.ToLower(name)
	if i := strings.IndexByte(normalized, '('); i >= 0 {
		normalized = normalized[:i]
	}
	normalized = strings.TrimSpace(normalized)
	if t, ok := categories[normalized]; ok {
		return field.New(t)
	}
	// Affinity rules, in SQLite's documented precedence order.
	switch {
	case strings.Contains(normalized, "int"):
		return field.New(field.TypeInt64)
	case strings.Contains(normalized, "char"), strings.Contains(normalized, "clob"), strings.Contains(normalized, "text"):
		return field.New(field.TypeString)
	case strings.Contains(normalized, "blob"):
		return field.New(field.TypeBytes)
	case strings.Contains(normalized, "real"), strings.Contains(normalized, "floa"), strings.Contains(normalized, "doub"):
		return field.New(field.TypeFloat64)
	default:
		return field.Custom(names.Pascal(normalized))
	}
}
