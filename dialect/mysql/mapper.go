package mysql

import (
	"fmt"

	atlas "ariga.io/atlas/sql/mysql"

	"github.com/syssam/autostruct/names"
	"github.com/syssam/autostruct/schema/field"
)

// category partitions the MySQL type name space the same way the postgres
// mapper does; only the table data differs between backends.
type category uint8

const (
	catUnknown category = iota
	catBoolean
	catInteger
	catFloat
	catDecimal
	catString
	catBinary
	catBit
	catTemporal
	catJSON
	catGeometric
)

var categories = map[string]category{
	atlas.TypeBool:    catBoolean,
	atlas.TypeBoolean: catBoolean,

	atlas.TypeTinyInt:   catInteger,
	atlas.TypeSmallInt:  catInteger,
	atlas.TypeMediumInt: catInteger,
	atlas.TypeInt:       catInteger,
	atlas.TypeBigInt:    catInteger,
	"year":              catInteger,

	atlas.TypeFloat:  catFloat,
	atlas.TypeDouble: catFloat,
	atlas.TypeReal:   catFloat,

	atlas.TypeDecimal: catDecimal,
	atlas.TypeNumeric: catDecimal,

	atlas.TypeChar:       catString,
	atlas.TypeVarchar:    catString,
	atlas.TypeText:       catString,
	atlas.TypeTinyText:   catString,
	atlas.TypeMediumText: catString,
	atlas.TypeLongText:   catString,
	// Enum and set values are declared inline on the column, so there is
	// no named type to reference; their textual form is carried instead.
	atlas.TypeEnum: catString,
	atlas.TypeSet:  catString,

	atlas.TypeBinary:     catBinary,
	atlas.TypeVarBinary:  catBinary,
	atlas.TypeBlob:       catBinary,
	atlas.TypeTinyBlob:   catBinary,
	atlas.TypeMediumBlob: catBinary,
	atlas.TypeLongBlob:   catBinary,

	atlas.TypeBit: catBit,

	atlas.TypeDate:      catTemporal,
	atlas.TypeTime:      catTemporal,
	atlas.TypeDateTime:  catTemporal,
	atlas.TypeTimestamp: catTemporal,

	atlas.TypeJSON: catJSON,

	atlas.TypeGeometry: catGeometric,
	"point":            catGeometric,
	"linestring":       catGeometric,
	"polygon":          catGeometric,
}

// MapType maps an information_schema DATA_TYPE name to its target-type
// descriptor. Unrecognized names degrade to a custom-named descriptor.
func MapType(name string) *field.TypeInfo {
	switch categories[name] {
	case catBoolean:
		return field.New(field.TypeBool)
	case catInteger:
		return integerType(name)
	case catFloat:
		return floatType(name)
	case catDecimal:
		return field.New(field.TypeDecimal)
	case catString, catGeometric:
		return field.New(field.TypeString)
	case catBinary:
		return field.New(field.TypeBytes)
	case catBit:
		return field.New(field.TypeBits)
	case catTemporal:
		return temporalType(name)
	case catJSON:
		return field.New(field.TypeJSON)
	default:
		return field.Custom(names.Pascal(name))
	}
}

func integerType(name string) *field.TypeInfo {
	switch name {
	case atlas.TypeTinyInt:
		return field.New(field.TypeInt8)
	case atlas.TypeSmallInt, "year":
		return field.New(field.TypeInt16)
	case atlas.TypeMediumInt, atlas.TypeInt:
		return field.New(field.TypeInt32)
	case atlas.TypeBigInt:
		return field.New(field.TypeInt64)
	default:
		panic(fmt.Sprintf("mysql: integer category has no mapping for %q", name))
	}
}

func floatType(name string) *field.TypeInfo {
	switch name {
	case atlas.TypeFloat:
		return field.New(field.TypeFloat32)
	case atlas.TypeDouble, atlas.TypeReal:
		return field.New(field.TypeFloat64)
	default:
		panic(fmt.Sprintf("mysql: float category has no mapping for %q", name))
	}
}

func temporalType(name string) *field.TypeInfo {
	switch name {
	case atlas.TypeDate:
		return field.New(field.TypeDate)
	case atlas.TypeTime:
		return field.New(field.TypeTime)
	case atlas.TypeDateTime:
		return field.New(field.TypeTimestamp)
	case atlas.TypeTimestamp:
		return field.New(field.TypeTimestampTZ)
	default:
		panic(fmt.Sprintf("mysql: temporal category has no mapping for %q", name))
	}
}
