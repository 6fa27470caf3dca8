package postgres

import (
	"fmt"
	"strings"

	atlas "ariga.io/atlas/sql/postgres"

	"github.com/syssam/autostruct/names"
	"github.com/syssam/autostruct/schema/field"
)

// arrayMarker prefixes the pg_catalog udt name of array types. One marker is
// stripped per sequence wrap, so multi-dimensional names wrap recursively.
const arrayMarker = "_"

// category partitions the native type name space. Every name belongs to at
// most one category; names matching none map to a custom-named descriptor.
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
	catNetwork
	catJSON
	catGeometric
	catTextSearch
	catRange
	catSpecial
)

// categories is the single declarative table that classifies native type
// names. Per-category descriptor resolution lives in the subtype functions
// below, keeping the mapping data separate from the dispatch logic.
var categories = map[string]category{
	atlas.TypeBool:    catBoolean,
	atlas.TypeBoolean: catBoolean,

	atlas.TypeInt2:        catInteger,
	atlas.TypeInt4:        catInteger,
	atlas.TypeInt8:        catInteger,
	atlas.TypeInt:         catInteger,
	atlas.TypeSmallInt:    catInteger,
	atlas.TypeInteger:     catInteger,
	atlas.TypeBigInt:      catInteger,
	atlas.TypeSmallSerial: catInteger,
	atlas.TypeSerial:      catInteger,
	atlas.TypeBigSerial:   catInteger,

	atlas.TypeFloat4: catFloat,
	atlas.TypeFloat8: catFloat,
	atlas.TypeReal:   catFloat,
	atlas.TypeDouble: catFloat,

	atlas.TypeNumeric: catDecimal,
	atlas.TypeDecimal: catDecimal,

	atlas.TypeText:      catString,
	atlas.TypeVarChar:   catString,
	atlas.TypeChar:      catString,
	atlas.TypeCharacter: catString,
	"bpchar":            catString,
	"name":              catString,
	"citext":            catString,

	atlas.TypeBytea: catBinary,

	atlas.TypeBit: catBit,
	"varbit":      catBit,

	atlas.TypeDate:        catTemporal,
	atlas.TypeTime:        catTemporal,
	"timetz":              catTemporal,
	atlas.TypeTimestamp:   catTemporal,
	atlas.TypeTimestampTZ: catTemporal,
	atlas.TypeInterval:    catTemporal,

	atlas.TypeInet:     catNetwork,
	atlas.TypeCIDR:     catNetwork,
	atlas.TypeMACAddr:  catNetwork,
	atlas.TypeMACAddr8: catNetwork,

	atlas.TypeJSON:  catJSON,
	atlas.TypeJSONB: catJSON,

	atlas.TypePoint:   catGeometric,
	atlas.TypeLine:    catGeometric,
	atlas.TypeLseg:    catGeometric,
	atlas.TypeBox:     catGeometric,
	atlas.TypePath:    catGeometric,
	atlas.TypePolygon: catGeometric,
	atlas.TypeCircle:  catGeometric,

	atlas.TypeTSQuery:  catTextSearch,
	atlas.TypeTSVector: catTextSearch,

	"int4range": catRange,
	"int8range": catRange,
	"numrange":  catRange,
	"tsrange":   catRange,
	"tstzrange": catRange,
	"daterange": catRange,

	atlas.TypeUUID:  catSpecial,
	atlas.TypeXML:   catSpecial,
	atlas.TypeMoney: catSpecial,
}

// rangeBounds maps the built-in range family to its bound descriptor.
var rangeBounds = map[string]field.Type{
	"int4range": field.TypeInt32,
	"int8range": field.TypeInt64,
	"numrange":  field.TypeDecimal,
	"tsrange":   field.TypeTimestamp,
	"tstzrange": field.TypeTimestampTZ,
	"daterange": field.TypeDate,
}

// MapType maps a pg_catalog udt name to its target-type descriptor. It never
// fails: names matching no category degrade to a custom-named descriptor so
// generation completes even for types the mapper does not understand.
func MapType(name string) *field.TypeInfo {
	if strings.HasPrefix(name, arrayMarker) {
		return field.Slice(MapType(name[len(arrayMarker):]))
	}
	switch categories[name] {
	case catBoolean:
		return field.New(field.TypeBool)
	case catInteger:
		return integerType(name)
	case catFloat:
		return floatType(name)
	case catDecimal:
		return field.New(field.TypeDecimal)
	case catString:
		return field.New(field.TypeString)
	case catBinary:
		return field.New(field.TypeBytes)
	case catBit:
		return field.New(field.TypeBits)
	case catTemporal:
		return temporalType(name)
	case catNetwork:
		return networkType(name)
	case catJSON:
		return field.New(field.TypeJSON)
	case catGeometric:
		// Geometric types are carried as their textual form.
		return field.New(field.TypeString)
	case catTextSearch:
		return textSearchType(name)
	case catRange:
		return field.Range(field.New(rangeBounds[name]))
	case catSpecial:
		return specialType(name)
	default:
		return field.Custom(names.Pascal(name))
	}
}

// The subtype switches below are exhaustive for names already classified into
// their category. A firing default means the category table and the subtype
// switch disagree, which is a programming error, not a runtime condition.

func integerType(name string) *field.TypeInfo {
	switch name {
	case atlas.TypeInt2, atlas.TypeSmallInt, atlas.TypeSmallSerial:
		return field.New(field.TypeInt16)
	case atlas.TypeInt4, atlas.TypeInt, atlas.TypeInteger, atlas.TypeSerial:
		return field.New(field.TypeInt32)
	case atlas.TypeInt8, atlas.TypeBigInt, atlas.TypeBigSerial:
		return field.New(field.TypeInt64)
	default:
		panic(fmt.Sprintf("postgres: integer category has no mapping for %q", name))
	}
}

func floatType(name string) *field.TypeInfo {
	switch name {
	case atlas.TypeFloat4, atlas.TypeReal:
		return field.New(field.TypeFloat32)
	case atlas.TypeFloat8, atlas.TypeDouble:
		return field.New(field.TypeFloat64)
	default:
		panic(fmt.Sprintf("postgres: float category has no mapping for %q", name))
	}
}

func temporalType(name string) *field.TypeInfo {
	switch name {
	case atlas.TypeDate:
		return field.New(field.TypeDate)
	case atlas.TypeTime:
		return field.New(field.TypeTime)
	case "timetz":
		return field.New(field.TypeTimeTZ)
	case atlas.TypeTimestamp:
		return field.New(field.TypeTimestamp)
	case atlas.TypeTimestampTZ:
		return field.New(field.TypeTimestampTZ)
	case atlas.TypeInterval:
		return field.New(field.TypeInterval)
	default:
		panic(fmt.Sprintf("postgres: temporal category has no mapping for %q", name))
	}
}

func networkType(name string) *field.TypeInfo {
	switch name {
	case atlas.TypeInet, atlas.TypeCIDR:
		return field.New(field.TypeIPNet)
	case atlas.TypeMACAddr, atlas.TypeMACAddr8:
		return field.New(field.TypeMAC)
	default:
		panic(fmt.Sprintf("postgres: network category has no mapping for %q", name))
	}
}

func textSearchType(name string) *field.TypeInfo {
	switch name {
	case atlas.TypeTSQuery:
		return field.New(field.TypeTSQuery)
	case atlas.TypeTSVector:
		return field.New(field.TypeTSVector)
	default:
		panic(fmt.Sprintf("postgres: text-search category has no mapping for %q", name))
	}
}

func specialType(name string) *field.TypeInfo {
	switch name {
	case atlas.TypeUUID:
		return field.New(field.TypeUUID)
	case atlas.TypeXML:
		return field.New(field.TypeXML)
	case atlas.TypeMoney:
		return field.New(field.TypeMoney)
	default:
		panic(fmt.Sprintf("postgres: specialized category has no mapping for %q", name))
	}
}
