package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/autostruct/schema/field"
)

func TestMapType(t *testing.T) {
	tests := []struct {
		name string
		want field.Type
	}{
		{name: "bool", want: field.TypeBool},
		{name: "int2", want: field.TypeInt16},
		{name: "int4", want: field.TypeInt32},
		{name: "int8", want: field.TypeInt64},
		{name: "serial", want: field.TypeInt32},
		{name: "bigserial", want: field.TypeInt64},
		{name: "float4", want: field.TypeFloat32},
		{name: "float8", want: field.TypeFloat64},
		{name: "numeric", want: field.TypeDecimal},
		{name: "text", want: field.TypeString},
		{name: "varchar", want: field.TypeString},
		{name: "bpchar", want: field.TypeString},
		{name: "citext", want: field.TypeString},
		{name: "bytea", want: field.TypeBytes},
		{name: "bit", want: field.TypeBits},
		{name: "varbit", want: field.TypeBits},
		{name: "date", want: field.TypeDate},
		{name: "time", want: field.TypeTime},
		{name: "timetz", want: field.TypeTimeTZ},
		{name: "timestamp", want: field.TypeTimestamp},
		{name: "timestamptz", want: field.TypeTimestampTZ},
		{name: "interval", want: field.TypeInterval},
		{name: "inet", want: field.TypeIPNet},
		{name: "cidr", want: field.TypeIPNet},
		{name: "macaddr", want: field.TypeMAC},
		{name: "macaddr8", want: field.TypeMAC},
		{name: "json", want: field.TypeJSON},
		{name: "jsonb", want: field.TypeJSON},
		{name: "point", want: field.TypeString},
		{name: "polygon", want: field.TypeString},
		{name: "tsquery", want: field.TypeTSQuery},
		{name: "tsvector", want: field.TypeTSVector},
		{name: "uuid", want: field.TypeUUID},
		{name: "xml", want: field.TypeXML},
		{name: "money", want: field.TypeMoney},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := MapType(tt.name)
			require.NotNil(t, info)
			assert.Equal(t, tt.want, info.Type)
		})
	}
}

func TestMapTypeRange(t *testing.T) {
	tests := []struct {
		name  string
		bound field.Type
	}{
		{name: "int4range", bound: field.TypeInt32},
		{name: "int8range", bound: field.TypeInt64},
		{name: "numrange", bound: field.TypeDecimal},
		{name: "tsrange", bound: field.TypeTimestamp},
		{name: "tstzrange", bound: field.TypeTimestampTZ},
		{name: "daterange", bound: field.TypeDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := MapType(tt.name)
			require.Equal(t, field.TypeRange, info.Type)
			assert.Equal(t, tt.bound, info.Elem.Type)
		})
	}
}

func TestMapTypeArray(t *testing.T) {
	info := MapType("_int4")
	require.Equal(t, field.TypeSlice, info.Type)
	assert.Equal(t, field.TypeInt32, info.Elem.Type)
	assert.Equal(t, "[]int32", info.String())

	// One marker per dimension.
	info = MapType("__text")
	require.Equal(t, field.TypeSlice, info.Type)
	require.Equal(t, field.TypeSlice, info.Elem.Type)
	assert.Equal(t, "[][]string", info.String())

	// Arrays of unknown element types degrade elementwise.
	info = MapType("_mood")
	require.Equal(t, field.TypeSlice, info.Type)
	assert.Equal(t, field.TypeCustom, info.Elem.Type)
	assert.Equal(t, "Mood", info.Elem.Ident)
}

func TestMapTypeUnknown(t *testing.T) {
	// Extension types match no category and degrade to custom-named
	// descriptors the caller resolves.
	info := MapType("ltree")
	require.Equal(t, field.TypeCustom, info.Type)
	assert.Equal(t, "Ltree", info.Ident)

	info = MapType("order_status")
	require.Equal(t, field.TypeCustom, info.Type)
	assert.Equal(t, "OrderStatus", info.Ident)

	info = MapType("geometry")
	require.Equal(t, field.TypeCustom, info.Type)
	assert.Equal(t, "Geometry", info.Ident)
}
