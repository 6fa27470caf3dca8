package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestTables(t *testing.T) {
	rows := []ColumnRow{
		{TableName: "users", ColumnName: "id", UDTName: "int4", DataType: "integer", IsPrimaryKey: true, TableSchema: "public"},
		{TableName: "users", ColumnName: "email", UDTName: "text", DataType: "text", IsNullable: true, IsUnique: true, TableSchema: "public"},
		{TableName: "posts", ColumnName: "id", UDTName: "int8", DataType: "bigint", IsPrimaryKey: true, TableSchema: "public"},
		{TableName: "posts", ColumnName: "author_id", UDTName: "int4", DataType: "integer", ForeignKeyTable: strp("users"), ForeignKeyColumn: strp("id"), TableSchema: "public"},
		{TableName: "users", ColumnName: "created_at", UDTName: "timestamptz", DataType: "timestamp with time zone", TableSchema: "public"},
	}
	tables, err := Tables(rows)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	users, posts := tables[0], tables[1]
	assert.Equal(t, "users", users.Name, "first-seen table comes first")
	assert.Equal(t, "posts", posts.Name)

	require.Len(t, users.Columns, 3)
	assert.Equal(t, []string{"id", "email", "created_at"}, columnNames(users))
	assert.True(t, users.Columns[0].PrimaryKey)
	assert.True(t, users.Columns[1].Nullable)
	assert.True(t, users.Columns[1].Unique)

	require.Len(t, posts.Columns, 2)
	fk := posts.Columns[1]
	assert.Equal(t, "users", fk.ForeignKeyTable)
	assert.Equal(t, "id", fk.ForeignKeyColumn)
}

func TestTablesPreservesRowCount(t *testing.T) {
	rows := []ColumnRow{
		{TableName: "a", ColumnName: "x", UDTName: "text"},
		{TableName: "b", ColumnName: "x", UDTName: "text"},
		{TableName: "a", ColumnName: "y", UDTName: "text"},
		{TableName: "c", ColumnName: "x", UDTName: "text"},
		{TableName: "b", ColumnName: "y", UDTName: "text"},
	}
	tables, err := Tables(rows)
	require.NoError(t, err)
	total := 0
	for _, tb := range tables {
		total += len(tb.Columns)
	}
	assert.Equal(t, len(rows), total, "every row lands in exactly one table")
}

func TestTablesMalformed(t *testing.T) {
	tests := []struct {
		name string
		row  ColumnRow
	}{
		{name: "missing table name", row: ColumnRow{ColumnName: "id", UDTName: "int4"}},
		{name: "missing column name", row: ColumnRow{TableName: "users", UDTName: "int4"}},
		{name: "missing type name", row: ColumnRow{TableName: "users", ColumnName: "id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables, err := Tables([]ColumnRow{tt.row})
			require.ErrorIs(t, err, ErrMalformedRow)
			assert.Nil(t, tables)
		})
	}
}

func TestTablesEmpty(t *testing.T) {
	tables, err := Tables(nil)
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestEnums(t *testing.T) {
	rows := []EnumValueRow{
		{Name: "status", Value: "archived", SortOrder: 3},
		{Name: "status", Value: "active", SortOrder: 1},
		{Name: "mood", Value: "happy", SortOrder: 1},
		{Name: "status", Value: "pending", SortOrder: 2},
		{Name: "mood", Value: "sad", SortOrder: 2},
	}
	enums, err := Enums(rows)
	require.NoError(t, err)
	require.Len(t, enums, 2)

	status := enums[0]
	assert.Equal(t, "status", status.Name)
	assert.Equal(t, []string{"active", "pending", "archived"}, enumValues(status), "values sorted by catalog rank")

	mood := enums[1]
	assert.Equal(t, "mood", mood.Name)
	assert.Equal(t, []string{"happy", "sad"}, enumValues(mood))
}

func TestEnumsSortStable(t *testing.T) {
	// Equal ranks keep input order.
	rows := []EnumValueRow{
		{Name: "e", Value: "first", SortOrder: 1},
		{Name: "e", Value: "second", SortOrder: 1},
		{Name: "e", Value: "third", SortOrder: 1},
	}
	enums, err := Enums(rows)
	require.NoError(t, err)
	require.Len(t, enums, 1)
	assert.Equal(t, []string{"first", "second", "third"}, enumValues(enums[0]))
}

func TestEnumsMalformed(t *testing.T) {
	_, err := Enums([]EnumValueRow{{Value: "active"}})
	require.ErrorIs(t, err, ErrMalformedRow)
	_, err = Enums([]EnumValueRow{{Name: "status"}})
	require.ErrorIs(t, err, ErrMalformedRow)
}

func TestCompositeTypes(t *testing.T) {
	rows := []AttributeRow{
		{Name: "address", AttributeName: "street", DataType: "text"},
		{Name: "address", AttributeName: "city", DataType: "text"},
		{Name: "point3d", AttributeName: "x", DataType: "float8"},
		{Name: "address", AttributeName: "zip", DataType: "text"},
	}
	composites, err := CompositeTypes(rows)
	require.NoError(t, err)
	require.Len(t, composites, 2)

	addr := composites[0]
	assert.Equal(t, "address", addr.Name)
	require.Len(t, addr.Attributes, 3)
	assert.Equal(t, "street", addr.Attributes[0].Name)
	assert.Equal(t, "zip", addr.Attributes[2].Name)

	assert.Equal(t, "point3d", composites[1].Name)
}

func TestCompositeTypesMalformed(t *testing.T) {
	_, err := CompositeTypes([]AttributeRow{{AttributeName: "x", DataType: "float8"}})
	require.ErrorIs(t, err, ErrMalformedRow)
	_, err = CompositeTypes([]AttributeRow{{Name: "point3d", DataType: "float8"}})
	require.ErrorIs(t, err, ErrMalformedRow)
	_, err = CompositeTypes([]AttributeRow{{Name: "point3d", AttributeName: "x"}})
	require.ErrorIs(t, err, ErrMalformedRow)
}

func TestRowError(t *testing.T) {
	err := &RowError{Kind: "column", Entity: "users", Name: "id", Reason: "missing underlying type name"}
	assert.Equal(t, `schema: malformed column row (entity="users", name="id"): missing underlying type name`, err.Error())
	assert.ErrorIs(t, err, ErrMalformedRow)
}

func columnNames(t *Table) []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

func enumValues(e *Enum) []string {
	values := make([]string, len(e.Values))
	for i, v := range e.Values {
		values[i] = v.Name
	}
	return values
}
