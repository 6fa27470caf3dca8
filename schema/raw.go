package schema

// Raw row shapes scanned directly from the catalog queries of a dialect.
// One row describes a single column, enum value, or composite attribute; the
// grouping functions in convert.go fold them into entities.

// ColumnRow is one flat row of the table-column catalog projection.
type ColumnRow struct {
	TableName        string  `db:"table_name"`
	ColumnName       string  `db:"column_name"`
	UDTName          string  `db:"udt_name"`
	DataType         string  `db:"data_type"`
	IsNullable       bool    `db:"is_nullable"`
	IsUnique         bool    `db:"is_unique"`
	IsPrimaryKey     bool    `db:"is_primary_key"`
	ForeignKeyTable  *string `db:"foreign_key_table"`
	ForeignKeyColumn *string `db:"foreign_key_column"`
	TableSchema      string  `db:"table_schema"`
}

// EnumValueRow is one flat row of the enum-value catalog projection.
type EnumValueRow struct {
	Name      string  `db:"name"`
	Value     string  `db:"value"`
	SortOrder float64 `db:"sort_order"`
}

// AttributeRow is one flat row of the composite-attribute catalog projection,
// pre-ordered by attribute position.
type AttributeRow struct {
	Name          string `db:"name"`
	AttributeName string `db:"attribute_name"`
	DataType      string `db:"data_type"`
}
