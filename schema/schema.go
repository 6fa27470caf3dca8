// Package schema models the catalog metadata of one database schema and
// assembles flat catalog rows into the entities the generator consumes.
package schema

// Database aggregates every entity discovered in one generation run. It is
// read-only after assembly.
type Database struct {
	Enums          []*Enum
	CompositeTypes []*CompositeType
	Tables         []*Table
}

// Table describes one database table and its columns in catalog order.
type Table struct {
	Name    string
	Columns []*Column
}

// Column describes one column of a table.
type Column struct {
	Name string

	// UDTName is the underlying native type name, e.g. "int4" or "_text".
	UDTName    string
	DataType   string
	Nullable   bool
	Unique     bool
	PrimaryKey bool

	// ForeignKeyTable and ForeignKeyColumn are set when the column
	// references another table.
	ForeignKeyTable  string
	ForeignKeyColumn string
	TableSchema      string
}

// Enum describes one user-defined enumeration. Values are sorted ascending by
// their catalog-defined order after assembly.
type Enum struct {
	Name   string
	Values []EnumValue
}

// EnumValue is one value of an enumeration together with the numeric rank the
// catalog assigns it.
type EnumValue struct {
	Name  string
	Order float64
}

// CompositeType describes one user-defined composite type. Attributes retain
// their catalog-declared position order.
type CompositeType struct {
	Name       string
	Attributes []Attribute
}

// Attribute is one attribute of a composite type.
type Attribute struct {
	Name     string
	DataType string
}
