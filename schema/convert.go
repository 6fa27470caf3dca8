package schema

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedRow indicates a catalog row missing a required field. A dropped
// or guessed row would corrupt an entity's field list invisibly, so the whole
// assembly pass fails instead.
var ErrMalformedRow = errors.New("schema: malformed catalog row")

// RowError reports which catalog row failed assembly and why.
type RowError struct {
	Kind   string // "column", "enum value" or "attribute"
	Entity string // owning table/enum/composite name, if known
	Name   string // row-level name, if known
	Reason string
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("schema: malformed %s row (entity=%q, name=%q): %s", e.Kind, e.Entity, e.Name, e.Reason)
}

// Is reports whether the target matches the sentinel error for RowError.
func (e *RowError) Is(target error) bool {
	return target == ErrMalformedRow
}

// Tables groups flat column rows into tables. The first occurrence of a table
// name establishes its position in the output; each row appends one column to
// that table. Column order follows row order.
func Tables(rows []ColumnRow) ([]*Table, error) {
	var (
		tables []*Table
		index  = make(map[string]*Table)
	)
	for _, r := range rows {
		switch {
		case r.TableName == "":
			return nil, &RowError{Kind: "column", Name: r.ColumnName, Reason: "missing table name"}
		case r.ColumnName == "":
			return nil, &RowError{Kind: "column", Entity: r.TableName, Reason: "missing column name"}
		case r.UDTName == "":
			return nil, &RowError{Kind: "column", Entity: r.TableName, Name: r.ColumnName, Reason: "missing underlying type name"}
		}
		t, ok := index[r.TableName]
		if !ok {
			t = &Table{Name: r.TableName}
			index[r.TableName] = t
			tables = append(tables, t)
		}
		c := &Column{
			Name:        r.ColumnName,
			UDTName:     r.UDTName,
			DataType:    r.DataType,
			Nullable:    r.IsNullable,
			Unique:      r.IsUnique,
			PrimaryKey:  r.IsPrimaryKey,
			TableSchema: r.TableSchema,
		}
		if r.ForeignKeyTable != nil {
			c.ForeignKeyTable = *r.ForeignKeyTable
		}
		if r.ForeignKeyColumn != nil {
			c.ForeignKeyColumn = *r.ForeignKeyColumn
		}
		t.Columns = append(t.Columns, c)
	}
	return tables, nil
}

// Enums groups flat value rows into enumerations and sorts each enum's values
// ascending by their catalog rank. The sort is stable, so rows with equal
// ranks keep their input order. The catalog's own projection of enum values
// is unordered, which is why ranks are re-sorted here and nowhere else.
func Enums(rows []EnumValueRow) ([]*Enum, error) {
	var (
		enums []*Enum
		index = make(map[string]*Enum)
	)
	for _, r := range rows {
		switch {
		case r.Name == "":
			return nil, &RowError{Kind: "enum value", Name: r.Value, Reason: "missing enum name"}
		case r.Value == "":
			return nil, &RowError{Kind: "enum value", Entity: r.Name, Reason: "missing value"}
		}
		e, ok := index[r.Name]
		if !ok {
			e = &Enum{Name: r.Name}
			index[r.Name] = e
			enums = append(enums, e)
		}
		e.Values = append(e.Values, EnumValue{Name: r.Value, Order: r.SortOrder})
	}
	for _, e := range enums {
		sort.SliceStable(e.Values, func(i, j int) bool {
			return e.Values[i].Order < e.Values[j].Order
		})
	}
	return enums, nil
}

// CompositeTypes groups flat attribute rows into composite types. Attributes
// keep the order the rows arrive in; the catalog projection is expected to be
// pre-ordered by attribute position.
func CompositeTypes(rows []AttributeRow) ([]*CompositeType, error) {
	var (
		composites []*CompositeType
		index      = make(map[string]*CompositeType)
	)
	for _, r := range rows {
		switch {
		case r.Name == "":
			return nil, &RowError{Kind: "attribute", Name: r.AttributeName, Reason: "missing composite type name"}
		case r.AttributeName == "":
			return nil, &RowError{Kind: "attribute", Entity: r.Name, Reason: "missing attribute name"}
		case r.DataType == "":
			return nil, &RowError{Kind: "attribute", Entity: r.Name, Name: r.AttributeName, Reason: "missing data type"}
		}
		c, ok := index[r.Name]
		if !ok {
			c = &CompositeType{Name: r.Name}
			index[r.Name] = c
			composites = append(composites, c)
		}
		c.Attributes = append(c.Attributes, Attribute{Name: r.AttributeName, DataType: r.DataType})
	}
	return composites, nil
}
