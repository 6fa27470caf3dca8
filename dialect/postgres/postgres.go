// Package postgres implements the PostgreSQL backend: catalog fetching over
// information_schema and pg_catalog, and the native-type mapper.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/syssam/autostruct/dialect"
	"github.com/syssam/autostruct/schema"
	"github.com/syssam/autostruct/schema/field"
)

// columnQuery projects one row per table column, with constraint and
// foreign-key info resolved. Rows arrive ordered by table name and column
// position, which fixes the emitted field order.
const columnQuery = `
SELECT
	c.table_name,
	c.column_name,
	c.udt_name,
	c.data_type,
	c.is_nullable = 'YES' AS is_nullable,
	COALESCE(tc.constraint_type = 'UNIQUE', false) AS is_unique,
	COALESCE(tc.constraint_type = 'PRIMARY KEY', false) AS is_primary_key,
	kcu2.table_name AS foreign_key_table,
	kcu2.column_name AS foreign_key_column,
	c.table_schema
FROM
	information_schema.columns c
	LEFT JOIN information_schema.key_column_usage kcu
		ON c.table_name = kcu.table_name
		AND c.column_name = kcu.column_name
		AND c.table_schema = kcu.table_schema
	LEFT JOIN information_schema.table_constraints tc
		ON kcu.constraint_name = tc.constraint_name
		AND kcu.table_schema = tc.table_schema
	LEFT JOIN information_schema.referential_constraints rc
		ON kcu.constraint_name = rc.constraint_name
	LEFT JOIN information_schema.key_column_usage kcu2
		ON rc.unique_constraint_name = kcu2.constraint_name
		AND kcu2.ordinal_position = kcu.ordinal_position
		AND kcu2.table_schema = rc.unique_constraint_schema
WHERE
	c.table_schema = $1
	AND c.table_name <> ALL($2)
ORDER BY
	c.table_name,
	c.ordinal_position`

// enumQuery projects one row per enum value. The catalog reports values in no
// particular order; the assembler re-sorts them by enumsortorder.
const enumQuery = `
SELECT
	t.typname AS name,
	e.enumlabel AS value,
	e.enumsortorder AS sort_order
FROM
	pg_type t
	JOIN pg_enum e ON t.oid = e.enumtypid
	JOIN pg_namespace n ON n.oid = t.typnamespace
WHERE
	n.nspname = $1`

// attributeQuery projects one row per composite-type attribute, pre-ordered
// by attribute position.
const attributeQuery = `
SELECT
	t.typname AS name,
	a.attname AS attribute_name,
	bt.typname AS data_type
FROM
	pg_type t
	JOIN pg_class c ON c.oid = t.typrelid AND c.relkind = 'c'
	JOIN pg_attribute a ON a.attrelid = c.oid
	JOIN pg_type bt ON bt.oid = a.atttypid
	JOIN pg_namespace n ON n.oid = t.typnamespace
WHERE
	n.nspname = $1
	AND a.attnum > 0
	AND NOT a.attisdropped
ORDER BY
	t.typname,
	a.attnum`

// A Builder configures and opens a postgres Driver.
type Builder struct {
	schema  string
	exclude []string
}

// NewBuilder creates a Builder with the default "public" schema.
func NewBuilder() *Builder {
	return &Builder{schema: "public"}
}

// TableSchema sets the catalog schema to introspect.
func (b *Builder) TableSchema(schema string) *Builder {
	if schema != "" {
		b.schema = schema
	}
	return b
}

// Exclude skips the named tables during introspection. Excluded tables never
// reach the assembler or the generator.
func (b *Builder) Exclude(tables ...string) *Builder {
	b.exclude = append(b.exclude, tables...)
	return b
}

// Connect opens the database connection and returns the Driver.
func (b *Builder) Connect(ctx context.Context, dsn string) (*Driver, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	return b.Build(db), nil
}

// Build wraps an existing connection. The caller keeps ownership of db.
func (b *Builder) Build(db *sqlx.DB) *Driver {
	exclude := b.exclude
	if exclude == nil {
		exclude = []string{}
	}
	return &Driver{db: db, schema: b.schema, exclude: exclude}
}

// Driver introspects one postgres schema and maps its native types.
type Driver struct {
	db      *sqlx.DB
	schema  string
	exclude []string
}

// Name returns the dialect name.
func (d *Driver) Name() string { return dialect.Postgres }

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.db.Close() }

// FetchSchema retrieves and assembles the catalog metadata of the configured
// schema. Any query or assembly failure aborts the pass; no partial result is
// returned.
func (d *Driver) FetchSchema(ctx context.Context) (*schema.Database, error) {
	var columns []schema.ColumnRow
	if err := d.db.SelectContext(ctx, &columns, columnQuery, d.schema, pq.Array(d.exclude)); err != nil {
		return nil, fmt.Errorf("postgres: fetch table columns: %w", err)
	}
	var values []schema.EnumValueRow
	if err := d.db.SelectContext(ctx, &values, enumQuery, d.schema); err != nil {
		return nil, fmt.Errorf("postgres: fetch enum values: %w", err)
	}
	var attributes []schema.AttributeRow
	if err := d.db.SelectContext(ctx, &attributes, attributeQuery, d.schema); err != nil {
		return nil, fmt.Errorf("postgres: fetch composite attributes: %w", err)
	}
	tables, err := schema.Tables(columns)
	if err != nil {
		return nil, err
	}
	enums, err := schema.Enums(values)
	if err != nil {
		return nil, err
	}
	composites, err := schema.CompositeTypes(attributes)
	if err != nil {
		return nil, err
	}
	return &schema.Database{Enums: enums, CompositeTypes: composites, Tables: tables}, nil
}

// MapType maps a pg_catalog udt name to its target-type descriptor.
func (d *Driver) MapType(name string) *field.TypeInfo {
	return MapType(name)
}

var _ dialect.Driver = (*Driver)(nil)
