// Package mysql implements the MySQL backend. MySQL has no user-defined enum
// or composite types at the catalog level, so only tables are introspected.
package mysql

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	// Registers the "mysql" database/sql driver.
	_ "github.com/go-sql-driver/mysql"

	"github.com/syssam/autostruct/dialect"
	"github.com/syssam/autostruct/schema"
	"github.com/syssam/autostruct/schema/field"
)

const columnQuery = `
SELECT
	c.table_name AS table_name,
	c.column_name AS column_name,
	c.data_type AS udt_name,
	c.column_type AS data_type,
	c.is_nullable = 'YES' AS is_nullable,
	COALESCE(tc.constraint_type = 'UNIQUE', FALSE) AS is_unique,
	COALESCE(tc.constraint_type = 'PRIMARY KEY', FALSE) AS is_primary_key,
	kcu.referenced_table_name AS foreign_key_table,
	kcu.referenced_column_name AS foreign_key_column,
	c.table_schema AS table_schema
FROM
	information_schema.columns c
	LEFT JOIN information_schema.key_column_usage kcu
		ON c.table_name = kcu.table_name
		AND c.column_name = kcu.column_name
		AND c.table_schema = kcu.table_schema
	LEFT JOIN information_schema.table_constraints tc
		ON kcu.constraint_name = tc.constraint_name
		AND kcu.table_schema = tc.table_schema
WHERE
	c.table_schema = ?`

const columnQueryOrder = `
ORDER BY
	c.table_name,
	c.ordinal_position`

// A Builder configures and opens a mysql Driver.
type Builder struct {
	schema  string
	exclude []string
}

// NewBuilder creates a Builder. The schema defaults to the connected
// database when left empty.
func NewBuilder() *Builder {
	return &Builder{}
}

// TableSchema sets the database schema to introspect.
func (b *Builder) TableSchema(schema string) *Builder {
	b.schema = schema
	return b
}

// Exclude skips the named tables during introspection.
func (b *Builder) Exclude(tables ...string) *Builder {
	b.exclude = append(b.exclude, tables...)
	return b
}

// Connect opens the database connection and returns the Driver.
func (b *Builder) Connect(ctx context.Context, dsn string) (*Driver, error) {
	db, err := sqlx.ConnectContext(ctx, "mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: connect: %w", err)
	}
	return b.Build(db), nil
}

// Build wraps an existing connection. The caller keeps ownership of db.
func (b *Builder) Build(db *sqlx.DB) *Driver {
	return &Driver{db: db, schema: b.schema, exclude: b.exclude}
}

// Driver introspects one mysql schema and maps its native types.
type Driver struct {
	db      *sqlx.DB
	schema  string
	exclude []string
}

// Name returns the dialect name.
func (d *Driver) Name() string { return dialect.MySQL }

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.db.Close() }

// FetchSchema retrieves and assembles the catalog metadata of the configured
// schema.
func (d *Driver) FetchSchema(ctx context.Context) (*schema.Database, error) {
	schemaName := d.schema
	if schemaName == "" {
		// Default to the schema the connection is bound to.
		if err := d.db.GetContext(ctx, &schemaName, "SELECT DATABASE()"); err != nil {
			return nil, fmt.Errorf("mysql: resolve current schema: %w", err)
		}
	}
	query, args := columnQuery, []any{schemaName}
	if len(d.exclude) > 0 {
		in, inArgs, err := sqlx.In(query+" AND c.table_name NOT IN (?)", schemaName, d.exclude)
		if err != nil {
			return nil, fmt.Errorf("mysql: expand exclusion list: %w", err)
		}
		query, args = in, inArgs
	}
	var columns []schema.ColumnRow
	if err := d.db.SelectContext(ctx, &columns, query+columnQueryOrder, args...); err != nil {
		return nil, fmt.Errorf("mysql: fetch table columns: %w", err)
	}
	tables, err := schema.Tables(columns)
	if err != nil {
		return nil, err
	}
	return &schema.Database{Tables: tables}, nil
}

// MapType maps an information_schema DATA_TYPE name to its target-type
// descriptor.
func (d *Driver) MapType(name string) *field.TypeInfo {
	return MapType(name)
}

var _ dialect.Driver = (*Driver)(nil)
