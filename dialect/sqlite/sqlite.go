// Package sqlite implements the SQLite backend on top of sqlite_master and
// the table_info/foreign_key_list pragmas.
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/syssam/autostruct/dialect"
	"github.com/syssam/autostruct/schema"
	"github.com/syssam/autostruct/schema/field"
)

const tableQuery = `
SELECT name
FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
ORDER BY name`

// tableInfoRow mirrors one row of "PRAGMA table_info".
type tableInfoRow struct {
	CID          int     `db:"cid"`
	Name         string  `db:"name"`
	Type         string  `db:"type"`
	NotNull      bool    `db:"notnull"`
	DefaultValue *string `db:"dflt_value"`
	PK           int     `db:"pk"`
}

// foreignKeyRow mirrors one row of "PRAGMA foreign_key_list".
type foreignKeyRow struct {
	ID       int    `db:"id"`
	Seq      int    `db:"seq"`
	Table    string `db:"table"`
	From     string `db:"from"`
	To       string `db:"to"`
	OnUpdate string `db:"on_update"`
	OnDelete string `db:"on_delete"`
	Match    string `db:"match"`
}

// A Builder configures and opens a sqlite Driver.
type Builder struct {
	exclude []string
}

// NewBuilder creates a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Exclude skips the named tables during introspection.
func (b *Builder) Exclude(tables ...string) *Builder {
	b.exclude = append(b.exclude, tables...)
	return b
}

// Connect opens the database file and returns the Driver.
func (b *Builder) Connect(ctx context.Context, dsn string) (*Driver, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: connect: %w", err)
	}
	return b.Build(db), nil
}

// Build wraps an existing connection. The caller keeps ownership of db.
func (b *Builder) Build(db *sqlx.DB) *Driver {
	excluded := make(map[string]bool, len(b.exclude))
	for _, t := range b.exclude {
		excluded[t] = true
	}
	return &Driver{db: db, excluded: excluded}
}

// Driver introspects one sqlite database and maps its declared types.
type Driver struct {
	db       *sqlx.DB
	excluded map[string]bool
}

// Name returns the dialect name.
func (d *Driver) Name() string { return dialect.SQLite }

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.db.Close() }

// FetchSchema retrieves and assembles the catalog metadata of the database.
// SQLite has no user-defined enum or composite types.
func (d *Driver) FetchSchema(ctx context.Context) (*schema.Database, error) {
	var tables []string
	if err := d.db.SelectContext(ctx, &tables, tableQuery); err != nil {
		return nil, fmt.Errorf("sqlite: fetch tables: %w", err)
	}
	var rows []schema.ColumnRow
	for _, table := range tables {
		if d.excluded[table] {
			continue
		}
		columns, err := d.tableColumns(ctx, table)
		if err != nil {
			return nil, err
		}
		rows = append(rows, columns...)
	}
	assembled, err := schema.Tables(rows)
	if err != nil {
		return nil, err
	}
	return &schema.Database{Tables: assembled}, nil
}

func (d *Driver) tableColumns(ctx context.Context, table string) ([]schema.ColumnRow, error) {
	var info []tableInfoRow
	if err := d.db.SelectContext(ctx, &info, fmt.Sprintf("PRAGMA table_info(%q)", table)); err != nil {
		return nil, fmt.Errorf("sqlite: table_info for %q: %w", table, err)
	}
	var fks []foreignKeyRow
	if err := d.db.SelectContext(ctx, &fks, fmt.Sprintf("PRAGMA foreign_key_list(%q)", table)); err != nil {
		return nil, fmt.Errorf("sqlite: foreign_key_list for %q: %w", table, err)
	}
	refs := make(map[string]foreignKeyRow, len(fks))
	for _, fk := range fks {
		refs[fk.From] = fk
	}
	rows := make([]schema.ColumnRow, 0, len(info))
	for _, c := range info {
		// A column may be declared without a type; it then has blob
		// affinity.
		if c.Type == "" {
			c.Type = "blob"
		}
		row := schema.ColumnRow{
			TableName:    table,
			ColumnName:   c.Name,
			UDTName:      c.Type,
			DataType:     c.Type,
			IsNullable:   !c.NotNull && c.PK == 0,
			IsPrimaryKey: c.PK > 0,
			TableSchema:  "main",
		}
		if fk, ok := refs[c.Name]; ok {
			t, col := fk.Table, fk.To
			row.ForeignKeyTable = &t
			row.ForeignKeyColumn = &col
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// MapType maps a declared column type to its target-type descriptor.
func (d *Driver) MapType(name string) *field.TypeInfo {
	return MapType(name)
}

var _ dialect.Driver = (*Driver)(nil)
