// Package dialect defines the boundary between the generator core and the
// database backends that feed it.
package dialect

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/autostruct/schema"
	"github.com/syssam/autostruct/schema/field"
)

// Supported dialect names.
const (
	Postgres = "postgres"
	MySQL    = "mysql"
	SQLite   = "sqlite"
)

// ErrUnsupportedDialect is returned when a connection string does not match
// any supported backend.
var ErrUnsupportedDialect = errors.New("dialect: unsupported database")

// Driver is the capability surface a backend must provide: fetching the raw
// catalog metadata of one schema, and mapping a native type name into a
// target-type descriptor. One implementation exists per backend.
type Driver interface {
	// Name returns the dialect name.
	Name() string

	// FetchSchema retrieves and assembles the catalog metadata of the
	// configured schema, excluding any tables the caller asked to skip.
	FetchSchema(ctx context.Context) (*schema.Database, error)

	// MapType maps a native type name to its target-type descriptor. It is
	// total: unrecognized names degrade to a custom-named descriptor.
	MapType(name string) *field.TypeInfo
}

// FromDSN infers the dialect name from a connection string.
func FromDSN(dsn string) (string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return Postgres, nil
	case strings.HasPrefix(dsn, "mysql://"):
		return MySQL, nil
	case strings.HasPrefix(dsn, "sqlite://"), strings.HasPrefix(dsn, "file:"):
		return SQLite, nil
	default:
		return "", fmt.Errorf("%w: cannot infer dialect from connection string", ErrUnsupportedDialect)
	}
}
