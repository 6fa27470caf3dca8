// Package gen walks an assembled database schema and produces one source
// snippet per entity, resolving column and attribute types through a
// dialect's type mapper.
package gen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType indicates a native type that no category matched. It is
// only returned in strict mode; the default policy degrades such types to a
// custom-named descriptor instead.
var ErrUnknownType = errors.New("autostruct: unrecognized native type")

// GenError reports which entity and field failed generation, with enough
// context to diagnose without re-running.
type GenError struct {
	Entity     string
	Field      string
	NativeType string
	Message    string
}

// Error implements the error interface.
func (e *GenError) Error() string {
	var b strings.Builder
	b.WriteString("autostruct: generate")
	if e.Entity != "" {
		b.WriteString(" entity ")
		b.WriteString(e.Entity)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.NativeType != "" {
		fmt.Fprintf(&b, " (native type %q)", e.NativeType)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for GenError.
func (e *GenError) Is(target error) bool {
	return target == ErrUnknownType
}

// IsGenError reports whether the error is a GenError.
func IsGenError(err error) bool {
	var genErr *GenError
	return errors.As(err, &genErr)
}

// ConfigError represents an invalid generator configuration.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("autostruct: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("autostruct: config error for %q: %s", e.Option, e.Message)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}
