package gen

import "go/token"

// Config holds the recognized generation options.
type Config struct {
	// SingularNames applies singularization to entity-derived
	// identifiers, so a "users" table generates a "User" struct.
	SingularNames bool
	// StrictTypes fails the pass when a native type matches no category
	// and no generated entity. The default policy degrades such types to
	// a custom-named descriptor that the caller supplies.
	StrictTypes bool
	// StructTag is the tag key emitted on struct fields, carrying the
	// column name. Empty disables tags.
	StructTag string
	// Workers bounds the number of entities generated in parallel.
	Workers int
}

// Option configures code generation.
type Option func(*Config) error

// WithSingularNames generates entity identifiers in their singular form.
func WithSingularNames() Option {
	return func(c *Config) error {
		c.SingularNames = true
		return nil
	}
}

// WithStrictTypes fails generation on native types the mapper cannot
// classify, instead of degrading them to custom-named placeholders.
func WithStrictTypes() Option {
	return func(c *Config) error {
		c.StrictTypes = true
		return nil
	}
}

// WithStructTag sets the tag key emitted on generated struct fields, e.g.
// "db" or "json".
func WithStructTag(tag string) Option {
	return func(c *Config) error {
		if tag != "" && !token.IsIdentifier(tag) {
			return &ConfigError{Option: "StructTag", Value: tag, Message: "tag key must be a valid identifier"}
		}
		c.StructTag = tag
		return nil
	}
}

// WithWorkers bounds the number of entities processed in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return &ConfigError{Option: "Workers", Value: n, Message: "must be positive"}
		}
		c.Workers = n
		return nil
	}
}
