// Package types holds the runtime support types referenced by generated code
// for database types that have no direct Go counterpart.
package types

// Range represents a range value over an ordered bound type. An unbounded
// side has its Valid flag cleared; Empty marks the canonical empty range.
type Range[T any] struct {
	Lower, Upper       Bound[T]
	LowerInc, UpperInc bool
	Empty              bool
}

// Bound is one side of a range.
type Bound[T any] struct {
	Value T
	Valid bool // false means unbounded.
}

// BitString is a fixed or varying length bit string rendered as a sequence of
// '0' and '1' characters.
type BitString string

// TSQuery is a text-search query in its textual form.
type TSQuery string

// TSVector is a text-search document vector in its textual form.
type TSVector string

// Money is a currency amount in the smallest currency unit.
type Money int64
