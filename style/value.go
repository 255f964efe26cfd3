// Package style resolves per-node declared styles (a bag of Value[T]
// properties) into a fully concrete Resolved style by walking the node tree
// top-down, the way a browser's cascade collapses to computed values.
package style

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type cssKind int

const (
	kindUnset cssKind = iota
	kindInherit
	kindSet
)

// Value is a CSS sum type: either an explicit value, the "inherit" keyword,
// or the "unset" keyword. The zero value is Unset, matching CSS's default.
type Value[T any] struct {
	kind cssKind
	val  T
}

// Set wraps v as an explicit declared value.
func Set[T any](v T) Value[T] { return Value[T]{kind: kindSet, val: v} }

// Inherit returns the "inherit" keyword value.
func Inherit[T any]() Value[T] { return Value[T]{kind: kindInherit} }

// Unset returns the "unset" keyword value (also the zero value).
func Unset[T any]() Value[T] { return Value[T]{kind: kindUnset} }

// IsSet reports whether the value carries an explicit T.
func (v Value[T]) IsSet() bool { return v.kind == kindSet }

// IsInherit reports whether the value is the "inherit" keyword.
func (v Value[T]) IsInherit() bool { return v.kind == kindInherit }

// Resolve implements the cascade: an explicit value wins; "inherit" takes
// the parent's resolved value regardless of whether the property is
// normally inheritable; anything else (including "unset" on an inherited
// property) falls back to parent for inheritable properties or to initial
// for non-inheritable ones, per the inheritable flag passed by the caller.
func (v Value[T]) Resolve(parent T, initial T, inheritable bool) T {
	switch v.kind {
	case kindSet:
		return v.val
	case kindInherit:
		return parent
	default: // kindUnset
		if inheritable {
			return parent
		}
		return initial
	}
}

// UnmarshalJSON accepts the keyword strings "inherit"/"unset", a bare CSS
// string (delegated to parse, e.g. "12px"), or a structured JSON value
// (delegated to the standard unmarshaler for T). A JSON string is always
// read as a keyword or CSS text; only non-string JSON is decoded structurally.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "inherit":
			*v = Inherit[T]()
			return nil
		case "unset", "":
			*v = Unset[T]()
			return nil
		}
		parsed, err := parseCSSString[T](s)
		if err != nil {
			return fmt.Errorf("style: %w", err)
		}
		*v = Set(parsed)
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var t T
	if err := dec.Decode(&t); err != nil {
		return fmt.Errorf("style: cannot decode value: %w", err)
	}
	*v = Set(t)
	return nil
}

// MarshalJSON round-trips Set values through T's own marshaler; keyword
// values marshal to their keyword string.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindInherit:
		return json.Marshal("inherit")
	case kindUnset:
		return json.Marshal("unset")
	default:
		return json.Marshal(v.val)
	}
}
