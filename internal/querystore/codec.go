// Package querystore keeps a typed record of named fields synchronized with a
// flat string key/value location such as a query string.
//
// Each field is governed by a Codec: Parse turns the raw location value into a
// domain value, Serialize turns it back, and Default derives the value from the
// sibling fields when it is absent. ParseRecord and SerializeRecord apply a
// Registry of codecs to whole records, and Store runs the two sync directions
// between a Record and a Location.
package querystore

import (
	"fmt"
	"maps"
	"reflect"
)

// Query is the external representation: a flat mapping of string keys to
// string values. An absent key means "not specified".
type Query map[string]string

// Clone returns a shallow copy of q. A nil Query clones to an empty one.
func (q Query) Clone() Query {
	out := make(Query, len(q))
	maps.Copy(out, q)
	return out
}

// Record is the domain representation. A nil value means the field is
// undefined; after ParseRecord every registered field has an entry.
type Record map[string]any

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	maps.Copy(out, r)
	return out
}

// Merge returns a new Record holding r overlaid with partial.
// Neither input is modified.
func (r Record) Merge(partial Record) Record {
	out := make(Record, len(r)+len(partial))
	maps.Copy(out, r)
	maps.Copy(out, partial)
	return out
}

// ParseFunc converts a raw location value into a domain value. present is
// false when the key is missing from the location. A nil result means the
// value is absent and its default must be resolved.
type ParseFunc func(raw string, present bool) any

// SerializeFunc converts a domain value into a raw location value.
// An empty result omits the field from the location.
type SerializeFunc func(v any) string

// DefaultFunc derives a field's value when parsing left it nil. parsed holds
// the directly parsed values of the same pass; other defaulted fields are
// still nil in it.
type DefaultFunc func(field string, v any, parsed Record) any

// Codec is the parse/serialize/default triple for one field.
// Nil functions behave as their identity counterparts.
type Codec struct {
	Parse     ParseFunc
	Serialize SerializeFunc
	Default   DefaultFunc
}

// Registry maps field names to their codecs. Fields without an entry pass
// through unchanged.
type Registry map[string]Codec

// Codec returns the codec for field with identity functions filled in.
func (r Registry) Codec(field string) Codec {
	c := r[field]
	if c.Parse == nil {
		c.Parse = IdentityParse
	}
	if c.Serialize == nil {
		c.Serialize = IdentitySerialize
	}
	if c.Default == nil {
		c.Default = IdentityDefault
	}
	return c
}

// IdentityParse returns raw unchanged, or nil when the key is missing.
func IdentityParse(raw string, present bool) any {
	if !present {
		return nil
	}
	return raw
}

// IdentitySerialize writes strings as-is and other values with fmt.
// Nil and zero values serialize to "" so they are left out of the location.
func IdentitySerialize(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	}
	if reflect.ValueOf(v).IsZero() {
		return ""
	}
	return fmt.Sprint(v)
}

// IdentityDefault leaves the value as it is, which keeps an absent field nil.
func IdentityDefault(_ string, v any, _ Record) any {
	return v
}
