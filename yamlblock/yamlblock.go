// Package yamlblock renders an ordered key/value record as a YAML-shaped
// frontmatter body. It is a serializer only: gardenpub parses incoming
// frontmatter with a real YAML library, but the blocks it publishes are
// rendered here so the output is byte-stable and the quoting policy matches
// what garden sites already consume.
package yamlblock

import (
	"fmt"
	"sort"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindStr
	KindSeq
	KindMap
)

// Value is a closed tagged union of the value shapes a rendered block can
// carry. KindMap exists only as a catch-all for metadata the builder never
// produces itself; it renders as a compact JSON-like scalar and makes no
// round-trip promise.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	seq  []Value
	rec  *Record
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Str returns a string Value.
func Str(s string) Value { return Value{kind: KindStr, str: s} }

// Seq returns a sequence Value holding the given elements.
func Seq(elems ...Value) Value { return Value{kind: KindSeq, seq: elems} }

// Strings returns a sequence Value of string elements.
func Strings(elems []string) Value {
	vs := make([]Value, len(elems))
	for i, s := range elems {
		vs[i] = Str(s)
	}
	return Seq(vs...)
}

// Map returns a mapping Value backed by the given record.
func Map(r *Record) Value { return Value{kind: KindMap, rec: r} }

// Kind reports which variant the Value holds.
func (v Value) Kind() Kind { return v.kind }

// From converts an arbitrary decoded value (as produced by a YAML or JSON
// parser) into a Value. Unknown scalar types degrade to their fmt string
// form rather than failing.
func From(v any) Value {
	switch vv := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(vv)
	case int:
		return Number(float64(vv))
	case int64:
		return Number(float64(vv))
	case uint64:
		return Number(float64(vv))
	case float32:
		return Number(float64(vv))
	case float64:
		return Number(vv)
	case string:
		return Str(vv)
	case []string:
		return Strings(vv)
	case []any:
		elems := make([]Value, len(vv))
		for i, e := range vv {
			elems[i] = From(e)
		}
		return Seq(elems...)
	case map[string]any:
		// Parser maps carry no order; sort keys so output is deterministic.
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		r := NewRecord()
		for _, k := range keys {
			r.Set(k, From(vv[k]))
		}
		return Map(r)
	default:
		return Str(fmt.Sprint(vv))
	}
}

// Record is an insertion-ordered mapping from string keys to Values.
// Key order is significant: it is the serialized line order.
type Record struct {
	keys []string
	vals map[string]Value
}

// NewRecord returns an empty Record.
func NewRecord() *Record {
	return &Record{vals: make(map[string]Value)}
}

// Set stores v under key. A key keeps its original insertion position when
// set again.
func (r *Record) Set(key string, v Value) {
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = v
}

// Get returns the Value stored under key.
func (r *Record) Get(key string) (Value, bool) {
	v, ok := r.vals[key]
	return v, ok
}

// Len returns the number of keys in the record.
func (r *Record) Len() int { return len(r.keys) }

// Keys returns the record's keys in insertion order. The returned slice is
// shared; callers must not modify it.
func (r *Record) Keys() []string { return r.keys }

// formatNumber renders a float in plain decimal form, without an exponent
// and without a trailing ".0" for integral values.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
