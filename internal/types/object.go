package types

import (
	"bytes"
	"encoding/json"
)

// TermKeys lists the properties that make an object a query term, in
// priority order.
var TermKeys = []string{"select", "query", "field", "value", "func", "expression"}

// Object is an ordered mapping decoded from a query spec.
// Objects are built once at the compile boundary and only read afterwards.
type Object struct {
	keys   []string
	values map[string]any
	term   int
}

// E is a single key/value pair of an ordered literal.
type E struct {
	Key   string
	Value any
}

// D is an ordered literal for building specs in Go code.
//
//	jsonsql.D{{"table", "users"}, {"condition", jsonsql.D{{"name", "John"}}}}
type D []E

// NewObject creates an empty object with room for n keys.
func NewObject(n int) *Object {
	return &Object{
		keys:   make([]string, 0, n),
		values: make(map[string]any, n),
		term:   -1,
	}
}

// ObjectOf creates an object from alternating key/value arguments.
func ObjectOf(kv ...any) *Object {
	o := NewObject(len(kv) / 2)
	for i := 0; i+1 < len(kv); i += 2 {
		o.Set(kv[i].(string), kv[i+1])
	}
	return o
}

// Set stores value under key, keeping the position of an existing key.
// It is intended for construction; objects must not be modified once shared.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
		for i, k := range TermKeys {
			if k == key && (o.term < 0 || i < o.term) {
				o.term = i
			}
		}
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Value returns the value stored under key or nil.
func (o *Object) Value(key string) any {
	v, _ := o.Get(key)
	return v
}

// String returns the string stored under key.
func (o *Object) String(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Has reports whether key is present, even with a nil value.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// HasAny reports whether at least one of keys is present.
func (o *Object) HasAny(keys ...string) bool {
	for _, k := range keys {
		if o.Has(k) {
			return true
		}
	}
	return false
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Each calls fn for every key in order and stops at the first error.
func (o *Object) Each(fn func(key string, value any) error) error {
	for _, k := range o.Keys() {
		if err := fn(k, o.values[k]); err != nil {
			return err
		}
	}
	return nil
}

// Term returns the term kind of the object, the first of TermKeys it
// contains, or "" when it is a plain value.
func (o *Object) Term() string {
	if o == nil || o.term < 0 {
		return ""
	}
	return TermKeys[o.term]
}

// IsTerm reports whether o carries one of TermKeys.
func (o *Object) IsTerm() bool {
	return o.Term() != ""
}

// With returns a copy of o with key set to value.
func (o *Object) With(key string, value any) *Object {
	c := o.clone(1)
	c.Set(key, value)
	return c
}

// Defaults returns a copy of o where keys missing from o are filled from
// defaults. Keys of defaults come first.
func (o *Object) Defaults(defaults *Object) *Object {
	c := NewObject(o.Len() + defaults.Len())
	for _, k := range defaults.Keys() {
		c.Set(k, defaults.values[k])
	}
	for _, k := range o.Keys() {
		c.Set(k, o.values[k])
	}
	return c
}

// Prepend returns a copy of o with key set to value in the first position,
// overriding any value o has for key.
func (o *Object) Prepend(key string, value any) *Object {
	c := NewObject(o.Len() + 1)
	c.Set(key, value)
	for _, k := range o.Keys() {
		if k != key {
			c.Set(k, o.values[k])
		}
	}
	return c
}

// Pick returns a new object holding only the listed keys present in o,
// in the order given.
func (o *Object) Pick(keys ...string) *Object {
	c := NewObject(len(keys))
	for _, k := range keys {
		if v, ok := o.Get(k); ok {
			c.Set(k, v)
		}
	}
	return c
}

func (o *Object) clone(extra int) *Object {
	c := NewObject(o.Len() + extra)
	for _, k := range o.Keys() {
		c.Set(k, o.values[k])
	}
	return c
}

// MarshalJSON encodes the object with its keys in order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
