package types

import (
	"encoding/json"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Normalize converts caller input into the spec tree understood by the
// renderer: *Object for mappings, []any for lists, int64, uint64 and
// float64 for numbers. Strings, booleans, nil, time.Time, uuid.UUID and
// *regexp.Regexp are kept. Any other value is returned unchanged and is
// rejected later if a literal is needed from it.
//
// Plain Go maps have no key order, so their keys are sorted. Use D to keep
// a chosen order.
func Normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case *Object:
		return t
	case D:
		o := NewObject(len(t))
		for _, e := range t {
			o.Set(e.Key, Normalize(e.Value))
		}
		return o
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Normalize(item)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		o := NewObject(len(keys))
		for _, k := range keys {
			o.Set(k, Normalize(t[k]))
		}
		return o
	case string, bool, int64, uint64, float64, time.Time, uuid.UUID, *regexp.Regexp:
		return t
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(string(t), 10, 64); err == nil {
			return u
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return string(t)
	}
	return normalizeReflect(reflect.ValueOf(v))
}

func normalizeReflect(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Normalize(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Interface()
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return rv.Interface()
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		o := NewObject(len(keys))
		for _, k := range keys {
			o.Set(k.String(), Normalize(rv.MapIndex(k).Interface()))
		}
		return o
	}
	if rv.IsValid() {
		return rv.Interface()
	}
	return nil
}

// IsScalar reports whether v is a leaf of the spec tree, anything other
// than an object or a list.
func IsScalar(v any) bool {
	switch v.(type) {
	case *Object, []any:
		return false
	}
	return true
}

// AsObject returns v as an object.
func AsObject(v any) (*Object, bool) {
	o, ok := v.(*Object)
	return o, ok && o != nil
}

// AsList returns v as a list.
func AsList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// IsEmpty reports whether v holds nothing to render: nil, an empty object,
// an empty list or an empty string.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case *Object:
		return t.Len() == 0
	case []any:
		return len(t) == 0
	case string:
		return t == ""
	}
	return false
}

// TypeName returns a short description of the spec type of v for error
// messages.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *Object:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int64, uint64, float64:
		return "number"
	case time.Time:
		return "date"
	}
	return reflect.TypeOf(v).String()
}
