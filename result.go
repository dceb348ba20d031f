package jsonsql

import (
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/zoobzio/jsonsql/internal/types"
	"github.com/zoobzio/jsonsql/internal/values"
)

// Result is a compiled statement and the parameters it references.
type Result struct {
	Query string
	store *values.Store
}

// Values returns the parameters: a map from placeholder name to value in
// named mode, a list otherwise. It is nil when values are not separated.
func (r *Result) Values() any {
	opts := r.store.Options()
	switch {
	case !opts.Separated:
		return nil
	case opts.Named:
		return r.ValuesObject()
	}
	return r.ValuesArray()
}

// ValuesArray returns the parameter values in placeholder order.
func (r *Result) ValuesArray() []any {
	if !r.store.Options().Separated {
		return nil
	}
	out := make([]any, r.store.Len())
	copy(out, r.store.Values())
	return out
}

// ValuesObject returns the parameters by placeholder name. Positional
// parameters are keyed by their 1-based position.
func (r *Result) ValuesObject() map[string]any {
	if !r.store.Options().Separated {
		return nil
	}
	out := make(map[string]any, r.store.Len())
	for i, v := range r.store.Values() {
		out[r.key(i)] = v
	}
	return out
}

// PrefixValues is ValuesObject keyed by the placeholders as they appear in
// the query.
func (r *Result) PrefixValues() map[string]any {
	if !r.store.Options().Separated {
		return nil
	}
	out := make(map[string]any, r.store.Len())
	for i, v := range r.store.Values() {
		out[r.store.Wrap(r.key(i))] = v
	}
	return out
}

// Args returns the parameters as database/sql arguments, wrapped in
// sql.Named in named mode.
func (r *Result) Args() []any {
	if !r.store.Options().Named {
		return r.ValuesArray()
	}
	names := r.store.Names()
	out := make([]any, r.store.Len())
	for i, v := range r.store.Values() {
		out[i] = sql.Named(names[i], v)
	}
	return out
}

// MarshalJSON encodes the query and its values, keeping named values in
// placeholder order.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := types.ObjectOf("query", r.Query)
	opts := r.store.Options()
	switch {
	case !opts.Separated:
	case opts.Named:
		vals := types.NewObject(r.store.Len())
		for i, v := range r.store.Values() {
			vals.Set(r.key(i), v)
		}
		out.Set("values", vals)
	default:
		out.Set("values", r.ValuesArray())
	}
	return json.Marshal(out)
}

func (r *Result) key(i int) string {
	if r.store.Options().Named {
		return r.store.Names()[i]
	}
	return strconv.Itoa(i + 1)
}
