// Package jsonsql compiles JSON query specs into dialect specific SQL with
// the literal values extracted into placeholders.
//
// A query spec is a tree of mappings, lists and scalars, usually decoded
// from JSON or YAML. The type property selects the statement and every
// other property feeds one clause of it.
//
// # Basic Usage
//
//	builder, err := jsonsql.New(jsonsql.DefaultOptions())
//	if err != nil {
//		return err
//	}
//
//	result, err := builder.Build(jsonsql.D{
//		{"type", "select"},
//		{"table", "users"},
//		{"condition", jsonsql.D{{"name", "John"}}},
//	})
//	// result.Query: select * from "users" where "name" = $p1;
//	// result.Values(): map[p1:John]
//
// # Dialects
//
// Available dialects: base, mssql, postgresql, sqlite, mysql. The dialect
// is chosen with Options.Dialect. Features a dialect cannot express fail
// with an UnsupportedFeatureError.
//
// # Values
//
// Numbers, booleans and null are written inline. Strings, dates, UUIDs and
// regular expressions become placeholders unless SeparatedValues is false.
// Placeholders are named p1, p2 and so on; PrefixValues, ValuesArray,
// ValuesObject and Args expose them for the database driver.
//
// # Schema Validation
//
// With Options.Schema set to a DBML project, table and column references
// are checked against it.
package jsonsql

import (
	"github.com/zoobzio/jsonsql/internal/render"
	"github.com/zoobzio/jsonsql/internal/types"
)

// D is an ordered query spec literal. Go maps work too, but their keys are
// taken in sorted order.
type D = types.D

// E is one property of a D.
type E = types.E

// Object is a decoded query spec mapping with its key order preserved.
type Object = types.Object

// Error types returned by Build and New. Use errors.As to inspect them.
type (
	ConfigError                 = render.ConfigError
	ValidationError             = render.ValidationError
	ValidationKind              = render.ValidationKind
	UnsupportedFeatureError     = render.UnsupportedFeatureError
	UnknownTemplateError        = render.UnknownTemplateError
	UnknownBlockError           = render.UnknownBlockError
	UnknownOperatorError        = render.UnknownOperatorError
	InvalidOperatorContextError = render.InvalidOperatorContextError
	UnsupportedValueTypeError   = render.UnsupportedValueTypeError
)

// Re-export validation kinds for public API.
const (
	MissingProperty       = render.MissingProperty
	MissingAnyProperty    = render.MissingAnyProperty
	ConflictingProperties = render.ConflictingProperties
	InvalidType           = render.InvalidType
	InvalidValue          = render.InvalidValue
	MinLength             = render.MinLength
	RequiredField         = render.RequiredField
	NotInSchema           = render.NotInSchema
)

// ParseJSON decodes a JSON query spec, keeping the order of object keys.
func ParseJSON(data []byte) (any, error) {
	return types.DecodeJSON(data)
}

// ParseYAML decodes a YAML query spec, keeping the order of mapping keys.
func ParseYAML(data []byte) (any, error) {
	return types.DecodeYAML(data)
}
