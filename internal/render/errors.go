package render

import (
	"fmt"
	"strings"
)

// UnsupportedFeatureError indicates a feature not supported by the dialect.
type UnsupportedFeatureError struct {
	Feature string
	Dialect string
	Hint    string
}

func (e UnsupportedFeatureError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s is not supported: %s", e.Dialect, e.Feature, e.Hint)
	}
	return fmt.Sprintf("%s: %s is not supported", e.Dialect, e.Feature)
}

// NewUnsupportedFeatureError creates a new unsupported feature error.
func NewUnsupportedFeatureError(dialect, feature string, hint ...string) error {
	err := UnsupportedFeatureError{Feature: feature, Dialect: dialect}
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	return err
}

// ConfigError indicates an invalid builder option or option combination.
type ConfigError struct {
	Option string
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("option `%s`: %s", e.Option, e.Reason)
}

// NewConfigError creates a new configuration error.
func NewConfigError(option, reason string) error {
	return ConfigError{Option: option, Reason: reason}
}

// ValidationKind classifies spec validation failures.
type ValidationKind int

const (
	MissingProperty ValidationKind = iota
	MissingAnyProperty
	ConflictingProperties
	InvalidType
	InvalidValue
	MinLength
	RequiredField
	NotInSchema
)

// ValidationError reports a query spec that cannot be compiled.
// Clause names the template or block that rejected it.
type ValidationError struct {
	Kind     ValidationKind
	Clause   string
	Props    []string
	Value    any
	Expected []string
}

func (e ValidationError) Error() string {
	in := ""
	if e.Clause != "" {
		in = fmt.Sprintf(" in `%s` clause", e.Clause)
	}
	switch e.Kind {
	case MissingProperty:
		if e.Clause == "" {
			return fmt.Sprintf("%s property is required", quoteProps(e.Props))
		}
		return fmt.Sprintf("%s property is not set%s", quoteProps(e.Props), in)
	case MissingAnyProperty:
		return fmt.Sprintf("none of %s properties is set%s", quoteProps(e.Props), in)
	case ConflictingProperties:
		return fmt.Sprintf("%s properties cannot be used together%s", quoteProps(e.Props), in)
	case InvalidType:
		expected := make([]string, len(e.Expected))
		for i, t := range e.Expected {
			expected[i] = fmt.Sprintf("%q", t)
		}
		return fmt.Sprintf("%s property should have one of expected types: %s%s",
			quoteProps(e.Props), strings.Join(expected, ", "), in)
	case InvalidValue:
		return fmt.Sprintf("invalid %s property value \"%v\"%s", quoteProps(e.Props), e.Value, in)
	case MinLength:
		return fmt.Sprintf("%s property should have at least %v items%s", quoteProps(e.Props), e.Value, in)
	case RequiredField:
		return fmt.Sprintf("field `%v` is required in %s property", e.Value, quoteProps(e.Props))
	case NotInSchema:
		return fmt.Sprintf("%s %q is not defined in schema", strings.Join(e.Props, "."), e.Value)
	}
	return fmt.Sprintf("invalid %s property%s", quoteProps(e.Props), in)
}

func quoteProps(props []string) string {
	quoted := make([]string, len(props))
	for i, p := range props {
		quoted[i] = "`" + p + "`"
	}
	return strings.Join(quoted, ", ")
}

// NewMissingPropertyError reports a required property that is absent.
// An empty clause produces a bare "property is required" message.
func NewMissingPropertyError(clause, prop string) error {
	return ValidationError{Kind: MissingProperty, Clause: clause, Props: []string{prop}}
}

// NewMissingAnyPropertyError reports that none of props is set.
func NewMissingAnyPropertyError(clause string, props ...string) error {
	return ValidationError{Kind: MissingAnyProperty, Clause: clause, Props: props}
}

// NewConflictingPropertiesError reports mutually exclusive properties set
// together.
func NewConflictingPropertiesError(clause string, props ...string) error {
	return ValidationError{Kind: ConflictingProperties, Clause: clause, Props: props}
}

// NewInvalidTypeError reports a property holding a value of the wrong type.
func NewInvalidTypeError(clause, prop string, expected ...string) error {
	return ValidationError{Kind: InvalidType, Clause: clause, Props: []string{prop}, Expected: expected}
}

// NewInvalidValueError reports a property holding an unrecognized value.
func NewInvalidValueError(clause, prop string, value any) error {
	return ValidationError{Kind: InvalidValue, Clause: clause, Props: []string{prop}, Value: value}
}

// NewMinLengthError reports a list property with too few items.
func NewMinLengthError(clause, prop string, min int) error {
	return ValidationError{Kind: MinLength, Clause: clause, Props: []string{prop}, Value: min}
}

// NewRequiredFieldError reports a key missing from a mapping property.
func NewRequiredFieldError(prop, field string) error {
	return ValidationError{Kind: RequiredField, Props: []string{prop}, Value: field}
}

// NewNotInSchemaError reports an identifier the configured schema does not
// define. kind is "table" or "table.column".
func NewNotInSchemaError(kind, name string) error {
	return ValidationError{Kind: NotInSchema, Props: strings.Split(kind, "."), Value: name}
}

// UnknownTemplateError indicates a template name the dialect does not define.
type UnknownTemplateError struct {
	Name string
}

func (e UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template type %q", e.Name)
}

// UnknownBlockError indicates a block name the dialect does not define.
type UnknownBlockError struct {
	Name string
}

func (e UnknownBlockError) Error() string {
	return fmt.Sprintf("unknown block %q", e.Name)
}

// UnknownOperatorError indicates an operator or modifier name that is not
// registered in any category.
type UnknownOperatorError struct {
	Operator string
	Kind     string
}

func (e UnknownOperatorError) Error() string {
	kind := e.Kind
	if kind == "" {
		kind = "operator"
	}
	return fmt.Sprintf("unknown %s %q", kind, e.Operator)
}

// InvalidOperatorContextError indicates an operator used where its category
// is not allowed.
type InvalidOperatorContextError struct {
	Operator        string
	Context         string
	ContextOperator string
}

func (e InvalidOperatorContextError) Error() string {
	msg := fmt.Sprintf("unexpected operator %q at %s context", e.Operator, e.Context)
	if e.ContextOperator != "" {
		msg += fmt.Sprintf(" of operator %q", e.ContextOperator)
	}
	return msg
}

// UnsupportedValueTypeError indicates a literal of a type that can be
// neither inlined nor passed as a parameter.
type UnsupportedValueTypeError struct {
	Type string
}

func (e UnsupportedValueTypeError) Error() string {
	return fmt.Sprintf("unsupported value type %q", e.Type)
}
