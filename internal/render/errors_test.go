package render

import (
	"errors"
	"testing"
)

func TestUnsupportedFeatureError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      UnsupportedFeatureError
		expected string
	}{
		{
			name: "without hint",
			err: UnsupportedFeatureError{
				Feature: "DISTINCT ON",
				Dialect: "mysql",
			},
			expected: "mysql: DISTINCT ON is not supported",
		},
		{
			name: "with hint",
			err: UnsupportedFeatureError{
				Feature: "RETURNING",
				Dialect: "mysql",
				Hint:    "use a separate SELECT query",
			},
			expected: "mysql: RETURNING is not supported: use a separate SELECT query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewUnsupportedFeatureError(t *testing.T) {
	t.Run("without hint", func(t *testing.T) {
		err := NewUnsupportedFeatureError("mysql", "DISTINCT ON")
		var ufErr UnsupportedFeatureError
		if !errors.As(err, &ufErr) {
			t.Fatal("expected UnsupportedFeatureError")
		}
		if ufErr.Dialect != "mysql" {
			t.Errorf("Dialect = %q, want %q", ufErr.Dialect, "mysql")
		}
		if ufErr.Feature != "DISTINCT ON" {
			t.Errorf("Feature = %q, want %q", ufErr.Feature, "DISTINCT ON")
		}
		if ufErr.Hint != "" {
			t.Errorf("Hint = %q, want empty", ufErr.Hint)
		}
	})

	t.Run("with hint", func(t *testing.T) {
		err := NewUnsupportedFeatureError("mssql", "RETURNING", "use OUTPUT instead")
		var ufErr UnsupportedFeatureError
		if !errors.As(err, &ufErr) {
			t.Fatal("expected UnsupportedFeatureError")
		}
		if ufErr.Hint != "use OUTPUT instead" {
			t.Errorf("Hint = %q, want %q", ufErr.Hint, "use OUTPUT instead")
		}
	})
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "missing property",
			err:      NewMissingPropertyError("insert", "values"),
			expected: "`values` property is not set in `insert` clause",
		},
		{
			name:     "required property without clause",
			err:      NewMissingPropertyError("", "alias.name"),
			expected: "`alias.name` property is required",
		},
		{
			name:     "missing any property",
			err:      NewMissingAnyPropertyError("select", "table", "query", "select", "expression"),
			expected: "none of `table`, `query`, `select`, `expression` properties is set in `select` clause",
		},
		{
			name:     "conflicting properties",
			err:      NewConflictingPropertiesError("join", "table", "select"),
			expected: "`table`, `select` properties cannot be used together in `join` clause",
		},
		{
			name:     "invalid type",
			err:      NewInvalidTypeError("select", "alias", "string", "object"),
			expected: "`alias` property should have one of expected types: \"string\", \"object\" in `select` clause",
		},
		{
			name:     "invalid value",
			err:      NewInvalidValueError("join", "type", "wrong"),
			expected: "invalid `type` property value \"wrong\" in `join` clause",
		},
		{
			name:     "min length",
			err:      NewMinLengthError("union", "queries", 2),
			expected: "`queries` property should have at least 2 items in `union` clause",
		},
		{
			name:     "required field",
			err:      NewRequiredFieldError("expression.values", "a"),
			expected: "field `a` is required in `expression.values` property",
		},
		{
			name:     "not in schema",
			err:      NewNotInSchemaError("table", "orders"),
			expected: "table \"orders\" is not defined in schema",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
			var vErr ValidationError
			if !errors.As(tt.err, &vErr) {
				t.Error("expected ValidationError")
			}
		})
	}
}

func TestGrammarErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"unknown template", UnknownTemplateError{Name: "wrong"}, `unknown template type "wrong"`},
		{"unknown block", UnknownBlockError{Name: "distinctOn"}, `unknown block "distinctOn"`},
		{"unknown operator", UnknownOperatorError{Operator: "$wrong"}, `unknown operator "$wrong"`},
		{"unknown modifier", UnknownOperatorError{Operator: "$pow", Kind: "modifier"}, `unknown modifier "$pow"`},
		{
			"invalid context",
			InvalidOperatorContextError{Operator: "$or", Context: "fetching", ContextOperator: "$field"},
			`unexpected operator "$or" at fetching context of operator "$field"`,
		},
		{
			"invalid context at top level",
			InvalidOperatorContextError{Operator: "$eq", Context: "null"},
			`unexpected operator "$eq" at null context`,
		},
		{"unsupported value", UnsupportedValueTypeError{Type: "struct {}"}, `unsupported value type "struct {}"`},
		{"config", NewConfigError("dialect", "unknown dialect \"oracle\""), "option `dialect`: unknown dialect \"oracle\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCapabilities_Features(t *testing.T) {
	caps := Capabilities{Returning: true, JSONPath: true}
	got := caps.Features()
	if len(got) != 2 || got[0] != "returning" || got[1] != "json path" {
		t.Errorf("Features() = %v, want [returning json path]", got)
	}
	if len(Capabilities{}.Features()) != 0 {
		t.Error("Features() of zero Capabilities should be empty")
	}
}
