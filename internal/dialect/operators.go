package dialect

import (
	"strings"
)

// LogicalOperator joins the rendered terms of a group.
type LogicalOperator func(terms []string) string

// FetchingOperator renders an operand from its value. end is set when the
// operand is the right-hand side of a comparison.
type FetchingOperator func(c *Ctx, value any, end bool) (string, error)

// Operand describes the right-hand side shape a comparison expects.
type Operand int

const (
	OperandScalar Operand = iota // a single fetched operand
	OperandList                  // a parenthesized list or a sub-query
	OperandRange                 // exactly two operands joined with "and"
)

// ComparisonOperator renders a predicate between a field and an operand.
type ComparisonOperator struct {
	// DefaultFetching overrides the fetching operator of the enclosing
	// clause for operands without an explicit fetching key.
	DefaultFetching string
	Operand         Operand
	Render          func(field, operand string) string
}

// StateOperator remaps a comparison operator under a flag value. ok is
// false when operator has no remapping.
type StateOperator func(flag bool, operator string) (remapped string, ok bool)

// Modifier renders one assignment of an update.
type Modifier struct {
	Render func(field, value string) string
	// NoValue marks modifiers that ignore their value, which is then not
	// rendered at all.
	NoValue bool
}

// Joiner builds a logical operator joining terms with word. Several terms
// are wrapped in parentheses.
func Joiner(word string) LogicalOperator {
	return func(terms []string) string {
		switch len(terms) {
		case 0:
			return ""
		case 1:
			return terms[0]
		}
		return "(" + strings.Join(terms, " "+word+" ") + ")"
	}
}

// Negation prefixes the result of inner with "not".
func Negation(inner LogicalOperator) LogicalOperator {
	return func(terms []string) string {
		joined := inner(terms)
		if joined == "" {
			return ""
		}
		if len(terms) == 1 && !strings.HasPrefix(joined, "(") {
			joined = "(" + joined + ")"
		}
		return "not " + joined
	}
}

// Binary builds a comparison rendered as "field sql operand".
func Binary(sql string) ComparisonOperator {
	return ComparisonOperator{Render: func(field, operand string) string {
		return field + " " + sql + " " + operand
	}}
}

// Assignment builds a modifier rendered as "field = expr", where expr is
// produced from the field and value.
func Assignment(expr func(field, value string) string) Modifier {
	return Modifier{Render: func(field, value string) string {
		return field + " = " + expr(field, value)
	}}
}
