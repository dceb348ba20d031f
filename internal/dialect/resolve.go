package dialect

import (
	"strings"

	"github.com/zoobzio/jsonsql/internal/render"
	"github.com/zoobzio/jsonsql/internal/types"
)

type state struct {
	name string
	flag bool
}

// operation is one step of condition resolution.
type operation struct {
	context         types.Category
	contextOperator string
	operator        string
	value           any
	field           string
	states          []state
	defaultFetching string
	end             bool
}

// Condition compiles a condition spec into a boolean SQL expression.
// defaultFetching sources operands that name no fetching operator: $value
// for where and having clauses, $field for join conditions. One redundant
// outer parenthesis pair is removed.
func (c *Ctx) Condition(value any, defaultFetching string) (string, error) {
	out, err := c.resolve(operation{
		context:         types.CategoryNone,
		operator:        "$and",
		value:           value,
		defaultFetching: defaultFetching,
	})
	if err != nil {
		return "", err
	}
	return TrimOuterParens(out), nil
}

func (c *Ctx) resolve(o operation) (string, error) {
	known := false
	for _, cat := range types.Categories {
		if !c.d.hasOperator(cat, o.operator) {
			continue
		}
		known = true
		if !types.ValidContext(cat, o.context) {
			continue
		}
		switch cat {
		case types.CategoryLogical:
			return c.logical(o)
		case types.CategoryFetching:
			return c.fetching(o)
		case types.CategoryComparison:
			return c.comparison(o)
		case types.CategoryState:
			return c.state(o)
		}
	}
	if !known {
		return "", render.UnknownOperatorError{Operator: o.operator}
	}
	return "", render.InvalidOperatorContextError{
		Operator:        o.operator,
		Context:         o.context.String(),
		ContextOperator: o.contextOperator,
	}
}

func (c *Ctx) logical(o operation) (string, error) {
	join, _ := c.d.Logical.Get(o.operator)
	value := o.value
	if value == nil {
		return "", nil
	}
	if types.IsScalar(value) {
		value = types.ObjectOf(o.defaultFetching, value)
	}

	next := operation{
		context:         types.CategoryLogical,
		contextOperator: o.operator,
		defaultFetching: o.defaultFetching,
	}
	var terms []string
	add := func(op string, item any) error {
		next.operator, next.value = op, item
		out, err := c.resolve(next)
		if err != nil {
			return err
		}
		if out != "" {
			terms = append(terms, out)
		}
		return nil
	}

	switch v := value.(type) {
	case []any:
		for _, item := range v {
			if err := add("$and", item); err != nil {
				return "", err
			}
		}
	case *types.Object:
		err := v.Each(func(key string, item any) error {
			if strings.HasPrefix(key, "$") {
				return add(key, item)
			}
			// {a: 1} is {$field: {name: "a", $eq: 1}}
			obj, ok := types.AsObject(item)
			if !ok {
				obj = types.ObjectOf("$eq", item)
			}
			return add("$field", obj.Prepend("name", key))
		})
		if err != nil {
			return "", err
		}
	}
	return join(terms), nil
}

func (c *Ctx) fetching(o operation) (string, error) {
	fetch, _ := c.d.Fetching.Get(o.operator)
	operand, err := fetch(c, o.value, o.end)
	if err != nil {
		return "", err
	}
	if o.end || types.IsScalar(o.value) {
		return operand, nil
	}
	return c.group(operation{
		context:         types.CategoryFetching,
		contextOperator: o.operator,
		operator:        "$and",
		field:           operand,
		value:           o.value,
		states:          o.states,
		defaultFetching: o.defaultFetching,
	})
}

// endFetching renders the right-hand operand of a comparison, using the
// first fetching key of a mapping value or the default fetching operator.
func (c *Ctx) endFetching(o operation) (string, error) {
	op, value := o.defaultFetching, o.value
	if obj, ok := types.AsObject(value); ok {
		if key, ok := c.fetchingKey(obj); ok {
			op, value = key, obj.Value(key)
		}
	}
	o.operator, o.value, o.end = op, value, true
	return c.resolve(o)
}

func (c *Ctx) fetchingKey(obj *types.Object) (string, bool) {
	for _, key := range obj.Keys() {
		if strings.HasPrefix(key, "$") && c.d.Fetching.Has(key) {
			return key, true
		}
	}
	return "", false
}

func (c *Ctx) comparison(o operation) (string, error) {
	op := o.operator
	for _, s := range o.states {
		remap, _ := c.d.State.Get(s.name)
		next, ok := remap(s.flag, op)
		if !ok {
			return "", render.InvalidOperatorContextError{
				Operator:        op,
				Context:         types.CategoryState.String(),
				ContextOperator: s.name,
			}
		}
		op = next
	}
	def, ok := c.d.Comparison.Get(op)
	if !ok {
		return "", render.UnknownOperatorError{Operator: op}
	}

	value := o.value
	if len(o.states) > 0 {
		// state operators compare against null
		value = nil
	}
	rhs := operation{
		context:         types.CategoryComparison,
		contextOperator: op,
		value:           value,
		states:          o.states,
		defaultFetching: def.DefaultFetching,
	}
	if rhs.defaultFetching == "" {
		rhs.defaultFetching = o.defaultFetching
	}

	var operand string
	var err error
	switch def.Operand {
	case OperandList:
		operand, err = c.listOperand(rhs)
	case OperandRange:
		operand, err = c.rangeOperand(rhs)
	default:
		operand, err = c.endFetching(rhs)
	}
	if err != nil {
		return "", err
	}
	return def.Render(o.field, operand), nil
}

func (c *Ctx) listOperand(o operation) (string, error) {
	switch v := o.value.(type) {
	case []any:
		if len(v) == 0 {
			return "(null)", nil
		}
		items := make([]string, len(v))
		for i, item := range v {
			o.value = item
			out, err := c.endFetching(o)
			if err != nil {
				return "", err
			}
			items[i] = out
		}
		return "(" + strings.Join(items, ", ") + ")", nil
	case *types.Object:
		if _, ok := c.fetchingKey(v); !ok {
			// a bare mapping is a sub-query
			o.defaultFetching = "$select"
		}
		return c.endFetching(o)
	}
	out, err := c.endFetching(o)
	if err != nil {
		return "", err
	}
	return "(" + out + ")", nil
}

func (c *Ctx) rangeOperand(o operation) (string, error) {
	bounds, ok := types.AsList(o.value)
	if !ok || len(bounds) != 2 {
		return "", render.NewInvalidValueError("", o.contextOperator, o.value)
	}
	out := make([]string, 2)
	for i, bound := range bounds {
		o.value = bound
		s, err := c.endFetching(o)
		if err != nil {
			return "", err
		}
		out[i] = s
	}
	return out[0] + " and " + out[1], nil
}

func (c *Ctx) state(o operation) (string, error) {
	states := make([]state, len(o.states), len(o.states)+1)
	copy(states, o.states)

	switch v := o.value.(type) {
	case bool:
		return c.resolve(operation{
			context:         types.CategoryState,
			contextOperator: o.operator,
			operator:        "$eq",
			field:           o.field,
			states:          append(states, state{name: o.operator, flag: v}),
			defaultFetching: o.defaultFetching,
		})
	case *types.Object:
		return c.group(operation{
			context:         types.CategoryState,
			contextOperator: o.operator,
			operator:        "$and",
			field:           o.field,
			value:           v,
			states:          append(states, state{name: o.operator, flag: true}),
			defaultFetching: o.defaultFetching,
		})
	}
	return "", render.NewInvalidTypeError("", o.operator, "boolean", "object")
}

// group resolves the operator keys of a mapping against o.field and joins
// them with o.operator.
func (c *Ctx) group(o operation) (string, error) {
	obj, ok := types.AsObject(o.value)
	if !ok {
		o.context = types.CategoryComparison
		return c.endFetching(o)
	}
	join, _ := c.d.Logical.Get(o.operator)

	var terms []string
	for _, key := range obj.Keys() {
		if !strings.HasPrefix(key, "$") {
			continue
		}
		next := o
		next.operator, next.value = key, obj.Value(key)
		if c.d.Fetching.Has(key) {
			// {a: {$field: "b"}} is {a: {$eq: {$field: "b"}}}
			next.operator, next.value = "$eq", types.ObjectOf(key, next.value)
		}
		out, err := c.resolve(next)
		if err != nil {
			return "", err
		}
		if out != "" {
			terms = append(terms, out)
		}
	}

	if result := join(terms); result != "" {
		return result, nil
	}
	return o.field, nil
}

// TrimOuterParens removes one pair of parentheses enclosing all of s.
func TrimOuterParens(s string) string {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s
	}
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if quote != 0 {
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"', '`':
			quote = ch
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return s
			}
		}
	}
	return s[1 : len(s)-1]
}
