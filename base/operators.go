package base

import (
	"github.com/zoobzio/jsonsql/internal/dialect"
	"github.com/zoobzio/jsonsql/internal/render"
	"github.com/zoobzio/jsonsql/internal/types"
)

func registerOperators(d *dialect.Dialect) error {
	d.Logical.Set("$and", dialect.Joiner("and"))
	d.Logical.Set("$or", dialect.Joiner("or"))
	d.Logical.Set("$not", dialect.Negation(dialect.Joiner("and")))
	d.Logical.Set("$nor", dialect.Negation(dialect.Joiner("or")))

	d.Fetching.Set("$field", fetchField)
	d.Fetching.Set("$value", fetchValue)
	d.Fetching.Set("$query", fetchSubQuery)
	d.Fetching.Set("$select", fetchSubQuery)
	d.Fetching.Set("$expression", fetchBlock("expression"))
	d.Fetching.Set("$func", fetchBlock("func"))

	d.Comparison.Set("$eq", dialect.Binary("="))
	d.Comparison.Set("$ne", dialect.Binary("!="))
	d.Comparison.Set("$gt", dialect.Binary(">"))
	d.Comparison.Set("$lt", dialect.Binary("<"))
	d.Comparison.Set("$gte", dialect.Binary(">="))
	d.Comparison.Set("$lte", dialect.Binary("<="))
	d.Comparison.Set("$is", dialect.Binary("is"))
	d.Comparison.Set("$isNot", dialect.Binary("is not"))
	d.Comparison.Set("$like", dialect.Binary("like"))
	d.Comparison.Set("$nlike", dialect.Binary("not like"))
	d.Comparison.Set("$in", List("in"))
	d.Comparison.Set("$nin", List("not in"))
	d.Comparison.Set("$between", dialect.ComparisonOperator{
		Operand: dialect.OperandRange,
		Render: func(field, operand string) string {
			return field + " between " + operand
		},
	})

	d.State.Set("$null", nullState)
	return nil
}

// List builds a comparison against a parenthesized list or a sub-query.
func List(sql string) dialect.ComparisonOperator {
	op := dialect.Binary(sql)
	op.Operand = dialect.OperandList
	return op
}

// fetchField renders a field reference. Inside a condition a mapping names
// the field and carries the comparisons applied to it.
func fetchField(c *dialect.Ctx, value any, end bool) (string, error) {
	if obj, ok := types.AsObject(value); ok && !end {
		value = obj.Pick("name", "table", "cast")
	}
	return Term(c, value, "field")
}

func fetchValue(c *dialect.Ctx, value any, _ bool) (string, error) {
	return c.Block("value", types.ObjectOf("value", value))
}

func fetchSubQuery(c *dialect.Ctx, value any, _ bool) (string, error) {
	if _, ok := types.AsObject(value); !ok {
		return "", render.NewInvalidTypeError("", "$select", "object")
	}
	return c.Template("subQuery", types.ObjectOf("queryBody", value))
}

func fetchBlock(name string) dialect.FetchingOperator {
	return func(c *dialect.Ctx, value any, _ bool) (string, error) {
		return c.Block(name, types.ObjectOf(name, value))
	}
}

// nullState remaps equality to is null tests. The value of the comparison
// is always null.
func nullState(flag bool, op string) (string, bool) {
	positive := map[string]string{"$eq": "$is", "$is": "$is", "$ne": "$isNot", "$isNot": "$isNot"}
	negative := map[string]string{"$eq": "$isNot", "$is": "$isNot", "$ne": "$is", "$isNot": "$is"}
	if flag {
		op, ok := positive[op]
		return op, ok
	}
	op, ok := negative[op]
	return op, ok
}
