package base

import (
	"regexp"

	"github.com/zoobzio/jsonsql/internal/dialect"
	"github.com/zoobzio/jsonsql/internal/render"
	"github.com/zoobzio/jsonsql/internal/types"
)

// Sources are the mutually exclusive properties naming what a clause reads
// from.
var Sources = []string{"table", "query", "select", "expression"}

var (
	joinType = regexp.MustCompile(`(?i)^(natural\s+)?(inner|cross|(left|right|full)(\s+outer)?)?$`)
	insertOr = regexp.MustCompile(`(?i)^(rollback|abort|replace|fail|ignore)$`)
)

// Select is the pattern of the base select statement.
const Select = "{with} {withRecursive} select {distinct} {distinctOn} {fields} " +
	"from {table} {query} {select} {expression} {alias} " +
	"{join} {condition} {group} {having} {sort} {limit} {offset}"

// WithChecks validates the with and withRecursive properties of a
// statement.
var WithChecks = dialect.All(
	dialect.AtMostOne("with", "withRecursive"),
	dialect.TypeOf("with", "array", "object"),
	dialect.TypeOf("withRecursive", "array", "object"),
	dialect.Requires("withRecursive", "WITH RECURSIVE", func(c render.Capabilities) bool { return c.RecursiveWith }),
)

// SourceChecks validates the source properties of a clause.
var SourceChecks = dialect.All(
	dialect.OneOf(Sources...),
	dialect.TypeOf("table", "string"),
	dialect.TypeOf("query", "object"),
	dialect.TypeOf("select", "object"),
	dialect.TypeOf("expression", "string", "object"),
	dialect.TypeOf("alias", "string", "object"),
)

var returningCheck = dialect.All(
	dialect.TypeOf("returning", "array", "object"),
	dialect.Requires("returning", "RETURNING", func(c render.Capabilities) bool { return c.Returning }),
)

var queryBodyChecks = dialect.All(
	dialect.Required("queryBody"),
	dialect.TypeOf("queryBody", "object"),
)

var combinationChecks = dialect.All(
	dialect.Required("queries"),
	dialect.TypeOf("queries", "array"),
	dialect.MinItems("queries", 2),
	dialect.TypeOf("all", "boolean"),
	WithChecks,
)

func registerTemplates(d *dialect.Dialect) error {
	deleteTemplate := dialect.Template{
		Pattern: "{with} {withRecursive} delete from {table} {alias} {condition} {returning}",
		Validate: dialect.All(
			dialect.Required("table"),
			dialect.TypeOf("table", "string"),
			WithChecks,
			returningCheck,
		),
		Statement: true,
	}

	templates := []struct {
		name string
		t    dialect.Template
	}{
		{"query", dialect.Template{Pattern: "{queryBody}", Validate: queryBodyChecks}},
		{"subQuery", dialect.Template{Pattern: "({queryBody})", Validate: queryBodyChecks}},
		{"union", combination("union")},
		{"intersect", combination("intersect")},
		{"except", combination("except")},
		{"insertValues", dialect.Template{
			Pattern:  "({fields}) values {values}",
			Validate: dialect.Required("fields", "values"),
		}},
		{"joinItem", dialect.Template{
			Pattern: "{type} join {table} {query} {select} {expression} {alias} {on}",
			Clause:  "join",
			Validate: dialect.All(
				SourceChecks,
				dialect.TypeOf("type", "string"),
				dialect.Matches("type", joinType),
			),
		}},
		{"withItem", dialect.Template{
			Pattern: "{name} {fields} as {query} {select} {expression}",
			Clause:  "with",
			Validate: dialect.All(
				dialect.Required("name"),
				dialect.TypeOf("name", "string"),
				dialect.OneOf("query", "select", "expression"),
				dialect.TypeOf("fields", "array"),
			),
		}},
		{"select", dialect.Template{
			Pattern:  Select,
			Defaults: types.ObjectOf("fields", types.NewObject(0)),
			Validate: dialect.All(
				SourceChecks,
				WithChecks,
				dialect.TypeOf("fields", "array", "object", "null"),
				dialect.TypeOf("distinct", "boolean"),
				dialect.TypeOf("join", "array", "object"),
				dialect.TypeOf("group", "string", "array"),
				dialect.TypeOf("sort", "string", "array", "object"),
				dialect.Requires("distinctOn", "DISTINCT ON", func(c render.Capabilities) bool { return c.DistinctOn }),
			),
			Statement: true,
		}},
		{"insert", dialect.Template{
			Pattern: "{with} {withRecursive} insert {or} into {table} {values} {returning}",
			Validate: dialect.All(
				dialect.Required("table", "values"),
				dialect.TypeOf("table", "string"),
				dialect.TypeOf("values", "object", "array"),
				dialect.MinItems("values", 1),
				dialect.TypeOf("fields", "array"),
				dialect.TypeOf("or", "string"),
				dialect.Matches("or", insertOr),
				WithChecks,
				returningCheck,
			),
			Statement: true,
		}},
		{"update", dialect.Template{
			Pattern: "{with} {withRecursive} update {or} {table} {alias} {modifier} {condition} {returning}",
			Validate: dialect.All(
				dialect.Required("table", "modifier"),
				dialect.TypeOf("table", "string"),
				dialect.TypeOf("modifier", "object"),
				dialect.TypeOf("or", "string"),
				dialect.Matches("or", insertOr),
				WithChecks,
				returningCheck,
			),
			Statement: true,
		}},
		{"delete", deleteTemplate},
		{"remove", deleteTemplate},
	}

	for _, t := range templates {
		if err := d.AddTemplate(t.name, t.t); err != nil {
			return err
		}
	}
	return nil
}

func combination(typ string) dialect.Template {
	return dialect.Template{
		Pattern:   "{with} {withRecursive} {queries} {sort} {limit} {offset}",
		Defaults:  types.ObjectOf("type", typ),
		Validate:  combinationChecks,
		Statement: true,
	}
}
