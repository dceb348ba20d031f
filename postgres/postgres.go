// Package postgres provides the PostgreSQL dialect for jsonsql.
package postgres

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/zoobzio/jsonsql/base"
	"github.com/zoobzio/jsonsql/internal/dialect"
	"github.com/zoobzio/jsonsql/internal/render"
	"github.com/zoobzio/jsonsql/internal/types"
)

// Name is the name of the PostgreSQL dialect.
const Name = "postgresql"

// jsonSeparator splits a JSON path identifier such as data->'a'->>'b'.
var jsonSeparator = regexp.MustCompile(`->>?`)

// explainOptions are the keys accepted in explain options, in render order.
var explainOptions = []string{"analyze", "verbose", "costs", "buffers", "timing", "format"}

var optionValue = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Register adds the PostgreSQL grammar on top of the base dialect.
func Register(d *dialect.Dialect) error {
	d.Capabilities = render.Capabilities{
		Returning:     true,
		DistinctOn:    true,
		RecursiveWith: true,
		JSONPath:      true,
		ArrayLiterals: true,
		ILike:         true,
	}

	d.WrapIdentifiers(jsonPath)

	if err := d.WrapBlock("value", arrayAndJSONValues); err != nil {
		return err
	}
	d.Blocks.Set("distinctOn", distinctOnBlock)
	d.Blocks.Set("explain:options", explainOptionsBlock)
	d.Blocks.Set("explain:analyze", flagBlock("analyze"))
	d.Blocks.Set("explain:verbose", flagBlock("verbose"))
	d.Blocks.Set("explain:query", explainQuery("query"))
	d.Blocks.Set("explain:select", explainQuery("select"))

	if err := d.AddTemplate("explain", dialect.Template{
		Pattern: "explain {options} {analyze} {verbose} {query} {select} {expression}",
		Validate: dialect.All(
			dialect.OneOf("query", "select", "expression"),
			dialect.TypeOf("options", "object"),
			dialect.TypeOf("analyze", "boolean"),
			dialect.TypeOf("verbose", "boolean"),
			dialect.TypeOf("query", "object"),
			dialect.TypeOf("select", "object"),
		),
		Statement: true,
	}); err != nil {
		return err
	}

	d.Comparison.Set("$ilike", dialect.Binary("ilike"))
	d.Comparison.Set("$nilike", dialect.Binary("not ilike"))
	d.Comparison.Set("$jsonContains", dialect.Binary("@>"))
	d.Comparison.Set("$jsonIn", dialect.Binary("<@"))
	d.Comparison.Set("$jsonHas", dialect.Binary("?"))
	d.Comparison.Set("$jsonHasAny", dialect.Binary("?|"))
	d.Comparison.Set("$jsonHasAll", dialect.Binary("?&"))
	return nil
}

// New creates the PostgreSQL dialect.
func New() *dialect.Dialect {
	return dialect.MustNew(Name, base.Register, Register)
}

// jsonPath wraps the column part of a JSON path identifier and quotes every
// path key as a string literal.
func jsonPath(prev dialect.IdentifierFunc) dialect.IdentifierFunc {
	return func(c *dialect.Ctx, name string) string {
		parts := jsonSeparator.Split(name, -1)
		separators := jsonSeparator.FindAllString(name, -1)

		var b strings.Builder
		b.WriteString(prev(c, parts[0]))
		for i, sep := range separators {
			b.WriteString(sep)
			b.WriteString("'" + parts[i+1] + "'")
		}
		return b.String()
	}
}

// arrayAndJSONValues renders lists as array literals and objects as JSON
// encoded parameters.
func arrayAndJSONValues(prev dialect.Block) dialect.Block {
	return func(c *dialect.Ctx, p *types.Object) (string, error) {
		switch v := p.Value("value").(type) {
		case []any:
			items := make([]string, len(v))
			for i, item := range v {
				out, err := c.Extract(item)
				if err != nil {
					return "", err
				}
				items[i] = out
			}
			return "array[" + strings.Join(items, ", ") + "]", nil
		case *types.Object:
			data, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return c.Extract(string(data))
		}
		return prev(c, p)
	}
}

func distinctOnBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	fields := p.Value("distinctOn")
	if s, ok := fields.(string); ok {
		fields = []any{s}
	}
	list, ok := types.AsList(fields)
	if !ok {
		return "", render.NewInvalidTypeError("select", "distinctOn", "string", "array")
	}
	names := make([]string, len(list))
	for i, f := range list {
		name, err := c.IdentifierOf(f, "distinctOn")
		if err != nil {
			return "", err
		}
		names[i] = name
	}
	if len(names) == 0 {
		return "", nil
	}
	return "distinct on (" + strings.Join(names, ", ") + ")", nil
}

func explainOptionsBlock(_ *dialect.Ctx, p *types.Object) (string, error) {
	opts, _ := types.AsObject(p.Value("options"))
	var parts []string
	for _, key := range explainOptions {
		v, ok := opts.Get(key)
		if !ok {
			continue
		}
		s := fmt.Sprint(v)
		if !optionValue.MatchString(s) {
			return "", render.NewInvalidValueError("explain", "options."+key, v)
		}
		parts = append(parts, key+" "+s)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}

func flagBlock(name string) dialect.Block {
	return func(_ *dialect.Ctx, p *types.Object) (string, error) {
		if on, _ := p.Value(name).(bool); on {
			return name, nil
		}
		return "", nil
	}
}

func explainQuery(prop string) dialect.Block {
	return func(c *dialect.Ctx, p *types.Object) (string, error) {
		return c.Template("query", types.ObjectOf("queryBody", p.Value(prop)))
	}
}
