// Package mssql provides the SQL Server dialect for jsonsql.
package mssql

import (
	"strings"

	"github.com/zoobzio/jsonsql/base"
	"github.com/zoobzio/jsonsql/internal/dialect"
	"github.com/zoobzio/jsonsql/internal/render"
	"github.com/zoobzio/jsonsql/internal/types"
)

// Name is the name of the SQL Server dialect.
const Name = "mssql"

// Select moves limit in front of the field list where T-SQL expects top.
const Select = "{with} {withRecursive} select {distinct} {limit} {fields} " +
	"from {table} {query} {select} {expression} {alias} " +
	"{join} {condition} {group} {having} {sort} {offset}"

var combinations = []string{"union", "intersect", "except"}

// Register adds the SQL Server grammar on top of the base dialect.
func Register(d *dialect.Dialect) error {
	d.Config = dialect.Config{IdentifierPrefix: "[", IdentifierSuffix: "]"}
	d.Capabilities = render.Capabilities{
		Returning:     true,
		RecursiveWith: true,
	}

	patterns := map[string]func(string) string{
		"select": func(string) string { return Select },
		"insert": func(p string) string { return strings.Replace(p, " {returning}", "", 1) },
		"insertValues": func(string) string { return "({fields}) {returning} values {values}" },
		"update": func(p string) string {
			return strings.Replace(p, "{condition} {returning}", "{returning} {condition}", 1)
		},
		"delete": func(p string) string {
			return strings.Replace(p, "{condition} {returning}", "{returning} {condition}", 1)
		},
	}
	patterns["remove"] = patterns["delete"]
	for name, pattern := range patterns {
		err := d.WrapTemplate(name, func(t dialect.Template) dialect.Template {
			t.Pattern = pattern(t.Pattern)
			return t
		})
		if err != nil {
			return err
		}
	}

	d.Blocks.Set("select:limit", topBlock)
	d.Blocks.Set("select:offset", offsetBlock)
	for _, name := range combinations {
		d.Blocks.Set(name+":limit", fetchBlock)
		d.Blocks.Set(name+":offset", offsetBlock)
	}

	d.Blocks.Set("insertValues:returning", outputBlock("inserted"))
	d.Blocks.Set("update:returning", outputBlock("inserted"))
	d.Blocks.Set("delete:returning", outputBlock("deleted"))
	d.Blocks.Set("remove:returning", outputBlock("deleted"))

	d.Blocks.Set("or", func(c *dialect.Ctx, _ *types.Object) (string, error) {
		return "", c.Unsupported("INSERT OR / UPDATE OR", "use MERGE for conflict handling")
	})
	d.Blocks.Set("withRecursive", func(c *dialect.Ctx, p *types.Object) (string, error) {
		out, err := base.WithList(c, p.Value("withRecursive"))
		if err != nil || out == "" {
			return "", err
		}
		return "with " + out, nil
	})

	return d.WrapBlock("value", bitValues)
}

// New creates the SQL Server dialect.
func New() *dialect.Dialect {
	return dialect.MustNew(Name, base.Register, Register)
}

// bitValues renders booleans as 1 and 0.
func bitValues(prev dialect.Block) dialect.Block {
	return func(c *dialect.Ctx, p *types.Object) (string, error) {
		if b, ok := p.Value("value").(bool); ok {
			if b {
				return "1", nil
			}
			return "0", nil
		}
		return prev(c, p)
	}
}

// topBlock renders limit as top(n). With an offset the limit moves to the
// fetch clause.
func topBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	if p.Has("offset") {
		return "", nil
	}
	n, err := c.Extract(p.Value("limit"))
	if err != nil {
		return "", err
	}
	return "top(" + n + ")", nil
}

// fetchBlock renders a limit without offset as offset 0 rows fetch next n
// rows only.
func fetchBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	if p.Has("offset") {
		return "", nil
	}
	return paginate(c, p, int64(0))
}

func offsetBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	return paginate(c, p, p.Value("offset"))
}

func paginate(c *dialect.Ctx, p *types.Object, offset any) (string, error) {
	n, err := c.Extract(offset)
	if err != nil {
		return "", err
	}
	out := "offset " + n + " rows"
	if limit, ok := p.Get("limit"); ok {
		m, err := c.Extract(limit)
		if err != nil {
			return "", err
		}
		out += " fetch next " + m + " rows only"
	}
	if types.IsEmpty(p.Value("sort")) {
		out = "order by (select null) " + out
	}
	return out, nil
}

// outputBlock renders returning as an output clause over the inserted or
// deleted pseudo table.
func outputBlock(table string) dialect.Block {
	return func(c *dialect.Ctx, p *types.Object) (string, error) {
		fields := p.Value("returning")
		if s, ok := fields.(string); ok {
			fields = []any{s}
		}
		list, ok := types.AsList(fields)
		if !ok {
			return "", render.NewInvalidTypeError("", "returning", "array")
		}
		if len(list) == 0 {
			list = []any{"*"}
		}

		parts := make([]string, len(list))
		for i, f := range list {
			out, err := base.Term(c, f, "field")
			if err != nil {
				return "", err
			}
			parts[i] = table + "." + out
		}
		return "output " + strings.Join(parts, ", "), nil
	}
}
