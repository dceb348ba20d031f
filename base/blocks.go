package base

import (
	"regexp"
	"strings"

	"github.com/zoobzio/jsonsql/internal/dialect"
	"github.com/zoobzio/jsonsql/internal/render"
	"github.com/zoobzio/jsonsql/internal/types"
)

var (
	expressionUnsafe = regexp.MustCompile(`[^a-zA-Z0-9*(_){.}, -]`)
	expressionToken  = regexp.MustCompile(`\{([a-z0-9*]+)\}`)
	expressionWord   = regexp.MustCompile(`[a-z0-9*]`)
)

func registerBlocks(d *dialect.Dialect) error {
	blocks := []struct {
		name string
		fn   dialect.Block
	}{
		{"distinct", distinctBlock},
		{"fields", fieldsBlock},
		{"term", termBlock},
		{"table", tableBlock},
		{"func", funcBlock},
		{"expression", expressionBlock},
		{"field", fieldBlock},
		{"value", valueBlock},
		{"name", nameBlock},
		{"alias", aliasBlock},
		{"condition", conditionBlock},
		{"modifier", modifierBlock},
		{"join", joinBlock},
		{"joinItem:type", joinTypeBlock},
		{"joinItem:on", joinOnBlock},
		{"group", groupBlock},
		{"having", havingBlock},
		{"sort", sortBlock},
		{"limit", limitBlock},
		{"offset", offsetBlock},
		{"or", orBlock},
		{"insert:values", insertValuesBlock},
		{"insertValues:values", insertRowsBlock},
		{"queryBody", queryBodyBlock},
		{"query", subQueryBlock("query")},
		{"select", subQueryBlock("select")},
		{"queries", queriesBlock},
		{"with", withBlock("with", "with")},
		{"withRecursive", withBlock("withRecursive", "with recursive")},
		{"withItem:fields", withFieldsBlock},
		{"returning", returningBlock},
	}
	for _, b := range blocks {
		d.Blocks.Set(b.name, b.fn)
	}
	return nil
}

// Term renders v through the term block. typ is the term kind assumed for
// strings: "field" or "value".
func Term(c *dialect.Ctx, v any, typ string) (string, error) {
	return c.Block("term", types.ObjectOf("term", v, "type", typ))
}

func distinctBlock(_ *dialect.Ctx, p *types.Object) (string, error) {
	if on, ok := p.Value("distinct").(bool); ok && !on {
		return "", nil
	}
	return "distinct", nil
}

func fieldsBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	var parts []string
	add := func(out string, err error) error {
		if err != nil {
			return err
		}
		if out != "" {
			parts = append(parts, out)
		}
		return nil
	}

	switch fields := p.Value("fields").(type) {
	case nil:
	case []any:
		// ["a", {b: "c"}, {name: "d", table: "t", alias: "r"}]
		for _, f := range fields {
			obj, isObj := types.AsObject(f)
			var err error
			if !isObj || obj.IsTerm() || obj.Has("name") {
				err = add(Term(c, f, "field"))
			} else {
				err = add(c.Block("fields", types.ObjectOf("fields", f)))
			}
			if err != nil {
				return "", err
			}
		}
	case *types.Object:
		// {a: "alias", b: {table: "t", alias: "c"}}
		err := fields.Each(func(name string, f any) error {
			var field *types.Object
			switch v := f.(type) {
			case string:
				field = types.ObjectOf("alias", v)
			case *types.Object:
				field = v
			default:
				field = types.NewObject(1)
			}
			if !field.Has("name") {
				field = field.Prepend("name", name)
			}
			return add(Term(c, field, "field"))
		})
		if err != nil {
			return "", err
		}
	default:
		return "", render.NewInvalidTypeError("", "fields", "array", "object")
	}

	if len(parts) == 0 {
		return "*", nil
	}
	return strings.Join(parts, ", "), nil
}

func termBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	term := p.Value("term")
	typ, _ := p.String("type")
	if typ == "" {
		typ = "field"
	}

	obj, isObj := types.AsObject(term)
	_, isList := types.AsList(term)
	_, isString := term.(string)
	if (!isObj && !isList && !isString) || isList {
		typ = "value"
	}
	if !isObj || !obj.IsTerm() {
		wrapped := obj.Pick("cast", "alias")
		wrapped.Set(typ, term)
		obj = wrapped
	}

	kind := obj.Term()
	out, err := c.Block(kind, obj.Pick(kind))
	if err != nil {
		return "", err
	}

	if v, ok := obj.Get("cast"); ok {
		cast, ok := v.(string)
		if !ok {
			return "", render.NewInvalidTypeError("", "cast", "string")
		}
		if c.Options().DeburrIdentifiers {
			cast = c.Deburr(cast)
		}
		out = "cast(" + out + " as " + cast + ")"
	}
	if v, ok := obj.Get("alias"); ok {
		alias, err := c.Block("alias", types.ObjectOf("alias", v))
		if err != nil {
			return "", err
		}
		out += " " + alias
	}
	return out, nil
}

func tableBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	name, ok := p.String("table")
	if !ok {
		return "", render.NewInvalidTypeError("", "table", "string")
	}
	if schema := c.Options().Schema; schema != nil {
		if err := schema.CheckTable(name); err != nil {
			return "", err
		}
	}
	return c.Block("name", types.ObjectOf("name", TableName(c, name)))
}

// TableName applies the configured table prefix to name.
func TableName(c *dialect.Ctx, name string) string {
	if prefix := c.Options().TablePrefix; prefix != "" {
		return prefix + "_" + name
	}
	return name
}

func funcBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	fn, ok := types.AsObject(p.Value("func"))
	if s, isString := p.String("func"); isString {
		fn, ok = types.ObjectOf("name", s), true
	}
	if !ok {
		return "", render.NewInvalidTypeError("", "func", "string", "object")
	}
	name, ok := fn.String("name")
	if !ok {
		return "", render.NewMissingPropertyError("", "func.name")
	}

	var args []string
	if list, ok := types.AsList(fn.Value("args")); ok {
		for _, arg := range list {
			out, err := Term(c, arg, "value")
			if err != nil {
				return "", err
			}
			args = append(args, out)
		}
	}

	if c.Options().DeburrIdentifiers {
		name = c.Deburr(name)
	}
	return name + "(" + strings.Join(args, ", ") + ")", nil
}

func expressionBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	expr, ok := types.AsObject(p.Value("expression"))
	if s, isString := p.String("expression"); isString {
		expr, ok = types.ObjectOf("pattern", s), true
	}
	if !ok {
		return "", render.NewInvalidTypeError("", "expression", "string", "object")
	}
	pattern, ok := expr.String("pattern")
	if !ok {
		return "", render.NewMissingPropertyError("", "expression.pattern")
	}
	values, _ := types.AsObject(expr.Value("values"))

	pattern = strings.ToLower(expressionUnsafe.ReplaceAllString(pattern, ""))
	if !expressionWord.MatchString(pattern) {
		return "", render.NewInvalidValueError("", "expression.pattern", pattern)
	}

	var err error
	out := expressionToken.ReplaceAllStringFunc(pattern, func(token string) string {
		if err != nil {
			return ""
		}
		name := token[1 : len(token)-1]
		v, ok := values.Get(name)
		if !ok {
			err = render.NewRequiredFieldError("expression.values", name)
			return ""
		}
		var s string
		s, err = Term(c, v, "value")
		return s
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func fieldBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	field, ok := types.AsObject(p.Value("field"))
	if s, isString := p.String("field"); isString {
		field, ok = types.ObjectOf("name", s), true
	}
	if !ok {
		return "", render.NewInvalidTypeError("", "field", "string", "object")
	}
	if !field.Has("name") {
		return "", render.NewMissingPropertyError("", "field.name")
	}

	out, err := c.Block("name", field.Pick("name"))
	if err != nil {
		return "", err
	}
	if table, ok := field.Get("table"); ok {
		if schema := c.Options().Schema; schema != nil {
			name, _ := field.String("name")
			if t, ok := table.(string); ok {
				if err := schema.CheckColumn(t, name); err != nil {
					return "", err
				}
			}
		}
		prefix, err := c.Block("table", types.ObjectOf("table", table))
		if err != nil {
			return "", err
		}
		out = prefix + "." + out
	}
	return out, nil
}

func valueBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	return c.Extract(p.Value("value"))
}

func nameBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	return c.IdentifierOf(p.Value("name"), "name")
}

func aliasBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	alias, ok := types.AsObject(p.Value("alias"))
	if s, isString := p.String("alias"); isString {
		alias, ok = types.ObjectOf("name", s), true
	}
	if !ok {
		return "", render.NewInvalidTypeError("", "alias", "string", "object")
	}
	if !alias.Has("name") {
		return "", render.NewMissingPropertyError("", "alias.name")
	}
	name, err := c.IdentifierOf(alias.Value("name"), "alias.name")
	if err != nil {
		return "", err
	}

	out := "as " + name
	if columns, ok := types.AsList(alias.Value("columns")); ok {
		wrapped := make([]string, len(columns))
		for i, col := range columns {
			if wrapped[i], err = c.IdentifierOf(col, "alias.columns"); err != nil {
				return "", err
			}
		}
		out += "(" + strings.Join(wrapped, ", ") + ")"
	}
	return out, nil
}

func prefixed(keyword string, out string, err error) (string, error) {
	if err != nil || out == "" {
		return "", err
	}
	return keyword + " " + out, nil
}

func conditionBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	out, err := c.Condition(p.Value("condition"), "$value")
	return prefixed("where", out, err)
}

func modifierBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	out, err := c.Modifier(p.Value("modifier"))
	return prefixed("set", out, err)
}

func joinBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	var items []string
	add := func(item *types.Object) error {
		out, err := c.Template("joinItem", item)
		if err != nil {
			return err
		}
		items = append(items, out)
		return nil
	}

	switch join := p.Value("join").(type) {
	case []any:
		for _, v := range join {
			item, _ := types.AsObject(v)
			if err := add(item); err != nil {
				return "", err
			}
		}
	case *types.Object:
		// {payments: {on: {...}}} joins the table named by the key
		err := join.Each(func(table string, v any) error {
			item, _ := types.AsObject(v)
			if !item.HasAny(Sources...) {
				item = item.Prepend("table", table)
			}
			return add(item)
		})
		if err != nil {
			return "", err
		}
	}
	return strings.Join(items, " "), nil
}

func joinTypeBlock(_ *dialect.Ctx, p *types.Object) (string, error) {
	typ, _ := p.String("type")
	return strings.ToLower(strings.Join(strings.Fields(typ), " ")), nil
}

func joinOnBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	out, err := c.Condition(p.Value("on"), "$field")
	return prefixed("on", out, err)
}

func identifierList(c *dialect.Ctx, v any, prop string) ([]string, error) {
	if s, ok := v.(string); ok {
		v = []any{s}
	}
	list, _ := types.AsList(v)
	out := make([]string, 0, len(list))
	for _, item := range list {
		name, err := c.IdentifierOf(item, prop)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}

func groupBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	names, err := identifierList(c, p.Value("group"), "group")
	return prefixed("group by", strings.Join(names, ", "), err)
}

func havingBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	out, err := c.Condition(p.Value("having"), "$value")
	return prefixed("having", out, err)
}

func sortBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	sort, ok := types.AsObject(p.Value("sort"))
	if !ok {
		names, err := identifierList(c, p.Value("sort"), "sort")
		return prefixed("order by", strings.Join(names, ", "), err)
	}

	// {age: 1, name: -1}
	var parts []string
	err := sort.Each(func(field string, dir any) error {
		direction, err := sortDirection(field, dir)
		if err != nil {
			return err
		}
		parts = append(parts, c.Identifier(field)+" "+direction)
		return nil
	})
	return prefixed("order by", strings.Join(parts, ", "), err)
}

func sortDirection(field string, dir any) (string, error) {
	switch v := dir.(type) {
	case int64:
		if v > 0 {
			return "asc", nil
		}
		return "desc", nil
	case uint64:
		if v > 0 {
			return "asc", nil
		}
		return "desc", nil
	case float64:
		if v > 0 {
			return "asc", nil
		}
		return "desc", nil
	case string:
		if s := strings.ToLower(v); s == "asc" || s == "desc" {
			return s, nil
		}
	}
	return "", render.NewInvalidValueError("", "sort."+field, dir)
}

func limitBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	out, err := c.Extract(p.Value("limit"))
	return prefixed("limit", out, err)
}

func offsetBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	out, err := c.Extract(p.Value("offset"))
	return prefixed("offset", out, err)
}

func orBlock(_ *dialect.Ctx, p *types.Object) (string, error) {
	or, _ := p.String("or")
	return "or " + strings.ToLower(or), nil
}

func insertValuesBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	var rows []*types.Object
	switch v := p.Value("values").(type) {
	case *types.Object:
		rows = []*types.Object{v}
	case []any:
		for _, item := range v {
			row, ok := types.AsObject(item)
			if !ok {
				return "", render.NewInvalidTypeError("insert", "values", "object")
			}
			rows = append(rows, row)
		}
	}

	var fields []string
	if list, ok := types.AsList(p.Value("fields")); ok {
		for _, f := range list {
			name, ok := f.(string)
			if !ok {
				return "", render.NewInvalidTypeError("insert", "fields", "string")
			}
			fields = append(fields, name)
		}
	} else {
		seen := make(map[string]bool)
		for _, row := range rows {
			for _, k := range row.Keys() {
				if !seen[k] {
					seen[k] = true
					fields = append(fields, k)
				}
			}
		}
	}

	rendered := make([][]string, len(rows))
	for i, row := range rows {
		rendered[i] = make([]string, len(fields))
		for j, f := range fields {
			out, err := c.Block("value", types.ObjectOf("value", row.Value(f)))
			if err != nil {
				return "", err
			}
			rendered[i][j] = out
		}
	}

	names := make([]any, len(fields))
	for i, f := range fields {
		names[i] = f
	}
	params := types.ObjectOf("fields", names, "values", rendered)
	if returning, ok := p.Get("returning"); ok {
		params.Set("returning", returning)
	}
	return c.Template("insertValues", params)
}

func insertRowsBlock(_ *dialect.Ctx, p *types.Object) (string, error) {
	rows, _ := p.Value("values").([][]string)
	parts := make([]string, len(rows))
	for i, row := range rows {
		parts[i] = "(" + strings.Join(row, ", ") + ")"
	}
	return strings.Join(parts, ", "), nil
}

func queryBodyBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	body, _ := types.AsObject(p.Value("queryBody"))
	typ := "select"
	if v, ok := body.Get("type"); ok {
		s, ok := v.(string)
		if !ok {
			return "", render.NewInvalidTypeError("", "type", "string")
		}
		typ = s
	}
	if t, ok := c.Dialect().Templates.Get(typ); !ok || !t.Statement {
		return "", render.UnknownTemplateError{Name: typ}
	}
	if body == nil {
		body = types.NewObject(0)
	}
	return c.Template(typ, body)
}

func subQueryBlock(prop string) dialect.Block {
	return func(c *dialect.Ctx, p *types.Object) (string, error) {
		return c.Template("subQuery", types.ObjectOf("queryBody", p.Value(prop)))
	}
}

func queriesBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	queries, _ := types.AsList(p.Value("queries"))
	typ, _ := p.String("type")
	sep := " " + typ + " "
	if all, _ := p.Value("all").(bool); all {
		sep = " " + typ + " all "
	}

	parts := make([]string, len(queries))
	for i, q := range queries {
		out, err := c.Template("query", types.ObjectOf("queryBody", q))
		if err != nil {
			return "", err
		}
		parts[i] = out
	}
	return strings.Join(parts, sep), nil
}

// WithList renders the items of a with clause, given as a list of items or
// a mapping from name to item.
func WithList(c *dialect.Ctx, v any) (string, error) {
	var items []string
	add := func(item *types.Object) error {
		out, err := c.Template("withItem", item)
		if err != nil {
			return err
		}
		items = append(items, out)
		return nil
	}

	switch list := v.(type) {
	case []any:
		for _, v := range list {
			item, _ := types.AsObject(v)
			if err := add(item); err != nil {
				return "", err
			}
		}
	case *types.Object:
		err := list.Each(func(name string, v any) error {
			item, _ := types.AsObject(v)
			if s, _ := item.String("name"); s == "" {
				item = item.Prepend("name", name)
			}
			return add(item)
		})
		if err != nil {
			return "", err
		}
	}
	return strings.Join(items, ", "), nil
}

func withBlock(prop, keyword string) dialect.Block {
	return func(c *dialect.Ctx, p *types.Object) (string, error) {
		out, err := WithList(c, p.Value(prop))
		return prefixed(keyword, out, err)
	}
}

func withFieldsBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	names, err := identifierList(c, p.Value("fields"), "fields")
	if err != nil || len(names) == 0 {
		return "", err
	}
	return "(" + strings.Join(names, ", ") + ")", nil
}

func returningBlock(c *dialect.Ctx, p *types.Object) (string, error) {
	out, err := c.Block("fields", types.ObjectOf("fields", p.Value("returning")))
	return prefixed("returning", out, err)
}
