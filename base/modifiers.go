package base

import (
	"github.com/zoobzio/jsonsql/internal/dialect"
)

func registerModifiers(d *dialect.Dialect) error {
	d.Modifiers.Set("$set", dialect.Assignment(func(_, value string) string { return value }))
	d.Modifiers.Set("$inc", arithmetic("+"))
	d.Modifiers.Set("$dec", arithmetic("-"))
	d.Modifiers.Set("$mul", arithmetic("*"))
	d.Modifiers.Set("$div", arithmetic("/"))
	d.Modifiers.Set("$default", dialect.Modifier{
		Render:  func(field, _ string) string { return field + " = default" },
		NoValue: true,
	})
	return nil
}

func arithmetic(op string) dialect.Modifier {
	return dialect.Assignment(func(field, value string) string {
		return field + " " + op + " " + value
	})
}
