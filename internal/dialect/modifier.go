package dialect

import (
	"strings"

	"github.com/zoobzio/jsonsql/internal/render"
	"github.com/zoobzio/jsonsql/internal/types"
)

// Modifier compiles an update modifier spec into a comma separated list of
// assignments. Keys without a $ prefix are assigned with $set.
func (c *Ctx) Modifier(value any) (string, error) {
	if types.IsEmpty(value) {
		return "", nil
	}
	spec, ok := types.AsObject(value)
	if !ok {
		return "", render.NewInvalidTypeError("", "modifier", "object")
	}

	var parts []string
	err := spec.Each(func(key string, item any) error {
		name, fields := "$set", types.ObjectOf(key, item)
		if strings.HasPrefix(key, "$") {
			name = key
		}
		mod, ok := c.d.Modifiers.Get(name)
		if !ok {
			return render.UnknownOperatorError{Operator: name, Kind: "modifier"}
		}
		if name == key {
			if fields, ok = types.AsObject(item); !ok {
				return render.NewInvalidTypeError("", key, "object")
			}
		}

		return fields.Each(func(field string, v any) error {
			val := ""
			if !mod.NoValue {
				var err error
				val, err = c.Block("term", types.ObjectOf("term", v, "type", "value"))
				if err != nil {
					return err
				}
			}
			parts = append(parts, mod.Render(c.Identifier(field), val))
			return nil
		})
	})
	if err != nil {
		return "", err
	}
	return strings.Join(parts, ", "), nil
}
