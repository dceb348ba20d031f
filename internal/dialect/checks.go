package dialect

import (
	"regexp"

	"github.com/zoobzio/jsonsql/internal/render"
	"github.com/zoobzio/jsonsql/internal/types"
)

// All runs validators in order and returns the first error.
func All(validators ...Validator) Validator {
	return func(c *Ctx, clause string, p *types.Object) error {
		for _, v := range validators {
			if err := v(c, clause, p); err != nil {
				return err
			}
		}
		return nil
	}
}

// Required fails when any of props is absent.
func Required(props ...string) Validator {
	return func(_ *Ctx, clause string, p *types.Object) error {
		for _, prop := range props {
			if !p.Has(prop) {
				return render.NewMissingPropertyError(clause, prop)
			}
		}
		return nil
	}
}

// OneOf fails unless exactly one of props is present.
func OneOf(props ...string) Validator {
	atMostOne := AtMostOne(props...)
	return func(c *Ctx, clause string, p *types.Object) error {
		if !p.HasAny(props...) {
			return render.NewMissingAnyPropertyError(clause, props...)
		}
		return atMostOne(c, clause, p)
	}
}

// AtMostOne fails when two of props are present, naming the first pair.
func AtMostOne(props ...string) Validator {
	return func(_ *Ctx, clause string, p *types.Object) error {
		for i, a := range props {
			if !p.Has(a) {
				continue
			}
			for _, b := range props[i+1:] {
				if p.Has(b) {
					return render.NewConflictingPropertiesError(clause, a, b)
				}
			}
		}
		return nil
	}
}

// TypeOf fails when prop is present with a type other than kinds. Kinds are
// the names returned by types.TypeName: string, number, boolean, object,
// array.
func TypeOf(prop string, kinds ...string) Validator {
	return func(_ *Ctx, clause string, p *types.Object) error {
		v, ok := p.Get(prop)
		if !ok {
			return nil
		}
		name := types.TypeName(v)
		for _, k := range kinds {
			if k == name {
				return nil
			}
		}
		return render.NewInvalidTypeError(clause, prop, kinds...)
	}
}

// Matches fails when the string value of prop does not match re.
func Matches(prop string, re *regexp.Regexp) Validator {
	return func(_ *Ctx, clause string, p *types.Object) error {
		v, ok := p.Get(prop)
		if !ok {
			return nil
		}
		s, _ := v.(string)
		if !re.MatchString(s) {
			return render.NewInvalidValueError(clause, prop, v)
		}
		return nil
	}
}

// MinItems fails when prop holds a list with fewer than n items. Values of
// other types are left to TypeOf.
func MinItems(prop string, n int) Validator {
	return func(_ *Ctx, clause string, p *types.Object) error {
		list, ok := types.AsList(p.Value(prop))
		if !ok {
			return nil
		}
		if len(list) < n {
			return render.NewMinLengthError(clause, prop, n)
		}
		return nil
	}
}

// Requires fails with an unsupported feature error when prop is present
// and the dialect lacks the capability.
func Requires(prop, feature string, supported func(render.Capabilities) bool, hint ...string) Validator {
	return func(c *Ctx, _ string, p *types.Object) error {
		if p.Has(prop) && !supported(c.d.Capabilities) {
			return c.Unsupported(feature, hint...)
		}
		return nil
	}
}
