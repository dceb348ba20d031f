// Package base provides the base dialect for jsonsql: the clause templates,
// blocks, operators and modifiers every other dialect builds on.
package base

import (
	"github.com/zoobzio/jsonsql/internal/dialect"
	"github.com/zoobzio/jsonsql/internal/render"
)

// Name is the name of the base dialect.
const Name = "base"

// Register adds the base grammar to d. Derived dialects run it before
// their own registrations.
func Register(d *dialect.Dialect) error {
	d.Capabilities = render.Capabilities{
		Returning:     true,
		RecursiveWith: true,
	}
	for _, register := range []dialect.Registrar{
		registerTemplates,
		registerBlocks,
		registerOperators,
		registerModifiers,
	} {
		if err := register(d); err != nil {
			return err
		}
	}
	return nil
}

// New creates the base dialect.
func New() *dialect.Dialect {
	return dialect.MustNew(Name, Register)
}
