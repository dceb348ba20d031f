// Package sqlite provides the SQLite dialect for jsonsql.
package sqlite

import (
	"github.com/zoobzio/jsonsql/base"
	"github.com/zoobzio/jsonsql/internal/dialect"
	"github.com/zoobzio/jsonsql/internal/render"
	"github.com/zoobzio/jsonsql/internal/types"
)

// Name is the name of the SQLite dialect.
const Name = "sqlite"

// Register adds the SQLite grammar on top of the base dialect.
func Register(d *dialect.Dialect) error {
	d.Capabilities = render.Capabilities{
		Returning:     true,
		RecursiveWith: true,
	}
	return d.WrapBlock("offset", unboundedLimit)
}

// New creates the SQLite dialect.
func New() *dialect.Dialect {
	return dialect.MustNew(Name, base.Register, Register)
}

// unboundedLimit prefixes an offset without limit with limit -1, as SQLite
// accepts offset only after a limit.
func unboundedLimit(prev dialect.Block) dialect.Block {
	return func(c *dialect.Ctx, p *types.Object) (string, error) {
		out, err := prev(c, p)
		if err != nil || out == "" || p.Has("limit") {
			return out, err
		}
		return "limit -1 " + out, nil
	}
}
