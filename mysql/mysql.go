// Package mysql provides the MySQL and MariaDB dialect for jsonsql.
package mysql

import (
	"github.com/zoobzio/jsonsql/base"
	"github.com/zoobzio/jsonsql/internal/dialect"
	"github.com/zoobzio/jsonsql/internal/render"
	"github.com/zoobzio/jsonsql/internal/types"
)

// Name is the name of the MySQL dialect.
const Name = "mysql"

// maxRows is the documented way to express an unbounded limit in MySQL.
const maxRows = "18446744073709551615"

// Register adds the MySQL grammar on top of the base dialect.
func Register(d *dialect.Dialect) error {
	d.Config = dialect.Config{IdentifierPrefix: "`", IdentifierSuffix: "`"}
	d.Capabilities = render.Capabilities{
		RecursiveWith: true,
	}

	d.Blocks.Set("or", func(c *dialect.Ctx, _ *types.Object) (string, error) {
		return "", c.Unsupported("INSERT OR / UPDATE OR", "use INSERT IGNORE or ON DUPLICATE KEY UPDATE")
	})
	return d.WrapBlock("offset", unboundedLimit)
}

// New creates the MySQL dialect.
func New() *dialect.Dialect {
	return dialect.MustNew(Name, base.Register, Register)
}

func unboundedLimit(prev dialect.Block) dialect.Block {
	return func(c *dialect.Ctx, p *types.Object) (string, error) {
		out, err := prev(c, p)
		if err != nil || out == "" || p.Has("limit") {
			return out, err
		}
		return "limit " + maxRows + " " + out, nil
	}
}
