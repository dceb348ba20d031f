package dialect

import (
	"fmt"

	"github.com/zoobzio/jsonsql/internal/render"
	"github.com/zoobzio/jsonsql/internal/types"
	"github.com/zoobzio/jsonsql/internal/values"
)

// DefaultMaxDepth bounds template nesting within one compilation.
const DefaultMaxDepth = 64

// SchemaChecker validates identifiers against a known schema.
type SchemaChecker interface {
	CheckTable(name string) error
	CheckColumn(table, column string) error
}

// Options are the per-compilation settings blocks consult.
type Options struct {
	WrappedIdentifiers   bool
	DeburrIdentifiers    bool
	LowercaseIdentifiers bool
	TablePrefix          string
	Schema               SchemaChecker
	MaxDepth             int
}

// Ctx carries one compilation through the dialect. It owns the placeholder
// store, so every nested sub-query of a compilation shares one parameter
// sequence.
type Ctx struct {
	d     *Dialect
	store *values.Store
	opts  Options
	depth int
}

// NewCtx creates the context of a single compilation.
func NewCtx(d *Dialect, store *values.Store, opts Options) *Ctx {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Ctx{d: d, store: store, opts: opts}
}

// Dialect returns the dialect being rendered.
func (c *Ctx) Dialect() *Dialect {
	return c.d
}

// Options returns the compilation options.
func (c *Ctx) Options() Options {
	return c.opts
}

// Template renders the named template with p.
func (c *Ctx) Template(name string, p *types.Object) (string, error) {
	t, ok := c.d.Templates.Get(name)
	if !ok {
		return "", render.UnknownTemplateError{Name: name}
	}
	if c.depth >= c.opts.MaxDepth {
		return "", fmt.Errorf("maximum template depth (%d) exceeded", c.opts.MaxDepth)
	}
	c.depth++
	defer func() { c.depth-- }()

	if t.Defaults != nil {
		p = p.Defaults(t.Defaults)
	}
	if t.Validate != nil {
		if err := t.Validate(c, t.clause(name), p); err != nil {
			return "", err
		}
	}
	return t.render(c, name, p)
}

// Block invokes the block registered under exactly name.
func (c *Ctx) Block(name string, p *types.Object) (string, error) {
	fn, ok := c.d.Blocks.Get(name)
	if !ok {
		return "", render.UnknownBlockError{Name: name}
	}
	return fn(c, p)
}

// Extract renders a literal through the placeholder store.
func (c *Ctx) Extract(v any) (string, error) {
	return c.store.Extract(v)
}

// Unsupported reports a feature the dialect cannot render.
func (c *Ctx) Unsupported(feature string, hint ...string) error {
	return render.NewUnsupportedFeatureError(c.d.Name, feature, hint...)
}
