// Package dialect implements the template, block and operator engine that
// dialect packages register their SQL grammar into.
package dialect

import (
	"fmt"
	"regexp"

	"github.com/zoobzio/jsonsql/internal/registry"
	"github.com/zoobzio/jsonsql/internal/render"
	"github.com/zoobzio/jsonsql/internal/types"
)

// Config holds the identifier quote pair of a dialect.
type Config struct {
	IdentifierPrefix string
	IdentifierSuffix string
}

// Block renders one SQL fragment from the params of its template.
type Block func(c *Ctx, p *types.Object) (string, error)

// IdentifierFunc wraps an identifier in the dialect quote pair.
type IdentifierFunc func(c *Ctx, name string) string

// Registrar adds definitions to a dialect under construction.
type Registrar func(d *Dialect) error

// Dialect is a composed set of templates, blocks, operators and modifiers.
// It is immutable once New returns.
type Dialect struct {
	Name         string
	Config       Config
	Capabilities render.Capabilities

	Templates  *registry.Registry[*Template]
	Blocks     *registry.Registry[Block]
	Logical    *registry.Registry[LogicalOperator]
	Fetching   *registry.Registry[FetchingOperator]
	Comparison *registry.Registry[ComparisonOperator]
	State      *registry.Registry[StateOperator]
	Modifiers  *registry.Registry[Modifier]

	identifier IdentifierFunc
	partsRe    *regexp.Regexp
	wrappedRe  *regexp.Regexp
}

// New builds a dialect by running registrars in order. A derived dialect
// lists the base registrar first and its own overrides after it.
func New(name string, registrars ...Registrar) (*Dialect, error) {
	d := &Dialect{
		Name:       name,
		Config:     Config{IdentifierPrefix: `"`, IdentifierSuffix: `"`},
		Templates:  registry.New[*Template]("template"),
		Blocks:     registry.New[Block]("block"),
		Logical:    registry.New[LogicalOperator]("logical operator"),
		Fetching:   registry.New[FetchingOperator]("fetching operator"),
		Comparison: registry.New[ComparisonOperator]("comparison operator"),
		State:      registry.New[StateOperator]("state operator"),
		Modifiers:  registry.New[Modifier]("modifier"),
	}
	d.identifier = func(c *Ctx, name string) string { return d.wrapIdentifier(c, name) }

	for _, register := range registrars {
		if err := register(d); err != nil {
			return nil, fmt.Errorf("dialect %s: %w", name, err)
		}
	}

	prefix := regexp.QuoteMeta(d.Config.IdentifierPrefix)
	suffix := regexp.QuoteMeta(d.Config.IdentifierSuffix)
	var err error
	if d.partsRe, err = regexp.Compile(prefix + `[^` + suffix + `]*` + suffix + `|[^.]+`); err != nil {
		return nil, fmt.Errorf("dialect %s: identifier quotes: %w", name, err)
	}
	if d.wrappedRe, err = regexp.Compile(`^` + prefix + `.*` + suffix + `$`); err != nil {
		return nil, fmt.Errorf("dialect %s: identifier quotes: %w", name, err)
	}

	d.Templates.Freeze()
	d.Blocks.Freeze()
	d.Logical.Freeze()
	d.Fetching.Freeze()
	d.Comparison.Freeze()
	d.State.Freeze()
	d.Modifiers.Freeze()
	return d, nil
}

// MustNew is like New but panics on a registration error.
func MustNew(name string, registrars ...Registrar) *Dialect {
	d, err := New(name, registrars...)
	if err != nil {
		panic(err)
	}
	return d
}

// AddTemplate compiles t and registers it under name.
func (d *Dialect) AddTemplate(name string, t Template) error {
	if err := t.compile(); err != nil {
		return fmt.Errorf("template %s: %w", name, err)
	}
	d.Templates.Set(name, &t)
	return nil
}

// WrapTemplate replaces the template registered under name with a modified
// copy. The pattern is recompiled.
func (d *Dialect) WrapTemplate(name string, modify func(t Template) Template) error {
	prev, ok := d.Templates.Get(name)
	if !ok {
		return fmt.Errorf("cannot wrap template %q: not registered", name)
	}
	return d.AddTemplate(name, modify(*prev))
}

// WrapBlock replaces the block registered under name with decorate(prev).
func (d *Dialect) WrapBlock(name string, decorate func(prev Block) Block) error {
	return d.Blocks.Wrap(name, decorate)
}

// WrapIdentifiers decorates the identifier wrapping algorithm.
func (d *Dialect) WrapIdentifiers(decorate func(prev IdentifierFunc) IdentifierFunc) {
	d.identifier = decorate(d.identifier)
}

// Operators lists every registered operator name by category.
func (d *Dialect) Operators() map[types.Category][]string {
	return map[types.Category][]string{
		types.CategoryLogical:    d.Logical.Names(),
		types.CategoryFetching:   d.Fetching.Names(),
		types.CategoryComparison: d.Comparison.Names(),
		types.CategoryState:      d.State.Names(),
	}
}

func (d *Dialect) hasOperator(cat types.Category, name string) bool {
	switch cat {
	case types.CategoryLogical:
		return d.Logical.Has(name)
	case types.CategoryFetching:
		return d.Fetching.Has(name)
	case types.CategoryComparison:
		return d.Comparison.Has(name)
	case types.CategoryState:
		return d.State.Has(name)
	}
	return false
}
