package dialect

import (
	"errors"
	"regexp"
	"strings"

	"github.com/zoobzio/jsonsql/internal/types"
)

// blockToken matches {name} and the single separator character after it.
var blockToken = regexp.MustCompile(`(?s)\{([a-zA-Z0-9]+)\}(.|$)`)

// Validator checks the params of a template before it renders. clause is
// the name reported in validation errors.
type Validator func(c *Ctx, clause string, p *types.Object) error

// Template is a pattern of literal text and {block} tokens.
type Template struct {
	Pattern  string
	Clause   string // name used in errors, defaults to the template name
	Defaults *types.Object
	Validate Validator
	// Statement marks templates a query spec may select with its type.
	Statement bool

	segments []segment
}

type segment struct {
	text  string
	block string
	sep   string
}

func (t *Template) compile() error {
	if strings.TrimSpace(t.Pattern) == "" {
		return errors.New("empty pattern")
	}
	t.segments = nil
	last := 0
	for _, m := range blockToken.FindAllStringSubmatchIndex(t.Pattern, -1) {
		if m[0] > last {
			t.segments = append(t.segments, segment{text: t.Pattern[last:m[0]]})
		}
		t.segments = append(t.segments, segment{
			block: t.Pattern[m[2]:m[3]],
			sep:   t.Pattern[m[4]:m[5]],
		})
		last = m[1]
	}
	if last < len(t.Pattern) {
		t.segments = append(t.segments, segment{text: t.Pattern[last:]})
	}
	return nil
}

// Blocks returns the block names referenced by the pattern in order.
func (t *Template) Blocks() []string {
	var names []string
	for _, s := range t.segments {
		if s.block != "" {
			names = append(names, s.block)
		}
	}
	return names
}

func (t *Template) clause(name string) string {
	if t.Clause != "" {
		return t.Clause
	}
	return name
}

func (t *Template) render(c *Ctx, name string, p *types.Object) (string, error) {
	var b strings.Builder
	for _, s := range t.segments {
		if s.block == "" {
			b.WriteString(s.text)
			continue
		}
		if !p.Has(s.block) {
			continue
		}
		block := s.block
		if qualified := name + ":" + s.block; c.d.Blocks.Has(qualified) {
			block = qualified
		}
		out, err := c.Block(block, p)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
		if out != "" || strings.TrimSpace(s.sep) != "" {
			b.WriteString(s.sep)
		}
	}
	return strings.TrimSpace(b.String()), nil
}
