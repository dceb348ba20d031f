package dialect

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/zoobzio/jsonsql/internal/render"
)

// Identifier wraps name in the dialect quote pair according to the
// compilation options.
func (c *Ctx) Identifier(name string) string {
	return c.d.identifier(c, name)
}

// IdentifierOf wraps v as an identifier. prop names the property in the
// error returned when v is not a string.
func (c *Ctx) IdentifierOf(v any, prop string) (string, error) {
	name, ok := v.(string)
	if !ok {
		return "", render.NewInvalidTypeError("", prop, "string")
	}
	return c.Identifier(name), nil
}

// wrapIdentifier splits name on dots outside quoted parts and quotes every
// part except * and parts that are already quoted.
func (d *Dialect) wrapIdentifier(c *Ctx, name string) string {
	if !c.opts.WrappedIdentifiers {
		return name
	}
	if c.opts.DeburrIdentifiers {
		name = c.Deburr(name)
	}
	if c.opts.LowercaseIdentifiers {
		name = strings.ToLower(name)
	}

	parts := d.partsRe.FindAllString(name, -1)
	for i, part := range parts {
		if part != "*" && !d.wrappedRe.MatchString(part) {
			parts[i] = d.Config.IdentifierPrefix + part + d.Config.IdentifierSuffix
		}
	}
	return strings.Join(parts, ".")
}

// Deburr strips diacritics from s, drops every character that cannot be
// part of an identifier and lower-cases the result.
func (c *Ctx) Deburr(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if plain, _, err := transform.String(t, s); err == nil {
		s = plain
	}
	quotes := c.d.Config.IdentifierPrefix + c.d.Config.IdentifierSuffix
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case strings.ContainsRune("*_.-", r), strings.ContainsRune(quotes, r):
			return r
		}
		return -1
	}, s)
	return strings.ToLower(s)
}
