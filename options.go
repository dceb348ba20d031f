package jsonsql

import (
	"log/slog"

	"github.com/zoobzio/dbml"
	"github.com/zoobzio/jsonsql/internal/values"
)

// Options configures a Builder. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	// SeparatedValues extracts strings and dates into placeholders instead
	// of quoting them inline.
	SeparatedValues bool `yaml:"separatedValues" json:"separatedValues"`
	// NamedValues names placeholders p1, p2 and so on. Without it they are
	// positional.
	NamedValues bool `yaml:"namedValues" json:"namedValues"`
	// IndexedValues numbers placeholders. It cannot be disabled while
	// NamedValues is set.
	IndexedValues bool `yaml:"indexedValues" json:"indexedValues"`
	// ValuesPrefix is written before every placeholder name.
	ValuesPrefix string `yaml:"valuesPrefix" json:"valuesPrefix"`

	Dialect              string `yaml:"dialect" json:"dialect"`
	WrappedIdentifiers   bool   `yaml:"wrappedIdentifiers" json:"wrappedIdentifiers"`
	DeburrIdentifiers    bool   `yaml:"deburrIdentifiers" json:"deburrIdentifiers"`
	LowercaseIdentifiers bool   `yaml:"lowercaseIdentifiers" json:"lowercaseIdentifiers"`
	// TablePrefix is joined to every table name with an underscore.
	TablePrefix string `yaml:"tablePrefix" json:"tablePrefix"`
	// MaxDepth bounds template nesting. Zero means dialect.DefaultMaxDepth.
	MaxDepth int `yaml:"maxDepth" json:"maxDepth"`

	Schema *dbml.Project `yaml:"-" json:"-"`
	Logger *slog.Logger  `yaml:"-" json:"-"`
}

// DefaultOptions returns named, indexed placeholders with the $ prefix and
// wrapped identifiers in the base dialect.
func DefaultOptions() Options {
	return Options{
		SeparatedValues:    true,
		NamedValues:        true,
		IndexedValues:      true,
		ValuesPrefix:       "$",
		Dialect:            "base",
		WrappedIdentifiers: true,
	}
}

func (o Options) values() values.Options {
	return values.Options{
		Separated: o.SeparatedValues,
		Named:     o.NamedValues,
		Indexed:   o.IndexedValues,
		Prefix:    o.ValuesPrefix,
	}
}
