package jsonsql

import (
	"context"
	"io"
	"log/slog"

	"github.com/zoobzio/jsonsql/internal/dialect"
	"github.com/zoobzio/jsonsql/internal/types"
	"github.com/zoobzio/jsonsql/internal/values"
)

// Builder compiles query specs with a fixed set of options.
// Build may be called from several goroutines; Configure may not run
// concurrently with it.
type Builder struct {
	opts    Options
	dialect *dialect.Dialect
	schema  dialect.SchemaChecker
	logger  *slog.Logger
}

// New creates a Builder. It fails with a ConfigError on an unknown dialect
// or an invalid placeholder option combination.
func New(opts Options) (*Builder, error) {
	b := &Builder{}
	if err := b.Configure(opts); err != nil {
		return nil, err
	}
	return b, nil
}

// Configure replaces the options of b.
func (b *Builder) Configure(opts Options) error {
	if err := opts.values().Validate(); err != nil {
		return err
	}
	d, err := lookupDialect(opts.Dialect)
	if err != nil {
		return err
	}

	b.opts = opts
	b.dialect = d
	b.schema = nil
	if opts.Schema != nil {
		b.schema = newSchemaIndex(opts.Schema)
	}
	b.logger = opts.Logger
	if b.logger == nil {
		b.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return nil
}

// Options returns the options of b.
func (b *Builder) Options() Options {
	return b.opts
}

// Dialect returns the name of the dialect b renders.
func (b *Builder) Dialect() string {
	return b.dialect.Name
}

// Build compiles spec into a statement terminated with a semicolon.
// spec is a D, a map, an *Object or the result of ParseJSON or ParseYAML.
func (b *Builder) Build(spec any) (*Result, error) {
	store := values.NewStore(b.opts.values())
	c := dialect.NewCtx(b.dialect, store, dialect.Options{
		WrappedIdentifiers:   b.opts.WrappedIdentifiers,
		DeburrIdentifiers:    b.opts.DeburrIdentifiers,
		LowercaseIdentifiers: b.opts.LowercaseIdentifiers,
		TablePrefix:          b.opts.TablePrefix,
		Schema:               b.schema,
		MaxDepth:             b.opts.MaxDepth,
	})

	body := types.Normalize(spec)
	query, err := c.Template("query", types.ObjectOf("queryBody", body))
	if err != nil {
		b.logger.Debug("compile failed", "dialect", b.dialect.Name, "error", err)
		return nil, err
	}

	r := &Result{Query: query + ";", store: store}
	if b.logger.Enabled(context.Background(), slog.LevelDebug) {
		obj, _ := types.AsObject(body)
		typ, ok := obj.String("type")
		if !ok {
			typ = "select"
		}
		b.logger.Debug("compiled query",
			"dialect", b.dialect.Name,
			"type", typ,
			"params", store.Len(),
		)
	}
	return r, nil
}
