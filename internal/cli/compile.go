package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zoobzio/jsonsql"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Config       string
	Dialect      string
	Positional   bool
	InlineValues bool
	ValuesPrefix string
	NoIndex      bool
	NoWrap       bool
	Deburr       bool
	Lowercase    bool
	TablePrefix  string
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <spec-file>",
		Short: "Compile a query spec to SQL",
		Long: `Compile a JSON, YAML or CUE query spec to SQL.

Options are read from --config first, then overridden by flags.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "options file (YAML)")
	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", "base", "SQL dialect")
	cmd.Flags().BoolVar(&opts.Positional, "positional", false, "use positional placeholders instead of p1, p2, ...")
	cmd.Flags().BoolVar(&opts.InlineValues, "inline-values", false, "quote values inline instead of extracting them")
	cmd.Flags().StringVar(&opts.ValuesPrefix, "values-prefix", "$", "text written before every placeholder")
	cmd.Flags().BoolVar(&opts.NoIndex, "no-index", false, "do not number positional placeholders")
	cmd.Flags().BoolVar(&opts.NoWrap, "no-wrap", false, "do not quote identifiers")
	cmd.Flags().BoolVar(&opts.Deburr, "deburr", false, "strip diacritics and unsafe characters from identifiers")
	cmd.Flags().BoolVar(&opts.Lowercase, "lowercase", false, "lowercase identifiers")
	cmd.Flags().StringVar(&opts.TablePrefix, "table-prefix", "", "prefix joined to every table name")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	builderOpts, err := opts.builderOptions(cmd)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	builderOpts.Logger = opts.logger(cmd.ErrOrStderr())

	builder, err := jsonsql.New(builderOpts)
	if err != nil {
		_ = formatter.Error(ErrCodeConfig, err.Error())
		return WrapExitError(ExitCommandError, "invalid options", err)
	}

	spec, err := LoadSpec(path)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	result, err := builder.Build(spec)
	if err != nil {
		code := ErrCodeCompile
		var unsupported jsonsql.UnsupportedFeatureError
		if errors.As(err, &unsupported) {
			code = ErrCodeUnsupported
		}
		_ = formatter.Error(code, err.Error())
		return WrapExitError(ExitFailure, "compilation failed", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(formatResult(result))
}

// builderOptions merges the options file with the flags set explicitly.
func (o *CompileOptions) builderOptions(cmd *cobra.Command) (jsonsql.Options, error) {
	opts, err := LoadOptions(o.Config)
	if err != nil {
		return opts, err
	}

	flags := cmd.Flags()
	if flags.Changed("dialect") || o.Config == "" {
		opts.Dialect = o.Dialect
	}
	if flags.Changed("positional") {
		opts.NamedValues = !o.Positional
	}
	if flags.Changed("inline-values") {
		opts.SeparatedValues = !o.InlineValues
	}
	if flags.Changed("values-prefix") {
		opts.ValuesPrefix = o.ValuesPrefix
	}
	if flags.Changed("no-index") {
		opts.IndexedValues = !o.NoIndex
	}
	if flags.Changed("no-wrap") {
		opts.WrappedIdentifiers = !o.NoWrap
	}
	if flags.Changed("deburr") {
		opts.DeburrIdentifiers = o.Deburr
	}
	if flags.Changed("lowercase") {
		opts.LowercaseIdentifiers = o.Lowercase
	}
	if flags.Changed("table-prefix") {
		opts.TablePrefix = o.TablePrefix
	}
	return opts, nil
}

func outputLoadError(formatter *OutputFormatter, err error) error {
	code := ErrCodeGeneric
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		code = loadErr.Code
	}
	_ = formatter.Error(code, err.Error())
	return WrapExitError(ExitCommandError, "loading failed", err)
}

// formatResult renders the query followed by one line per parameter: the
// placeholder in named mode, the 1-based position otherwise.
func formatResult(result *jsonsql.Result) string {
	var b strings.Builder
	b.WriteString(result.Query)

	if list, ok := result.Values().([]any); ok {
		for i, v := range list {
			fmt.Fprintf(&b, "\n%d = %s", i+1, formatValue(v))
		}
		return b.String()
	}

	values := result.PrefixValues()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) < len(names[j])
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fmt.Fprintf(&b, "\n%s = %s", name, formatValue(values[name]))
	}
	return b.String()
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	}
	return fmt.Sprint(v)
}
