package dialect

import (
	"testing"

	"github.com/zoobzio/jsonsql/internal/values"
)

func identifierCtx(t *testing.T, cfg Config, opts Options) *Ctx {
	t.Helper()
	d, err := New("test", func(d *Dialect) error {
		d.Config = cfg
		return nil
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return NewCtx(d, values.NewStore(values.Options{}), opts)
}

func TestIdentifier(t *testing.T) {
	quoted := Config{IdentifierPrefix: `"`, IdentifierSuffix: `"`}
	brackets := Config{IdentifierPrefix: "[", IdentifierSuffix: "]"}
	wrapped := Options{WrappedIdentifiers: true}

	tests := []struct {
		name string
		cfg  Config
		opts Options
		in   string
		want string
	}{
		{"simple", quoted, wrapped, "users", `"users"`},
		{"dotted", quoted, wrapped, "users.age", `"users"."age"`},
		{"asterisk", quoted, wrapped, "users.*", `"users".*`},
		{"already wrapped", quoted, wrapped, `"users"."age"`, `"users"."age"`},
		{"dot inside quotes", quoted, wrapped, `"users.age"`, `"users.age"`},
		{"not wrapped", quoted, Options{}, "users.age", "users.age"},
		{"brackets", brackets, wrapped, "dbo.users", "[dbo].[users]"},
		{"brackets already wrapped", brackets, wrapped, "[dbo].users", "[dbo].[users]"},
		{"lowercase", quoted, Options{WrappedIdentifiers: true, LowercaseIdentifiers: true}, "Users.Age", `"users"."age"`},
		{"deburr", quoted, Options{WrappedIdentifiers: true, DeburrIdentifiers: true}, "Ünïcödé Näme", `"unicodename"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := identifierCtx(t, tt.cfg, tt.opts)
			if got := c.Identifier(tt.in); got != tt.want {
				t.Errorf("Identifier(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIdentifierOf(t *testing.T) {
	c := identifierCtx(t, Config{IdentifierPrefix: `"`, IdentifierSuffix: `"`}, Options{WrappedIdentifiers: true})
	if _, err := c.IdentifierOf(int64(1), "sort"); err == nil {
		t.Error("expected error for non-string identifier")
	}
	got, err := c.IdentifierOf("age", "sort")
	if err != nil || got != `"age"` {
		t.Errorf("IdentifierOf() = %q, %v", got, err)
	}
}

func TestWrapIdentifiers(t *testing.T) {
	d, err := New("test", func(d *Dialect) error {
		d.WrapIdentifiers(func(prev IdentifierFunc) IdentifierFunc {
			return func(c *Ctx, name string) string {
				return "x_" + prev(c, name)
			}
		})
		return nil
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c := NewCtx(d, values.NewStore(values.Options{}), Options{WrappedIdentifiers: true})
	if got := c.Identifier("a"); got != `x_"a"` {
		t.Errorf("Identifier() = %q, want %q", got, `x_"a"`)
	}
}
