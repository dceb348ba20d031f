package jsonsql_test

import (
	"testing"

	"github.com/zoobzio/jsonsql"
	jsqltest "github.com/zoobzio/jsonsql/testing"
)

func TestSchemaValidation(t *testing.T) {
	b := jsqltest.TestBuilder(t, jsqltest.WithSchema())

	t.Run("known table", func(t *testing.T) {
		jsqltest.AssertBuild(t, b, D{
			{"table", "users"},
			{"fields", []any{D{{"name", "email"}, {"table", "users"}}, D{{"name", "*"}, {"table", "posts"}}}},
			{"join", D{{"posts", D{{"on", D{{"users.id", "posts.user_id"}}}}}}},
		}, `select "users"."email", "posts".* from "users" join "posts" on "users"."id" = "posts"."user_id";`)
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := b.Build(D{{"table", "invoices"}})
		verr := jsqltest.AssertErrorAs[jsonsql.ValidationError](t, err)
		if verr.Kind != jsonsql.NotInSchema {
			t.Errorf("Kind = %v, want NotInSchema", verr.Kind)
		}
		if want := `table "invoices" is not defined in schema`; err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := b.Build(D{{"table", "users"}, {"fields", []any{D{{"name", "password"}, {"table", "users"}}}}})
		if want := `column "users.password" is not defined in schema`; err == nil || err.Error() != want {
			t.Errorf("Build() error = %v, want %q", err, want)
		}
	})

	t.Run("unknown joined table", func(t *testing.T) {
		_, err := b.Build(D{{"table", "users"}, {"join", []any{D{{"table", "invoices"}}}}})
		jsqltest.AssertErrorContains(t, err, `table "invoices" is not defined in schema`)
	})

	t.Run("insert", func(t *testing.T) {
		_, err := b.Build(D{{"type", "insert"}, {"table", "audit"}, {"values", D{{"a", 1}}}})
		jsqltest.AssertErrorContains(t, err, `table "audit" is not defined in schema`)
	})

	t.Run("json path column", func(t *testing.T) {
		pg := jsqltest.TestBuilder(t, jsqltest.WithSchema(), jsqltest.WithDialect("postgresql"))
		jsqltest.AssertBuild(t, pg, D{
			{"table", "users"},
			{"fields", []any{D{{"name", "metadata->>'theme'"}, {"table", "users"}}}},
		}, `select "users"."metadata"->>'theme' from "users";`)

		_, err := pg.Build(D{
			{"table", "users"},
			{"fields", []any{D{{"name", "settings->>'theme'"}, {"table", "users"}}}},
		})
		jsqltest.AssertErrorContains(t, err, `column "users.settings" is not defined in schema`)
	})

	t.Run("table prefix", func(t *testing.T) {
		prefixed := jsqltest.TestBuilder(t, jsqltest.WithSchema(), func(o *jsonsql.Options) { o.TablePrefix = "app" })
		jsqltest.AssertBuild(t, prefixed, D{{"table", "users"}}, `select * from "app_users";`)
	})
}
