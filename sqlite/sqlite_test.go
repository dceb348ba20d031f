package sqlite

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/zoobzio/jsonsql/internal/dialect"
	"github.com/zoobzio/jsonsql/internal/types"
	"github.com/zoobzio/jsonsql/internal/values"
)

type D = types.D

func compile(t *testing.T, spec D) (string, []any) {
	t.Helper()
	store := values.NewStore(values.Options{Separated: true, Named: true, Indexed: true, Prefix: "$"})
	c := dialect.NewCtx(New(), store, dialect.Options{WrappedIdentifiers: true})
	out, err := c.Template("query", types.ObjectOf("queryBody", types.Normalize(spec)))
	if err != nil {
		t.Fatalf("compile() error = %v", err)
	}
	args := make([]any, store.Len())
	for i, name := range store.Names() {
		args[i] = sql.Named(name, store.Values()[i])
	}
	return out, args
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		spec D
		want string
	}{
		{
			name: "offset without limit",
			spec: D{{"table", "users"}, {"offset", 5}},
			want: `select * from "users" limit -1 offset 5`,
		},
		{
			name: "limit and offset",
			spec: D{{"table", "users"}, {"limit", 2}, {"offset", 5}},
			want: `select * from "users" limit 2 offset 5`,
		},
		{
			name: "union offset",
			spec: D{{"type", "union"}, {"queries", []any{D{{"table", "a"}}, D{{"table", "b"}}}}, {"offset", 1}},
			want: `select * from "a" union select * from "b" limit -1 offset 1`,
		},
		{
			name: "insert or returning",
			spec: D{{"type", "insert"}, {"or", "ignore"}, {"table", "t"}, {"values", D{{"a", 1}}}, {"returning", []any{"a"}}},
			want: `insert or ignore into "t" ("a") values (1) returning "a"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := compile(t, tt.spec)
			if got != tt.want {
				t.Errorf("SQL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`create table "users" ("id" integer primary key, "name" text, "age" integer)`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	query, args := compile(t, D{
		{"type", "insert"},
		{"table", "users"},
		{"values", []any{D{{"name", "John"}, {"age", 30}}, D{{"name", "Mark"}, {"age", 20}}}},
		{"returning", []any{"id"}},
	})
	rows, err := db.Query(query, args...)
	if err != nil {
		t.Fatalf("insert %q: %v", query, err)
	}
	inserted := 0
	for rows.Next() {
		inserted++
	}
	rows.Close()
	if inserted != 2 {
		t.Fatalf("inserted %d rows, want 2", inserted)
	}

	query, args = compile(t, D{
		{"table", "users"},
		{"fields", []any{"name"}},
		{"condition", D{{"age", D{{"$gt", 25}}}, {"name", D{{"$like", "J%"}}}}},
		{"offset", 0},
	})
	var name string
	if err := db.QueryRow(query, args...).Scan(&name); err != nil {
		t.Fatalf("select %q: %v", query, err)
	}
	if name != "John" {
		t.Errorf("name = %q, want %q", name, "John")
	}

	query, args = compile(t, D{
		{"type", "update"},
		{"table", "users"},
		{"modifier", D{{"$inc", D{{"age", 1}}}}},
		{"condition", D{{"name", "Mark"}}},
		{"returning", []any{"age"}},
	})
	var age int
	if err := db.QueryRow(query, args...).Scan(&age); err != nil {
		t.Fatalf("update %q: %v", query, err)
	}
	if age != 21 {
		t.Errorf("age = %d, want 21", age)
	}
}
