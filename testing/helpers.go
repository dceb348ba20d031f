// Package testing provides test utilities for jsonsql.
package testing

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/zoobzio/dbml"
	"github.com/zoobzio/jsonsql"
)

// testTables lists the tables of TestSchema as name followed by
// column:type pairs.
var testTables = [][]string{
	{"users", "id:bigint", "username:varchar", "email:varchar", "age:int", "active:boolean", "created_at:timestamp", "metadata:jsonb"},
	{"posts", "id:bigint", "user_id:bigint", "title:varchar", "body:text", "published:boolean", "views:int"},
	{"comments", "id:bigint", "post_id:bigint", "user_id:bigint", "body:text"},
	{"orders", "id:bigint", "user_id:bigint", "total:numeric", "status:varchar"},
	{"products", "id:bigint", "name:varchar", "price:numeric", "stock:int"},
}

// TestSchema creates a DBML project with users, posts, comments, orders
// and products tables.
func TestSchema() *dbml.Project {
	project := dbml.NewProject("jsonsql")
	for _, def := range testTables {
		table := dbml.NewTable(def[0])
		for _, col := range def[1:] {
			name, typ, _ := strings.Cut(col, ":")
			table.AddColumn(dbml.NewColumn(name, typ))
		}
		project.AddTable(table)
	}
	return project
}

// TestBuilder creates a Builder from DefaultOptions after applying each
// modifier in order.
func TestBuilder(t *testing.T, modify ...func(*jsonsql.Options)) *jsonsql.Builder {
	t.Helper()
	opts := jsonsql.DefaultOptions()
	for _, m := range modify {
		m(&opts)
	}
	b, err := jsonsql.New(opts)
	if err != nil {
		t.Fatalf("Failed to create test builder: %v", err)
	}
	return b
}

// WithDialect selects the dialect of a TestBuilder.
func WithDialect(name string) func(*jsonsql.Options) {
	return func(o *jsonsql.Options) { o.Dialect = name }
}

// WithSchema validates a TestBuilder against TestSchema.
func WithSchema() func(*jsonsql.Options) {
	return func(o *jsonsql.Options) { o.Schema = TestSchema() }
}

// AssertSQL compares expected and actual SQL, reporting detailed differences.
func AssertSQL(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected: %s\nActual:   %s", expected, actual)
	}
}

// AssertValues compares the values of a result with expected, which is a
// map in named mode and a slice otherwise.
func AssertValues(t *testing.T, expected any, r *jsonsql.Result) {
	t.Helper()
	actual := r.Values()
	if m, ok := expected.(map[string]any); ok && len(m) == 0 {
		if got, _ := actual.(map[string]any); len(got) == 0 {
			return
		}
	}
	if !reflect.DeepEqual(expected, actual) {
		t.Errorf("Values mismatch:\nExpected: %#v\nActual:   %#v", expected, actual)
	}
}

// AssertBuild builds spec and compares the query with expected.
func AssertBuild(t *testing.T, b *jsonsql.Builder, spec any, expected string) *jsonsql.Result {
	t.Helper()
	r, err := b.Build(spec)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	AssertSQL(t, expected, r.Query)
	return r
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertErrorContains checks that error message contains substring.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertErrorAs checks that err wraps a T and returns it.
func AssertErrorAs[T error](t *testing.T, err error) T {
	t.Helper()
	var target T
	if !errors.As(err, &target) {
		t.Fatalf("Expected %T, got: %v", target, err)
	}
	return target
}

// AssertPanics verifies that a function panics.
func AssertPanics(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic but function completed normally")
		}
	}()
	fn()
}
