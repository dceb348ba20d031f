package integration

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	jsqltest "github.com/zoobzio/jsonsql/testing"
)

// SQLiteDB wraps an in-memory SQLite database for testing.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB creates a new in-memory SQLite database.
func NewSQLiteDB(t *testing.T) *SQLiteDB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open SQLite: %v", err)
	}
	// every connection would get its own in-memory database
	db.SetMaxOpenConns(1)

	s := &SQLiteDB{db: db}
	t.Cleanup(func() { s.Close(t) })
	return s
}

// Close closes the SQLite database.
func (s *SQLiteDB) Close(t *testing.T) {
	t.Helper()
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			t.Logf("Warning: failed to close database: %v", err)
		}
	}
}

// Exec executes a SQL statement.
func (s *SQLiteDB) Exec(t *testing.T, sql string, args ...any) {
	t.Helper()
	_, err := s.db.Exec(sql, args...)
	if err != nil {
		t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, sql)
	}
}

// QueryRow executes a query and returns a single row.
func (s *SQLiteDB) QueryRow(_ *testing.T, sql string, args ...any) *sql.Row {
	return s.db.QueryRow(sql, args...)
}

// Query executes a query and returns rows.
func (s *SQLiteDB) Query(t *testing.T, sql string, args ...any) *sql.Rows {
	t.Helper()
	rows, err := s.db.Query(sql, args...)
	if err != nil {
		t.Fatalf("Failed to execute query: %v\nSQL: %s", err, sql)
	}
	return rows
}

func prepareSQLite(t *testing.T) *SQLiteDB {
	t.Helper()
	db := NewSQLiteDB(t)

	db.Exec(t, `
		CREATE TABLE users (
			id INTEGER PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			age INTEGER,
			active INTEGER DEFAULT 1
		)
	`)
	db.Exec(t, `
		CREATE TABLE posts (
			id INTEGER PRIMARY KEY,
			user_id INTEGER REFERENCES users(id),
			title TEXT NOT NULL,
			views INTEGER DEFAULT 0,
			published INTEGER DEFAULT 0
		)
	`)
	db.Exec(t, `
		INSERT INTO users (id, username, email, age, active) VALUES
		(1, 'alice', 'alice@example.com', 30, 1),
		(2, 'bob', 'bob@example.com', 25, 1),
		(3, 'charlie', 'charlie@example.com', 35, 0),
		(4, 'diana', 'diana@example.com', 28, 1)
	`)
	db.Exec(t, `
		INSERT INTO posts (id, user_id, title, views, published) VALUES
		(1, 1, 'First Post', 100, 1),
		(2, 1, 'Second Post', 50, 1),
		(3, 2, 'Bobs Post', 75, 1),
		(4, 3, 'Draft Post', 0, 0)
	`)
	return db
}

func TestSQLiteIntegration_SelectNamed(t *testing.T) {
	db := prepareSQLite(t)
	b := newBuilder(t, "sqlite")

	r := build(t, b, D{
		{"table", "users"},
		{"fields", []any{"username"}},
		{"condition", D{{"email", D{{"$like", "%example.com"}}}, {"active", true}, {"username", D{{"$ne", "bob"}}}}},
		{"sort", "username"},
	})
	got := scanStrings(t, db.Query(t, r.Query, r.Args()...))
	if len(got) != 2 || got[0] != "alice" || got[1] != "diana" {
		t.Errorf("usernames = %v, want [alice diana]", got)
	}
}

func TestSQLiteIntegration_GroupAndJoin(t *testing.T) {
	db := prepareSQLite(t)
	b := newBuilder(t, "sqlite")

	r := build(t, b, D{
		{"table", "users"},
		{"fields", []any{D{{"name", "username"}, {"table", "users"}}}},
		{"join", D{{"posts", D{{"on", D{{"users.id", "posts.user_id"}}}}}}},
		{"condition", D{{"posts.published", true}}},
		{"group", []any{"users.username"}},
		{"sort", "users.username"},
	})
	got := scanStrings(t, db.Query(t, r.Query, r.Args()...))
	if len(got) != 2 || got[0] != "alice" || got[1] != "bob" {
		t.Errorf("usernames = %v, want [alice bob]", got)
	}
}

func TestSQLiteIntegration_OffsetWithoutLimit(t *testing.T) {
	db := prepareSQLite(t)
	b := newBuilder(t, "sqlite")

	r := build(t, b, D{{"table", "users"}, {"fields", []any{"username"}}, {"sort", "id"}, {"offset", 3}})
	got := scanStrings(t, db.Query(t, r.Query, r.Args()...))
	if len(got) != 1 || got[0] != "diana" {
		t.Errorf("usernames = %v, want [diana]", got)
	}
}

func TestSQLiteIntegration_InsertOrReturning(t *testing.T) {
	db := prepareSQLite(t)
	b := newBuilder(t, "sqlite")

	r := build(t, b, D{
		{"type", "insert"},
		{"or", "ignore"},
		{"table", "users"},
		{"values", D{{"username", "alice2"}, {"email", "alice@example.com"}, {"age", 31}}},
	})
	db.Exec(t, r.Query, r.Args()...)

	var count int
	if err := db.QueryRow(t, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 4 {
		t.Errorf("users = %d, want 4 after ignored duplicate", count)
	}

	r = build(t, b, D{
		{"type", "insert"},
		{"table", "users"},
		{"values", D{{"username", "eve"}, {"email", "eve@example.com"}, {"age", 22}}},
		{"returning", []any{"id"}},
	})
	var id int64
	if err := db.QueryRow(t, r.Query, r.Args()...).Scan(&id); err != nil {
		t.Fatalf("Insert failed: %v\nSQL: %s", err, r.Query)
	}
	if id != 5 {
		t.Errorf("id = %d, want 5", id)
	}
}

func TestSQLiteIntegration_WithUpdateDelete(t *testing.T) {
	db := prepareSQLite(t)
	b := newBuilder(t, "sqlite")

	r := build(t, b, D{
		{"type", "update"},
		{"table", "posts"},
		{"modifier", D{{"$dec", D{{"views", 25}}}}},
		{"condition", D{{"views", D{{"$gte", 75}}}}},
	})
	db.Exec(t, r.Query, r.Args()...)

	// the common table expression is not part of the schema
	r = build(t, jsqltest.TestBuilder(t, jsqltest.WithDialect("sqlite")), D{
		{"with", D{{"popular", D{{"select", D{{"table", "posts"}, {"fields", []any{"user_id"}}, {"condition", D{{"views", D{{"$gt", 60}}}}}}}}}}},
		{"table", "users"},
		{"fields", []any{"username"}},
		{"condition", D{{"id", D{{"$in", D{{"table", "popular"}, {"fields", []any{"user_id"}}}}}}}},
	})
	got := scanStrings(t, db.Query(t, r.Query, r.Args()...))
	if len(got) != 1 || got[0] != "alice" {
		t.Errorf("usernames = %v, want [alice]", got)
	}

	r = build(t, b, D{{"type", "remove"}, {"table", "posts"}, {"condition", D{{"views", D{{"$lt", 51}}}}}})
	db.Exec(t, r.Query, r.Args()...)

	var count int
	if err := db.QueryRow(t, "SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("posts = %d, want 1", count)
	}
}
