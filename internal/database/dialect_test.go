package database

import (
	"strings"
	"testing"
)

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "no placeholders",
			query: "SELECT * FROM characters",
			want:  "SELECT * FROM characters",
		},
		{
			name:  "single placeholder",
			query: "SELECT * FROM characters WHERE id = ?",
			want:  "SELECT * FROM characters WHERE id = $1",
		},
		{
			name:  "multiple placeholders",
			query: "INSERT INTO characters (glyph, pinyin) VALUES (?, ?)",
			want:  "INSERT INTO characters (glyph, pinyin) VALUES ($1, $2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewritePlaceholdersToNumbered(tt.query); got != tt.want {
				t.Errorf("rewritePlaceholdersToNumbered() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSQLiteDialect(t *testing.T) {
	d := NewSQLiteDialect()

	if d.DriverName() != "sqlite3" {
		t.Errorf("DriverName() = %q, want sqlite3", d.DriverName())
	}
	if !d.SupportsLastInsertId() {
		t.Error("SQLite should support LastInsertId")
	}
	if got := d.RewriteQuery("WHERE id = ?"); got != "WHERE id = ?" {
		t.Errorf("SQLite should not rewrite placeholders, got %q", got)
	}
	if d.MigrationsSubdir() != "sqlite" {
		t.Errorf("MigrationsSubdir() = %q, want sqlite", d.MigrationsSubdir())
	}
}

func TestPostgresDialect(t *testing.T) {
	d := NewPostgresDialect()

	if d.DriverName() != "postgres" {
		t.Errorf("DriverName() = %q, want postgres", d.DriverName())
	}
	if d.SupportsLastInsertId() {
		t.Error("Postgres driver does not support LastInsertId")
	}
	if got := d.RewriteQuery("WHERE id = ? AND set_nr = ?"); got != "WHERE id = $1 AND set_nr = $2" {
		t.Errorf("RewriteQuery() = %q", got)
	}
	if d.MigrationsSubdir() != "postgres" {
		t.Errorf("MigrationsSubdir() = %q, want postgres", d.MigrationsSubdir())
	}
}

func TestMySQLDialect(t *testing.T) {
	d := NewMySQLDialect()

	if d.DriverName() != "mysql" {
		t.Errorf("DriverName() = %q, want mysql", d.DriverName())
	}
	if !d.SupportsLastInsertId() {
		t.Error("MySQL should support LastInsertId")
	}
	if got := d.RewriteQuery("WHERE id = ?"); got != "WHERE id = ?" {
		t.Errorf("MySQL should not rewrite placeholders, got %q", got)
	}
}

func TestMySQLDSNAddsParseTime(t *testing.T) {
	d := NewMySQLDialect()

	dsn := d.DSN(DialectConfig{URL: "user:pass@tcp(localhost:3306)/hanzidrill"})
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("Expected parseTime=true in DSN, got %q", dsn)
	}

	dsn = d.DSN(DialectConfig{URL: "user:pass@tcp(localhost:3306)/hanzidrill?charset=utf8mb4"})
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("Expected parseTime=true appended to existing params, got %q", dsn)
	}

	dsn = d.DSN(DialectConfig{URL: "user:pass@tcp(localhost:3306)/hanzidrill?parseTime=true"})
	if strings.Count(dsn, "parseTime=true") != 1 {
		t.Errorf("Expected parseTime=true exactly once, got %q", dsn)
	}
}
