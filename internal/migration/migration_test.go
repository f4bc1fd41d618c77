package migration

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitdash/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func mapFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func TestGetCurrentVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, mapFS(map[string]string{
		"001_test.sql": "CREATE TABLE test (id INTEGER);",
	}), SQLite)

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	version, err = runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, mapFS(map[string]string{
		"002_second.sql": "CREATE TABLE b (id INTEGER);",
		"001_first.sql":  "CREATE TABLE a (id INTEGER);",
		"README.md":      "ignored",
	}), SQLite)

	migs, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[0].Name != "first" {
		t.Errorf("first migration = %+v", migs[0])
	}
	if migs[1].Version != 2 || migs[1].Name != "second" {
		t.Errorf("second migration = %+v", migs[1])
	}
}

func TestApplyMigrationsFromScratch(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, mapFS(map[string]string{
		"001_a.sql": "CREATE TABLE a (id INTEGER);",
		"002_b.sql": "CREATE TABLE b (id INTEGER); CREATE TABLE c (id INTEGER);",
	}), SQLite)

	var logs []string
	applied, err := runner.ApplyMigrations(func(msg string) { logs = append(logs, msg) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 applied, got %d", applied)
	}
	if len(logs) == 0 {
		t.Error("expected progress messages")
	}

	for _, table := range []string{"a", "b", "c"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not created: %v", table, err)
		}
	}

	status, err := runner.Status()
	if err != nil {
		t.Fatal(err)
	}
	if status.Current != 2 || status.Latest != 2 || status.Pending() {
		t.Errorf("Status() = %+v", status)
	}
}

func TestApplyMigrationsIncremental(t *testing.T) {
	db := setupTestDB(t)
	first := NewRunner(db, mapFS(map[string]string{
		"001_a.sql": "CREATE TABLE a (id INTEGER);",
	}), SQLite)
	if _, err := first.ApplyMigrations(nil); err != nil {
		t.Fatal(err)
	}

	second := NewRunner(db, mapFS(map[string]string{
		"001_a.sql": "CREATE TABLE a (id INTEGER);",
		"002_b.sql": "CREATE TABLE b (id INTEGER);",
	}), SQLite)

	status, err := second.Status()
	if err != nil {
		t.Fatal(err)
	}
	if !status.Pending() {
		t.Error("expected pending migration")
	}

	applied, err := second.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("expected 1 applied, got %d", applied)
	}

	applied, err = second.ApplyMigrations(nil)
	if err != nil || applied != 0 {
		t.Errorf("second run applied %d, err %v; want no-op", applied, err)
	}
}

func TestMigrationRollbackOnError(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, mapFS(map[string]string{
		"001_ok.sql":     "CREATE TABLE ok (id INTEGER);",
		"002_broken.sql": "CREATE TABLE broken (id INTEGER); THIS IS NOT SQL;",
	}), SQLite)

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("expected 1 applied before failure, got %d", applied)
	}

	version, _ := runner.GetCurrentVersion()
	if version != 1 {
		t.Errorf("expected version 1 after rollback, got %d", version)
	}

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='broken'").Scan(&name)
	if err != sql.ErrNoRows {
		t.Error("broken migration table should have been rolled back")
	}
}

func TestValidateVersionNewerDatabase(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, mapFS(map[string]string{
		"001_a.sql": "CREATE TABLE a (id INTEGER);",
	}), SQLite)

	if err := runner.SetVersion(9); err != nil {
		t.Fatal(err)
	}

	err := runner.ValidateVersion()
	if err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("ValidateVersion() = %v, want newer-version error", err)
	}
	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Error("ApplyMigrations should refuse a newer database")
	}
}

func TestMigrationFilenameValidation(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{"missing underscore", map[string]string{"001.sql": "SELECT 1;"}},
		{"non-numeric version", map[string]string{"abc_init.sql": "SELECT 1;"}},
		{"zero version", map[string]string{"000_init.sql": "SELECT 1;"}},
		{"duplicate version", map[string]string{"001_a.sql": "SELECT 1;", "001_b.sql": "SELECT 1;"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(setupTestDB(t), mapFS(tt.files), SQLite)
			if _, err := runner.ReadMigrationFiles(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	for _, dialect := range []Dialect{SQLite, Postgres} {
		t.Run(dialect.String(), func(t *testing.T) {
			sub, err := fs.Sub(migrations.FS, dialect.String())
			if err != nil {
				t.Fatal(err)
			}
			runner := NewRunner(nil, sub, dialect)
			migs, err := runner.ReadMigrationFiles()
			if err != nil {
				t.Fatalf("ReadMigrationFiles failed: %v", err)
			}
			if len(migs) == 0 || migs[0].Version != 1 {
				t.Errorf("embedded %s migrations = %+v", dialect, migs)
			}
		})
	}

	db := setupTestDB(t)
	sub, _ := fs.Sub(migrations.FS, "sqlite")
	if _, err := NewRunner(db, sub, SQLite).ApplyMigrations(nil); err != nil {
		t.Fatalf("embedded sqlite migrations failed to apply: %v", err)
	}
}

func TestDialectPlaceholder(t *testing.T) {
	if got := NewRunner(nil, nil, Postgres).insertVersionSQL(); !strings.Contains(got, "$1") {
		t.Errorf("postgres insert = %q", got)
	}
	if got := NewRunner(nil, nil, SQLite).insertVersionSQL(); !strings.Contains(got, "?") {
		t.Errorf("sqlite insert = %q", got)
	}
}
