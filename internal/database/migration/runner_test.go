package migration

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
)

func writeMigration(t *testing.T, dir, name, sql string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(sql), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadMigrations_OrdersByVersion(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "V2__add_indexes.sql", "CREATE INDEX idx_skills_name ON skills (name);")
	writeMigration(t, dir, "V1__init.sql", "CREATE TABLE skills (id UUID PRIMARY KEY);")
	writeMigration(t, dir, "README.md", "not a migration")

	migs, err := loadMigrations(dir)
	if err != nil {
		t.Fatalf("load migrations: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[1].Version != 2 {
		t.Fatalf("expected version order 1,2, got %d,%d", migs[0].Version, migs[1].Version)
	}
	if migs[0].Name != "init" || migs[1].Name != "add_indexes" {
		t.Fatalf("unexpected names: %q, %q", migs[0].Name, migs[1].Name)
	}

	h := sha256.Sum256([]byte("CREATE TABLE skills (id UUID PRIMARY KEY);"))
	if migs[0].Checksum != hex.EncodeToString(h[:]) {
		t.Fatalf("checksum must cover the trimmed file content")
	}
}

func TestLoadMigrations_DuplicateVersionRejected(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "V1__init.sql", "SELECT 1;")
	writeMigration(t, dir, "V1__init_again.sql", "SELECT 2;")

	if _, err := loadMigrations(dir); err == nil {
		t.Fatalf("expected error for duplicate version")
	}
}

func TestLoadMigrations_EmptyFileRejected(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "V1__init.sql", "   \n")

	if _, err := loadMigrations(dir); err == nil {
		t.Fatalf("expected error for empty migration file")
	}
}

func TestLoadMigrations_MissingDirIsNotAnError(t *testing.T) {
	migs, err := loadMigrations(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir must be treated as no migrations: %v", err)
	}
	if len(migs) != 0 {
		t.Fatalf("expected no migrations, got %d", len(migs))
	}
}

func TestResolveDir_ExplicitDirWins(t *testing.T) {
	got, err := resolveDir("/srv/migrations")
	if err != nil {
		t.Fatalf("resolve dir: %v", err)
	}
	if got != "/srv/migrations" {
		t.Fatalf("expected explicit dir to pass through, got %q", got)
	}
}
