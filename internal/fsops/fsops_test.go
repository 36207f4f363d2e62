package fsops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/felixgeelhaar/greenlight/internal/errors"
)

func TestLocal_WriteCreatesParents(t *testing.T) {
	dir := t.TempDir()
	ops := NewLocal("")

	target := filepath.Join(dir, "deep", "nested", "file.txt")
	outcome := ops.Write(target, "content")
	if !outcome.OK {
		t.Fatalf("write failed: %s", outcome.Reason)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("expected %q, got %q", "content", string(data))
	}
}

func TestLocal_WriteBacksUpExisting(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	ops := NewLocal(backupDir)

	target := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(target, []byte("original"), 0640); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if outcome := ops.Write(target, "replacement"); !outcome.OK {
		t.Fatalf("write failed: %s", outcome.Reason)
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("read backup dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "file.txt.") || !strings.HasSuffix(name, ".bak") {
		t.Errorf("unexpected backup name %q", name)
	}

	backup, err := os.ReadFile(filepath.Join(backupDir, name))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != "original" {
		t.Errorf("backup holds %q, want %q", string(backup), "original")
	}
}

func TestLocal_BackupDedupesIdenticalContent(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	ops := NewLocal(backupDir)

	target := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(target, []byte("same"), 0640); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	// Overwrite with the original content restored in between: the second
	// backup of identical bytes is skipped.
	for i := 0; i < 2; i++ {
		if outcome := ops.Write(target, "next"); !outcome.OK {
			t.Fatalf("write %d failed: %s", i, outcome.Reason)
		}
		if err := os.WriteFile(target, []byte("same"), 0640); err != nil {
			t.Fatalf("restore failed: %v", err)
		}
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("read backup dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 deduplicated backup, got %d", len(entries))
	}
}

func TestLocal_WriteNewFileNoBackup(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	ops := NewLocal(backupDir)

	if outcome := ops.Write(filepath.Join(dir, "new.txt"), "fresh"); !outcome.OK {
		t.Fatalf("write failed: %s", outcome.Reason)
	}

	if _, err := os.Stat(backupDir); !os.IsNotExist(err) {
		t.Error("backup dir must not be created for new files")
	}
}

func TestLocal_MkdirIdempotent(t *testing.T) {
	dir := t.TempDir()
	ops := NewLocal("")

	target := filepath.Join(dir, "a", "b")
	for i := 0; i < 2; i++ {
		if outcome := ops.Mkdir(target); !outcome.OK {
			t.Fatalf("mkdir %d failed: %s", i, outcome.Reason)
		}
	}

	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		t.Errorf("expected directory at %s", target)
	}
}

func TestLocal_Read(t *testing.T) {
	dir := t.TempDir()
	ops := NewLocal("")

	target := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(target, []byte("hello"), 0640); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	content, err := ops.Read(target)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if content != "hello" {
		t.Errorf("expected %q, got %q", "hello", content)
	}

	_, err = ops.Read(filepath.Join(dir, "missing.txt"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if errors.CodeOf(err) != errors.ErrCodeFileNotFound {
		t.Errorf("expected %s, got %s", errors.ErrCodeFileNotFound, errors.CodeOf(err))
	}
}
