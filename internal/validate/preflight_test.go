package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/greenlight/internal/domain"
)

func TestPreflightInspector_MissingFile(t *testing.T) {
	inspector := NewPreflightInspector()

	snapshot := inspector.Inspect(filepath.Join(t.TempDir(), "missing.txt"), domain.KindCreate, "hello")
	if snapshot.Exists {
		t.Error("expected exists=false for a missing file")
	}
	if snapshot.WouldOverwrite {
		t.Error("expected wouldOverwrite=false for a missing file")
	}
	if snapshot.DiffSummary != "" {
		t.Errorf("expected empty diff summary, got %q", snapshot.DiffSummary)
	}
}

func TestPreflightInspector_Overwrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "existing.txt")
	if err := os.WriteFile(target, []byte("old content"), 0640); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	inspector := NewPreflightInspector()

	snapshot := inspector.Inspect(target, domain.KindWrite, "new content")
	if !snapshot.Exists {
		t.Error("expected exists=true")
	}
	if !snapshot.WouldOverwrite {
		t.Error("expected wouldOverwrite=true for write on an existing file")
	}
	if snapshot.DiffSummary == "" {
		t.Error("expected a diff summary for a content change")
	}
}

func TestPreflightInspector_ReadDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "existing.txt")
	if err := os.WriteFile(target, []byte("content"), 0640); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	inspector := NewPreflightInspector()

	snapshot := inspector.Inspect(target, domain.KindRead, "")
	if !snapshot.Exists {
		t.Error("expected exists=true")
	}
	if snapshot.WouldOverwrite {
		t.Error("read must never count as an overwrite")
	}
}

func TestPreflightInspector_IdenticalContent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "same.txt")
	if err := os.WriteFile(target, []byte("unchanged"), 0640); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	inspector := NewPreflightInspector()

	snapshot := inspector.Inspect(target, domain.KindWrite, "unchanged")
	if snapshot.DiffSummary != "" {
		t.Errorf("expected empty diff summary for identical content, got %q", snapshot.DiffSummary)
	}
}

func TestPreflightInspector_NoContentNoDiff(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "existing.txt")
	if err := os.WriteFile(target, []byte("old"), 0640); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	inspector := NewPreflightInspector()

	snapshot := inspector.Inspect(target, domain.KindWrite, "")
	if snapshot.DiffSummary != "" {
		t.Errorf("diff summary requires proposed content, got %q", snapshot.DiffSummary)
	}
}

func TestPreflightInspector_EmptyPath(t *testing.T) {
	inspector := NewPreflightInspector()

	snapshot := inspector.Inspect("", domain.KindAnalyze, "")
	if snapshot.Exists || snapshot.WouldOverwrite || snapshot.DiffSummary != "" {
		t.Errorf("expected a zero snapshot for an empty path, got %+v", snapshot)
	}
}
