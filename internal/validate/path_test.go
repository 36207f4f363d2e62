package validate

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestPathValidator_Traversal(t *testing.T) {
	workspace := t.TempDir()
	validator, err := NewPathValidator(workspace, false)
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"simple traversal", "../escape.txt"},
		{"nested traversal", "a/../../escape.txt"},
		{"trailing traversal", "a/b/.."},
		{"absolute with traversal", filepath.Join(workspace, "..", "escape.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, issues := validator.Validate(tt.path)
			if len(issues) == 0 {
				t.Errorf("expected issues for %q, got none", tt.path)
			}
		})
	}
}

func TestPathValidator_OutsideWorkspace(t *testing.T) {
	workspace := t.TempDir()
	outside := t.TempDir()

	validator, err := NewPathValidator(workspace, false)
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}

	_, issues := validator.Validate(filepath.Join(outside, "file.txt"))
	if len(issues) == 0 {
		t.Error("expected an outside-workspace issue, got none")
	}

	// The override admits external absolute paths.
	permissive, err := NewPathValidator(workspace, true)
	if err != nil {
		t.Fatalf("failed to create permissive validator: %v", err)
	}

	normalized, issues := permissive.Validate(filepath.Join(outside, "file.txt"))
	if len(issues) != 0 {
		t.Errorf("expected no issues with external override, got %v", issues)
	}
	if normalized == "" {
		t.Error("expected a normalized path")
	}
}

func TestPathValidator_Normalization(t *testing.T) {
	workspace := t.TempDir()
	validator, err := NewPathValidator(workspace, false)
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}

	normalized, issues := validator.Validate("notes/./a.txt")
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}

	want := filepath.Join(workspace, "notes", "a.txt")
	if normalized != want {
		t.Errorf("expected %q, got %q", want, normalized)
	}

	if !strings.HasPrefix(normalized, validator.WorkspaceRoot()) {
		t.Errorf("normalized path %q escapes workspace root %q", normalized, validator.WorkspaceRoot())
	}
}

func TestPathValidator_Empty(t *testing.T) {
	validator, err := NewPathValidator(t.TempDir(), false)
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}

	if _, issues := validator.Validate(""); len(issues) == 0 {
		t.Error("expected an issue for the empty path")
	}
	if _, issues := validator.Validate("   "); len(issues) == 0 {
		t.Error("expected an issue for a blank path")
	}
}

func TestNewPathValidator_EmptyRoot(t *testing.T) {
	if _, err := NewPathValidator("", false); err == nil {
		t.Error("expected an error for an empty workspace root")
	}
}
