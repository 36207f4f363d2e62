package validate

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PathValidator normalizes candidate paths and rejects traversal or
// out-of-workspace references. It is pure: it never touches the filesystem
// beyond lexical canonicalization.
type PathValidator struct {
	workspaceRoot string
	allowExternal bool
}

// NewPathValidator creates a validator rooted at the given workspace directory.
// allowExternal permits absolute paths outside the workspace; it exists for
// isolated test environments and should stay off in normal operation.
func NewPathValidator(workspaceRoot string, allowExternal bool) (*PathValidator, error) {
	if strings.TrimSpace(workspaceRoot) == "" {
		return nil, fmt.Errorf("workspace root cannot be empty")
	}

	abs, err := filepath.Abs(workspaceRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}

	return &PathValidator{
		workspaceRoot: filepath.Clean(abs),
		allowExternal: allowExternal,
	}, nil
}

// WorkspaceRoot returns the absolute workspace root
func (v *PathValidator) WorkspaceRoot() string {
	return v.workspaceRoot
}

// Validate normalizes a path and returns it with any issues found.
// Relative paths are resolved against the workspace root. The normalized
// path is only meaningful when no issues are returned.
func (v *PathValidator) Validate(path string) (string, []string) {
	var issues []string

	if strings.TrimSpace(path) == "" {
		return "", []string{"path cannot be empty"}
	}

	// Traversal is rejected on the raw input, before cleaning could fold
	// a ".." component away.
	for _, component := range strings.Split(filepath.ToSlash(path), "/") {
		if component == ".." {
			issues = append(issues, fmt.Sprintf("path %q contains a parent-directory reference", path))
			break
		}
	}

	normalized := path
	if !filepath.IsAbs(normalized) {
		normalized = filepath.Join(v.workspaceRoot, normalized)
	}
	normalized = filepath.Clean(normalized)

	if !v.allowExternal && !v.contains(normalized) {
		issues = append(issues, fmt.Sprintf("path %q resolves outside the workspace root %s", path, v.workspaceRoot))
	}

	if len(issues) > 0 {
		return "", issues
	}
	return normalized, nil
}

// contains reports whether the absolute path lies under the workspace root
func (v *PathValidator) contains(abs string) bool {
	rel, err := filepath.Rel(v.workspaceRoot, abs)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "..")
}
