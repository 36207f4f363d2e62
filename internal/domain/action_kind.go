package domain

import (
	"fmt"
	"strings"
)

// ActionKind represents the operation an action spec performs.
// The set is closed: unknown kinds are rejected at the validation boundary.
type ActionKind string

const (
	// KindCreate creates a new file with the given content
	KindCreate ActionKind = "create"
	// KindWrite writes (possibly overwriting) content to a file
	KindWrite ActionKind = "write"
	// KindMkdir creates a directory, including parents
	KindMkdir ActionKind = "mkdir"
	// KindRun requests arbitrary command execution; always refused at execution time
	KindRun ActionKind = "run"
	// KindRead reads a file and reports its content
	KindRead ActionKind = "read"
	// KindAnalyze is a no-op marker kind reserved for analysis passes
	KindAnalyze ActionKind = "analyze"
)

// allKinds is the closed set of recognized action kinds
var allKinds = map[ActionKind]bool{
	KindCreate:  true,
	KindWrite:   true,
	KindMkdir:   true,
	KindRun:     true,
	KindRead:    true,
	KindAnalyze: true,
}

// ParseActionKind parses a string into an ActionKind
func ParseActionKind(value string) (ActionKind, error) {
	kind := ActionKind(strings.ToLower(strings.TrimSpace(value)))
	if !allKinds[kind] {
		return "", fmt.Errorf("unknown action kind %q (valid: create, write, mkdir, run, read, analyze)", value)
	}
	return kind, nil
}

// String returns the string representation
func (k ActionKind) String() string {
	return string(k)
}

// Valid reports whether the kind is a member of the closed set
func (k ActionKind) Valid() bool {
	return allKinds[k]
}

// RequiresPath reports whether specs of this kind must carry a target path
func (k ActionKind) RequiresPath() bool {
	switch k {
	case KindCreate, KindWrite, KindMkdir, KindRead:
		return true
	default:
		return false
	}
}

// WritesContent reports whether this kind writes file content to disk
func (k ActionKind) WritesContent() bool {
	return k == KindCreate || k == KindWrite
}
