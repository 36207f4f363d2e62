package validate

import (
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/felixgeelhaar/greenlight/internal/domain"
	"github.com/felixgeelhaar/greenlight/internal/plan"
)

// maxDiffInputBytes caps how much existing content the inspector will diff.
// Larger files fall back to a length-only summary.
const maxDiffInputBytes = 256 * 1024

// PreflightInspector snapshots a target path's current disk state. It never
// fails: any read or decode problem degrades to an empty diff summary.
type PreflightInspector struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewPreflightInspector creates a preflight inspector
func NewPreflightInspector() *PreflightInspector {
	return &PreflightInspector{
		dmp: diffmatchpatch.New(),
	}
}

// Inspect captures the current disk state behind a path. proposedContent is
// only consulted when the action would overwrite an existing file.
func (i *PreflightInspector) Inspect(path string, kind domain.ActionKind, proposedContent string) plan.Preflight {
	snapshot := plan.Preflight{}
	if path == "" {
		return snapshot
	}

	info, err := os.Stat(path)
	snapshot.Exists = err == nil
	snapshot.WouldOverwrite = snapshot.Exists && kind.WritesContent()

	if snapshot.WouldOverwrite && proposedContent != "" {
		snapshot.DiffSummary = i.diffSummary(path, info.Size(), proposedContent)
	}

	return snapshot
}

// diffSummary produces a short human-readable delta between the file on disk
// and the proposed content. Best effort only: failures yield "".
func (i *PreflightInspector) diffSummary(path string, size int64, proposed string) string {
	if size > maxDiffInputBytes {
		return fmt.Sprintf("%d bytes on disk -> %d bytes proposed", size, len(proposed))
	}

	existing, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	current := string(existing)
	if current == proposed {
		return ""
	}

	diffs := i.dmp.DiffMain(current, proposed, false)
	inserted, deleted := 0, 0
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			inserted += len(diff.Text)
		case diffmatchpatch.DiffDelete:
			deleted += len(diff.Text)
		}
	}

	return fmt.Sprintf("+%d/-%d chars (%d -> %d bytes)", inserted, deleted, len(current), len(proposed))
}
