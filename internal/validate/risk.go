package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/greenlight/internal/domain"
	"github.com/felixgeelhaar/greenlight/internal/plan"
)

// DefaultProtectedFiles are filenames whose modification is always high risk:
// secrets, lockfiles, and package manifests.
var DefaultProtectedFiles = []string{
	".env",
	".env.local",
	".env.production",
	"package.json",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"go.mod",
	"go.sum",
	"Cargo.toml",
	"Cargo.lock",
	"Gemfile.lock",
	"composer.lock",
	"poetry.lock",
	"pyproject.toml",
}

// DefaultVendorDirs are directory names treated as vendor or system territory
var DefaultVendorDirs = []string{
	".git",
	"node_modules",
	"vendor",
	".venv",
	"__pycache__",
	".cache",
	"target",
}

// DefaultSizeThreshold is the overwrite size above which risk escalates to medium
const DefaultSizeThreshold int64 = 10 * 1024

// RiskAssessor classifies the blast radius of a single action. Rules are
// applied as a monotonic max: matching more rules can only escalate the level.
type RiskAssessor struct {
	protected     map[string]bool
	vendorDirs    map[string]bool
	sizeThreshold int64
}

// NewRiskAssessor creates an assessor with the given rule inputs. Empty
// inputs fall back to the package defaults.
func NewRiskAssessor(protected []string, vendorDirs []string, sizeThreshold int64) *RiskAssessor {
	if len(protected) == 0 {
		protected = DefaultProtectedFiles
	}
	if len(vendorDirs) == 0 {
		vendorDirs = DefaultVendorDirs
	}
	if sizeThreshold <= 0 {
		sizeThreshold = DefaultSizeThreshold
	}

	assessor := &RiskAssessor{
		protected:     make(map[string]bool, len(protected)),
		vendorDirs:    make(map[string]bool, len(vendorDirs)),
		sizeThreshold: sizeThreshold,
	}
	for _, name := range protected {
		assessor.protected[name] = true
	}
	for _, name := range vendorDirs {
		assessor.vendorDirs[name] = true
	}
	return assessor
}

// Assess classifies one action spec
func (a *RiskAssessor) Assess(spec plan.ActionSpec) domain.RiskLevel {
	level, _ := a.Explain(spec)
	return level
}

// Explain classifies one action spec and names the highest-severity rule that
// fired, for reviewer display
func (a *RiskAssessor) Explain(spec plan.ActionSpec) (domain.RiskLevel, string) {
	level := domain.RiskLow
	reason := ""

	escalate := func(to domain.RiskLevel, why string) {
		if to.Weight() > level.Weight() {
			level = to
			reason = why
		}
	}

	if spec.Kind == domain.KindRun {
		escalate(domain.RiskHigh, "arbitrary command execution")
	}

	if spec.Path != "" {
		base := filepath.Base(spec.Path)
		if a.protected[base] {
			escalate(domain.RiskHigh, fmt.Sprintf("targets protected file %s", base))
		}

		for _, component := range strings.Split(filepath.ToSlash(spec.Path), "/") {
			if a.vendorDirs[component] {
				escalate(domain.RiskHigh, fmt.Sprintf("targets vendor/system directory %s", component))
				break
			}
		}

		if spec.Kind.WritesContent() {
			if info, err := os.Stat(spec.Path); err == nil && !info.IsDir() && info.Size() > a.sizeThreshold {
				escalate(domain.RiskMedium, fmt.Sprintf("overwrites existing file of %d bytes", info.Size()))
			}
		}
	}

	return level, reason
}
