package exitcode

import (
	stderrors "errors"
	"testing"

	"github.com/felixgeelhaar/greenlight/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, Success},
		{"plain error", stderrors.New("boom"), GeneralError},
		{"not found", errors.NewPlanNotFoundError("p1"), NotFound},
		{"illegal state", errors.NewIllegalStateError("p1", "execute", "approved", "proposed"), IllegalState},
		{"preflight changed", errors.NewPreflightChangedError("p1", "s1", "/tmp/a.txt"), PreflightChanged},
		{"invalid selection", errors.NewInvalidSelectionError("p1", []string{"s9"}), UsageError},
		{"other engine error", errors.New(errors.ErrCodeFileWriteFailed, "disk full"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.want {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
