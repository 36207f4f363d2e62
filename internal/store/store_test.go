package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/greenlight/internal/domain"
	"github.com/felixgeelhaar/greenlight/internal/errors"
	"github.com/felixgeelhaar/greenlight/internal/plan"
)

func newTestPlan(title string, createdAt time.Time) plan.Plan {
	return plan.Plan{
		ID:        domain.NewPlanID(),
		Title:     title,
		Content:   title + " body",
		CreatedAt: createdAt,
		Version:   1,
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	p := newTestPlan("first plan", time.Now().UTC())
	state := plan.NewState()

	require.NoError(t, s.Save(p, state))

	gotPlan, gotState, ok := s.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, p.ID, gotPlan.ID)
	assert.Equal(t, "first plan", gotPlan.Title)
	assert.Equal(t, domain.StatusProposed, gotState.Status)

	_, _, ok = s.Get(domain.NewPlanID())
	assert.False(t, ok)
}

func TestStore_GetReturnsDefensiveCopy(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	p := newTestPlan("mutation test", time.Now().UTC())
	p.Tags = []string{"a"}
	require.NoError(t, s.Save(p, plan.NewState()))

	got, state, ok := s.Get(p.ID)
	require.True(t, ok)

	got.Tags[0] = "mutated"
	got.Title = "mutated"
	state.Status = domain.StatusCompleted

	again, againState, ok := s.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, "a", again.Tags[0])
	assert.Equal(t, "mutation test", again.Title)
	assert.Equal(t, domain.StatusProposed, againState.Status)
}

func TestStore_RoundTrip(t *testing.T) {
	root := t.TempDir()

	s, err := New(root)
	require.NoError(t, err)

	p := newTestPlan("persisted plan", time.Now().UTC().Truncate(time.Second))
	state := plan.NewState()
	state.Status = domain.StatusPendingReview
	state.ActionSpecs = []plan.ActionSpecExt{
		{
			ID: domain.NewSpecID(),
			Spec: plan.ActionSpec{
				Kind:    domain.KindCreate,
				Path:    "/workspace/a.txt",
				Content: "hello",
			},
			Risk:      domain.RiskLow,
			Validated: true,
		},
	}
	state.Selection = plan.SelectAll()
	require.NoError(t, s.Save(p, state))
	require.NoError(t, s.SetCurrent(p.ID))

	// A fresh store over the same root sees everything.
	reloaded, err := New(root)
	require.NoError(t, err)
	require.NoError(t, reloaded.LoadAll())

	gotPlan, gotState, ok := reloaded.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, p.Title, gotPlan.Title)
	assert.True(t, p.CreatedAt.Equal(gotPlan.CreatedAt))
	assert.Equal(t, domain.StatusPendingReview, gotState.Status)
	require.Len(t, gotState.ActionSpecs, 1)
	assert.Equal(t, state.ActionSpecs[0].ID, gotState.ActionSpecs[0].ID)
	assert.Equal(t, domain.KindCreate, gotState.ActionSpecs[0].Spec.Kind)
	assert.True(t, gotState.Selection.All)

	current, ok := reloaded.Current()
	require.True(t, ok)
	assert.Equal(t, p.ID, current)
}

func TestStore_LoadAllRecoversWithoutIndex(t *testing.T) {
	root := t.TempDir()

	s, err := New(root)
	require.NoError(t, err)

	p := newTestPlan("orphaned plan", time.Now().UTC())
	require.NoError(t, s.Save(p, plan.NewState()))

	// Simulate an index lost between the document write and the index write.
	require.NoError(t, os.Remove(filepath.Join(root, "index.json")))

	reloaded, err := New(root)
	require.NoError(t, err)
	require.NoError(t, reloaded.LoadAll())

	_, _, ok := reloaded.Get(p.ID)
	assert.True(t, ok, "plan must be recovered by directory scan")

	_, ok = reloaded.Current()
	assert.False(t, ok, "no current plan without an index")
}

func TestStore_LoadAllIgnoresUnrelatedDirs(t *testing.T) {
	root := t.TempDir()

	s, err := New(root)
	require.NoError(t, err)

	p := newTestPlan("real plan", time.Now().UTC())
	require.NoError(t, s.Save(p, plan.NewState()))

	require.NoError(t, os.MkdirAll(filepath.Join(root, "not-a-plan"), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0640))

	reloaded, err := New(root)
	require.NoError(t, err)
	require.NoError(t, reloaded.LoadAll())

	assert.Len(t, reloaded.List(), 1)
}

func TestStore_SetCurrentUnknownPlan(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	err = s.SetCurrent(domain.NewPlanID())
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestStore_ListOrdering(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	base := time.Now().UTC()
	oldest := newTestPlan("oldest", base.Add(-2*time.Hour))
	middle := newTestPlan("middle", base.Add(-time.Hour))
	newest := newTestPlan("newest", base)

	for _, p := range []plan.Plan{middle, newest, oldest} {
		require.NoError(t, s.Save(p, plan.NewState()))
	}

	summaries := s.List()
	require.Len(t, summaries, 3)
	assert.Equal(t, "newest", summaries[0].Title)
	assert.Equal(t, "middle", summaries[1].Title)
	assert.Equal(t, "oldest", summaries[2].Title)
}

func TestStore_SaveOverwritesExisting(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	p := newTestPlan("versioned", time.Now().UTC())
	require.NoError(t, s.Save(p, plan.NewState()))

	p.Version = 2
	state := plan.NewState()
	state.Status = domain.StatusPendingReview
	require.NoError(t, s.Save(p, state))

	gotPlan, gotState, ok := s.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, 2, gotPlan.Version)
	assert.Equal(t, domain.StatusPendingReview, gotState.Status)
	assert.Len(t, s.List(), 1)
}

func TestNew_EmptyRoot(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestAtomicWrite_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.json")

	require.NoError(t, atomicWrite(target, []byte(`{"a":1}`)))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
