package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/felixgeelhaar/greenlight/internal/domain"
	"github.com/felixgeelhaar/greenlight/internal/errors"
	"github.com/felixgeelhaar/greenlight/internal/plan"
)

// schemaVersion is the on-disk document schema version
const schemaVersion = "1.0"

const (
	planFileName  = "plan.json"
	indexFileName = "index.json"
)

// document is the per-plan on-disk record: one directory per plan under the
// plans root, holding the full plan and its lifecycle state.
type document struct {
	Version   string     `json:"version"`
	Plan      plan.Plan  `json:"plan"`
	State     plan.State `json:"state"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// indexDocument is the top-level summary index. It is written after the
// per-plan document, so a missing index entry is recoverable by directory
// scan, while a stale entry pointing at a nonexistent document never occurs.
type indexDocument struct {
	Version       string         `json:"version"`
	Plans         []plan.Summary `json:"plans"`
	CurrentPlanID string         `json:"current_plan_id,omitempty"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// entry is one in-memory plan record
type entry struct {
	plan  plan.Plan
	state plan.State
}

// snapshot is the immutable in-memory view handed to lock-free readers.
// Mutations build a fresh snapshot and swap it in wholesale; no reader ever
// observes a half-updated map.
type snapshot struct {
	entries map[domain.PlanID]entry
	current domain.PlanID
}

// Store is the durable, crash-consistent persistence layer for plans.
// Mutating calls are serialized by the engine's lock; Save additionally
// serializes internally so the store is safe to use standalone in tests.
type Store struct {
	root string

	mu   sync.Mutex
	view atomic.Pointer[snapshot]
}

// New creates a store rooted at the given plans directory
func New(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("plans root cannot be empty")
	}

	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDirectoryFailed, "create plans root", err)
	}

	s := &Store{root: root}
	s.view.Store(&snapshot{entries: map[domain.PlanID]entry{}})
	return s, nil
}

// Root returns the plans root directory
func (s *Store) Root() string {
	return s.root
}

// LoadAll rehydrates every persisted plan into memory. Plans present on disk
// but missing from the index are recovered by directory scan.
func (s *Store) LoadAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := map[domain.PlanID]entry{}

	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileReadFailed, "read plans root", err)
	}

	for _, dirEntry := range dirEntries {
		if !dirEntry.IsDir() {
			continue
		}

		planID, err := domain.ParsePlanID(dirEntry.Name())
		if err != nil {
			continue // unrelated directory
		}

		doc, err := s.readDocument(planID)
		if err != nil {
			return err
		}

		entries[planID] = entry{plan: doc.Plan, state: doc.State}
	}

	current := domain.PlanID("")
	if index, err := s.readIndex(); err == nil && index.CurrentPlanID != "" {
		if id, err := domain.ParsePlanID(index.CurrentPlanID); err == nil {
			if _, ok := entries[id]; ok {
				current = id
			}
		}
	}

	s.view.Store(&snapshot{entries: entries, current: current})
	return nil
}

// Save durably persists one plan's document and refreshes the index. The
// in-memory view is only republished after both writes succeed, so no caller
// observes a mutation that was not also persisted.
func (s *Store) Save(p plan.Plan, state plan.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := document{
		Version:   schemaVersion,
		Plan:      p,
		State:     state,
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.writeDocument(doc); err != nil {
		return err
	}

	view := s.view.Load()
	next := &snapshot{
		entries: make(map[domain.PlanID]entry, len(view.entries)+1),
		current: view.current,
	}
	for id, e := range view.entries {
		next.entries[id] = e
	}
	next.entries[p.ID] = entry{plan: p.Clone(), state: state.Clone()}

	if err := s.writeIndex(next); err != nil {
		return err
	}

	s.view.Store(next)
	return nil
}

// SetCurrent marks a plan as the current one and persists the index
func (s *Store) SetCurrent(planID domain.PlanID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.view.Load()
	if _, ok := view.entries[planID]; !ok {
		return errors.NewPlanNotFoundError(planID.String())
	}

	next := &snapshot{entries: view.entries, current: planID}
	if err := s.writeIndex(next); err != nil {
		return err
	}

	s.view.Store(next)
	return nil
}

// Get returns a defensive snapshot of one plan. Lock-free.
func (s *Store) Get(planID domain.PlanID) (plan.Plan, plan.State, bool) {
	view := s.view.Load()
	e, ok := view.entries[planID]
	if !ok {
		return plan.Plan{}, plan.State{}, false
	}
	return e.plan.Clone(), e.state.Clone(), true
}

// Current returns the id of the current plan, if one is set. Lock-free.
func (s *Store) Current() (domain.PlanID, bool) {
	view := s.view.Load()
	return view.current, view.current != ""
}

// List returns plan summaries sorted by creation time, newest first. Lock-free.
func (s *Store) List() []plan.Summary {
	view := s.view.Load()
	return summarize(view)
}

// planDir returns the directory holding one plan's document
func (s *Store) planDir(planID domain.PlanID) string {
	return filepath.Join(s.root, planID.String())
}

// writeDocument atomically replaces one plan's document on disk
func (s *Store) writeDocument(doc document) error {
	dir := s.planDir(doc.Plan.ID)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return errors.Wrap(errors.ErrCodeDirectoryFailed, "create plan directory", err).
			WithPlan(doc.Plan.ID.String())
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileMarshal, "marshal plan document", err).
			WithPlan(doc.Plan.ID.String())
	}

	if err := atomicWrite(filepath.Join(dir, planFileName), data); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "write plan document", err).
			WithPlan(doc.Plan.ID.String())
	}
	return nil
}

// readDocument loads one plan's document from disk
func (s *Store) readDocument(planID domain.PlanID) (*document, error) {
	path := filepath.Join(s.planDir(planID), planFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "read plan document", err).
			WithPlan(planID.String())
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileUnmarshal, "parse plan document", err).
			WithPlan(planID.String())
	}

	return &doc, nil
}

// writeIndex atomically replaces the summary index
func (s *Store) writeIndex(view *snapshot) error {
	index := indexDocument{
		Version:       schemaVersion,
		Plans:         summarize(view),
		CurrentPlanID: view.current.String(),
		UpdatedAt:     time.Now().UTC(),
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileMarshal, "marshal plan index", err)
	}

	if err := atomicWrite(filepath.Join(s.root, indexFileName), data); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "write plan index", err)
	}
	return nil
}

// readIndex loads the summary index from disk
func (s *Store) readIndex() (*indexDocument, error) {
	data, err := os.ReadFile(filepath.Join(s.root, indexFileName))
	if err != nil {
		return nil, err
	}

	var index indexDocument
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, err
	}
	return &index, nil
}

// summarize builds the index summary list, newest plans first
func summarize(view *snapshot) []plan.Summary {
	summaries := make([]plan.Summary, 0, len(view.entries))
	for _, e := range view.entries {
		summaries = append(summaries, plan.Summary{
			ID:        e.plan.ID,
			Title:     e.plan.Title,
			Status:    e.state.Status,
			CreatedAt: e.plan.CreatedAt,
			Tags:      append([]string(nil), e.plan.Tags...),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].ID < summaries[j].ID
		}
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries
}

// atomicWrite replaces a file's content via a same-directory temp file and
// rename, so a crash never leaves a partially written document resolvable.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
