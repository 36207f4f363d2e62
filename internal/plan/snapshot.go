package plan

// Deep-copy helpers. Every value handed out by the engine is a defensive
// snapshot; callers never receive a live reference into stored state, and
// readers only ever observe whole-object replacements.

// Clone returns a deep copy of the plan
func (p Plan) Clone() Plan {
	clone := p
	clone.Sources = cloneStrings(p.Sources)
	clone.Tags = cloneStrings(p.Tags)
	if p.Steps != nil {
		clone.Steps = make([]Step, len(p.Steps))
		for i, step := range p.Steps {
			clone.Steps[i] = step
			clone.Steps[i].DependsOn = cloneStrings(step.DependsOn)
		}
	}
	return clone
}

// Clone returns a deep copy of the selection
func (s Selection) Clone() Selection {
	clone := s
	if s.IDs != nil {
		clone.IDs = append(clone.IDs[:0:0], s.IDs...)
	}
	return clone
}

// Clone returns a deep copy of the preview
func (p Preview) Clone() Preview {
	clone := p
	clone.Files = cloneStrings(p.Files)
	if p.Diffs != nil {
		clone.Diffs = append(clone.Diffs[:0:0], p.Diffs...)
	}
	return clone
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	clone := s
	if s.ActionSpecs != nil {
		clone.ActionSpecs = append(clone.ActionSpecs[:0:0], s.ActionSpecs...)
	}
	clone.Selection = s.Selection.Clone()
	if s.Approvals != nil {
		clone.Approvals = make([]ApprovalRecord, len(s.Approvals))
		for i, record := range s.Approvals {
			clone.Approvals[i] = record
			clone.Approvals[i].Selection = record.Selection.Clone()
		}
	}
	if s.Preview != nil {
		preview := s.Preview.Clone()
		clone.Preview = &preview
	}
	return clone
}

// Clone returns a deep copy of the execution result
func (r ExecutionResult) Clone() ExecutionResult {
	clone := r
	if r.Outcomes != nil {
		clone.Outcomes = append(clone.Outcomes[:0:0], r.Outcomes...)
	}
	return clone
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append(values[:0:0], values...)
}
