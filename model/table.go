package model

import "sync"

// Snapshot is what the viewer sees on one refresh tick: the row sequence as
// of the snapshot and the status at the same instant. The slice is a copy,
// the *Dep handles are shared; rows update only through their atomic
// computed pointer, so a snapshot is safe to read without locking.
type Snapshot struct {
	Deps   []*Dep
	Status ComputationStatus
}

// DepTable owns the append-only dependency rows and the computation status.
// The background engine writes, the viewer and the HTTP service read through
// Snapshot. Rows are never removed or reordered within a session.
type DepTable struct {
	mu     sync.Mutex
	deps   []*Dep
	status ComputationStatus
}

// NewDepTable returns an empty table in the New phase.
func NewDepTable() *DepTable {
	return &DepTable{}
}

// Append adds rows at the end of the sequence.
func (t *DepTable) Append(deps ...*Dep) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deps = append(t.deps, deps...)
}

// Len reports the current number of rows.
func (t *DepTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.deps)
}

// Find returns the row for a module path.
func (t *DepTable) Find(path string) (*Dep, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, d := range t.deps {
		if d.Path == path {
			return d, nil
		}
	}
	return nil, ErrUnknownDep
}

// SetStatus records a new computation status. Within-phase progress updates
// are always accepted; a phase earlier than the one already reached is a
// data-source contract violation and is rejected with ErrStatusRegression,
// keeping the last valid status.
func (t *DepTable) SetStatus(s ComputationStatus) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s.Phase < t.status.Phase {
		return ErrStatusRegression
	}
	t.status = s
	return nil
}

// Status returns the current status value.
func (t *DepTable) Status() ComputationStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Snapshot returns a consistent view of rows and status.
func (t *DepTable) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	deps := make([]*Dep, len(t.deps))
	copy(deps, t.deps)
	return Snapshot{Deps: deps, Status: t.status}
}
