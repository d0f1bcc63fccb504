package model

// Phase is one stage of the background computation. Phases only ever move
// forward within a session.
type Phase int

const (
	// PhaseNew means the computation has not produced anything yet; the
	// viewer shows a placeholder instead of rows.
	PhaseNew Phase = iota
	// PhaseScanning is the module-cache scan (digests, lines of code).
	PhaseScanning
	// PhaseEvaluating is the trust-store evaluation.
	PhaseEvaluating
	// PhaseDone means the computation finished.
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseNew:
		return "new"
	case PhaseScanning:
		return "scanning"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Progress is a done/total counter for the current phase. Total may be zero
// transiently before the source has an estimate.
type Progress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// ComputationStatus is the snapshot of the computation the viewer reads on
// every refresh. It is a plain value; readers always get a full copy.
type ComputationStatus struct {
	Phase    Phase    `json:"phase"`
	Progress Progress `json:"progress"`
}

// BeforeRows reports whether the table should still show the preparing
// placeholder instead of live rows.
func (s ComputationStatus) BeforeRows() bool {
	return s.Phase == PhaseNew
}
