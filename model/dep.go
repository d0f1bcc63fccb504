package model

import "sync/atomic"

// VerificationStatus is the trust verdict for one dependency.
type VerificationStatus int

const (
	// VerificationUnknown means trust evaluation has not run yet.
	VerificationUnknown VerificationStatus = iota
	// VerificationPassed means a trusted reviewer approved this version.
	VerificationPassed
	// VerificationInsufficient means no trusted review covers this version.
	VerificationInsufficient
	// VerificationFailed means a trusted reviewer flagged this version.
	VerificationFailed
)

func (v VerificationStatus) String() string {
	switch v {
	case VerificationPassed:
		return "high"
	case VerificationInsufficient:
		return "none"
	case VerificationFailed:
		return "negative"
	default:
		return "unknown"
	}
}

// ReviewCount counts reviews for the exact version and for the module as a
// whole.
type ReviewCount struct {
	Version uint64 `json:"version"`
	Total   uint64 `json:"total"`
}

// FlagCount counts entries from trusted reviewers against all entries.
type FlagCount struct {
	Trusted uint64 `json:"trusted"`
	Total   uint64 `json:"total"`
}

// ComputedDep holds everything the background computation derives for one
// dependency. Values are immutable once published: the engine builds a new
// ComputedDep and swaps the pointer instead of writing into a shared one.
type ComputedDep struct {
	// DigestOK is nil until the module cache digest was compared with
	// go.sum, then true on match.
	DigestOK *bool
	// Loc is the number of Go source lines in the module, nil when the
	// module is not in the cache.
	Loc *uint64

	Trust         VerificationStatus
	LatestTrusted string
	Reviews       ReviewCount
	Issues        FlagCount
	Owners        FlagCount
}

// Dep is one dependency row. Path and Version are fixed at construction;
// the computed part arrives later and is read through an atomic pointer so
// the render loop never observes a half-written update.
type Dep struct {
	Path    string
	Version string

	computed atomic.Pointer[ComputedDep]
}

// NewDep returns a dependency row with no computed data yet.
func NewDep(path, version string) *Dep {
	return &Dep{Path: path, Version: version}
}

// Computed returns the latest published computation result, nil if none.
func (d *Dep) Computed() *ComputedDep {
	return d.computed.Load()
}

// SetComputed publishes a new computation result. The caller must not
// modify cd afterwards.
func (d *Dep) SetComputed(cd *ComputedDep) {
	d.computed.Store(cd)
}
