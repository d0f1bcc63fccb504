package service

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/depvet/depvet/model"
)

// VetService exposes the verification table over HTTP. It reads snapshots
// only; the engine keeps writing while requests are served.
type VetService struct {
	table *model.DepTable
	dir   string
}

// NewVetService creates a service over the given table. dir is the module
// directory being verified, reported in /status.
func NewVetService(table *model.DepTable, dir string) *VetService {
	return &VetService{table: table, dir: dir}
}

// CreateRouter creates a new router with all routes configured.
// If quiet is true, disables logging middleware (useful for embedded servers)
func CreateRouter(s *VetService, quiet bool) *mux.Router {
	r := mux.NewRouter()
	s.SetupRoutes(r)
	r.Use(CORSMiddleware)
	if !quiet {
		r.Use(LoggingMiddleware)
	}
	return r
}

// SetupRoutes configures all HTTP routes
func (s *VetService) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/status", s.handleStatus).Methods("GET")
	r.HandleFunc("/report", s.handleReport).Methods("GET")
	r.HandleFunc("/deps", s.handleDeps).Methods("GET")
	r.HandleFunc("/deps/{module:.+}", s.handleDepInfo).Methods("GET")
}

// StartServer runs the HTTP server until it fails or is killed.
func StartServer(s *VetService, addr string) error {
	router := CreateRouter(s, false)
	fmt.Printf("Serving verification API on %s\n", addr)
	return http.ListenAndServe(addr, router)
}

// statusJSON is the /status response shape.
type statusJSON struct {
	Dir      string         `json:"dir"`
	Phase    string         `json:"phase"`
	Progress model.Progress `json:"progress"`
	Deps     int            `json:"deps"`
}

// depJSON is one dependency row as served over HTTP.
type depJSON struct {
	Module        string            `json:"module"`
	Version       string            `json:"version"`
	Trust         string            `json:"trust"`
	DigestOK      *bool             `json:"digest_ok,omitempty"`
	Loc           *uint64           `json:"loc,omitempty"`
	LatestTrusted string            `json:"latest_trusted,omitempty"`
	Reviews       model.ReviewCount `json:"reviews"`
	Issues        model.FlagCount   `json:"issues"`
	Owners        model.FlagCount   `json:"owners"`
}

func toDepJSON(d *model.Dep) depJSON {
	out := depJSON{
		Module:  d.Path,
		Version: d.Version,
		Trust:   model.VerificationUnknown.String(),
	}
	if cd := d.Computed(); cd != nil {
		out.Trust = cd.Trust.String()
		out.DigestOK = cd.DigestOK
		out.Loc = cd.Loc
		out.LatestTrusted = cd.LatestTrusted
		out.Reviews = cd.Reviews
		out.Issues = cd.Issues
		out.Owners = cd.Owners
	}
	return out
}

// handleStatus returns the computation phase and progress.
func (s *VetService) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.table.Snapshot()
	WriteJSON(w, http.StatusOK, statusJSON{
		Dir:      s.dir,
		Phase:    snap.Status.Phase.String(),
		Progress: snap.Status.Progress,
		Deps:     len(snap.Deps),
	})
}

// handleDeps returns all rows scanned so far.
func (s *VetService) handleDeps(w http.ResponseWriter, r *http.Request) {
	snap := s.table.Snapshot()
	deps := make([]depJSON, 0, len(snap.Deps))
	for _, d := range snap.Deps {
		deps = append(deps, toDepJSON(d))
	}
	WriteJSON(w, http.StatusOK, deps)
}

// handleDepInfo returns a single row by module path.
func (s *VetService) handleDepInfo(w http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["module"]
	dep, err := s.table.Find(path)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("unknown dependency: %s", path))
		return
	}
	WriteJSON(w, http.StatusOK, toDepJSON(dep))
}

// reportJSON aggregates the table for /report.
type reportJSON struct {
	Phase        string `json:"phase"`
	Deps         int    `json:"deps"`
	Passed       int    `json:"passed"`
	Failed       int    `json:"failed"`
	Insufficient int    `json:"insufficient"`
	DigestBad    int    `json:"digest_bad"`
	TotalLoc     uint64 `json:"total_loc"`
}

// handleReport returns aggregate verification counts.
func (s *VetService) handleReport(w http.ResponseWriter, r *http.Request) {
	snap := s.table.Snapshot()
	report := reportJSON{Phase: snap.Status.Phase.String(), Deps: len(snap.Deps)}
	for _, d := range snap.Deps {
		cd := d.Computed()
		if cd == nil {
			continue
		}
		switch cd.Trust {
		case model.VerificationPassed:
			report.Passed++
		case model.VerificationFailed:
			report.Failed++
		case model.VerificationInsufficient:
			report.Insufficient++
		}
		if cd.DigestOK != nil && !*cd.DigestOK {
			report.DigestBad++
		}
		if cd.Loc != nil {
			report.TotalLoc += *cd.Loc
		}
	}
	WriteJSON(w, http.StatusOK, report)
}
