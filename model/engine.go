package model

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/sumdb/dirhash"
)

// EngineConfig selects what to verify.
type EngineConfig struct {
	// Dir is the module directory containing go.mod.
	Dir string
	// ModCache overrides the module cache location; empty means GOMODCACHE,
	// then GOPATH/pkg/mod, then ~/go/pkg/mod.
	ModCache string
}

// Engine is the background producer: it scans every requirement of the
// target module and evaluates the trust store, appending rows and advancing
// the computation status as it goes. The viewer only ever observes it
// through DepTable snapshots.
type Engine struct {
	table    *DepTable
	store    *TrustStore
	reqs     []module.Version
	sums     map[module.Version]string
	modCache string
	main     string
}

// NewEngine parses go.mod and go.sum in cfg.Dir and prepares a run over all
// requirements. It does not touch the module cache yet.
func NewEngine(cfg EngineConfig, table *DepTable, store *TrustStore) (*Engine, error) {
	gomod := filepath.Join(cfg.Dir, "go.mod")
	data, err := os.ReadFile(gomod)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNoGoMod, cfg.Dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", gomod, err)
	}
	mf, err := modfile.Parse(gomod, data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", gomod, err)
	}

	reqs := make([]module.Version, 0, len(mf.Require))
	for _, r := range mf.Require {
		reqs = append(reqs, r.Mod)
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].Path < reqs[j].Path })

	sums, err := readGoSum(filepath.Join(cfg.Dir, "go.sum"))
	if err != nil {
		return nil, err
	}

	main := ""
	if mf.Module != nil {
		main = mf.Module.Mod.Path
	}

	return &Engine{
		table:    table,
		store:    store,
		reqs:     reqs,
		sums:     sums,
		modCache: resolveModCache(cfg.ModCache),
		main:     main,
	}, nil
}

// MainModule returns the path of the module under verification.
func (e *Engine) MainModule() string {
	return e.main
}

// Table returns the table the engine writes into.
func (e *Engine) Table() *DepTable {
	return e.table
}

// Run executes both phases. Rows appear in the table as soon as they are
// scanned; trust verdicts land during the second phase. Cancelling the
// context stops between dependencies, leaving partial results in place.
func (e *Engine) Run(ctx context.Context) error {
	total := len(e.reqs)
	e.setStatus(ComputationStatus{Phase: PhaseScanning, Progress: Progress{Total: total}})

	deps := make([]*Dep, 0, total)
	for i, req := range e.reqs {
		if err := ctx.Err(); err != nil {
			return err
		}
		dep := e.scan(req)
		deps = append(deps, dep)
		e.table.Append(dep)
		e.setStatus(ComputationStatus{Phase: PhaseScanning, Progress: Progress{Done: i + 1, Total: total}})
	}

	e.setStatus(ComputationStatus{Phase: PhaseEvaluating, Progress: Progress{Total: total}})
	for i, dep := range deps {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev := e.store.Evaluate(dep.Path, dep.Version)
		next := *dep.Computed()
		next.Trust = ev.Trust
		next.LatestTrusted = ev.LatestTrusted
		next.Reviews = ev.Reviews
		next.Issues = ev.Issues
		next.Owners = ev.Owners
		dep.SetComputed(&next)
		e.setStatus(ComputationStatus{Phase: PhaseEvaluating, Progress: Progress{Done: i + 1, Total: total}})
	}

	e.setStatus(ComputationStatus{Phase: PhaseDone, Progress: Progress{Done: total, Total: total}})
	return nil
}

func (e *Engine) setStatus(s ComputationStatus) {
	if err := e.table.SetStatus(s); err != nil {
		log.Printf("ignoring status update %v: %v", s.Phase, err)
	}
}

// scan inspects one requirement in the module cache: go.sum digest check and
// line count. Missing cache entries are not an error, the row just stays
// without digest and line data.
func (e *Engine) scan(req module.Version) *Dep {
	dep := NewDep(req.Path, req.Version)
	cd := &ComputedDep{}
	dep.SetComputed(cd)

	escaped, err := module.EscapePath(req.Path)
	if err != nil {
		return dep
	}
	dir := filepath.Join(e.modCache, filepath.FromSlash(escaped)+"@"+req.Version)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return dep
	}

	loc := countGoLines(dir)
	cd.Loc = &loc

	if want, ok := e.sums[req]; ok {
		got, err := dirhash.HashDir(dir, req.Path+"@"+req.Version, dirhash.Hash1)
		match := err == nil && got == want
		cd.DigestOK = &match
	}
	return dep
}

// countGoLines counts source lines across all .go files under dir.
func countGoLines(dir string) uint64 {
	var loc uint64
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), ".go") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		scanner := bufio.NewScanner(bytes.NewReader(data))
		scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
		for scanner.Scan() {
			loc++
		}
		return nil
	})
	return loc
}

// readGoSum parses go.sum into module->h1 digest entries. The "/go.mod"
// hash lines cover only the go.mod file and are skipped. A missing go.sum
// yields an empty map.
func readGoSum(path string) (map[module.Version]string, error) {
	sums := map[module.Version]string{}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return sums, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 3 || strings.HasSuffix(fields[1], "/go.mod") {
			continue
		}
		sums[module.Version{Path: fields[0], Version: fields[1]}] = fields[2]
	}
	return sums, nil
}

func resolveModCache(override string) string {
	if override != "" {
		return override
	}
	if env := os.Getenv("GOMODCACHE"); env != "" {
		return env
	}
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		return filepath.Join(gopath, "pkg", "mod")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "go", "pkg", "mod")
}
