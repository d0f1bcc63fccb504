package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/depvet/depvet/model"
)

// ReportCmd is the kong command for a one-shot plain-text report
type ReportCmd struct {
	targetFlags
}

// Run verifies the module to completion and prints the result table.
// A non-zero number of negative verdicts is reported as an error so the
// exit code is usable in scripts.
func (c ReportCmd) Run() error {
	engine, table, err := c.setup()
	if err != nil {
		return err
	}
	if err := engine.Run(context.Background()); err != nil {
		return err
	}

	snap := table.Snapshot()
	var passed, failed, insufficient, digestBad int
	var totalLoc uint64

	fmt.Printf("%-50s %-14s %-8s %-6s %10s\n", "module", "version", "trust", "digest", "go lines")
	for _, dep := range snap.Deps {
		cd := dep.Computed()
		trust := model.VerificationUnknown.String()
		digest := "-"
		loc := "-"
		if cd != nil {
			trust = cd.Trust.String()
			switch cd.Trust {
			case model.VerificationPassed:
				passed++
			case model.VerificationFailed:
				failed++
			case model.VerificationInsufficient:
				insufficient++
			}
			if cd.DigestOK != nil {
				if *cd.DigestOK {
					digest = "ok"
				} else {
					digest = "BAD"
					digestBad++
				}
			}
			if cd.Loc != nil {
				loc = humanize.Comma(int64(*cd.Loc))
				totalLoc += *cd.Loc
			}
		}
		fmt.Printf("%-50s %-14s %-8s %-6s %10s\n", dep.Path, dep.Version, trust, digest, loc)
	}

	fmt.Printf("\n%d dependencies: %d trusted, %d unreviewed, %d negative, %d digest mismatches, %s lines of Go\n",
		len(snap.Deps), passed, insufficient, failed, digestBad, humanize.Comma(int64(totalLoc)))

	if failed > 0 || digestBad > 0 {
		return fmt.Errorf("%d dependencies failed verification", failed+digestBad)
	}
	return nil
}
