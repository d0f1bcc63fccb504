package model

import (
	"fmt"
	"os"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Review is one recorded code review of a module version.
type Review struct {
	Module   string `yaml:"module"`
	Version  string `yaml:"version"`
	Level    string `yaml:"level"` // high, medium, low or negative
	Reviewer string `yaml:"reviewer"`
}

// Issue is a reported problem against a module version.
type Issue struct {
	Module   string `yaml:"module"`
	Version  string `yaml:"version"`
	Reviewer string `yaml:"reviewer"`
	Note     string `yaml:"note"`
}

// TrustStore is the local record of reviews, issues and which reviewers the
// user trusts. It is loaded once at startup and read-only afterwards.
type TrustStore struct {
	Reviews          []Review `yaml:"reviews"`
	Issues           []Issue  `yaml:"issues"`
	TrustedReviewers []string `yaml:"trusted_reviewers"`

	trusted map[string]bool
}

// LoadTrustStore reads a YAML trust store. A missing file is not an error:
// it yields an empty store, under which every dependency evaluates to
// insufficient trust.
func LoadTrustStore(path string) (*TrustStore, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewTrustStore(nil, nil, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read trust store: %w", err)
	}
	var store TrustStore
	if err := yaml.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("failed to parse trust store %s: %w", path, err)
	}
	store.index()
	return &store, nil
}

// NewTrustStore builds a store from in-memory records.
func NewTrustStore(reviews []Review, issues []Issue, trustedReviewers []string) *TrustStore {
	store := &TrustStore{Reviews: reviews, Issues: issues, TrustedReviewers: trustedReviewers}
	store.index()
	return store
}

func (s *TrustStore) index() {
	s.trusted = make(map[string]bool, len(s.TrustedReviewers))
	for _, r := range s.TrustedReviewers {
		s.trusted[r] = true
	}
}

// Evaluation is the trust-store verdict for one module version.
type Evaluation struct {
	Trust         VerificationStatus
	LatestTrusted string
	Reviews       ReviewCount
	Issues        FlagCount
	Owners        FlagCount
}

// Evaluate computes the verdict for one module version. A negative review
// from a trusted reviewer wins over everything; otherwise a positive trusted
// review of the exact version passes, and anything else is insufficient.
func (s *TrustStore) Evaluate(path, version string) Evaluation {
	var ev Evaluation
	ev.Trust = VerificationInsufficient

	reviewers := map[string]bool{}
	for _, r := range s.Reviews {
		if r.Module != path {
			continue
		}
		ev.Reviews.Total++
		reviewers[r.Reviewer] = true
		if r.Version == version {
			ev.Reviews.Version++
		}
		if !s.trusted[r.Reviewer] {
			continue
		}
		switch r.Level {
		case "negative":
			if r.Version == version {
				ev.Trust = VerificationFailed
			}
		case "high", "medium":
			if r.Version == version && ev.Trust != VerificationFailed {
				ev.Trust = VerificationPassed
			}
			if semver.IsValid(r.Version) &&
				(ev.LatestTrusted == "" || semver.Compare(r.Version, ev.LatestTrusted) > 0) {
				ev.LatestTrusted = r.Version
			}
		}
	}

	for reviewer := range reviewers {
		ev.Owners.Total++
		if s.trusted[reviewer] {
			ev.Owners.Trusted++
		}
	}

	for _, issue := range s.Issues {
		if issue.Module != path {
			continue
		}
		ev.Issues.Total++
		if s.trusted[issue.Reviewer] {
			ev.Issues.Trusted++
		}
	}

	return ev
}
