// Package appstatus defines the applicant status state machine.
//
// Valid status graph:
//
//	applied ──► shortlist
//	   │
//	   ├──────► maybe
//	   │
//	   └──────► reject
//
// shortlist, maybe, and reject are terminal; applied is never re-entered.
package appstatus

import "fmt"

// Status values stored on an Applicant.
type Status string

const (
	StatusApplied   Status = "applied"
	StatusShortlist Status = "shortlist"
	StatusMaybe     Status = "maybe"
	StatusReject    Status = "reject"
)

// Initial is the status of a new application.
const Initial = StatusApplied

var validTransitions = map[Status][]Status{
	StatusApplied: {StatusShortlist, StatusMaybe, StatusReject},
}

// ParseStatus converts a raw string to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusApplied, StatusShortlist, StatusMaybe, StatusReject:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// ParseDecision accepts only the statuses a recruiter may set.
func ParseDecision(s string) (Status, error) {
	st, err := ParseStatus(s)
	if err != nil || st == StatusApplied {
		return "", fmt.Errorf("invalid decision %q: must be shortlist, maybe, or reject", s)
	}
	return st, nil
}

// IsTransitionAllowed reports whether from → to is permitted.
func IsTransitionAllowed(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s has no outgoing transitions.
func IsTerminal(s Status) bool {
	return len(validTransitions[s]) == 0
}

// From lists the statuses from which to is reachable.
func From(to Status) []Status {
	var out []Status
	for from, targets := range validTransitions {
		for _, s := range targets {
			if s == to {
				out = append(out, from)
			}
		}
	}
	return out
}
