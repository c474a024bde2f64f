package domain

import (
	"sort"
	"time"
)

// Conference is a submission venue with per-kind deadlines. A kind absent
// from Deadlines is not accepted there.
type Conference struct {
	ID         string
	Name       string
	Kind       ConferenceKind
	Recurrence Recurrence
	Deadlines  map[SubmissionKind]time.Time
}

// DeadlineFor returns the deadline for the given kind, if declared.
func (c *Conference) DeadlineFor(kind SubmissionKind) (time.Time, bool) {
	d, ok := c.Deadlines[kind]
	return d, ok
}

// Accepts reports whether the conference declares a deadline for kind.
func (c *Conference) Accepts(kind SubmissionKind) bool {
	_, ok := c.Deadlines[kind]
	return ok
}

// LatestDeadline returns the latest declared deadline across all kinds.
func (c *Conference) LatestDeadline() (time.Time, bool) {
	var latest time.Time
	found := false
	for _, kind := range c.DeadlineKinds() {
		d := c.Deadlines[kind]
		if !found || d.After(latest) {
			latest = d
			found = true
		}
	}
	return latest, found
}

// DeadlineKinds returns the declared kinds in deterministic order.
func (c *Conference) DeadlineKinds() []SubmissionKind {
	kinds := make([]SubmissionKind, 0, len(c.Deadlines))
	for k := range c.Deadlines {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
