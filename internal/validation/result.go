// Package validation checks schedules against deadline, dependency,
// resource, and blackout constraints and explains any violations it finds.
package validation

import (
	"fmt"
	"time"

	"github.com/alexanderramin/paperplan/internal/dates"
)

// Result is the outcome of one validation pass.
type Result struct {
	IsValid    bool
	Violations []Violation
	Metadata   map[string]any
}

// Violation is a single constraint breach carrying only primitives.
type Violation interface {
	// Code identifies the violation kind.
	Code() string
	// Describe renders a one-line human explanation.
	Describe() string
}

// DeadlineViolation reports a submission finishing after its venue deadline.
type DeadlineViolation struct {
	SubmissionID string
	End          time.Time
	Deadline     time.Time
	DaysLate     int
}

func (v DeadlineViolation) Code() string { return "deadline" }

func (v DeadlineViolation) Describe() string {
	return fmt.Sprintf("%s ends %s, %d days past deadline %s",
		v.SubmissionID, v.End.Format(dates.Layout), v.DaysLate, v.Deadline.Format(dates.Layout))
}

// MissingParentViolation reports a scheduled submission whose parent is not
// scheduled.
type MissingParentViolation struct {
	SubmissionID string
	DependencyID string
}

func (v MissingParentViolation) Code() string { return "missing_parent" }

func (v MissingParentViolation) Describe() string {
	return fmt.Sprintf("%s depends on %s, which is not scheduled", v.SubmissionID, v.DependencyID)
}

// UnknownDependencyViolation reports a depends_on entry that references no
// known submission.
type UnknownDependencyViolation struct {
	SubmissionID string
	DependencyID string
}

func (v UnknownDependencyViolation) Code() string { return "unknown_dependency" }

func (v UnknownDependencyViolation) Describe() string {
	return fmt.Sprintf("%s depends on unknown submission %s", v.SubmissionID, v.DependencyID)
}

// OrderingViolation reports a child starting before its parent's end plus
// lead time.
type OrderingViolation struct {
	SubmissionID  string
	DependencyID  string
	Start         time.Time
	RequiredStart time.Time
}

func (v OrderingViolation) Code() string { return "ordering" }

func (v OrderingViolation) Describe() string {
	return fmt.Sprintf("%s starts %s but must not start before %s (after %s)",
		v.SubmissionID, v.Start.Format(dates.Layout), v.RequiredStart.Format(dates.Layout), v.DependencyID)
}

// ResourceViolation reports a day whose concurrent load exceeds the cap.
type ResourceViolation struct {
	Day   time.Time
	Load  int
	Limit int
}

func (v ResourceViolation) Code() string { return "resource" }

func (v ResourceViolation) Describe() string {
	return fmt.Sprintf("%d concurrent submissions on %s exceeds limit %d",
		v.Load, v.Day.Format(dates.Layout), v.Limit)
}

// BlackoutViolation reports an interval starting on a blackout day.
type BlackoutViolation struct {
	SubmissionID string
	Day          time.Time
}

func (v BlackoutViolation) Code() string { return "blackout" }

func (v BlackoutViolation) Describe() string {
	return fmt.Sprintf("%s starts on blackout day %s", v.SubmissionID, v.Day.Format(dates.Layout))
}

func newResult() *Result {
	return &Result{IsValid: true, Metadata: make(map[string]any)}
}

func (r *Result) add(v Violation) {
	r.Violations = append(r.Violations, v)
	r.IsValid = false
}
