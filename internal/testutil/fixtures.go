// Package testutil provides shared fixtures for engine tests: a fixed
// reference day and config builders mirroring common planning shapes.
package testutil

import (
	"time"

	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/dates"
	"github.com/alexanderramin/paperplan/internal/domain"
)

// Today is the fixed reference day used across engine tests: a Wednesday,
// so nearby days are working days.
var Today = time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

// Day returns Today shifted by n calendar days.
func Day(n int) time.Time {
	return Today.AddDate(0, 0, n)
}

// ConfigBuilder assembles a Config for tests.
type ConfigBuilder struct {
	doc config.Document
}

// NewConfig starts a builder with 30-day papers, 7-day abstracts, and a
// concurrency cap of 2.
func NewConfig() *ConfigBuilder {
	paper := 30
	abstract := 7
	concurrent := 2
	return &ConfigBuilder{doc: config.Document{
		MinPaperLeadTimeDays:     &paper,
		MinAbstractLeadTimeDays:  &abstract,
		MaxConcurrentSubmissions: &concurrent,
	}}
}

// PaperLeadTime overrides the paper duration in days.
func (b *ConfigBuilder) PaperLeadTime(days int) *ConfigBuilder {
	b.doc.MinPaperLeadTimeDays = &days
	return b
}

// AbstractLeadTime overrides the abstract duration in days.
func (b *ConfigBuilder) AbstractLeadTime(days int) *ConfigBuilder {
	b.doc.MinAbstractLeadTimeDays = &days
	return b
}

// MaxConcurrent overrides the concurrency cap.
func (b *ConfigBuilder) MaxConcurrent(n int) *ConfigBuilder {
	b.doc.MaxConcurrentSubmissions = &n
	return b
}

// Blackout adds blackout days.
func (b *ConfigBuilder) Blackout(days ...time.Time) *ConfigBuilder {
	for _, d := range days {
		b.doc.BlackoutDates = append(b.doc.BlackoutDates, d.Format(dates.Layout))
	}
	return b
}

// Options sets the scheduling option flags.
func (b *ConfigBuilder) Options(early bool, advanceDays int, blackoutPeriods bool) *ConfigBuilder {
	b.doc.SchedulingOptions = &config.OptionsDoc{
		EnableEarlyAbstractScheduling: &early,
		AbstractAdvanceDays:           &advanceDays,
		EnableBlackoutPeriods:         &blackoutPeriods,
	}
	return b
}

// Weight sets one priority weight.
func (b *ConfigBuilder) Weight(key domain.PriorityKey, w float64) *ConfigBuilder {
	if b.doc.PriorityWeights == nil {
		b.doc.PriorityWeights = make(map[string]float64)
	}
	b.doc.PriorityWeights[string(key)] = w
	return b
}

// Conference adds a venue with the given per-kind deadlines.
func (b *ConfigBuilder) Conference(id string, kind domain.ConferenceKind, deadlines map[domain.SubmissionKind]time.Time) *ConfigBuilder {
	doc := config.ConferenceDoc{
		ID:        id,
		Name:      id,
		Kind:      string(kind),
		Deadlines: make(map[string]string, len(deadlines)),
	}
	for k, d := range deadlines {
		doc.Deadlines[string(k)] = d.Format(dates.Layout)
	}
	b.doc.Conferences = append(b.doc.Conferences, doc)
	return b
}

// SubmissionOption customizes one submission fixture.
type SubmissionOption func(*config.SubmissionDoc)

// At targets a conference.
func At(conferenceID string) SubmissionOption {
	return func(doc *config.SubmissionDoc) { doc.ConferenceID = &conferenceID }
}

// DependsOn adds parent ids.
func DependsOn(ids ...string) SubmissionOption {
	return func(doc *config.SubmissionDoc) { doc.DependsOn = append(doc.DependsOn, ids...) }
}

// LeadTime sets the gap after parents in days.
func LeadTime(days int) SubmissionOption {
	return func(doc *config.SubmissionDoc) { doc.LeadTimeFromParents = &days }
}

// Engineering flags the submission as engineering work.
func Engineering() SubmissionOption {
	return func(doc *config.SubmissionDoc) { t := true; doc.Engineering = &t }
}

// NotBefore sets the earliest start date.
func NotBefore(day time.Time) SubmissionOption {
	return func(doc *config.SubmissionDoc) {
		s := day.Format(dates.Layout)
		doc.EarliestStartDate = &s
	}
}

// Workflow sets the submission workflow.
func Workflow(w domain.Workflow) SubmissionOption {
	return func(doc *config.SubmissionDoc) { doc.SubmissionWorkflow = string(w) }
}

// Submission adds a submission of the given kind.
func (b *ConfigBuilder) Submission(id string, kind domain.SubmissionKind, opts ...SubmissionOption) *ConfigBuilder {
	doc := config.SubmissionDoc{ID: id, Title: id, Kind: string(kind)}
	for _, opt := range opts {
		opt(&doc)
	}
	b.doc.Submissions = append(b.doc.Submissions, doc)
	return b
}

// Document returns the built document without converting it.
func (b *ConfigBuilder) Document() *config.Document {
	return &b.doc
}

// Build validates and converts the document, panicking on fixture errors so
// tests fail loudly.
func (b *ConfigBuilder) Build() *config.Config {
	if errs := config.ValidateDocument(&b.doc); len(errs) > 0 {
		panic(errs[0])
	}
	cfg, err := config.Build(&b.doc)
	if err != nil {
		panic(err)
	}
	return cfg
}
