// Package config loads and validates planning configuration documents and
// converts them into the immutable Config consumed by the engine.
package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/paperplan/internal/constants"
	"github.com/alexanderramin/paperplan/internal/dates"
	"github.com/alexanderramin/paperplan/internal/domain"
)

// SchedulingOptions are the recognized optional behavior flags, with
// defaults applied.
type SchedulingOptions struct {
	EnableEarlyAbstractScheduling bool
	AbstractAdvanceDays           int
	EnableBlackoutPeriods         bool
}

// Config is the immutable input of one planning run.
type Config struct {
	Submissions []*domain.Submission
	Conferences []*domain.Conference

	MinPaperLeadTimeDays     int
	MinAbstractLeadTimeDays  int
	MaxConcurrentSubmissions int

	BlackoutDates   dates.Set
	Options         SchedulingOptions
	PriorityWeights map[domain.PriorityKey]float64

	subByID  map[string]*domain.Submission
	confByID map[string]*domain.Conference
}

// Defaults mirrored from the original system's default configuration.
const (
	defaultPaperLeadTimeDays    = 90
	defaultAbstractLeadTimeDays = 30
	defaultMaxConcurrent        = 3
)

// Build converts a validated document into a Config. Call ValidateDocument
// first; Build reports only conversion-level failures such as malformed
// dates.
func Build(doc *Document) (*Config, error) {
	cfg := &Config{
		MinPaperLeadTimeDays:     domain.IntFromPtrWithDefault(defaultPaperLeadTimeDays, doc.MinPaperLeadTimeDays),
		MinAbstractLeadTimeDays:  domain.IntFromPtrWithDefault(defaultAbstractLeadTimeDays, doc.MinAbstractLeadTimeDays),
		MaxConcurrentSubmissions: domain.IntFromPtrWithDefault(defaultMaxConcurrent, doc.MaxConcurrentSubmissions),
		BlackoutDates:            dates.NewSet(),
		PriorityWeights:          defaultPriorityWeights(),
		subByID:                  make(map[string]*domain.Submission),
		confByID:                 make(map[string]*domain.Conference),
	}

	for i, value := range doc.BlackoutDates {
		d, err := dates.Parse(fmt.Sprintf("blackout_dates[%d]", i), value)
		if err != nil {
			return nil, err
		}
		cfg.BlackoutDates[d] = struct{}{}
	}

	opts := doc.SchedulingOptions
	if opts == nil {
		opts = &OptionsDoc{}
	}
	cfg.Options = SchedulingOptions{
		EnableEarlyAbstractScheduling: domain.BoolFromPtrWithDefault(false, opts.EnableEarlyAbstractScheduling),
		AbstractAdvanceDays:           domain.IntFromPtrWithDefault(constants.Scheduling.AbstractAdvanceDays, opts.AbstractAdvanceDays),
		EnableBlackoutPeriods:         domain.BoolFromPtrWithDefault(false, opts.EnableBlackoutPeriods),
	}

	for key, w := range doc.PriorityWeights {
		for _, k := range domain.AllPriorityKeys() {
			if string(k) == key {
				cfg.PriorityWeights[k] = w
			}
		}
	}

	for _, cd := range doc.Conferences {
		conf, err := buildConference(&cd)
		if err != nil {
			return nil, err
		}
		cfg.Conferences = append(cfg.Conferences, conf)
		cfg.confByID[conf.ID] = conf
	}

	for _, sd := range doc.Submissions {
		sub, err := buildSubmission(&sd)
		if err != nil {
			return nil, err
		}
		cfg.Submissions = append(cfg.Submissions, sub)
		cfg.subByID[sub.ID] = sub
	}

	return cfg, nil
}

func buildConference(cd *ConferenceDoc) (*domain.Conference, error) {
	kind, _ := domain.ParseConferenceKind(cd.Kind)
	recurrence := domain.RecurrenceOther
	if cd.Recurrence != "" {
		recurrence, _ = domain.ParseRecurrence(cd.Recurrence)
	}
	conf := &domain.Conference{
		ID:         cd.ID,
		Name:       cd.Name,
		Kind:       kind,
		Recurrence: recurrence,
		Deadlines:  make(map[domain.SubmissionKind]time.Time, len(cd.Deadlines)),
	}
	for kindName, value := range cd.Deadlines {
		sk, ok := domain.ParseSubmissionKind(kindName)
		if !ok {
			continue
		}
		d, err := dates.Parse(fmt.Sprintf("conference %s deadline %s", cd.ID, kindName), value)
		if err != nil {
			return nil, err
		}
		conf.Deadlines[sk] = d
	}
	return conf, nil
}

func buildSubmission(sd *SubmissionDoc) (*domain.Submission, error) {
	kind, _ := domain.ParseSubmissionKind(sd.Kind)
	workflow := domain.Workflow(domain.CoalesceStr(sd.SubmissionWorkflow, string(domain.WorkflowDirect)))

	earliest, err := dates.ParseOptional(fmt.Sprintf("submission %s earliest_start_date", sd.ID), sd.EarliestStartDate)
	if err != nil {
		return nil, err
	}
	ready, err := dates.ParseOptional(fmt.Sprintf("submission %s engineering_ready_date", sd.ID), sd.EngineeringReadyDate)
	if err != nil {
		return nil, err
	}

	deps := make([]string, len(sd.DependsOn))
	copy(deps, sd.DependsOn)

	return &domain.Submission{
		ID:                   sd.ID,
		Title:                sd.Title,
		Kind:                 kind,
		ConferenceID:         stringFromPtr(sd.ConferenceID),
		DependsOn:            deps,
		Engineering:          domain.BoolFromPtrWithDefault(false, sd.Engineering),
		EarliestStartDate:    earliest,
		EngineeringReadyDate: ready,
		DraftWindowMonths:    domain.IntFromPtrWithDefault(0, sd.DraftWindowMonths),
		LeadTimeFromParents:  domain.IntFromPtrWithDefault(0, sd.LeadTimeFromParents),
		Workflow:             workflow,
	}, nil
}

func defaultPriorityWeights() map[domain.PriorityKey]float64 {
	m := make(map[domain.PriorityKey]float64, 4)
	for _, k := range domain.AllPriorityKeys() {
		m[k] = 1.0
	}
	return m
}

func stringFromPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// SubmissionByID returns the submission with the given id.
func (c *Config) SubmissionByID(id string) (*domain.Submission, bool) {
	s, ok := c.subByID[id]
	return s, ok
}

// ConferenceByID returns the conference with the given id.
func (c *Config) ConferenceByID(id string) (*domain.Conference, bool) {
	conf, ok := c.confByID[id]
	return conf, ok
}

// ConferenceFor returns the venue a submission targets, if any.
func (c *Config) ConferenceFor(sub *domain.Submission) (*domain.Conference, bool) {
	if sub.ConferenceID == "" {
		return nil, false
	}
	return c.ConferenceByID(sub.ConferenceID)
}

// DeadlineFor returns the deadline binding a submission: the deadline its
// venue declares for its kind.
func (c *Config) DeadlineFor(sub *domain.Submission) (time.Time, bool) {
	conf, ok := c.ConferenceFor(sub)
	if !ok {
		return time.Time{}, false
	}
	return conf.DeadlineFor(sub.Kind)
}

// LeadTimes returns the kind-to-duration mapping of this config.
func (c *Config) LeadTimes() domain.LeadTimes {
	return domain.LeadTimes{
		PaperDays:    c.MinPaperLeadTimeDays,
		AbstractDays: c.MinAbstractLeadTimeDays,
	}
}

// Weight returns the priority weight for a key, defaulting to 1.
func (c *Config) Weight(key domain.PriorityKey) float64 {
	if w, ok := c.PriorityWeights[key]; ok {
		return w
	}
	return 1.0
}

// SubmissionIDs returns all submission ids sorted lexicographically.
func (c *Config) SubmissionIDs() []string {
	ids := make([]string, 0, len(c.Submissions))
	for _, s := range c.Submissions {
		ids = append(ids, s.ID)
	}
	sort.Strings(ids)
	return ids
}

// LatestDeadline returns the latest deadline declared by any conference.
func (c *Config) LatestDeadline() (time.Time, bool) {
	var latest time.Time
	found := false
	for _, conf := range c.Conferences {
		if d, ok := conf.LatestDeadline(); ok && (!found || d.After(latest)) {
			latest = d
			found = true
		}
	}
	return latest, found
}
