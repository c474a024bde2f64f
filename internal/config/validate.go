package config

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/paperplan/internal/dates"
	"github.com/alexanderramin/paperplan/internal/domain"
)

// ValidateDocument checks the document for errors before conversion.
// Returns a slice of all validation errors found so a caller can report
// every problem at once.
func ValidateDocument(doc *Document) []error {
	var errs []error

	confIDs := make(map[string]bool)
	errs = append(errs, validateConferences(doc.Conferences, confIDs)...)

	subIDs := make(map[string]bool)
	for _, s := range doc.Submissions {
		if s.ID == "" {
			errs = append(errs, errors.New("submission id is required"))
			continue
		}
		if subIDs[s.ID] {
			errs = append(errs, fmt.Errorf("duplicate submission id %q", s.ID))
		}
		subIDs[s.ID] = true
	}

	for _, s := range doc.Submissions {
		errs = append(errs, validateSubmission(&s, confIDs, subIDs)...)
	}

	errs = append(errs, validateGlobals(doc)...)

	return errs
}

func validateConferences(confs []ConferenceDoc, seen map[string]bool) []error {
	var errs []error
	for _, c := range confs {
		if c.ID == "" {
			errs = append(errs, errors.New("conference id is required"))
			continue
		}
		if seen[c.ID] {
			errs = append(errs, fmt.Errorf("duplicate conference id %q", c.ID))
		}
		seen[c.ID] = true

		if _, ok := domain.ParseConferenceKind(c.Kind); !ok {
			errs = append(errs, fmt.Errorf("conference %s: invalid kind %q", c.ID, c.Kind))
		}
		if c.Recurrence != "" {
			if _, ok := domain.ParseRecurrence(c.Recurrence); !ok {
				errs = append(errs, fmt.Errorf("conference %s: invalid recurrence %q", c.ID, c.Recurrence))
			}
		}
		for kind, value := range c.Deadlines {
			if _, ok := domain.ParseSubmissionKind(kind); !ok {
				errs = append(errs, fmt.Errorf("conference %s: unknown deadline kind %q", c.ID, kind))
			}
			if _, err := dates.Parse(fmt.Sprintf("conference %s deadline %s", c.ID, kind), value); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}

func validateSubmission(s *SubmissionDoc, confIDs, subIDs map[string]bool) []error {
	var errs []error

	if _, ok := domain.ParseSubmissionKind(s.Kind); !ok {
		errs = append(errs, fmt.Errorf("submission %s: invalid kind %q", s.ID, s.Kind))
	}
	if s.ConferenceID != nil && *s.ConferenceID != "" && !confIDs[*s.ConferenceID] {
		errs = append(errs, fmt.Errorf("submission %s: unknown conference_id %q", s.ID, *s.ConferenceID))
	}
	for _, dep := range s.DependsOn {
		if dep == s.ID {
			errs = append(errs, fmt.Errorf("submission %s: depends on itself", s.ID))
		} else if !subIDs[dep] {
			errs = append(errs, fmt.Errorf("submission %s: unknown dependency %q", s.ID, dep))
		}
	}
	if s.LeadTimeFromParents != nil && *s.LeadTimeFromParents < 0 {
		errs = append(errs, fmt.Errorf("submission %s: lead_time_from_parents must be non-negative", s.ID))
	}
	if s.DraftWindowMonths != nil && *s.DraftWindowMonths < 0 {
		errs = append(errs, fmt.Errorf("submission %s: draft_window_months must be non-negative", s.ID))
	}
	if s.SubmissionWorkflow != "" {
		if _, ok := domain.ParseWorkflow(s.SubmissionWorkflow); !ok {
			errs = append(errs, fmt.Errorf("submission %s: invalid submission_workflow %q", s.ID, s.SubmissionWorkflow))
		}
	}
	if _, err := dates.ParseOptional(fmt.Sprintf("submission %s earliest_start_date", s.ID), s.EarliestStartDate); err != nil {
		errs = append(errs, err)
	}
	if _, err := dates.ParseOptional(fmt.Sprintf("submission %s engineering_ready_date", s.ID), s.EngineeringReadyDate); err != nil {
		errs = append(errs, err)
	}

	return errs
}

func validateGlobals(doc *Document) []error {
	var errs []error

	if doc.MinPaperLeadTimeDays != nil && *doc.MinPaperLeadTimeDays < 1 {
		errs = append(errs, errors.New("min_paper_lead_time_days must be at least 1"))
	}
	if doc.MinAbstractLeadTimeDays != nil && *doc.MinAbstractLeadTimeDays < 1 {
		errs = append(errs, errors.New("min_abstract_lead_time_days must be at least 1"))
	}
	if doc.MaxConcurrentSubmissions != nil && *doc.MaxConcurrentSubmissions < 1 {
		errs = append(errs, errors.New("max_concurrent_submissions must be at least 1"))
	}
	for i, value := range doc.BlackoutDates {
		if _, err := dates.Parse(fmt.Sprintf("blackout_dates[%d]", i), value); err != nil {
			errs = append(errs, err)
		}
	}
	if doc.SchedulingOptions != nil && doc.SchedulingOptions.AbstractAdvanceDays != nil &&
		*doc.SchedulingOptions.AbstractAdvanceDays < 0 {
		errs = append(errs, errors.New("scheduling_options.abstract_advance_days must be non-negative"))
	}
	for key, w := range doc.PriorityWeights {
		known := false
		for _, k := range domain.AllPriorityKeys() {
			if string(k) == key {
				known = true
				break
			}
		}
		if !known {
			continue // unrecognized keys are ignored
		}
		if w < 0 {
			errs = append(errs, fmt.Errorf("priority_weights.%s must be non-negative", key))
		}
	}

	return errs
}

func errorsJoin(errs []error) error {
	return errors.Join(errs...)
}
