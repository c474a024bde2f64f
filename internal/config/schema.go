package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is the top-level JSON structure of a planning configuration.
// Unknown keys are ignored; missing optional sections take documented
// defaults.
type Document struct {
	Submissions              []SubmissionDoc    `json:"submissions"`
	Conferences              []ConferenceDoc    `json:"conferences"`
	MinPaperLeadTimeDays     *int               `json:"min_paper_lead_time_days,omitempty"`
	MinAbstractLeadTimeDays  *int               `json:"min_abstract_lead_time_days,omitempty"`
	MaxConcurrentSubmissions *int               `json:"max_concurrent_submissions,omitempty"`
	BlackoutDates            []string           `json:"blackout_dates,omitempty"`
	SchedulingOptions        *OptionsDoc        `json:"scheduling_options,omitempty"`
	PriorityWeights          map[string]float64 `json:"priority_weights,omitempty"`
}

// SubmissionDoc defines a submission in the configuration document.
type SubmissionDoc struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Kind                 string   `json:"kind"`
	ConferenceID         *string  `json:"conference_id,omitempty"`
	DependsOn            []string `json:"depends_on,omitempty"`
	Engineering          *bool    `json:"engineering,omitempty"`
	EarliestStartDate    *string  `json:"earliest_start_date,omitempty"`
	EngineeringReadyDate *string  `json:"engineering_ready_date,omitempty"`
	DraftWindowMonths    *int     `json:"draft_window_months,omitempty"`
	LeadTimeFromParents  *int     `json:"lead_time_from_parents,omitempty"`
	SubmissionWorkflow   string   `json:"submission_workflow,omitempty"`
}

// ConferenceDoc defines a conference in the configuration document.
// Deadlines maps submission kinds to YYYY-MM-DD dates; absent kinds are not
// accepted at the venue.
type ConferenceDoc struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Kind       string            `json:"kind"`
	Recurrence string            `json:"recurrence,omitempty"`
	Deadlines  map[string]string `json:"deadlines,omitempty"`
}

// OptionsDoc defines the recognized scheduling option flags.
type OptionsDoc struct {
	EnableEarlyAbstractScheduling *bool `json:"enable_early_abstract_scheduling,omitempty"`
	AbstractAdvanceDays           *int  `json:"abstract_advance_days,omitempty"`
	EnableBlackoutPeriods         *bool `json:"enable_blackout_periods,omitempty"`
}

// LoadDocument reads and parses a configuration JSON file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDocument(data)
}

// ParseDocument parses a configuration document from raw JSON.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	return &doc, nil
}

// Load reads, validates, and converts a configuration file in one step.
func Load(path string) (*Config, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	if errs := ValidateDocument(doc); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, errorsJoin(errs))
	}
	return Build(doc)
}
