package domain

import "time"

// Submission is a unit of schedulable work: a paper, abstract, poster, or
// engineering mod targeting (optionally) a conference.
type Submission struct {
	ID           string
	Title        string
	Kind         SubmissionKind
	ConferenceID string // empty when the submission targets no venue

	// DependsOn lists submission ids that must finish before this one may
	// start. Order is not semantic.
	DependsOn []string

	Engineering bool

	// Constraints
	EarliestStartDate    *time.Time
	EngineeringReadyDate *time.Time

	DraftWindowMonths   int
	LeadTimeFromParents int // minimum gap in days after every parent's end

	Workflow Workflow
}

// LeadTimes carries the configured kind-to-duration mapping in days.
type LeadTimes struct {
	PaperDays    int
	AbstractDays int
}

// LegacyDurationDays is the fallback applied when a submission kind has no
// configured duration mapping, or stored data carries a non-positive value.
const LegacyDurationDays = 7

// Duration returns the working duration in days and whether the legacy
// fallback was taken. Papers and mods use the paper lead time, abstracts the
// abstract lead time; posters have no mapping and fall back.
func (s *Submission) Duration(lt LeadTimes) (int, bool) {
	var days int
	switch s.Kind {
	case KindPaper, KindWorkItem:
		days = lt.PaperDays
	case KindAbstract:
		days = lt.AbstractDays
	default:
		return LegacyDurationDays, true
	}
	if days <= 0 {
		return LegacyDurationDays, true
	}
	return days, false
}

// DurationDays is Duration without the fallback flag.
func (s *Submission) DurationDays(lt LeadTimes) int {
	d, _ := s.Duration(lt)
	return d
}

// PriorityKey returns the weight bucket for this submission. The conference
// kind decides between engineering and medical papers; without a venue the
// submission's own engineering flag decides. Posters carry no key.
func (s *Submission) PriorityKey(conf *Conference) (PriorityKey, bool) {
	switch s.Kind {
	case KindAbstract:
		return PriorityAbstract, true
	case KindWorkItem:
		return PriorityMod, true
	case KindPaper:
		if conf != nil && conf.Kind == ConferenceMedical {
			return PriorityMedicalPaper, true
		}
		if conf != nil || s.Engineering {
			return PriorityEngineeringPaper, true
		}
		return PriorityMedicalPaper, true
	}
	return "", false
}
