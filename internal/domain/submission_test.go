package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration_ConfigMapping(t *testing.T) {
	lt := LeadTimes{PaperDays: 45, AbstractDays: 10}

	paper := &Submission{ID: "p", Kind: KindPaper}
	days, legacy := paper.Duration(lt)
	assert.Equal(t, 45, days)
	assert.False(t, legacy)

	mod := &Submission{ID: "m", Kind: KindWorkItem}
	days, legacy = mod.Duration(lt)
	assert.Equal(t, 45, days, "mods use the paper lead time")
	assert.False(t, legacy)

	abstract := &Submission{ID: "a", Kind: KindAbstract}
	days, legacy = abstract.Duration(lt)
	assert.Equal(t, 10, days)
	assert.False(t, legacy)
}

func TestDuration_LegacyFallback(t *testing.T) {
	poster := &Submission{ID: "po", Kind: KindPoster}
	days, legacy := poster.Duration(LeadTimes{PaperDays: 45, AbstractDays: 10})
	assert.Equal(t, LegacyDurationDays, days, "posters have no duration mapping")
	assert.True(t, legacy)

	paper := &Submission{ID: "p", Kind: KindPaper}
	days, legacy = paper.Duration(LeadTimes{PaperDays: 0, AbstractDays: 10})
	assert.Equal(t, LegacyDurationDays, days, "non-positive stored value normalizes")
	assert.True(t, legacy)
}

func TestPriorityKey(t *testing.T) {
	engConf := &Conference{ID: "e", Kind: ConferenceEngineering}
	medConf := &Conference{ID: "m", Kind: ConferenceMedical}

	tests := []struct {
		name string
		sub  Submission
		conf *Conference
		want PriorityKey
		ok   bool
	}{
		{"abstract", Submission{Kind: KindAbstract}, engConf, PriorityAbstract, true},
		{"mod", Submission{Kind: KindWorkItem}, nil, PriorityMod, true},
		{"paper at engineering venue", Submission{Kind: KindPaper}, engConf, PriorityEngineeringPaper, true},
		{"paper at medical venue", Submission{Kind: KindPaper}, medConf, PriorityMedicalPaper, true},
		{"engineering paper without venue", Submission{Kind: KindPaper, Engineering: true}, nil, PriorityEngineeringPaper, true},
		{"plain paper without venue", Submission{Kind: KindPaper}, nil, PriorityMedicalPaper, true},
		{"poster has no key", Submission{Kind: KindPoster}, engConf, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := tt.sub.PriorityKey(tt.conf)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, key)
		})
	}
}

func TestConference_DeadlineFor(t *testing.T) {
	deadline := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	conf := &Conference{
		ID:        "conf",
		Deadlines: map[SubmissionKind]time.Time{KindPaper: deadline},
	}

	d, ok := conf.DeadlineFor(KindPaper)
	assert.True(t, ok)
	assert.Equal(t, deadline, d)

	_, ok = conf.DeadlineFor(KindAbstract)
	assert.False(t, ok, "absent kinds are not accepted")
	assert.False(t, conf.Accepts(KindAbstract))
	assert.True(t, conf.Accepts(KindPaper))
}

func TestInterval_Overlaps(t *testing.T) {
	day := func(n int) time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n) }

	a := Interval{StartDate: day(0), EndDate: day(10)}
	b := Interval{StartDate: day(10), EndDate: day(20)}
	assert.False(t, a.Overlaps(b), "touching intervals do not overlap")
	assert.False(t, b.Overlaps(a))

	c := Interval{StartDate: day(9), EndDate: day(12)}
	assert.True(t, a.Overlaps(c))
	assert.True(t, c.Overlaps(a))

	assert.True(t, a.Contains(day(0)))
	assert.True(t, a.Contains(day(9)))
	assert.False(t, a.Contains(day(10)), "end date is exclusive")
}
