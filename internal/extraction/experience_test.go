package extraction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func period(t *testing.T, start, end time.Time) EmploymentPeriod {
	t.Helper()
	p, ok := NewEmploymentPeriod(start, end)
	require.True(t, ok)
	return p
}

func TestNewEmploymentPeriod(t *testing.T) {
	p, ok := NewEmploymentPeriod(date(2015, time.January), date(2020, time.January))
	require.True(t, ok)
	assert.Equal(t, 60, p.DurationMonths)

	p, ok = NewEmploymentPeriod(date(2020, time.March), date(2020, time.March))
	require.True(t, ok)
	assert.Equal(t, 1, p.DurationMonths, "a period is credited at least one month")

	_, ok = NewEmploymentPeriod(date(2020, time.March), date(2019, time.March))
	assert.False(t, ok)
}

func TestAggregateMonths_NoOverlapSumsDurations(t *testing.T) {
	a := period(t, date(2013, time.June), date(2014, time.December))
	b := period(t, date(2015, time.January), date(2018, time.April))

	assert.Equal(t, a.DurationMonths+b.DurationMonths, AggregateMonths([]EmploymentPeriod{b, a}))
}

func TestAggregateMonths_FullOverlapCountsOuterOnly(t *testing.T) {
	outer := period(t, date(2015, time.January), date(2020, time.January))
	inner := period(t, date(2016, time.January), date(2017, time.January))

	assert.Equal(t, outer.DurationMonths, AggregateMonths([]EmploymentPeriod{inner, outer}))
}

func TestAggregateMonths_PartialOverlapMerges(t *testing.T) {
	a := period(t, date(2015, time.January), date(2018, time.January))
	b := period(t, date(2017, time.January), date(2020, time.January))

	assert.Equal(t, 60, AggregateMonths([]EmploymentPeriod{a, b}))
}

func TestAggregateMonths_AdjacentPeriodsMerge(t *testing.T) {
	a := period(t, date(2015, time.January), date(2017, time.January))
	b := period(t, date(2017, time.January), date(2020, time.January))

	assert.Equal(t, 60, AggregateMonths([]EmploymentPeriod{a, b}))
}

func TestAggregateMonths_SameMonthSpanCountsOneMonth(t *testing.T) {
	a := period(t, date(2020, time.March), date(2020, time.March))
	b := period(t, date(2021, time.June), date(2021, time.June))
	assert.Equal(t, 2, AggregateMonths([]EmploymentPeriod{a, b}))
	assert.Equal(t, 0, YearsFromMonths(AggregateMonths([]EmploymentPeriod{a})))
}

func TestAggregateMonths_SkipsInvalid(t *testing.T) {
	assert.Equal(t, 0, AggregateMonths(nil))

	backwards := EmploymentPeriod{StartDate: date(2020, time.January), EndDate: date(2019, time.January), DurationMonths: 12}
	zero := EmploymentPeriod{StartDate: date(2020, time.January), EndDate: date(2021, time.January)}
	assert.Equal(t, 0, AggregateMonths([]EmploymentPeriod{backwards, zero}))
}

func TestYearsFromMonths(t *testing.T) {
	assert.Equal(t, 0, YearsFromMonths(-5))
	assert.Equal(t, 0, YearsFromMonths(11))
	assert.Equal(t, 1, YearsFromMonths(12))
	assert.Equal(t, 10, YearsFromMonths(125))
}

func TestCalculateExperience_WorkHistory(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	text := "Senior Engineer, Acme | May 2018 - Present\n" +
		"Engineer, Beta | Jan 2015 - Apr 2018\n" +
		"Intern, Gamma | Jun 2013 - Dec 2014\n"

	got := CalculateExperience(text, now)

	require.Len(t, got.Periods, 3)
	assert.Equal(t, 125, got.TotalMonths)
	assert.Equal(t, 10, got.Years)
	assert.False(t, got.FromMention)
	assert.Equal(t, 10, ExperienceYears(text, now))
}

func TestCalculateExperience_MentionFallback(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	got := CalculateExperience("Backend developer with 7+ years of professional experience in fintech.", now)
	assert.Equal(t, 7, got.Years)
	assert.Equal(t, 84, got.TotalMonths)
	assert.True(t, got.FromMention)
	assert.Empty(t, got.Periods)
}

func TestCalculateExperience_Defaults(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no dates", "Enthusiastic engineer who enjoys mentoring."},
		{"implausible mention", "60 years of experience"},
		{"backwards range", "Acme | 2020 - 2018"},
		{"registration number", "Reg No 1001-2020\nSkills"},
		{"office number", "Office 1234-5678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateExperience(tt.text, now)
			assert.Equal(t, 0, got.Years)
			assert.Equal(t, 0, got.TotalMonths)
		})
	}
}
