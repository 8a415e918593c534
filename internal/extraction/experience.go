package extraction

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"time"
)

// daysPerMonth is the average Gregorian month length used for every
// duration in this package.
const daysPerMonth = 30.44

const maxMentionedYears = 50

var yearsMentionRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?:\.\d+)?\s*\+?\s*(?:years?|yrs?)\s+(?:of\s+)?(?:(?:professional|relevant|industry|work|total|hands-on)\s+)*experience\b`)

// EmploymentPeriod is one parsed start/end pair.
type EmploymentPeriod struct {
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	DurationMonths int       `json:"duration_months"`
}

// NewEmploymentPeriod builds a period, rejecting an end before the start.
// A period is always credited at least one month.
func NewEmploymentPeriod(start, end time.Time) (EmploymentPeriod, bool) {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return EmploymentPeriod{}, false
	}
	return EmploymentPeriod{
		StartDate:      start,
		EndDate:        end,
		DurationMonths: monthsBetween(start, end),
	}, true
}

func monthsBetween(start, end time.Time) int {
	days := end.Sub(start).Hours() / 24
	months := int(math.Round(days / daysPerMonth))
	if months < 1 {
		return 1
	}
	return months
}

// AggregateMonths merges overlapping or touching periods and sums the months
// of the merged, non-overlapping spans. Concurrent jobs are counted once.
func AggregateMonths(periods []EmploymentPeriod) int {
	valid := make([]EmploymentPeriod, 0, len(periods))
	for _, p := range periods {
		if p.DurationMonths <= 0 || p.StartDate.IsZero() || p.EndDate.IsZero() || p.EndDate.Before(p.StartDate) {
			continue
		}
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		return 0
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].StartDate.Before(valid[j].StartDate)
	})

	total := 0
	curStart, curEnd := valid[0].StartDate, valid[0].EndDate
	for _, p := range valid[1:] {
		if !p.StartDate.After(curEnd) {
			if p.EndDate.After(curEnd) {
				curEnd = p.EndDate
			}
			continue
		}
		total += monthsBetween(curStart, curEnd)
		curStart, curEnd = p.StartDate, p.EndDate
	}
	total += monthsBetween(curStart, curEnd)

	return total
}

// YearsFromMonths floors months to whole years and never goes negative.
func YearsFromMonths(months int) int {
	if months <= 0 {
		return 0
	}
	return months / 12
}

// ExtractWorkHistory parses every date range in text into employment periods.
// Ranges whose halves cannot be parsed, or that run backwards, are skipped.
func ExtractWorkHistory(text string, now time.Time) []EmploymentPeriod {
	var periods []EmploymentPeriod
	for _, m := range ExtractDateRanges(text) {
		start, ok := ParseDate(m.Start, now)
		if !ok {
			continue
		}
		end, ok := ParseDate(m.End, now)
		if !ok {
			continue
		}
		if p, ok := NewEmploymentPeriod(start, end); ok {
			periods = append(periods, p)
		}
	}
	return periods
}

// MentionedYears returns the first "N years of experience" figure in text.
func MentionedYears(text string) (int, bool) {
	m := yearsMentionRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	years, err := strconv.Atoi(m[1])
	if err != nil || years < 0 || years > maxMentionedYears {
		return 0, false
	}
	return years, true
}

// ExperienceSummary is the outcome of the experience calculation for one resume.
type ExperienceSummary struct {
	Periods     []EmploymentPeriod `json:"periods"`
	TotalMonths int                `json:"total_months"`
	Years       int                `json:"years"`
	FromMention bool               `json:"from_mention"`
}

// CalculateExperience aggregates the work history in text. Without any usable
// date range it falls back to an explicit "N years of experience" phrase, and
// to zero after that.
func CalculateExperience(text string, now time.Time) ExperienceSummary {
	periods := ExtractWorkHistory(text, now)
	months := AggregateMonths(periods)
	if months > 0 {
		return ExperienceSummary{
			Periods:     periods,
			TotalMonths: months,
			Years:       YearsFromMonths(months),
		}
	}

	if years, ok := MentionedYears(text); ok {
		return ExperienceSummary{
			TotalMonths: years * 12,
			Years:       years,
			FromMention: true,
		}
	}

	return ExperienceSummary{}
}

// ExperienceYears is CalculateExperience reduced to whole years.
func ExperienceYears(text string, now time.Time) int {
	return CalculateExperience(text, now).Years
}
