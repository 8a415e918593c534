package extraction

import (
	"fmt"
	"strings"
	"time"
)

// Result is everything the heuristic engine infers from one resume.
type Result struct {
	Name        *string
	Email       *string
	Phone       *string
	Education   *string
	CollegeName *string
	JobTitle    *string

	Category          string
	Skills            []string
	Experience        ExperienceSummary
	YearsOfExperience int
	RecommendedRoles  []RoleRecommendation

	ProfessionalSummary string
	ShortSummary        string

	// MatchedRules maps a field to the cascade rule that produced it.
	MatchedRules map[string]string
}

// Engine runs every extractor over a resume text.
type Engine struct {
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used to resolve "present" in date ranges.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time { return e.now() }

// Extract runs the extractors over text. It never fails; fields that cannot be
// inferred are left nil or zero.
func (e *Engine) Extract(text string) *Result {
	r := &Result{MatchedRules: make(map[string]string)}

	r.Name = r.run(nameCascade, text)
	r.Email = r.run(emailCascade, text)
	r.Phone = r.run(phoneCascade, text)
	r.Education = r.run(educationCascade, text)
	r.CollegeName = r.run(collegeCascade, text)
	r.JobTitle = r.run(titleCascade, text)

	r.Category = ExtractCategory(text)
	r.Skills = ExtractSkills(text)
	r.Experience = CalculateExperience(text, e.now())
	r.YearsOfExperience = r.Experience.Years
	r.RecommendedRoles = RecommendRoles(r.Skills)

	r.Summarize()
	return r
}

func (r *Result) run(c Cascade, text string) *string {
	v, rule, ok := c.Run(text)
	if !ok {
		return nil
	}
	r.MatchedRules[c.Field] = rule
	return &v
}

// Summarize fills both summaries from the current field values.
func (r *Result) Summarize() {
	r.ProfessionalSummary = ProfessionalSummary(r.JobTitle, r.Category, r.YearsOfExperience, r.Skills, r.Education)
	r.ShortSummary = ShortSummary(r.JobTitle, r.Category, r.YearsOfExperience, r.Skills)
}

func headline(title *string, category string) string {
	if title != nil && *title != "" {
		return *title
	}
	if category != "" && category != CategoryOther {
		return category + " professional"
	}
	return "Candidate"
}

// ProfessionalSummary composes a one-paragraph profile from extracted fields.
func ProfessionalSummary(title *string, category string, years int, skills []string, education *string) string {
	var b strings.Builder
	b.WriteString(headline(title, category))
	if years > 0 {
		fmt.Fprintf(&b, " with %s of experience", pluralYears(years))
	}
	if shown := DisplaySkills(skills); len(shown) > 0 {
		b.WriteString(", skilled in ")
		b.WriteString(strings.Join(shown, ", "))
	}
	b.WriteString(".")
	if education != nil && *education != "" {
		fmt.Fprintf(&b, " Education: %s.", *education)
	}
	return b.String()
}

// ShortSummary is a single line suited to list views.
func ShortSummary(title *string, category string, years int, skills []string) string {
	parts := []string{headline(title, category)}
	if years > 0 {
		parts = append(parts, pluralYears(years))
	}
	if shown := DisplaySkills(skills); len(shown) > 0 {
		if len(shown) > 3 {
			shown = shown[:3]
		}
		parts = append(parts, strings.Join(shown, ", "))
	}
	return strings.Join(parts, " | ")
}

func pluralYears(n int) string {
	if n == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", n)
}
