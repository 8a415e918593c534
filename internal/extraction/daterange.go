// Package extraction infers structured candidate data from plain resume text
// using regex and keyword heuristics. Everything here is a pure function of its
// input text (and an injected clock where "present" has to be resolved).
package extraction

import (
	"regexp"
	"sort"
	"strings"
)

const (
	monthPattern   = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`
	rangeSeparator = `\s*[-–—]\s*`
	openEndPattern = `(?:present|current|now)`
	yearPattern    = `(?:19|20)\d{2}`
)

// DateRangeForm identifies which of the fixed pattern forms produced a match.
type DateRangeForm string

const (
	FormMonthYear        DateRangeForm = "month_year"
	FormNumeric          DateRangeForm = "numeric"
	FormYear             DateRangeForm = "year"
	FormMonthYearPresent DateRangeForm = "month_year_present"
	FormYearPresent      DateRangeForm = "year_present"
	FormNumericPresent   DateRangeForm = "numeric_present"
)

// DateRangeMatch is one date-range substring found in a line of text.
type DateRangeMatch struct {
	Text   string
	Start  string
	End    string
	Form   DateRangeForm
	Line   int
	Offset int
}

type dateRangePattern struct {
	form DateRangeForm
	re   *regexp.Regexp
}

// Order matters only for the span preference in ExtractDateRanges; FindDateRanges
// concatenates the hits of every form.
var dateRangePatterns = []dateRangePattern{
	{FormMonthYear, regexp.MustCompile(`(?i)\b(` + monthPattern + `\s*,?\s*` + yearPattern + `)` + rangeSeparator + `(` + monthPattern + `\s*,?\s*` + yearPattern + `)\b`)},
	{FormNumeric, regexp.MustCompile(`\b(\d{1,2}/` + yearPattern + `)` + rangeSeparator + `(\d{1,2}/` + yearPattern + `)\b`)},
	{FormYear, regexp.MustCompile(`\b(` + yearPattern + `)` + rangeSeparator + `(` + yearPattern + `)\b`)},
	{FormMonthYearPresent, regexp.MustCompile(`(?i)\b(` + monthPattern + `\s*,?\s*` + yearPattern + `)` + rangeSeparator + `(` + openEndPattern + `)\b`)},
	{FormYearPresent, regexp.MustCompile(`(?i)\b(` + yearPattern + `)` + rangeSeparator + `(` + openEndPattern + `)\b`)},
	{FormNumericPresent, regexp.MustCompile(`(?i)\b(\d{1,2}/` + yearPattern + `)` + rangeSeparator + `(` + openEndPattern + `)\b`)},
}

// FindDateRanges returns every date-range substring in line. Each form is tried
// independently and all hits are concatenated; nothing is merged or deduplicated.
func FindDateRanges(line string) []DateRangeMatch {
	var matches []DateRangeMatch
	for _, p := range dateRangePatterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(line, -1) {
			matches = append(matches, DateRangeMatch{
				Text:   line[loc[0]:loc[1]],
				Start:  line[loc[2]:loc[3]],
				End:    line[loc[4]:loc[5]],
				Form:   p.form,
				Offset: loc[0],
			})
		}
	}
	return matches
}

// ExtractDateRanges scans text line by line. When two hits on the same line
// overlap, only the longer one is kept so "May 2018 - Present" is not also read
// as "2018 - Present".
func ExtractDateRanges(text string) []DateRangeMatch {
	var out []DateRangeMatch
	for i, line := range strings.Split(text, "\n") {
		found := FindDateRanges(line)
		if len(found) == 0 {
			continue
		}

		sort.SliceStable(found, func(a, b int) bool {
			return len(found[a].Text) > len(found[b].Text)
		})

		var kept []DateRangeMatch
		for _, m := range found {
			if overlapsAny(m, kept) {
				continue
			}
			m.Line = i + 1
			kept = append(kept, m)
		}

		sort.Slice(kept, func(a, b int) bool { return kept[a].Offset < kept[b].Offset })
		out = append(out, kept...)
	}
	return out
}

func overlapsAny(m DateRangeMatch, kept []DateRangeMatch) bool {
	end := m.Offset + len(m.Text)
	for _, k := range kept {
		kEnd := k.Offset + len(k.Text)
		if m.Offset < kEnd && k.Offset < end {
			return true
		}
	}
	return false
}
