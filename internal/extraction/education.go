package extraction

import (
	"regexp"
	"strings"
)

// NotSpecified is the sentinel stored when education or college is unknown.
const NotSpecified = "Not specified"

const educationSectionLines = 6

var (
	educationHeaderRe = regexp.MustCompile(`(?i)^\s*(?:education(?:al)?(?:\s+(?:background|qualifications?|details))?|academic\s+(?:background|qualifications?|profile)|qualifications?)\s*:?\s*$`)
	sectionHeaderRe   = regexp.MustCompile(`(?i)^\s*(?:experience|work experience|professional experience|employment|skills|technical skills|projects|certifications?|achievements|awards|interests|languages|references|summary|profile)\s*:?\s*$`)
	fieldOfStudyRe    = regexp.MustCompile(`^\s*[,:-]?\s*(?:(?:in|of)\s+)?([A-Z][A-Za-z&]*(?:\s+(?:and|&|of)?\s*[A-Z][A-Za-z&]*){0,3})`)
)

var institutionKeywords = []string{"university", "college", "institute", "school", "academy", "polytechnic", "iit", "nit"}

// degreePatterns are tried in order; the first degree found anywhere in the
// text wins.
var degreePatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"phd", regexp.MustCompile(`(?i)\b(?:ph\.?\s?d\.?|doctor of philosophy|doctorate)`)},
	{"jd", regexp.MustCompile(`\bJ\.?D\.?\b|(?i:\bjuris doctor\b)`)},
	{"md", regexp.MustCompile(`\bM\.D\.|(?i:\bdoctor of medicine\b)`)},
	{"mba", regexp.MustCompile(`\bMBA\b|(?i:\bmaster of business administration\b)`)},
	{"mtech", regexp.MustCompile(`(?i)\bm\.?\s?tech\b\.?`)},
	{"master", regexp.MustCompile(`(?i:\bmaster(?:'?s(?:\s+degree)?\b|\s+of\s+(?:science|arts|engineering|technology|computer applications)\b|\s+degree\b))|\bM\.Sc\.?|\bMSc\b|\bM\.S\.|\bM\.A\.|\bMCA\b`)},
	{"btech", regexp.MustCompile(`(?i)\bb\.?\s?tech\b\.?`)},
	{"be", regexp.MustCompile(`\bB\.E\.?(?:\s|$)`)},
	{"bachelor", regexp.MustCompile(`(?i:\bbachelor'?s?(?:\s+(?:degree|of\s+(?:science|arts|engineering|technology|commerce|computer applications|business administration)))?\b)|\bB\.Sc\.?|\bBSc\b|\bB\.S\.|\bB\.A\.|\bBCA\b|\bBBA\b`)},
	{"associate", regexp.MustCompile(`(?i)\bassociate'?s?\s+(?:degree|of\s+(?:science|arts))\b`)},
	{"diploma", regexp.MustCompile(`(?i)\bdiploma\b`)},
}

var (
	educationCascade = Cascade{
		Field: "education",
		Rules: append(degreeRules(), funcRule{name: "education_section", fn: institutionInEducationSection}),
	}

	collegeCascade = Cascade{
		Field: "college",
		Rules: []Rule{
			funcRule{name: "education_section", fn: institutionInEducationSection},
			funcRule{name: "institution_line", fn: func(text string) (string, bool) {
				return findInstitution(splitLines(text))
			}},
		},
	}
)

func degreeRules() []Rule {
	rules := make([]Rule, 0, len(degreePatterns))
	for _, p := range degreePatterns {
		re := p.re
		rules = append(rules, funcRule{name: p.name, fn: func(text string) (string, bool) {
			return matchDegree(re, text)
		}})
	}
	return rules
}

// ExtractEducation returns the highest-priority degree found, including its
// field of study when one follows it, or an institution named in the
// education section.
func ExtractEducation(text string) *string { return educationCascade.Value(text) }

// ExtractCollege returns the institution line, preferring the education section.
func ExtractCollege(text string) *string { return collegeCascade.Value(text) }

func matchDegree(re *regexp.Regexp, text string) (string, bool) {
	for _, line := range splitLines(text) {
		loc := re.FindStringIndex(line)
		if loc == nil {
			continue
		}
		degree := strings.TrimSpace(line[loc[0]:loc[1]])
		if m := fieldOfStudyRe.FindStringSubmatch(line[loc[1]:]); m != nil {
			if field := strings.TrimSpace(m[1]); field != "" && !isInstitution(field) {
				degree = degree + " in " + field
			}
		}
		return degree, true
	}
	return "", false
}

func institutionInEducationSection(text string) (string, bool) {
	lines := splitLines(text)
	for i, line := range lines {
		if !educationHeaderRe.MatchString(line) {
			continue
		}
		end := i + 1 + educationSectionLines
		if end > len(lines) {
			end = len(lines)
		}
		var section []string
		for _, l := range lines[i+1 : end] {
			if sectionHeaderRe.MatchString(l) {
				break
			}
			section = append(section, l)
		}
		if v, ok := findInstitution(section); ok {
			return v, true
		}
	}
	return "", false
}

func findInstitution(lines []string) (string, bool) {
	for _, line := range lines {
		for _, segment := range segmentSplit.Split(line, -1) {
			segment = strings.TrimSpace(segment)
			if isInstitution(segment) && plausibleText(segment) {
				return segment, true
			}
		}
	}
	return "", false
}

func isInstitution(s string) bool {
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ".,()")
		for _, k := range institutionKeywords {
			if w == k {
				return true
			}
		}
	}
	return false
}
