package extraction

import (
	"regexp"
	"strings"
)

// CategoryOther is returned when no category bucket matches.
const CategoryOther = "Other"

const titleHeaderLines = 10

type categoryBucket struct {
	name string
	re   *regexp.Regexp
}

// categoryBuckets are checked in order; the first bucket with a keyword in the
// text wins.
var categoryBuckets = []categoryBucket{
	{"QA", keyword("qa engineer", "qa analyst", "quality assurance", "test automation", "manual testing", "software tester", "selenium")},
	{"Business Analyst", keyword("business analyst", "business analysis", "requirements gathering", "requirement gathering", "gap analysis")},
	{"Fullstack", keyword("full stack", "full-stack", "fullstack", "mern", "mean stack")},
	{"Frontend", keyword("frontend", "front-end", "front end", "ui developer", "react", "angular", "vue", "vue.js")},
	{"Backend", keyword("backend", "back-end", "back end", "api development", "microservices", "spring boot", "django", "node.js")},
	{"Data Scientist", keyword("data scientist", "data science", "machine learning", "deep learning", "tensorflow", "pytorch")},
}

var (
	titleKeywordRe = regexp.MustCompile(`(?i)\b(?:developer|engineer|analyst|designer|scientist|consultant|architect|manager|tester|administrator|programmer|specialist|intern)\b`)

	titleCascade = Cascade{
		Field: "job_title",
		Rules: []Rule{
			patternRule{
				name:   "labeled",
				re:     regexp.MustCompile(`(?im)^\s*(?:job title|title|designation|current role|position)\s*[:-]\s*(.+?)\s*$`),
				group:  1,
				accept: plausibleTitle,
			},
			funcRule{name: "header_title", fn: titleFromHeader},
		},
	}
)

// ExtractCategory returns the first matching category bucket, or CategoryOther.
func ExtractCategory(text string) string {
	for _, b := range categoryBuckets {
		if b.re.MatchString(text) {
			return b.name
		}
	}
	return CategoryOther
}

// ExtractJobTitle returns an explicitly labelled title, or a title-like
// segment from the resume header.
func ExtractJobTitle(text string) *string { return titleCascade.Value(text) }

func titleFromHeader(text string) (string, bool) {
	lines := splitLines(text)
	if len(lines) > titleHeaderLines {
		lines = lines[:titleHeaderLines]
	}
	for _, line := range lines {
		for _, segment := range segmentSplit.Split(line, -1) {
			segment = strings.TrimSpace(segment)
			if plausibleTitle(segment) {
				return segment, true
			}
		}
	}
	return "", false
}

func plausibleTitle(s string) bool {
	if !plausibleText(s) || hasDigitRe.MatchString(s) || !titleKeywordRe.MatchString(s) {
		return false
	}
	if n := len(strings.Fields(s)); n > 6 {
		return false
	}
	return !strings.HasSuffix(s, ".")
}
