package extraction

import (
	"regexp"
	"strings"
	"unicode"
)

// NameNotFound is the sentinel stored when no name can be inferred.
const NameNotFound = "Name Not Found"

const nameHeaderLines = 10

var (
	emailRe       = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(?:\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}`)
	nameWordRe    = regexp.MustCompile(`^\p{Lu}[\p{L}'.-]*$`)
	segmentSplit  = regexp.MustCompile(`\s*[|•·,;]\s*|\s+[-–—]\s+`)
	emailLabelRe  = regexp.MustCompile(`(?i)\b(?:e-?mail|mail|contact)\s*:?\s*$`)
	trailingPunct = regexp.MustCompile(`[\s|:,;•·–—-]+$`)
	hasDigitRe    = regexp.MustCompile(`\d`)
)

var placeholderEmailLabels = map[string]bool{
	"example": true,
	"test":    true,
	"dummy":   true,
	"sample":  true,
}

var nameStopWords = []string{
	"senior", "junior", "lead", "principal", "staff", "head", "chief",
	"developer", "engineer", "manager", "analyst", "designer", "consultant",
	"architect", "intern", "scientist", "specialist", "administrator",
	"officer", "director", "tester", "programmer", "executive", "associate",
	"resume", "curriculum", "vitae", "profile", "summary", "objective",
	"contact", "experience", "education", "skills", "projects", "software",
	"frontend", "backend", "fullstack", "full", "stack", "data", "qa",
	"university", "college", "institute", "school", "technologies", "solutions",
}

var (
	phoneCascade = Cascade{
		Field: "phone",
		Rules: []Rule{
			patternRule{
				name:   "international",
				re:     regexp.MustCompile(`\+\d{1,3}[\s.-]?\(?\d{1,4}\)?(?:[\s.-]?\d{2,5}){1,4}`),
				accept: plausiblePhone,
			},
			patternRule{
				name:   "us",
				re:     regexp.MustCompile(`\(?\b\d{3}\)?[\s.-]\d{3}[\s.-]\d{4}\b`),
				accept: plausiblePhone,
			},
			patternRule{
				name:   "indian_mobile",
				re:     regexp.MustCompile(`\b(?:0?91[\s-]?)?[6-9]\d{4}[\s-]?\d{5}\b`),
				accept: plausiblePhone,
			},
		},
	}

	emailCascade = Cascade{
		Field: "email",
		Rules: []Rule{
			funcRule{name: "primary_address", fn: func(text string) (string, bool) {
				for _, e := range emailCandidates(text) {
					if !isPlaceholderEmail(e) {
						return e, true
					}
				}
				return "", false
			}},
			funcRule{name: "any_address", fn: func(text string) (string, bool) {
				if found := emailCandidates(text); len(found) > 0 {
					return found[0], true
				}
				return "", false
			}},
		},
	}

	nameCascade = Cascade{
		Field: "name",
		Rules: []Rule{
			funcRule{name: "header_line", fn: nameFromHeader},
			funcRule{name: "before_email", fn: nameBeforeEmail},
		},
	}
)

// ExtractEmail returns the first plausible address. Placeholder domains such as
// example.com are skipped while another candidate exists.
func ExtractEmail(text string) *string { return emailCascade.Value(text) }

// ExtractPhone returns the first match of the ordered phone patterns.
func ExtractPhone(text string) *string { return phoneCascade.Value(text) }

// ExtractName looks for a capitalized 2-4 word phrase near the top of the
// resume, then for the text just before the email address.
func ExtractName(text string) *string { return nameCascade.Value(text) }

func emailCandidates(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range emailRe.FindAllString(text, -1) {
		e = strings.TrimRight(e, ".")
		key := strings.ToLower(e)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

func isPlaceholderEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	for _, label := range strings.Split(strings.ToLower(email[at+1:]), ".") {
		if placeholderEmailLabels[label] {
			return true
		}
	}
	return false
}

func plausiblePhone(v string) bool {
	digits := 0
	for _, r := range v {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= 10 && digits <= 15
}

func nameFromHeader(text string) (string, bool) {
	lines := splitLines(text)
	if len(lines) > nameHeaderLines {
		lines = lines[:nameHeaderLines]
	}
	for _, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "@") || strings.Contains(lower, "http") {
			continue
		}
		segment := strings.TrimSpace(segmentSplit.Split(line, 2)[0])
		if looksLikeName(segment) {
			return segment, true
		}
	}
	return "", false
}

func nameBeforeEmail(text string) (string, bool) {
	loc := emailRe.FindStringIndex(text)
	if loc == nil {
		return "", false
	}

	before := text[:loc[0]]
	lineStart := strings.LastIndex(before, "\n") + 1
	prefix := cleanNamePrefix(before[lineStart:])

	if prefix == "" {
		prev := splitLines(before[:lineStart])
		if len(prev) == 0 {
			return "", false
		}
		prefix = cleanNamePrefix(prev[len(prev)-1])
	}

	parts := segmentSplit.Split(prefix, -1)
	candidate := strings.TrimSpace(parts[len(parts)-1])
	if candidate == "" {
		candidate = strings.TrimSpace(parts[0])
	}
	if looksLikeName(candidate) {
		return candidate, true
	}
	return "", false
}

func cleanNamePrefix(s string) string {
	s = strings.TrimSpace(s)
	s = emailLabelRe.ReplaceAllString(s, "")
	return trailingPunct.ReplaceAllString(s, "")
}

func looksLikeName(s string) bool {
	if !plausibleText(s) || hasDigitRe.MatchString(s) {
		return false
	}
	words := strings.Fields(s)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		if !nameWordRe.MatchString(w) {
			return false
		}
		bare := strings.Trim(w, ".,'-")
		for _, stop := range nameStopWords {
			if strings.EqualFold(bare, stop) {
				return false
			}
		}
	}
	return true
}
