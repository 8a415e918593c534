package extraction

import (
	"regexp"
	"strings"
)

// Rule is one step of an extraction cascade.
type Rule interface {
	Name() string
	Match(text string) (string, bool)
}

// Cascade tries its rules in order; the first plausible match wins.
type Cascade struct {
	Field string
	Rules []Rule
}

// Run returns the winning value and the name of the rule that produced it.
func (c Cascade) Run(text string) (value, rule string, ok bool) {
	for _, r := range c.Rules {
		if v, matched := r.Match(text); matched {
			return v, r.Name(), true
		}
	}
	return "", "", false
}

// Value is Run without the rule name, as a typed optional.
func (c Cascade) Value(text string) *string {
	v, _, ok := c.Run(text)
	if !ok {
		return nil
	}
	return &v
}

// patternRule matches a regex and returns one capture group (0 for the whole
// match), optionally transformed and checked for plausibility.
type patternRule struct {
	name      string
	re        *regexp.Regexp
	group     int
	transform func(string) string
	accept    func(string) bool
}

func (r patternRule) Name() string { return r.name }

func (r patternRule) Match(text string) (string, bool) {
	for _, m := range r.re.FindAllStringSubmatch(text, -1) {
		if r.group >= len(m) {
			continue
		}
		v := strings.TrimSpace(m[r.group])
		if r.transform != nil {
			v = r.transform(v)
		}
		if v == "" {
			continue
		}
		if r.accept != nil && !r.accept(v) {
			continue
		}
		return v, true
	}
	return "", false
}

// funcRule adapts a plain function into a Rule.
type funcRule struct {
	name string
	fn   func(text string) (string, bool)
}

func (r funcRule) Name() string { return r.name }

func (r funcRule) Match(text string) (string, bool) { return r.fn(text) }

var digitsOnlyRe = regexp.MustCompile(`^[\d\s+().-]+$`)

// plausibleText is the length and content check shared by extractors that
// expect a textual value such as a name or a place.
func plausibleText(v string) bool {
	if n := len([]rune(v)); n < 3 || n > 100 {
		return false
	}
	lower := strings.ToLower(v)
	if strings.Contains(lower, "@") || strings.Contains(lower, "http") || strings.Contains(lower, "www.") {
		return false
	}
	return !digitsOnlyRe.MatchString(v)
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// StringOr dereferences v, or returns fallback when v is nil or blank.
func StringOr(v *string, fallback string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return fallback
	}
	return *v
}
