package extraction

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCascade_FirstMatchingRuleWins(t *testing.T) {
	c := Cascade{
		Field: "code",
		Rules: []Rule{
			patternRule{name: "never", re: regexp.MustCompile(`ZZZ\d+`)},
			patternRule{name: "ticket", re: regexp.MustCompile(`TICKET-(\d+)`), group: 1},
			funcRule{name: "fallback", fn: func(string) (string, bool) { return "none", true }},
		},
	}

	v, rule, ok := c.Run("see TICKET-42 and TICKET-43")
	assert.True(t, ok)
	assert.Equal(t, "42", v)
	assert.Equal(t, "ticket", rule)

	v, rule, ok = c.Run("nothing here")
	assert.True(t, ok)
	assert.Equal(t, "none", v)
	assert.Equal(t, "fallback", rule)
}

func TestCascade_AcceptSkipsImplausibleMatches(t *testing.T) {
	c := Cascade{Rules: []Rule{
		patternRule{name: "word", re: regexp.MustCompile(`[a-z@.]+`), accept: plausibleText},
	}}

	got := c.Value("a@b.c ok valid")
	if assert.NotNil(t, got) {
		assert.Equal(t, "valid", *got)
	}
	assert.Nil(t, Cascade{}.Value("anything"))
}

func TestPlausibleText(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Stanford University", true},
		{"ab", false},
		{"jane@example.com", false},
		{"https://github.com/jane", false},
		{"www.jane.dev", false},
		{"+1 (415) 555-0123", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, plausibleText(tt.in), tt.in)
	}
}

func TestStringOr(t *testing.T) {
	v := "Jane Doe"
	blank := "  "
	assert.Equal(t, "Jane Doe", StringOr(&v, NameNotFound))
	assert.Equal(t, NameNotFound, StringOr(&blank, NameNotFound))
	assert.Equal(t, NotSpecified, StringOr(nil, NotSpecified))
}
