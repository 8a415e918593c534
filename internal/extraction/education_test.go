package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEducation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		rule string
	}{
		{
			name: "master with field",
			text: "Master of Science in Computer Science, Stanford University",
			want: "Master of Science in Computer Science",
			rule: "master",
		},
		{
			name: "btech with field",
			text: "B.Tech in Information Technology",
			want: "B.Tech in Information Technology",
			rule: "btech",
		},
		{
			name: "phd outranks bachelor",
			text: "Bachelor of Science in Physics\nPhD in Physics",
			want: "PhD in Physics",
			rule: "phd",
		},
		{
			name: "scrum master is not a degree",
			text: "Certified Scrum Master\nBachelor of Arts in History",
			want: "Bachelor of Arts in History",
			rule: "bachelor",
		},
		{
			name: "education section fallback",
			text: "EDUCATION\nStanford University, 2010 - 2014\nSKILLS\nDocker",
			want: "Stanford University",
			rule: "education_section",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, rule, ok := educationCascade.Run(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestExtractEducation_NotSpecified(t *testing.T) {
	got := ExtractEducation("Software engineer who likes hiking")
	assert.Nil(t, got)
	assert.Equal(t, NotSpecified, StringOr(got, NotSpecified))
}

func TestExtractCollege(t *testing.T) {
	t.Run("section preferred", func(t *testing.T) {
		text := "Teaching assistant at Springfield High School\nEducation\nBachelor of Science\nUniversity of Toronto"
		v, rule, ok := collegeCascade.Run(text)
		require.True(t, ok)
		assert.Equal(t, "University of Toronto", v)
		assert.Equal(t, "education_section", rule)
	})

	t.Run("any institution line", func(t *testing.T) {
		got := ExtractCollege("B.E. Mechanical | Anna University | 2016")
		require.NotNil(t, got)
		assert.Equal(t, "Anna University", *got)
	})

	t.Run("section stops at next header", func(t *testing.T) {
		got := ExtractCollege("Education\nSelf taught\nExperience\nMentor at Coding Academy")
		require.NotNil(t, got)
		assert.Equal(t, "Mentor at Coding Academy", *got)
	})

	t.Run("none", func(t *testing.T) {
		assert.Nil(t, ExtractCollege("Backend engineer"))
	})
}
