package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCategory(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"qa wins over frontend", "QA Engineer testing React apps with Selenium", "QA"},
		{"business analyst", "Business Analyst focused on requirements gathering", "Business Analyst"},
		{"fullstack before frontend", "Full-stack developer, React and Node.js", "Fullstack"},
		{"frontend", "Frontend developer building React dashboards", "Frontend"},
		{"backend", "Designed microservices with Django", "Backend"},
		{"data scientist", "Researcher applying deep learning to imaging", "Data Scientist"},
		{"substring inside a word", "Grew revenue by 20%", CategoryOther},
		{"nothing", "Line cook and barista", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCategory(tt.text))
		})
	}
}

func TestExtractJobTitle(t *testing.T) {
	t.Run("labeled", func(t *testing.T) {
		v, rule, ok := titleCascade.Run("Jane Doe\nTitle: Staff Data Scientist\n")
		require.True(t, ok)
		assert.Equal(t, "Staff Data Scientist", v)
		assert.Equal(t, "labeled", rule)
	})

	t.Run("header segment", func(t *testing.T) {
		v, rule, ok := titleCascade.Run("Jane Doe | Senior Backend Engineer\njane@acme.io")
		require.True(t, ok)
		assert.Equal(t, "Senior Backend Engineer", v)
		assert.Equal(t, "header_title", rule)
	})

	t.Run("sentences are not titles", func(t *testing.T) {
		assert.Nil(t, ExtractJobTitle("I worked closely with every engineer on the team."))
	})
}
