package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCandidateExtractionPrompt creates the prompt for structured resume extraction
func (pb *PromptBuilder) BuildCandidateExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert technical recruiter extracting structured data from a candidate's resume.

RESUME TEXT:
%s

Extract the following fields. Use only information present in the resume; do not invent values.
If a field cannot be determined, return null for it (or an empty array for list fields).

1. name - Full name of the candidate
2. email - Primary email address
3. phone - Primary phone number, as written
4. category - One of: QA, Business Analyst, Fullstack, Frontend, Backend, Data Scientist, Other
5. jobTitle - Current or most recent job title
6. yearsOfExperience - Total professional experience in whole years; overlapping jobs count once
7. skills - Technologies, languages, frameworks and tools (at most 20)
8. collegeName - Most recent university or college
9. professionalSummary - 2-3 sentence neutral summary of the candidate
10. projects - Names of notable projects (at most 5)

Return your response in the following JSON format:
{
  "name": "<string or null>",
  "email": "<string or null>",
  "phone": "<string or null>",
  "category": "<string or null>",
  "jobTitle": "<string or null>",
  "yearsOfExperience": <integer or null>,
  "skills": ["<string>"],
  "collegeName": "<string or null>",
  "professionalSummary": "<string or null>",
  "projects": ["<string>"]
}

Return ONLY the JSON object.`, strings.TrimSpace(resumeText))
}

// BuildProfileText is the text embedded for semantic candidate search
func (pb *PromptBuilder) BuildProfileText(title, category string, years int, skills []string, summary string) string {
	var parts []string
	if title != "" {
		parts = append(parts, "Title: "+title)
	}
	if category != "" {
		parts = append(parts, "Category: "+category)
	}
	parts = append(parts, fmt.Sprintf("Experience: %d years", years))
	if len(skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(skills, ", "))
	}
	if summary != "" {
		parts = append(parts, "Summary: "+summary)
	}
	return strings.Join(parts, "\n")
}
