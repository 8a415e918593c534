package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	maxPromptChars  = 3000
	maxAIYears      = 60
	maxAISkills     = 30
	maxAIProjects   = 10
	analyzerTemp    = float32(0.1)
	minPhoneDigits  = 7
	maxFieldRunes   = 500
	maxSummaryRunes = 2000
)

// AIExtraction holds the fields an AI reply provided. Nil or empty means the
// field was absent or failed validation.
type AIExtraction struct {
	Name                *string
	Email               *string
	Phone               *string
	Category            *string
	JobTitle            *string
	CollegeName         *string
	ProfessionalSummary *string
	YearsOfExperience   *int
	Skills              []string
	Projects            []string
}

func (a *AIExtraction) empty() bool {
	return a.Name == nil && a.Email == nil && a.Phone == nil && a.Category == nil &&
		a.JobTitle == nil && a.CollegeName == nil && a.ProfessionalSummary == nil &&
		a.YearsOfExperience == nil && len(a.Skills) == 0 && len(a.Projects) == 0
}

type Analyzer interface {
	Analyze(ctx context.Context, resumeText string) (*AIExtraction, error)
}

type geminiAnalyzer struct {
	gemini  GeminiService
	prompts *PromptBuilder
	chunker TextChunker
}

func NewGeminiAnalyzer(gemini GeminiService, prompts *PromptBuilder, chunker TextChunker) Analyzer {
	return &geminiAnalyzer{
		gemini:  gemini,
		prompts: prompts,
		chunker: chunker,
	}
}

// Analyze sends the head of the resume to Gemini and decodes the reply.
func (a *geminiAnalyzer) Analyze(ctx context.Context, resumeText string) (*AIExtraction, error) {
	head := a.chunker.Head(resumeText, maxPromptChars)
	if head == "" {
		return nil, ErrInsufficientText
	}

	raw, err := a.gemini.GenerateJSON(ctx, a.prompts.BuildCandidateExtractionPrompt(head), analyzerTemp)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze resume: %w", err)
	}

	return DecodeAIExtraction(raw)
}

var (
	validate       = validator.New()
	leadingYearsRe = regexp.MustCompile(`^\s*(\d{1,2}(?:\.\d+)?)`)
	listSplitRe    = regexp.MustCompile(`\s*[,;\n]\s*`)
)

var placeholderValues = map[string]bool{
	"":              true,
	"n/a":           true,
	"na":            true,
	"none":          true,
	"null":          true,
	"nil":           true,
	"unknown":       true,
	"not found":     true,
	"not provided":  true,
	"not specified": true,
	"not available": true,
	"-":             true,
}

// DecodeAIExtraction parses a model reply leniently. Markdown fences and text
// around the JSON object are ignored, each field is checked on its own, and a
// reply with no usable field at all is ErrNoUsableFields.
func DecodeAIExtraction(raw string) (*AIExtraction, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(extractJSON(raw)), &fields); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	lookup := func(keys ...string) json.RawMessage {
		for _, k := range keys {
			if v, ok := fields[k]; ok {
				return v
			}
		}
		return nil
	}

	out := &AIExtraction{
		Name:                textField(lookup("name", "fullName", "full_name"), maxFieldRunes),
		Category:            textField(lookup("category"), maxFieldRunes),
		JobTitle:            textField(lookup("jobTitle", "job_title", "title"), maxFieldRunes),
		CollegeName:         textField(lookup("collegeName", "college_name", "college", "university"), maxFieldRunes),
		ProfessionalSummary: textField(lookup("professionalSummary", "professional_summary", "summary"), maxSummaryRunes),
		YearsOfExperience:   yearsField(lookup("yearsOfExperience", "years_of_experience", "experience")),
		Skills:              listField(lookup("skills"), maxAISkills),
		Projects:            listField(lookup("projects"), maxAIProjects),
	}

	if email := textField(lookup("email"), maxFieldRunes); email != nil && validate.Var(*email, "email") == nil {
		out.Email = email
	}
	if phone := textField(lookup("phone", "phoneNumber", "phone_number"), maxFieldRunes); phone != nil && countDigits(*phone) >= minPhoneDigits {
		out.Phone = phone
	}

	if out.empty() {
		return nil, ErrNoUsableFields
	}
	return out, nil
}

// extractJSON strips markdown fences and returns the outermost JSON object.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return strings.TrimSpace(text)
}

func usable(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if placeholderValues[strings.ToLower(s)] {
		return "", false
	}
	return s, true
}

func textField(raw json.RawMessage, maxRunes int) *string {
	if raw == nil {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s, ok := usable(s)
	if !ok || len([]rune(s)) > maxRunes {
		return nil
	}
	return &s
}

func yearsField(raw json.RawMessage) *int {
	if raw == nil {
		return nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		m := leadingYearsRe.FindStringSubmatch(s)
		if m == nil {
			return nil
		}
		if f, err = strconv.ParseFloat(m[1], 64); err != nil {
			return nil
		}
	}

	if math.IsNaN(f) || f < 0 || f > maxAIYears {
		return nil
	}
	years := int(math.Floor(f))
	return &years
}

func listField(raw json.RawMessage, limit int) []string {
	if raw == nil {
		return nil
	}

	var items []string
	var values []json.RawMessage
	if err := json.Unmarshal(raw, &values); err == nil {
		for _, v := range values {
			var s string
			if json.Unmarshal(v, &s) == nil {
				items = append(items, s)
			}
		}
	} else {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		items = listSplitRe.Split(s, -1)
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item, ok := usable(item); ok && len([]rune(item)) <= maxFieldRunes {
			out = append(out, item)
		}
		if len(out) == limit {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
