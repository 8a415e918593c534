package extraction

import (
	"regexp"
	"strings"
)

// DisplaySkillLimit caps the skill list where it is shown to people, such as
// summaries and exports.
const DisplaySkillLimit = 8

type skillTerm struct {
	name string
	re   *regexp.Regexp
}

// keyword compiles a case-insensitive matcher for any of the given spellings.
// A hit must not be glued to a neighbouring letter, digit, '+' or '#', so
// "Java" is not found inside "JavaScript" and "SQL" is not found inside "MySQL".
func keyword(spellings ...string) *regexp.Regexp {
	quoted := make([]string, len(spellings))
	for i, s := range spellings {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return regexp.MustCompile(`(?i)(?:^|[^A-Za-z0-9+#])(?:` + strings.Join(quoted, "|") + `)(?:$|[^A-Za-z0-9+#])`)
}

func term(name string, spellings ...string) skillTerm {
	if len(spellings) == 0 {
		spellings = []string{name}
	}
	return skillTerm{name: name, re: keyword(spellings...)}
}

// skillVocabulary is ordered; extracted skills keep this order.
var skillVocabulary = []skillTerm{
	term("Python"),
	term("Java"),
	term("JavaScript"),
	term("TypeScript"),
	// "Go" is case-sensitive and never hyphenated, so "Go-getter" is not a skill.
	{name: "Go", re: regexp.MustCompile(`(?:^|[^A-Za-z0-9])(?:Go(?:$|[^A-Za-z0-9+#-])|(?i:golang)(?:$|[^A-Za-z0-9+#]))`)},
	term("C++", "c++", "cpp"),
	term("C#", "c#", "csharp"),
	term("PHP"),
	term("SQL"),
	term("React", "react", "react.js", "reactjs"),
	term("Angular"),
	term("Vue.js", "vue", "vue.js", "vuejs"),
	term("Node.js", "node.js", "nodejs"),
	term("Django"),
	term("Flask"),
	term("Spring Boot", "spring boot", "springboot"),
	term("HTML", "html", "html5"),
	term("CSS", "css", "css3"),
	term("AWS", "aws", "amazon web services"),
	term("Azure"),
	term("GCP", "gcp", "google cloud"),
	term("Docker"),
	term("Kubernetes", "kubernetes", "k8s"),
	term("Terraform"),
	term("Jenkins"),
	term("Git", "git", "github", "gitlab"),
	term("Linux"),
	term("MongoDB", "mongodb", "mongo"),
	term("PostgreSQL", "postgresql", "postgres"),
	term("MySQL"),
	term("Redis"),
	term("Machine Learning", "machine learning"),
	term("TensorFlow"),
	term("PyTorch"),
	term("Pandas"),
	term("Selenium"),
	term("Jira"),
	term("Postman"),
	term("Tableau"),
	term("Power BI", "power bi", "powerbi"),
	term("Excel", "excel", "ms excel"),
}

// ExtractSkills returns every vocabulary skill present in text, once each, in
// vocabulary order. Display names use the vocabulary casing.
func ExtractSkills(text string) []string {
	skills := make([]string, 0)
	for _, t := range skillVocabulary {
		if t.re.MatchString(text) {
			skills = append(skills, t.name)
		}
	}
	return skills
}

// DisplaySkills returns at most DisplaySkillLimit skills.
func DisplaySkills(skills []string) []string {
	if len(skills) <= DisplaySkillLimit {
		return skills
	}
	return skills[:DisplaySkillLimit]
}

// NormalizeSkills trims and deduplicates skills case-insensitively, keeping
// the first spelling seen. Known vocabulary terms are given their canonical
// casing.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		s = canonicalSkill(s)
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

func canonicalSkill(s string) string {
	for _, t := range skillVocabulary {
		if strings.EqualFold(t.name, s) {
			return t.name
		}
	}
	return s
}
