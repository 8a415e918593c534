package extraction

import (
	"math"
	"sort"
	"strings"
)

const (
	maxRecommendations = 3
	maxRolePercent     = 95
	roleMatchBonus     = 10
)

// RoleRecommendation is a role suggestion with its match percentage.
type RoleRecommendation struct {
	Role    string `json:"role"`
	Percent int    `json:"percent"`
}

// Fallback recommendations.
var (
	SoftwareDeveloperFallback = RoleRecommendation{Role: "Software Developer", Percent: 60}
	GeneralCandidateFallback  = RoleRecommendation{Role: "General Candidate", Percent: 40}
)

type roleProfile struct {
	role   string
	skills []string
}

var roleProfiles = []roleProfile{
	{"Backend Developer", []string{"Python", "Java", "Node.js", "SQL", "PostgreSQL", "Django", "Spring Boot", "Redis", "Docker"}},
	{"Frontend Developer", []string{"JavaScript", "TypeScript", "React", "Angular", "Vue.js", "HTML", "CSS"}},
	{"Full Stack Developer", []string{"JavaScript", "React", "Node.js", "SQL", "MongoDB", "HTML", "CSS", "Docker"}},
	{"Data Scientist", []string{"Python", "Machine Learning", "TensorFlow", "PyTorch", "Pandas", "SQL", "Tableau"}},
	{"DevOps Engineer", []string{"Docker", "Kubernetes", "Terraform", "Jenkins", "AWS", "Linux", "Git"}},
	{"QA Engineer", []string{"Selenium", "Postman", "Jira", "Java", "Python"}},
	{"Business Analyst", []string{"Excel", "SQL", "Tableau", "Power BI", "Jira"}},
	{"Cloud Engineer", []string{"AWS", "Azure", "GCP", "Terraform", "Kubernetes", "Docker"}},
}

// RecommendRoles scores skills against every role profile. A role skill counts
// as matched when it and any candidate skill contain one another, ignoring
// case. The score is min(95, round(matched/total*100)+10); roles without a
// match are dropped and the best three are returned. Ties keep profile order.
func RecommendRoles(skills []string) []RoleRecommendation {
	lowered := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			lowered = append(lowered, s)
		}
	}
	if len(lowered) == 0 {
		return []RoleRecommendation{GeneralCandidateFallback}
	}

	var recs []RoleRecommendation
	for _, p := range roleProfiles {
		matched := 0
		for _, rs := range p.skills {
			if skillMatches(strings.ToLower(rs), lowered) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		percent := int(math.Round(float64(matched)/float64(len(p.skills))*100)) + roleMatchBonus
		if percent > maxRolePercent {
			percent = maxRolePercent
		}
		recs = append(recs, RoleRecommendation{Role: p.role, Percent: percent})
	}

	if len(recs) == 0 {
		return []RoleRecommendation{SoftwareDeveloperFallback}
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Percent > recs[j].Percent })
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func skillMatches(roleSkill string, candidate []string) bool {
	for _, s := range candidate {
		if strings.Contains(s, roleSkill) || strings.Contains(roleSkill, s) {
			return true
		}
	}
	return false
}
