package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ExtractionMethod string

const (
	MethodAI        ExtractionMethod = "ai"
	MethodHeuristic ExtractionMethod = "heuristic"
)

// RoleRecommendation is stored as part of a candidate's JSONB role list.
type RoleRecommendation struct {
	Role    string `json:"role"`
	Percent int    `json:"percent"`
}

type Candidate struct {
	ID                  uuid.UUID                               `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID              string                                  `gorm:"type:text;not null;uniqueIndex:idx_candidates_user_file" json:"user_id"`
	FileName            string                                  `gorm:"type:text;not null;uniqueIndex:idx_candidates_user_file" json:"file_name"`
	StoredFileName      string                                  `gorm:"type:text" json:"stored_file_name,omitempty"`
	ContentHash         string                                  `gorm:"type:char(64);index" json:"content_hash"`
	Name                string                                  `gorm:"type:text" json:"name"`
	Email               string                                  `gorm:"type:text" json:"email"`
	Phone               string                                  `gorm:"type:text" json:"phone"`
	Category            string                                  `gorm:"type:text;index" json:"category"`
	JobTitle            string                                  `gorm:"type:text" json:"job_title"`
	Education           string                                  `gorm:"type:text" json:"education"`
	CollegeName         string                                  `gorm:"type:text" json:"college_name"`
	Skills              datatypes.JSONSlice[string]             `gorm:"type:jsonb" json:"skills"`
	YearsOfExperience   int                                     `gorm:"not null;default:0" json:"years_of_experience"`
	RecommendedRoles    datatypes.JSONSlice[RoleRecommendation] `gorm:"type:jsonb" json:"recommended_roles"`
	Projects            datatypes.JSONSlice[string]             `gorm:"type:jsonb" json:"projects"`
	ProfessionalSummary string                                  `gorm:"type:text" json:"professional_summary"`
	ShortSummary        string                                  `gorm:"type:text" json:"short_summary"`
	ExtractionMethod    ExtractionMethod                        `gorm:"type:text;not null;default:'heuristic'" json:"extraction_method"`
	ProcessedAt         time.Time                               `json:"processed_at"`
	CreatedAt           time.Time                               `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time                               `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// SkillList returns the skills as a plain slice.
func (c *Candidate) SkillList() []string {
	return []string(c.Skills)
}
