package models

import "time"

type ProcessStatus string

const (
	StatusCreated   ProcessStatus = "created"
	StatusUpdated   ProcessStatus = "updated"
	StatusUnchanged ProcessStatus = "unchanged"
	StatusRejected  ProcessStatus = "rejected"
	StatusFailed    ProcessStatus = "failed"
)

// FileResult reports the outcome for one uploaded file.
type FileResult struct {
	FileName         string           `json:"file_name"`
	Status           ProcessStatus    `json:"status"`
	CandidateID      string           `json:"candidate_id,omitempty"`
	ExtractionMethod ExtractionMethod `json:"extraction_method,omitempty"`
	Candidate        *Candidate       `json:"candidate,omitempty"`
	Error            string           `json:"error,omitempty"`
	// ReplacedFile is the stored upload an update superseded.
	ReplacedFile     string           `json:"-"`
}

type UploadResponse struct {
	Message string       `json:"message"`
	Results []FileResult `json:"results"`
	Summary BatchSummary `json:"summary"`
}

type BatchSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Rejected  int `json:"rejected"`
	Failed    int `json:"failed"`
}

type ExtractRequest struct {
	Text string `json:"text" validate:"required"`
}

// ExtractResponse is a heuristic-only preview; nothing is persisted.
type ExtractResponse struct {
	Name                string               `json:"name"`
	Email               string               `json:"email"`
	Phone               string               `json:"phone"`
	Category            string               `json:"category"`
	JobTitle            string               `json:"job_title"`
	Education           string               `json:"education"`
	CollegeName         string               `json:"college_name"`
	Skills              []string             `json:"skills"`
	YearsOfExperience   int                  `json:"years_of_experience"`
	TotalMonths         int                  `json:"total_months"`
	WorkHistory         []WorkPeriod         `json:"work_history"`
	RecommendedRoles    []RoleRecommendation `json:"recommended_roles"`
	ProfessionalSummary string               `json:"professional_summary"`
	ShortSummary        string               `json:"short_summary"`
	MatchedRules        map[string]string    `json:"matched_rules"`
}

type WorkPeriod struct {
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	DurationMonths int       `json:"duration_months"`
}

// CandidateFilter narrows candidate listings and exports.
type CandidateFilter struct {
	UserID        string `query:"-" validate:"required"`
	Category      string `query:"category" validate:"omitempty,max=64"`
	Skill         string `query:"skill" validate:"omitempty,max=64"`
	MinExperience *int   `query:"min_experience" validate:"omitempty,min=0,max=60"`
	MaxExperience *int   `query:"max_experience" validate:"omitempty,min=0,max=60"`
	Query         string `query:"q" validate:"omitempty,max=128"`
	Page          int    `query:"page" validate:"omitempty,min=1"`
	Limit         int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

type CandidateListResponse struct {
	Items []Candidate `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

type CategoryStat struct {
	Category          string  `json:"category"`
	Count             int64   `json:"count"`
	AverageExperience float64 `json:"average_experience"`
}

type StatsResponse struct {
	Total             int64            `json:"total"`
	AverageExperience float64          `json:"average_experience"`
	ByCategory        []CategoryStat   `json:"by_category"`
	ByMethod          map[string]int64 `json:"by_method"`
}

type SearchHit struct {
	Candidate Candidate `json:"candidate"`
	Score     float32   `json:"score"`
}
