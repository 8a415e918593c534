package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/datatypes"

	"alfredoptarigan/cv-screener/internal/extraction"
	"alfredoptarigan/cv-screener/internal/models"
	"alfredoptarigan/cv-screener/internal/repositories"
)

const (
	defaultMinTextLength = 30
	defaultAITimeout     = 8 * time.Second
)

// FileJob is one uploaded document waiting to be processed.
type FileJob struct {
	FileName       string
	StoredFileName string
	UserID         string
	Data           []byte
	Reprocess      bool
}

// Input is a resume whose text is already available.
type Input struct {
	Text           string
	FileName       string
	StoredFileName string
	ContentHash    string
	UserID         string
	Reprocess      bool
}

// Outcome is the stored record and what happened to it. ReplacedFile names the
// stored upload an update superseded.
type Outcome struct {
	Candidate    *models.Candidate
	Status       models.ProcessStatus
	ReplacedFile string
}

type Orchestrator interface {
	ProcessFile(ctx context.Context, job FileJob) (*Outcome, error)
	ProcessText(ctx context.Context, in Input) (*Outcome, error)
}

type OrchestratorOptions struct {
	MinTextLength int
	AITimeout     time.Duration
	// Analyzer and Index are optional.
	Analyzer Analyzer
	Index    CandidateIndex
}

type orchestrator struct {
	repo          repositories.CandidateRepository
	source        TextSource
	engine        *extraction.Engine
	analyzer      Analyzer
	index         CandidateIndex
	minTextLength int
	aiTimeout     time.Duration
}

func NewOrchestrator(
	repo repositories.CandidateRepository,
	source TextSource,
	engine *extraction.Engine,
	opts OrchestratorOptions,
) Orchestrator {
	if opts.MinTextLength <= 0 {
		opts.MinTextLength = defaultMinTextLength
	}
	if opts.AITimeout <= 0 {
		opts.AITimeout = defaultAITimeout
	}
	if engine == nil {
		engine = extraction.NewEngine()
	}

	return &orchestrator{
		repo:          repo,
		source:        source,
		engine:        engine,
		analyzer:      opts.Analyzer,
		index:         opts.Index,
		minTextLength: opts.MinTextLength,
		aiTimeout:     opts.AITimeout,
	}
}

// ContentHash is the hex SHA-256 of the source bytes.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ProcessFile extracts the document text and continues as ProcessText.
func (o *orchestrator) ProcessFile(ctx context.Context, job FileJob) (*Outcome, error) {
	text, err := o.source.ExtractText(ctx, job.Data)
	if err != nil {
		return nil, stageError(StageTextExtraction, "failed to extract text from "+job.FileName, err)
	}

	return o.ProcessText(ctx, Input{
		Text:           text,
		FileName:       job.FileName,
		StoredFileName: job.StoredFileName,
		ContentHash:    ContentHash(job.Data),
		UserID:         job.UserID,
		Reprocess:      job.Reprocess,
	})
}

// ProcessText validates the text, extracts every field and persists the record.
func (o *orchestrator) ProcessText(ctx context.Context, in Input) (*Outcome, error) {
	text := CleanText(in.Text)
	if n := utf8.RuneCountInString(text); n < o.minTextLength {
		return nil, stageError(StageValidation,
			fmt.Sprintf("extracted text has %d characters, need at least %d", n, o.minTextLength),
			ErrInsufficientText)
	}
	if in.ContentHash == "" {
		in.ContentHash = ContentHash([]byte(text))
	}

	existing, err := o.repo.FindByFileName(ctx, in.UserID, in.FileName)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		existing = nil
	case err != nil:
		return nil, stageError(StagePersistence, "failed to look up "+in.FileName, fmt.Errorf("%w: %v", ErrPersistence, err))
	case !in.Reprocess && existing.ContentHash == in.ContentHash:
		log.Printf("⏭️  %s unchanged, skipping\n", in.FileName)
		return &Outcome{Candidate: existing, Status: models.StatusUnchanged}, nil
	}

	result := o.engine.Extract(text)
	candidate := &models.Candidate{
		UserID:           in.UserID,
		FileName:         in.FileName,
		StoredFileName:   in.StoredFileName,
		ContentHash:      in.ContentHash,
		ExtractionMethod: models.MethodHeuristic,
	}

	var projects []string
	if ai := o.analyze(ctx, in.FileName, text); ai != nil {
		mergeAI(result, ai)
		projects = ai.Projects
		candidate.ExtractionMethod = models.MethodAI
	}

	if candidate.StoredFileName == "" && existing != nil {
		candidate.StoredFileName = existing.StoredFileName
	}

	fillCandidate(candidate, result, projects)
	candidate.ProcessedAt = o.engine.Now()

	created, err := o.repo.Save(ctx, candidate)
	if err != nil {
		return nil, stageError(StagePersistence, "failed to store "+in.FileName, fmt.Errorf("%w: %v", ErrPersistence, err))
	}

	outcome := &Outcome{Candidate: candidate, Status: models.StatusUpdated}
	if created {
		outcome.Status = models.StatusCreated
	} else if existing != nil && existing.StoredFileName != "" && existing.StoredFileName != candidate.StoredFileName {
		outcome.ReplacedFile = existing.StoredFileName
	}

	if o.index != nil {
		if err := o.index.Index(ctx, candidate); err != nil {
			log.Printf("⚠️  Failed to index candidate %s: %v\n", candidate.ID, err)
		}
	}

	log.Printf("✅ %s %s (%s)\n", in.FileName, outcome.Status, candidate.ExtractionMethod)
	return outcome, nil
}

// analyze returns nil when no analyzer is configured or the call fails.
func (o *orchestrator) analyze(ctx context.Context, fileName, text string) *AIExtraction {
	if o.analyzer == nil {
		return nil
	}

	aiCtx, cancel := context.WithTimeout(ctx, o.aiTimeout)
	defer cancel()

	ai, err := o.analyzer.Analyze(aiCtx, text)
	if err != nil {
		log.Printf("⚠️  AI analysis failed for %s, using heuristics: %v\n", fileName, err)
		return nil
	}
	return ai
}

// mergeAI overlays the AI values on the heuristic result and recomputes
// everything derived from them.
func mergeAI(r *extraction.Result, ai *AIExtraction) {
	if ai.Name != nil {
		r.Name = ai.Name
	}
	if ai.Email != nil {
		r.Email = ai.Email
	}
	if ai.Phone != nil {
		r.Phone = ai.Phone
	}
	if ai.JobTitle != nil {
		r.JobTitle = ai.JobTitle
	}
	if ai.CollegeName != nil {
		r.CollegeName = ai.CollegeName
	}
	if ai.Category != nil {
		r.Category = strings.TrimSpace(*ai.Category)
	}
	if ai.YearsOfExperience != nil {
		r.YearsOfExperience = *ai.YearsOfExperience
	}
	if len(ai.Skills) > 0 {
		r.Skills = extraction.NormalizeSkills(ai.Skills)
	}

	r.Summarize()
	if ai.ProfessionalSummary != nil {
		r.ProfessionalSummary = *ai.ProfessionalSummary
	}
}

func fillCandidate(c *models.Candidate, r *extraction.Result, projects []string) {
	skills := extraction.NormalizeSkills(r.Skills)

	roles := extraction.RecommendRoles(skills)
	stored := make([]models.RoleRecommendation, 0, len(roles))
	for _, role := range roles {
		stored = append(stored, models.RoleRecommendation{Role: role.Role, Percent: role.Percent})
	}

	c.Name = extraction.StringOr(r.Name, extraction.NameNotFound)
	c.Email = extraction.StringOr(r.Email, "")
	c.Phone = extraction.StringOr(r.Phone, "")
	c.Education = extraction.StringOr(r.Education, extraction.NotSpecified)
	c.CollegeName = extraction.StringOr(r.CollegeName, extraction.NotSpecified)
	c.JobTitle = extraction.StringOr(r.JobTitle, "")
	c.Category = r.Category
	if c.Category == "" {
		c.Category = extraction.CategoryOther
	}
	c.Skills = datatypes.JSONSlice[string](skills)
	c.YearsOfExperience = r.YearsOfExperience
	c.RecommendedRoles = datatypes.JSONSlice[models.RoleRecommendation](stored)
	c.Projects = datatypes.JSONSlice[string](append([]string{}, projects...))
	c.ProfessionalSummary = r.ProfessionalSummary
	c.ShortSummary = r.ShortSummary
}
