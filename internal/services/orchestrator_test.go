package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/cv-screener/internal/extraction"
	"alfredoptarigan/cv-screener/internal/models"
)

const sampleResume = `Jane Doe
Senior Backend Engineer
jane.doe@gmail.com | +1 415 555 0123

EXPERIENCE
Senior Engineer, Acme Corp | May 2018 - Present
Built microservices in Python and Docker on AWS.
Engineer, Beta Labs | Jan 2015 - Apr 2018
Intern, Gamma Inc | Jun 2013 - Dec 2014

EDUCATION
Bachelor of Science in Computer Science
Stanford University
`

var processedAt = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

func testEngine() *extraction.Engine {
	return extraction.NewEngine(extraction.WithClock(func() time.Time { return processedAt }))
}

func newTestOrchestrator(repo *memoryRepo, opts OrchestratorOptions) Orchestrator {
	return NewOrchestrator(repo, textByContent{}, testEngine(), opts)
}

func TestOrchestrator_ProcessFile_Heuristic(t *testing.T) {
	repo := newMemoryRepo()
	o := newTestOrchestrator(repo, OrchestratorOptions{})

	out, err := o.ProcessFile(context.Background(), FileJob{FileName: "jane.pdf", UserID: "u1", Data: []byte(sampleResume)})
	require.NoError(t, err)

	assert.Equal(t, models.StatusCreated, out.Status)
	c := out.Candidate
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, "jane.doe@gmail.com", c.Email)
	assert.Equal(t, "Backend", c.Category)
	assert.Equal(t, "Stanford University", c.CollegeName)
	assert.Equal(t, 10, c.YearsOfExperience)
	assert.Equal(t, []string{"Python", "AWS", "Docker"}, c.SkillList())
	assert.Equal(t, models.MethodHeuristic, c.ExtractionMethod)
	assert.Equal(t, ContentHash([]byte(sampleResume)), c.ContentHash)
	assert.Equal(t, processedAt, c.ProcessedAt)
	require.NotEmpty(t, c.RecommendedRoles)
	assert.Equal(t, "Cloud Engineer", c.RecommendedRoles[0].Role)
	assert.Empty(t, c.Projects)
}

func TestOrchestrator_DuplicateUpload(t *testing.T) {
	repo := newMemoryRepo()
	o := newTestOrchestrator(repo, OrchestratorOptions{})
	ctx := context.Background()
	job := FileJob{FileName: "jane.pdf", UserID: "u1", Data: []byte(sampleResume)}

	first, err := o.ProcessFile(ctx, job)
	require.NoError(t, err)

	second, err := o.ProcessFile(ctx, job)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnchanged, second.Status)
	assert.Equal(t, first.Candidate.ID, second.Candidate.ID)
	assert.Equal(t, 1, repo.saves)

	job.Reprocess = true
	third, err := o.ProcessFile(ctx, job)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUpdated, third.Status)
	assert.Equal(t, first.Candidate.ID, third.Candidate.ID)

	job.Reprocess = false
	job.Data = []byte(sampleResume + "\nCertified Kubernetes Administrator\n")
	fourth, err := o.ProcessFile(ctx, job)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUpdated, fourth.Status)
	assert.Len(t, repo.byKey, 1)
}

func TestOrchestrator_ReplacedStoredFile(t *testing.T) {
	repo := newMemoryRepo()
	o := newTestOrchestrator(repo, OrchestratorOptions{})
	ctx := context.Background()

	first, err := o.ProcessFile(ctx, FileJob{FileName: "jane.pdf", StoredFileName: "resume_a.pdf", UserID: "u1", Data: []byte(sampleResume)})
	require.NoError(t, err)
	assert.Empty(t, first.ReplacedFile)

	unchanged, err := o.ProcessFile(ctx, FileJob{FileName: "jane.pdf", StoredFileName: "resume_b.pdf", UserID: "u1", Data: []byte(sampleResume)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnchanged, unchanged.Status)
	assert.Empty(t, unchanged.ReplacedFile)
	assert.Equal(t, "resume_a.pdf", unchanged.Candidate.StoredFileName)

	updated, err := o.ProcessFile(ctx, FileJob{FileName: "jane.pdf", StoredFileName: "resume_c.pdf", UserID: "u1", Data: []byte(sampleResume), Reprocess: true})
	require.NoError(t, err)
	assert.Equal(t, models.StatusUpdated, updated.Status)
	assert.Equal(t, "resume_a.pdf", updated.ReplacedFile)
	assert.Equal(t, "resume_c.pdf", updated.Candidate.StoredFileName)

	cli, err := o.ProcessFile(ctx, FileJob{FileName: "jane.pdf", UserID: "u1", Data: []byte(sampleResume), Reprocess: true})
	require.NoError(t, err)
	assert.Empty(t, cli.ReplacedFile)
	assert.Equal(t, "resume_c.pdf", cli.Candidate.StoredFileName)
}

func TestOrchestrator_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		source    TextSource
		data      string
		wantErr   error
		wantStage Stage
	}{
		{name: "short text", source: textByContent{}, data: "Jane Doe\n  \n", wantErr: ErrInsufficientText, wantStage: StageValidation},
		{name: "empty text", source: textByContent{}, data: "", wantErr: ErrInsufficientText, wantStage: StageValidation},
		{name: "unreadable pdf", source: textByContent{err: ErrTextExtraction}, data: "%PDF", wantErr: ErrTextExtraction, wantStage: StageTextExtraction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryRepo()
			o := NewOrchestrator(repo, tt.source, testEngine(), OrchestratorOptions{})

			_, err := o.ProcessFile(context.Background(), FileJob{FileName: "x.pdf", UserID: "u1", Data: []byte(tt.data)})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var perr *ProcessingError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.wantStage, perr.Stage)
			assert.Zero(t, repo.saves)
		})
	}
}

func TestOrchestrator_AIMerge(t *testing.T) {
	title := "Staff Platform Engineer"
	summary := "Platform engineer focused on reliability."
	years := 12
	analyzer := &fakeAnalyzer{result: &AIExtraction{
		JobTitle:            &title,
		ProfessionalSummary: &summary,
		YearsOfExperience:   &years,
		Skills:              []string{"go", "kubernetes", "Go"},
		Projects:            []string{"Billing"},
	}}

	o := newTestOrchestrator(newMemoryRepo(), OrchestratorOptions{Analyzer: analyzer})
	out, err := o.ProcessText(context.Background(), Input{Text: sampleResume, FileName: "jane.pdf", UserID: "u1"})
	require.NoError(t, err)

	c := out.Candidate
	assert.Equal(t, models.MethodAI, c.ExtractionMethod)
	assert.Equal(t, title, c.JobTitle)
	assert.Equal(t, summary, c.ProfessionalSummary)
	assert.Equal(t, 12, c.YearsOfExperience)
	assert.Equal(t, []string{"Go", "Kubernetes"}, c.SkillList())
	assert.Equal(t, []string{"Billing"}, []string(c.Projects))
	assert.Equal(t, "Staff Platform Engineer | 12 years | Go, Kubernetes", c.ShortSummary)

	// Fields the AI left out come from the heuristics.
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, "jane.doe@gmail.com", c.Email)
	assert.Equal(t, "Backend", c.Category)

	want := extraction.RecommendRoles(c.SkillList())
	require.Len(t, c.RecommendedRoles, len(want))
	for i := range want {
		assert.Equal(t, want[i].Role, c.RecommendedRoles[i].Role)
		assert.Equal(t, want[i].Percent, c.RecommendedRoles[i].Percent)
	}
}

func TestOrchestrator_AIFallback(t *testing.T) {
	tests := []struct {
		name     string
		analyzer *fakeAnalyzer
	}{
		{name: "error", analyzer: &fakeAnalyzer{err: ErrNoUsableFields}},
		{name: "timeout", analyzer: &fakeAnalyzer{block: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrchestrator(newMemoryRepo(), OrchestratorOptions{Analyzer: tt.analyzer, AITimeout: 20 * time.Millisecond})

			out, err := o.ProcessText(context.Background(), Input{Text: sampleResume, FileName: "jane.pdf", UserID: "u1"})
			require.NoError(t, err)
			assert.Equal(t, models.MethodHeuristic, out.Candidate.ExtractionMethod)
			assert.Equal(t, "Senior Backend Engineer", out.Candidate.JobTitle)
		})
	}
}

func TestOrchestrator_Sentinels(t *testing.T) {
	o := newTestOrchestrator(newMemoryRepo(), OrchestratorOptions{})

	out, err := o.ProcessText(context.Background(), Input{
		Text:     "looking for opportunities in a friendly team environment anywhere",
		FileName: "blank.pdf",
		UserID:   "u1",
	})
	require.NoError(t, err)

	c := out.Candidate
	assert.Equal(t, extraction.NameNotFound, c.Name)
	assert.Equal(t, extraction.NotSpecified, c.Education)
	assert.Equal(t, extraction.NotSpecified, c.CollegeName)
	assert.Equal(t, extraction.CategoryOther, c.Category)
	assert.Zero(t, c.YearsOfExperience)
	assert.Empty(t, c.SkillList())
	require.Len(t, c.RecommendedRoles, 1)
	assert.Equal(t, extraction.GeneralCandidateFallback.Role, c.RecommendedRoles[0].Role)
}

func TestOrchestrator_PersistenceFailure(t *testing.T) {
	repo := newMemoryRepo()
	repo.saveErr = errors.New("connection refused")
	o := newTestOrchestrator(repo, OrchestratorOptions{})

	_, err := o.ProcessText(context.Background(), Input{Text: sampleResume, FileName: "jane.pdf", UserID: "u1"})
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestOrchestrator_IndexFailureIgnored(t *testing.T) {
	index := &recordingIndex{err: errors.New("qdrant down")}
	o := newTestOrchestrator(newMemoryRepo(), OrchestratorOptions{Index: index})

	out, err := o.ProcessText(context.Background(), Input{Text: sampleResume, FileName: "jane.pdf", UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCreated, out.Status)
	assert.Equal(t, []uuid.UUID{out.Candidate.ID}, index.indexed)
}
