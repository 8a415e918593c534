package repositories

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/cv-screener/internal/models"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, defaultPageSize},
		{3, 10, 3, 10},
		{-1, 500, 1, maxPageSize},
	}
	for _, tt := range tests {
		page, limit := Paginate(tt.page, tt.limit)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantLimit, limit)
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%react%", likePattern(" react "))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		t.Skip("Skipping integration test: DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, db.AutoMigrate(&models.Candidate{}))
	return db
}

func TestCandidateRepository_Integration(t *testing.T) {
	db := setupIntegrationDB(t)
	repo := NewCandidateRepository(db)
	ctx := context.Background()

	userID := "it-" + uuid.NewString()
	t.Cleanup(func() {
		db.Where("user_id = ?", userID).Delete(&models.Candidate{})
	})

	candidate := &models.Candidate{
		UserID:            userID,
		FileName:          "jane.pdf",
		ContentHash:       "hash-1",
		Name:              "Jane Doe",
		Category:          "Backend",
		Skills:            []string{"Python", "Docker"},
		YearsOfExperience: 6,
		ExtractionMethod:  models.MethodHeuristic,
	}

	created, err := repo.Save(ctx, candidate)
	require.NoError(t, err)
	assert.True(t, created)
	firstID := candidate.ID

	again := &models.Candidate{
		UserID:            userID,
		FileName:          "jane.pdf",
		ContentHash:       "hash-2",
		Name:              "Jane Doe",
		Category:          "Backend",
		Skills:            []string{"Python", "Docker", "AWS"},
		YearsOfExperience: 7,
		ExtractionMethod:  models.MethodAI,
	}
	created, err = repo.Save(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, firstID, again.ID)

	found, err := repo.FindByFileName(ctx, userID, "jane.pdf")
	require.NoError(t, err)
	assert.Equal(t, "hash-2", found.ContentHash)
	assert.Equal(t, []string{"Python", "Docker", "AWS"}, found.SkillList())

	items, total, err := repo.List(ctx, models.CandidateFilter{UserID: userID, Skill: "aws"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)

	stats, err := repo.Stats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.InDelta(t, 7.0, stats.AverageExperience, 0.001)
	assert.Equal(t, int64(1), stats.ByMethod["ai"])

	require.NoError(t, repo.Delete(ctx, userID, firstID))
	_, err = repo.FindByID(ctx, firstID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, userID, firstID), ErrNotFound)
}

func TestCandidateRepository_ConcurrentSaveSameFile(t *testing.T) {
	db := setupIntegrationDB(t)
	repo := NewCandidateRepository(db)
	ctx := context.Background()

	userID := "it-" + uuid.NewString()
	t.Cleanup(func() {
		db.Where("user_id = ?", userID).Delete(&models.Candidate{})
	})

	const writers = 4
	var wg sync.WaitGroup
	errs := make([]error, writers)
	createdFlags := make([]bool, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			createdFlags[i], errs[i] = repo.Save(ctx, &models.Candidate{
				UserID:           userID,
				FileName:         "cv.pdf",
				ContentHash:      fmt.Sprintf("hash-%d", i),
				Name:             "Jane Doe",
				Category:         "Backend",
				ExtractionMethod: models.MethodHeuristic,
			})
		}(i)
	}
	wg.Wait()

	creates := 0
	for i := 0; i < writers; i++ {
		require.NoError(t, errs[i])
		if createdFlags[i] {
			creates++
		}
	}
	assert.Equal(t, 1, creates)

	var count int64
	require.NoError(t, db.Model(&models.Candidate{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
