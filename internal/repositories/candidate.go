package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/cv-screener/internal/models"
)

// ErrNotFound is returned when no candidate matches the lookup.
var ErrNotFound = errors.New("candidate not found")

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type CandidateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
	FindByFileName(ctx context.Context, userID, fileName string) (*models.Candidate, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Candidate, error)
	Create(ctx context.Context, candidate *models.Candidate) error
	Save(ctx context.Context, candidate *models.Candidate) (created bool, err error)
	List(ctx context.Context, filter models.CandidateFilter) ([]models.Candidate, int64, error)
	ListAll(ctx context.Context, filter models.CandidateFilter) ([]models.Candidate, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	Stats(ctx context.Context, userID string) (*models.StatsResponse, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

func (r *candidateRepository) FindByFileName(ctx context.Context, userID, fileName string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND file_name = ?", userID, fileName).
		First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

func (r *candidateRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if len(ids) == 0 {
		return candidates, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	if err := r.db.WithContext(ctx).Create(candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

// Save inserts the candidate, or updates the existing row for the same user
// and file name in place. When a concurrent save inserts the same key first,
// the insert becomes an update of that row.
func (r *candidateRepository) Save(ctx context.Context, candidate *models.Candidate) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Candidate
		err := lockByFileName(tx, candidate.UserID, candidate.FileName, &existing)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if candidate.ID == uuid.Nil {
				candidate.ID = uuid.New()
			}
			result := tx.Clauses(clause.OnConflict{Columns: userFileColumns, DoNothing: true}).Create(candidate)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 1 {
				created = true
				return nil
			}
			err = lockByFileName(tx, candidate.UserID, candidate.FileName, &existing)
		}
		if err != nil {
			return err
		}

		candidate.ID = existing.ID
		candidate.CreatedAt = existing.CreatedAt
		return tx.Save(candidate).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to save candidate: %w", err)
	}
	return created, nil
}

var userFileColumns = []clause.Column{{Name: "user_id"}, {Name: "file_name"}}

func lockByFileName(tx *gorm.DB, userID, fileName string, dest *models.Candidate) error {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND file_name = ?", userID, fileName).
		First(dest).Error
}

func (r *candidateRepository) filtered(ctx context.Context, f models.CandidateFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Candidate{}).Where("user_id = ?", f.UserID)

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Skill != "" {
		q = q.Where("skills::text ILIKE ?", likePattern(f.Skill))
	}
	if f.MinExperience != nil {
		q = q.Where("years_of_experience >= ?", *f.MinExperience)
	}
	if f.MaxExperience != nil {
		q = q.Where("years_of_experience <= ?", *f.MaxExperience)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		q = q.Where("(name ILIKE ? OR email ILIKE ? OR job_title ILIKE ?)", p, p, p)
	}
	return q
}

func (r *candidateRepository) List(ctx context.Context, f models.CandidateFilter) ([]models.Candidate, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count candidates: %w", err)
	}

	page, limit := Paginate(f.Page, f.Limit)

	var candidates []models.Candidate
	err := r.filtered(ctx, f).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&candidates).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list candidates: %w", err)
	}

	return candidates, total, nil
}

func (r *candidateRepository) ListAll(ctx context.Context, f models.CandidateFilter) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := r.filtered(ctx, f).Order("created_at DESC").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Candidate{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete candidate: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *candidateRepository) Stats(ctx context.Context, userID string) (*models.StatsResponse, error) {
	stats := &models.StatsResponse{ByMethod: make(map[string]int64)}
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Candidate{}).Where("user_id = ?", userID)
	}

	var overall struct {
		Total             int64
		AverageExperience float64
	}
	err := base().
		Select("COUNT(*) AS total, COALESCE(AVG(years_of_experience), 0) AS average_experience").
		Scan(&overall).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute candidate stats: %w", err)
	}
	stats.Total = overall.Total
	stats.AverageExperience = overall.AverageExperience

	err = base().
		Select("category, COUNT(*) AS count, COALESCE(AVG(years_of_experience), 0) AS average_experience").
		Group("category").
		Order("count DESC, category ASC").
		Scan(&stats.ByCategory).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute category stats: %w", err)
	}

	var methods []struct {
		ExtractionMethod string
		Count            int64
	}
	err = base().
		Select("extraction_method, COUNT(*) AS count").
		Group("extraction_method").
		Scan(&methods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute method stats: %w", err)
	}
	for _, m := range methods {
		stats.ByMethod[m.ExtractionMethod] = m.Count
	}

	return stats, nil
}

// Paginate applies the default and maximum page size.
func Paginate(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(s)) + "%"
}
