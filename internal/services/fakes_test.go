package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/cv-screener/internal/models"
	"alfredoptarigan/cv-screener/internal/repositories"
)

type memoryRepo struct {
	mu      sync.Mutex
	byKey   map[string]*models.Candidate
	saveErr error
	saves   int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byKey: make(map[string]*models.Candidate)}
}

func repoKey(userID, fileName string) string { return userID + "/" + fileName }

func (r *memoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byKey {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memoryRepo) FindByFileName(ctx context.Context, userID, fileName string) (*models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byKey[repoKey(userID, fileName)]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memoryRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Candidate, error) {
	var out []models.Candidate
	for _, id := range ids {
		if c, err := r.FindByID(ctx, id); err == nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memoryRepo) Create(ctx context.Context, c *models.Candidate) error {
	_, err := r.Save(ctx, c)
	return err
}

func (r *memoryRepo) Save(ctx context.Context, c *models.Candidate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.saveErr != nil {
		return false, r.saveErr
	}
	key := repoKey(c.UserID, c.FileName)
	existing, ok := r.byKey[key]
	if ok {
		c.ID = existing.ID
	} else if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.byKey[key] = &cp
	return !ok, nil
}

func (r *memoryRepo) List(ctx context.Context, f models.CandidateFilter) ([]models.Candidate, int64, error) {
	items, err := r.ListAll(ctx, f)
	return items, int64(len(items)), err
}

func (r *memoryRepo) ListAll(ctx context.Context, f models.CandidateFilter) ([]models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Candidate
	for _, c := range r.byKey {
		if c.UserID == f.UserID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memoryRepo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, c := range r.byKey {
		if c.ID == id && c.UserID == userID {
			delete(r.byKey, k)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *memoryRepo) Stats(ctx context.Context, userID string) (*models.StatsResponse, error) {
	return nil, errors.New("not implemented")
}

// textByContent returns the document bytes as text, or err when set.
type textByContent struct {
	err error
}

func (s textByContent) ExtractText(ctx context.Context, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return string(data), nil
}

type fakeAnalyzer struct {
	result *AIExtraction
	err    error
	block  bool
}

func (a *fakeAnalyzer) Analyze(ctx context.Context, text string) (*AIExtraction, error) {
	if a.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return a.result, a.err
}

type recordingIndex struct {
	mu      sync.Mutex
	indexed []uuid.UUID
	err     error
}

func (i *recordingIndex) Init(ctx context.Context) error { return nil }

func (i *recordingIndex) Index(ctx context.Context, c *models.Candidate) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.indexed = append(i.indexed, c.ID)
	return i.err
}

func (i *recordingIndex) Search(ctx context.Context, userID, query string, limit int) ([]IndexHit, error) {
	return nil, nil
}

func (i *recordingIndex) Delete(ctx context.Context, id uuid.UUID) error { return nil }
