package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/cv-screener/internal/models"
	"alfredoptarigan/cv-screener/internal/repositories"
	"alfredoptarigan/cv-screener/internal/services"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

type CandidateHandler struct {
	repo           repositories.CandidateRepository
	storageService services.StorageService
	index          services.CandidateIndex
	defaultUser    string
}

// NewCandidateHandler builds the candidate endpoints. index may be nil, in
// which case semantic search is unavailable.
func NewCandidateHandler(
	repo repositories.CandidateRepository,
	storageService services.StorageService,
	index services.CandidateIndex,
	defaultUser string,
) *CandidateHandler {
	return &CandidateHandler{
		repo:           repo,
		storageService: storageService,
		index:          index,
		defaultUser:    defaultUser,
	}
}

func (h *CandidateHandler) parseFilter(c *fiber.Ctx) (models.CandidateFilter, error) {
	var filter models.CandidateFilter
	if err := c.QueryParser(&filter); err != nil {
		return filter, fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}
	filter.UserID = userID(c, h.defaultUser)

	if err := validate.Struct(filter); err != nil {
		return filter, fiber.NewError(fiber.StatusBadRequest, validationMessage(err))
	}
	if filter.MinExperience != nil && filter.MaxExperience != nil && *filter.MinExperience > *filter.MaxExperience {
		return filter, fiber.NewError(fiber.StatusBadRequest, "min_experience must not exceed max_experience")
	}
	return filter, nil
}

// HandleList handles GET /candidates
func (h *CandidateHandler) HandleList(c *fiber.Ctx) error {
	filter, err := h.parseFilter(c)
	if err != nil {
		return err
	}

	items, total, err := h.repo.List(c.UserContext(), filter)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "failed to list candidates")
	}

	page, limit := repositories.Paginate(filter.Page, filter.Limit)
	if items == nil {
		items = []models.Candidate{}
	}
	return c.JSON(models.CandidateListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (h *CandidateHandler) findOwned(c *fiber.Ctx) (*models.Candidate, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid candidate ID format")
	}

	candidate, err := h.repo.FindByID(c.UserContext(), id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil, fiber.NewError(fiber.StatusNotFound, "Candidate not found")
	case err != nil:
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load candidate")
	}

	if candidate.UserID != userID(c, h.defaultUser) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Candidate not found")
	}
	return candidate, nil
}

// HandleGet handles GET /candidates/:id
func (h *CandidateHandler) HandleGet(c *fiber.Ctx) error {
	candidate, err := h.findOwned(c)
	if err != nil {
		return err
	}
	return c.JSON(candidate)
}

// HandleDelete handles DELETE /candidates/:id
func (h *CandidateHandler) HandleDelete(c *fiber.Ctx) error {
	candidate, err := h.findOwned(c)
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	if err := h.repo.Delete(ctx, candidate.UserID, candidate.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Candidate not found")
		}
		return fail(c, fiber.StatusInternalServerError, "failed to delete candidate")
	}

	if h.index != nil {
		if err := h.index.Delete(ctx, candidate.ID); err != nil {
			log.Printf("⚠️  Failed to remove candidate %s from index: %v\n", candidate.ID, err)
		}
	}
	if candidate.StoredFileName != "" {
		if err := h.storageService.DeleteFile(candidate.StoredFileName); err != nil {
			log.Printf("⚠️  Failed to remove %s: %v\n", candidate.StoredFileName, err)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleStats handles GET /candidates/stats
func (h *CandidateHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.repo.Stats(c.UserContext(), userID(c, h.defaultUser))
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "failed to compute statistics")
	}
	return c.JSON(stats)
}

// HandleExport handles GET /candidates/export
func (h *CandidateHandler) HandleExport(c *fiber.Ctx) error {
	format, err := services.ParseExportFormat(c.Query("format"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	filter, err := h.parseFilter(c)
	if err != nil {
		return err
	}

	candidates, err := h.repo.ListAll(c.UserContext(), filter)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "failed to load candidates")
	}

	var buf bytes.Buffer
	if err := services.ExportCandidates(&buf, format, candidates); err != nil {
		return fail(c, fiber.StatusInternalServerError, "failed to build export")
	}

	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", format.FileName(time.Now())))
	return c.Send(buf.Bytes())
}

// HandleSearch handles GET /candidates/search
func (h *CandidateHandler) HandleSearch(c *fiber.Ctx) error {
	if h.index == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "semantic search is not enabled")
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "q is required")
	}

	limit := c.QueryInt("limit", defaultSearchLimit)
	if limit < 1 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}

	user := userID(c, h.defaultUser)
	hits, err := h.index.Search(c.UserContext(), user, query, limit)
	if err != nil {
		log.Printf("❌ Search failed: %v\n", err)
		return fail(c, fiber.StatusBadGateway, "search backend unavailable")
	}

	ids := make([]uuid.UUID, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.CandidateID)
	}
	candidates, err := h.repo.FindByIDs(c.UserContext(), ids)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "failed to load candidates")
	}

	byID := make(map[uuid.UUID]models.Candidate, len(candidates))
	for _, cand := range candidates {
		byID[cand.ID] = cand
	}

	results := make([]models.SearchHit, 0, len(hits))
	for _, hit := range hits {
		cand, ok := byID[hit.CandidateID]
		if !ok || cand.UserID != user {
			continue
		}
		results = append(results, models.SearchHit{Candidate: cand, Score: hit.Score})
	}

	return c.JSON(fiber.Map{
		"query":   query,
		"results": results,
	})
}
