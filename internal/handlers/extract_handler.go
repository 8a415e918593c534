package handlers

import (
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/cv-screener/internal/extraction"
	"alfredoptarigan/cv-screener/internal/models"
	"alfredoptarigan/cv-screener/internal/services"
)

type ExtractHandler struct {
	engine        *extraction.Engine
	minTextLength int
}

func NewExtractHandler(engine *extraction.Engine, minTextLength int) *ExtractHandler {
	return &ExtractHandler{
		engine:        engine,
		minTextLength: minTextLength,
	}
}

// HandleExtract handles POST /extract. It runs the heuristic engine only and
// stores nothing.
func (h *ExtractHandler) HandleExtract(c *fiber.Ctx) error {
	var req models.ExtractRequest

	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, validationMessage(err))
	}

	text := services.CleanText(req.Text)
	if utf8.RuneCountInString(text) < h.minTextLength {
		return fail(c, fiber.StatusUnprocessableEntity, services.ErrInsufficientText.Error())
	}

	return c.JSON(toExtractResponse(h.engine.Extract(text)))
}

func toExtractResponse(r *extraction.Result) models.ExtractResponse {
	history := make([]models.WorkPeriod, 0, len(r.Experience.Periods))
	for _, p := range r.Experience.Periods {
		history = append(history, models.WorkPeriod{
			StartDate:      p.StartDate,
			EndDate:        p.EndDate,
			DurationMonths: p.DurationMonths,
		})
	}

	roles := make([]models.RoleRecommendation, 0, len(r.RecommendedRoles))
	for _, role := range r.RecommendedRoles {
		roles = append(roles, models.RoleRecommendation{Role: role.Role, Percent: role.Percent})
	}

	return models.ExtractResponse{
		Name:                extraction.StringOr(r.Name, extraction.NameNotFound),
		Email:               extraction.StringOr(r.Email, ""),
		Phone:               extraction.StringOr(r.Phone, ""),
		Category:            r.Category,
		JobTitle:            extraction.StringOr(r.JobTitle, ""),
		Education:           extraction.StringOr(r.Education, extraction.NotSpecified),
		CollegeName:         extraction.StringOr(r.CollegeName, extraction.NotSpecified),
		Skills:              r.Skills,
		YearsOfExperience:   r.YearsOfExperience,
		TotalMonths:         r.Experience.TotalMonths,
		WorkHistory:         history,
		RecommendedRoles:    roles,
		ProfessionalSummary: r.ProfessionalSummary,
		ShortSummary:        r.ShortSummary,
		MatchedRules:        r.MatchedRules,
	}
}
