package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/cv-screener/internal/models"
	"alfredoptarigan/cv-screener/internal/services"
)

const uploadField = "files"

type UploadHandler struct {
	storageService services.StorageService
	batch          services.BatchProcessor
	defaultUser    string
}

func NewUploadHandler(
	storageService services.StorageService,
	batch services.BatchProcessor,
	defaultUser string,
) *UploadHandler {
	return &UploadHandler{
		storageService: storageService,
		batch:          batch,
		defaultUser:    defaultUser,
	}
}

// HandleUpload handles POST /resumes. Each file gets its own entry in the
// report; one bad file never fails the others.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "failed to parse multipart form")
	}

	files := form.File[uploadField]
	if len(files) == 0 {
		return fail(c, fiber.StatusBadRequest, "No files uploaded. Send one or more PDF files in the 'files' field.")
	}

	user := userID(c, h.defaultUser)
	reprocess := c.QueryBool("reprocess")
	if v := form.Value["reprocess"]; len(v) > 0 {
		if b, err := strconv.ParseBool(v[0]); err == nil {
			reprocess = b
		}
	}

	results := make([]models.FileResult, len(files))
	var jobs []services.FileJob
	var positions []int

	for i, file := range files {
		job, err := h.stage(file, user, reprocess)
		if err != nil {
			results[i] = models.FileResult{
				FileName: file.Filename,
				Status:   services.FailureStatus(err),
				Error:    err.Error(),
			}
			continue
		}
		jobs = append(jobs, job)
		positions = append(positions, i)
	}

	for j, result := range h.batch.Process(c.UserContext(), jobs) {
		results[positions[j]] = result
		switch {
		case result.Status != models.StatusCreated && result.Status != models.StatusUpdated:
			h.removeStored(jobs[j].StoredFileName)
		case result.ReplacedFile != "":
			h.removeStored(result.ReplacedFile)
		}
	}

	summary := services.Summarize(results)
	return c.JSON(models.UploadResponse{
		Message: fmt.Sprintf("Processed %d of %d files", summary.Succeeded, summary.Total),
		Results: results,
		Summary: summary,
	})
}

func (h *UploadHandler) removeStored(name string) {
	if err := h.storageService.DeleteFile(name); err != nil {
		log.Printf("⚠️  Failed to remove %s: %v\n", name, err)
	}
}

// stage validates, reads and stores one upload.
func (h *UploadHandler) stage(file *multipart.FileHeader, user string, reprocess bool) (services.FileJob, error) {
	if err := h.storageService.Validate(file.Filename, file.Size); err != nil {
		return services.FileJob{}, err
	}

	src, err := file.Open()
	if err != nil {
		return services.FileJob{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return services.FileJob{}, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	stored, err := h.storageService.SaveBytes(file.Filename, data)
	if err != nil {
		return services.FileJob{}, err
	}

	return services.FileJob{
		FileName:       file.Filename,
		StoredFileName: stored,
		UserID:         user,
		Data:           data,
		Reprocess:      reprocess,
	}, nil
}
