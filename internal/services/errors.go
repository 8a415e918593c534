package services

import (
	"errors"
	"fmt"

	"alfredoptarigan/cv-screener/internal/repositories"
)

var (
	ErrInsufficientText = errors.New("insufficient text")
	ErrTextExtraction   = errors.New("text extraction failed")
	ErrPersistence      = errors.New("persistence failed")
	ErrNoUsableFields   = errors.New("ai response had no usable fields")
	ErrNotFound         = repositories.ErrNotFound
)

type Stage string

const (
	StageTextExtraction Stage = "text_extraction"
	StageValidation     Stage = "validation"
	StageAnalysis       Stage = "analysis"
	StagePersistence    Stage = "persistence"
)

// ProcessingError records which pipeline stage failed for one resume.
type ProcessingError struct {
	Stage   Stage
	Message string
	Cause   error
}

func (e *ProcessingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func (e *ProcessingError) Unwrap() error {
	return e.Cause
}

func stageError(stage Stage, message string, cause error) error {
	return &ProcessingError{Stage: stage, Message: message, Cause: cause}
}
