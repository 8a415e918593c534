package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedFile = errors.New("only PDF files are supported")
	ErrFileTooLarge    = errors.New("file exceeds the maximum upload size")
)

type StorageService interface {
	Validate(fileName string, size int64) error
	SaveBytes(fileName string, data []byte) (string, error)
	GetFilePath(storedName string) string
	DeleteFile(storedName string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath  string
	maxFileSize int64
}

func NewStorageService(uploadPath string, maxFileSize int64) StorageService {
	return &storageService{
		uploadPath:  uploadPath,
		maxFileSize: maxFileSize,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// Validate checks the extension and size of an upload before it is read.
func (s *storageService) Validate(fileName string, size int64) error {
	if ext := strings.ToLower(filepath.Ext(fileName)); ext != ".pdf" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, fileName)
	}
	if s.maxFileSize > 0 && size > s.maxFileSize {
		return fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrFileTooLarge, fileName, size, s.maxFileSize)
	}
	return nil
}

// SaveBytes writes data under a unique name and returns that name.
func (s *storageService) SaveBytes(fileName string, data []byte) (string, error) {
	if err := s.Validate(fileName, int64(len(data))); err != nil {
		return "", err
	}

	storedName := fmt.Sprintf("resume_%s%s", uuid.New().String(), strings.ToLower(filepath.Ext(fileName)))
	if err := os.WriteFile(s.GetFilePath(storedName), data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return storedName, nil
}

func (s *storageService) GetFilePath(storedName string) string {
	return filepath.Join(s.uploadPath, filepath.Base(storedName))
}

func (s *storageService) DeleteFile(storedName string) error {
	if err := os.Remove(s.GetFilePath(storedName)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
