package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextSource turns an uploaded document into plain text.
type TextSource interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

type PDFParserService interface {
	TextSource
	ExtractTextFromFile(ctx context.Context, filePath string) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText reads every page of the PDF in data. Malformed documents are
// reported as ErrTextExtraction rather than crashing the caller.
func (p *pdfParserService) ExtractText(ctx context.Context, data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty document", ErrTextExtraction)
	}

	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: malformed PDF: %v", ErrTextExtraction, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to open PDF: %v", ErrTextExtraction, err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n\n")
	}

	text = textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text content found in PDF", ErrTextExtraction)
	}

	return text, nil
}

func (p *pdfParserService) ExtractTextFromFile(ctx context.Context, filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return p.ExtractText(ctx, data)
}

// CleanText trims every line and drops blank lines and control characters.
func CleanText(text string) string {
	text = strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r == '\r':
			return '\n'
		case r < 0x20 || r == 0x7f || r == '\ufffd':
			return -1
		}
		return r
	}, text)

	lines := strings.Split(strings.TrimSpace(text), "\n")
	cleanedLines := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
