package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"alfredoptarigan/cv-screener/internal/models"
)

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

const exportSheet = "Candidates"

var exportHeaders = []string{
	"ID", "File Name", "Name", "Email", "Phone", "Category", "Job Title",
	"Years of Experience", "Skills", "Education", "College", "Recommended Roles",
	"Extraction Method", "Short Summary", "Processed At",
}

// ParseExportFormat accepts "csv" or "xlsx", case-insensitively. Empty means csv.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f ExportFormat) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

func (f ExportFormat) FileName(now time.Time) string {
	return fmt.Sprintf("candidates_%s.%s", now.Format("20060102_150405"), f)
}

// ExportCandidates writes candidates to w in the given format.
func ExportCandidates(w io.Writer, format ExportFormat, candidates []models.Candidate) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, candidates)
	case FormatXLSX:
		return writeXLSX(w, candidates)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

func candidateRow(c models.Candidate) []string {
	roles := make([]string, 0, len(c.RecommendedRoles))
	for _, r := range c.RecommendedRoles {
		roles = append(roles, fmt.Sprintf("%s (%d%%)", r.Role, r.Percent))
	}

	processed := ""
	if !c.ProcessedAt.IsZero() {
		processed = c.ProcessedAt.UTC().Format(time.RFC3339)
	}

	return []string{
		c.ID.String(),
		safeCell(c.FileName),
		safeCell(c.Name),
		safeCell(c.Email),
		safeCell(c.Phone),
		safeCell(c.Category),
		safeCell(c.JobTitle),
		strconv.Itoa(c.YearsOfExperience),
		safeCell(strings.Join(c.SkillList(), ", ")),
		safeCell(c.Education),
		safeCell(c.CollegeName),
		safeCell(strings.Join(roles, "; ")),
		string(c.ExtractionMethod),
		safeCell(c.ShortSummary),
		processed,
	}
}

// safeCell quotes values a spreadsheet would otherwise evaluate as a formula.
func safeCell(v string) string {
	if v == "" {
		return v
	}
	switch v[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + v
	}
	return v
}

func writeCSV(w io.Writer, candidates []models.Candidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, c := range candidates {
		if err := cw.Write(candidateRow(c)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, candidates []models.Candidate) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, c := range candidates {
		row := i + 2
		for col, v := range candidateRow(c) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			var value any = v
			if col == 7 {
				value = c.YearsOfExperience
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "B", 24)
	_ = f.SetColWidth(exportSheet, "C", "G", 22)
	_ = f.SetColWidth(exportSheet, "I", "L", 40)
	_ = f.SetColWidth(exportSheet, "N", "N", 60)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
