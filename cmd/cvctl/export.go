package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"alfredoptarigan/cv-screener/internal/app"
	"alfredoptarigan/cv-screener/internal/config"
	"alfredoptarigan/cv-screener/internal/models"
	"alfredoptarigan/cv-screener/internal/services"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored candidates as CSV or XLSX",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var (
	exportFormat   string
	exportOut      string
	exportCategory string
	exportSkill    string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv or xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout for csv)")
	exportCmd.Flags().StringVar(&exportCategory, "category", "", "Only export this category")
	exportCmd.Flags().StringVar(&exportSkill, "skill", "", "Only export candidates with this skill")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := services.ParseExportFormat(exportFormat)
	if err != nil {
		return err
	}
	if format == services.FormatXLSX && exportOut == "" {
		return fmt.Errorf("--out is required for xlsx exports")
	}

	cfg := config.Load()
	ctx := context.Background()
	components, err := app.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer components.Close()

	candidates, err := components.Repo.ListAll(ctx, models.CandidateFilter{
		UserID:   resolveUser(cfg.Server.DefaultUser),
		Category: exportCategory,
		Skill:    exportSkill,
	})
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOut, err)
		}
		defer f.Close()
		w = f
	}

	if err := services.ExportCandidates(w, format, candidates); err != nil {
		return err
	}

	if exportOut != "" {
		log.Printf("✅ Exported %d candidates to %s\n", len(candidates), exportOut)
	}
	return nil
}
