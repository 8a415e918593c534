package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alfredoptarigan/cv-screener/internal/app"
	"alfredoptarigan/cv-screener/internal/config"
	"alfredoptarigan/cv-screener/internal/models"
	"alfredoptarigan/cv-screener/internal/services"
)

var processCmd = &cobra.Command{
	Use:   "process <dir>",
	Short: "Process every PDF resume in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcess,
}

var (
	processRecursive bool
	processReprocess bool
)

func init() {
	processCmd.Flags().BoolVarP(&processRecursive, "recursive", "r", false, "Descend into subdirectories")
	processCmd.Flags().BoolVar(&processReprocess, "reprocess", false, "Re-extract files whose content has not changed")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	paths, err := collectPDFs(args[0], processRecursive)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no PDF files found in %s", args[0])
	}

	cfg := config.Load()
	ctx := context.Background()
	components, err := app.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer components.Close()

	user := resolveUser(cfg.Server.DefaultUser)
	jobs := make([]services.FileJob, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		jobs = append(jobs, services.FileJob{
			FileName:  jobFileName(args[0], p),
			UserID:    user,
			Data:      data,
			Reprocess: processReprocess,
		})
	}

	log.Printf("📄 Processing %d files for user %s\n", len(jobs), user)
	results := components.Batch.Process(ctx, jobs)
	printReport(cmd.OutOrStdout(), results)

	if summary := services.Summarize(results); summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Total)
	}
	return nil
}

// collectPDFs lists the .pdf files under dir in lexical order.
func collectPDFs(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// jobFileName keys a file by its slash-separated path under dir, so files with
// the same base name in different subdirectories stay distinct.
func jobFileName(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

func printReport(w io.Writer, results []models.FileResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSTATUS\tMETHOD\tNAME\tYEARS\tDETAIL")
	for _, r := range results {
		name, years := "", ""
		if r.Candidate != nil {
			name = r.Candidate.Name
			years = fmt.Sprintf("%d", r.Candidate.YearsOfExperience)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.FileName, r.Status, r.ExtractionMethod, name, years, r.Error)
	}
	tw.Flush()

	s := services.Summarize(results)
	fmt.Fprintf(w, "\n%d files: %d succeeded, %d rejected, %d failed\n", s.Total, s.Succeeded, s.Rejected, s.Failed)
}
