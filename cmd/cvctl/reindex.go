package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"alfredoptarigan/cv-screener/internal/app"
	"alfredoptarigan/cv-screener/internal/config"
	"alfredoptarigan/cv-screener/internal/models"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the Qdrant search index from the database",
	Args:  cobra.NoArgs,
	RunE:  runReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if !cfg.Qdrant.Enabled {
		return fmt.Errorf("reindex requires QDRANT_ENABLED=true")
	}

	ctx := context.Background()
	components, err := app.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer components.Close()

	candidates, err := components.Repo.ListAll(ctx, models.CandidateFilter{UserID: resolveUser(cfg.Server.DefaultUser)})
	if err != nil {
		return err
	}

	successCount, failCount := 0, 0
	for i := range candidates {
		if err := components.Index.Index(ctx, &candidates[i]); err != nil {
			log.Printf("❌ Failed to index %s: %v\n", candidates[i].FileName, err)
			failCount++
			continue
		}
		successCount++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d candidates, %d failed\n", successCount, failCount)
	if failCount > 0 {
		return fmt.Errorf("%d candidates could not be indexed", failCount)
	}
	return nil
}
