// Command cvctl runs the CV screening pipeline from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "cvctl",
	Short:         "CV screener command line tools",
	Long:          "cvctl processes directories of PDF resumes, exports stored candidates and rebuilds the semantic search index.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var userFlag string

func init() {
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "User ID that owns the candidates (default DEFAULT_USER_ID)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func resolveUser(fallback string) string {
	if userFlag != "" {
		return userFlag
	}
	return fallback
}
