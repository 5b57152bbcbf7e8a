package main

import (
	"fmt"

	"github.com/milk9111/stargather/storage"
	"github.com/spf13/cobra"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best recorded runs.

Examples:
  stargather scores
  stargather scores --limit 3`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.TopScores(flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "High Scores")
	fmt.Fprintln(out)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-5s  %-5s  %-10s  %s\n", "Rank", "Score", "Stars", "Bombs", "Background", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-5s  %-5s  %-10s  %s\n", "----", "-----", "-----", "-----", "----------", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-6d  %-5d  %-5d  %-10s  %s\n", i+1, r.Score, r.Stars, r.Bombs, r.Background, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
