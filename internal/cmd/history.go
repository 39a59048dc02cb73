package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/harrison/wordexpand/internal/history"
	"github.com/harrison/wordexpand/internal/logger"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the 'wordexpand history' command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded expansion runs",
		Long: `Display runs recorded with --history (or history.enabled in the config),
most recent first (optionally only those of one --pattern), including:
  - The pattern and wordlist used
  - Number of candidates produced
  - Where the candidates were written
  - How long the expansion took`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to show (0 = all)")
	cmd.Flags().String("pattern", "", "Show only runs of this exact pattern")
	cmd.Flags().Bool("clear", false, "Delete all recorded runs")

	return cmd
}

// runHistory executes the history command
func runHistory(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dbPath := cfg.History.DBPath

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintf(out, "No runs recorded yet\n")
		fmt.Fprintf(out, "Database path: %s\n", dbPath)
		return nil
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if clearAll, _ := cmd.Flags().GetBool("clear"); clearAll {
		n, err := store.Clear(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d recorded runs\n", n)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	patternFilter, _ := cmd.Flags().GetString("pattern")
	runs, err := store.RecentRuns(ctx, patternFilter, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintf(out, "No runs recorded yet\n")
		return nil
	}

	total, err := store.CountRuns(ctx, patternFilter)
	if err != nil {
		return err
	}

	printRuns(cmd, runs, total)
	return nil
}

func printRuns(cmd *cobra.Command, runs []*history.Run, total int) {
	out := cmd.OutOrStdout()
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow)

	fmt.Fprintf(out, "%s (showing %d of %d)\n\n", cyan.Sprint("Recent runs"), len(runs), total)
	for _, run := range runs {
		fmt.Fprintf(out, "%s  %s\n", yellow.Sprint(shortID(run.RunID)), run.Pattern)
		fmt.Fprintf(out, "    %s candidates in %s, %s\n",
			humanize.Comma(int64(run.CandidateCount)),
			logger.FormatDuration(run.Duration),
			humanize.Time(run.Timestamp))
		if run.WordlistPath != "" {
			fmt.Fprintf(out, "    wordlist: %s (%s words)\n", run.WordlistPath, humanize.Comma(int64(run.WordCount)))
		}
		if run.OutputPath != "" {
			fmt.Fprintf(out, "    output: %s\n", run.OutputPath)
		}
	}
}

// shortID abbreviates a run UUID to its first block
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
