package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/TrustScore-cli/internal/history"
	"github.com/idlab-discover/TrustScore-cli/internal/ui"
)

var (
	historyDB    string
	historyLimit int
	historyRun   string
	historyURL   string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded score runs",
	Long: "List runs recorded with `score --history`. Use --run to show the results " +
		"of one run, or --url to show how a single URL scored over time.",
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := strings.TrimSpace(viper.GetString("history.db"))
	if path == "" {
		path = strings.TrimSpace(viper.GetString("score.history-db"))
	}
	if path == "" {
		path = history.DefaultPath()
	}
	limit := viper.GetInt("history.limit")

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch {
	case historyRun != "":
		entries, err := store.ListResults(ctx, historyRun)
		if err != nil {
			return err
		}
		printEntries(out, entries, false)
	case historyURL != "":
		entries, err := store.URLHistory(ctx, historyURL, limit)
		if err != nil {
			return err
		}
		printEntries(out, entries, true)
	default:
		runs, err := store.ListRuns(ctx, limit)
		if err != nil {
			return err
		}
		printRuns(out, runs)
	}
	return nil
}

func printRuns(w io.Writer, runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, ui.Dim.Render("No runs recorded yet. Use `trustscore-cli score --history`."))
		return
	}
	for _, r := range runs {
		level := r.Level
		if level == "" {
			level = "-"
		}
		fmt.Fprintf(w, "%s  %s  %d url(s), %d analyzed  %s  %s\n",
			ui.Highlight.Render(r.ID),
			ui.Dim.Render(r.StartedAt.Local().Format("2006-01-02 15:04:05")),
			r.URLCount, r.Analyzed,
			ui.ScoreStyle(r.AvgPercentage).Render(fmt.Sprintf("%.1f%%", r.AvgPercentage)),
			ui.LevelStyle(level).Render(level),
		)
	}
}

func printEntries(w io.Writer, entries []history.Entry, withRun bool) {
	if len(entries) == 0 {
		fmt.Fprintln(w, ui.Dim.Render("No results found."))
		return
	}
	for _, e := range entries {
		pct := 0.0
		if e.MaxScore > 0 {
			pct = e.Score / e.MaxScore * 100
		}
		line := fmt.Sprintf("%-8s %s %s",
			e.ParsedCategory(),
			ui.ScoreStyle(pct).Render(fmt.Sprintf("%4.1f/%.0f", e.Score, e.MaxScore)),
			e.URL,
		)
		switch {
		case e.Error != "":
			line += " " + ui.Error.Render("→ "+e.Error)
		case e.Fallback:
			line += " " + ui.Warning.Render("(fallback)")
		}
		if withRun {
			line += " " + ui.Dim.Render("run "+e.RunID)
		}
		fmt.Fprintln(w, line)
	}
}

func init() {
	historyCmd.Flags().StringVar(&historyDB, "db", "", "History database path (default ~/.trustscore-cli/history.db)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of rows")
	historyCmd.Flags().StringVar(&historyRun, "run", "", "Show the results of this run ID")
	historyCmd.Flags().StringVar(&historyURL, "url", "", "Show the stored results for this URL")

	_ = viper.BindPFlag("history.db", historyCmd.Flags().Lookup("db"))
	_ = viper.BindPFlag("history.limit", historyCmd.Flags().Lookup("limit"))
}
