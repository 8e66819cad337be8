package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/idlab-discover/TrustScore-cli/internal/apperr"
	"github.com/idlab-discover/TrustScore-cli/internal/estimator"
	"github.com/idlab-discover/TrustScore-cli/internal/evaluator"
	"github.com/idlab-discover/TrustScore-cli/internal/fetcher"
	"github.com/idlab-discover/TrustScore-cli/internal/history"
	scoreio "github.com/idlab-discover/TrustScore-cli/internal/io"
	"github.com/idlab-discover/TrustScore-cli/internal/logging"
	"github.com/idlab-discover/TrustScore-cli/internal/scoring"
	"github.com/idlab-discover/TrustScore-cli/internal/ui"
)

const (
	formatNDJSON    = "ndjson"
	formatCycloneDX = "cyclonedx"

	defaultNDJSONOutput    = "scores.ndjson"
	defaultCycloneDXOutput = "scores.cdx.json"
)

var (
	scoreURLs        []string
	scoreOutput      string
	scoreFormat      string
	scoreSpecVersion string

	// scoreMode controls whether metadata is fetched from the network.
	// Supported values: online|dummy
	scoreMode       string
	scoreFixtures   string
	scoreTimeoutSec int
	scoreHFToken    string
	scoreGHToken    string

	scoreConcurrency int
	scoreRate        float64

	scoreLogLevel  string
	scoreHistory   bool
	scoreHistoryDB string
	scoreYes       bool
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score [URL_FILE]",
	Short: "Score artifact URLs and write a trust report",
	Long: "Classify and score Hugging Face model, dataset and GitHub code URLs. " +
		"URLs are read from URL_FILE (one per line) and from --url. Results are " +
		"written as NDJSON (one line per URL) or as a CycloneDX BOM.",
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

// scoreSettings is the effective configuration of one score run after
// flags, config file and environment have been merged.
type scoreSettings struct {
	level       string
	mode        string
	fixtures    string
	format      string
	spec        string
	output      string
	timeout     time.Duration
	hfToken     string
	ghToken     string
	concurrency int
	rate        float64
	history     bool
	historyDB   string
	yes         bool
}

func (s scoreSettings) quiet() bool { return s.level == "quiet" }

func resolveScoreSettings(v *viper.Viper) (scoreSettings, error) {
	var s scoreSettings

	s.level = strings.ToLower(strings.TrimSpace(v.GetString("score.log-level")))
	if s.level == "" {
		s.level = "standard"
	}
	switch s.level {
	case "quiet", "standard", "debug":
		// ok
	default:
		return s, apperr.Userf("invalid --log-level %q (expected quiet|standard|debug)", s.level)
	}

	s.mode = strings.ToLower(strings.TrimSpace(v.GetString("score.mode")))
	if s.mode == "" {
		s.mode = "online"
	}
	switch s.mode {
	case "online", "dummy":
		// ok
	default:
		return s, apperr.Userf("invalid --mode %q (expected online|dummy)", s.mode)
	}
	s.fixtures = strings.TrimSpace(v.GetString("score.fixtures"))
	if s.fixtures != "" && s.mode != "dummy" {
		return s, apperr.User("--fixtures requires --mode dummy")
	}

	s.format = strings.ToLower(strings.TrimSpace(v.GetString("score.format")))
	if s.format == "" {
		s.format = formatNDJSON
	}
	switch s.format {
	case formatNDJSON, formatCycloneDX:
		// ok
	default:
		return s, apperr.Userf("invalid --format %q (expected ndjson|cyclonedx)", s.format)
	}

	s.spec = strings.TrimSpace(v.GetString("score.spec"))
	if s.spec != "" {
		if s.format != formatCycloneDX {
			return s, apperr.User("--spec only applies to --format cyclonedx")
		}
		if _, ok := scoreio.ParseSpecVersion(s.spec); !ok {
			return s, apperr.Userf("unsupported CycloneDX spec version %q", s.spec)
		}
	}

	s.output = strings.TrimSpace(v.GetString("score.output"))
	if s.output == "" {
		s.output = defaultNDJSONOutput
		if s.format == formatCycloneDX {
			s.output = defaultCycloneDXOutput
		}
	}

	timeoutSec := v.GetInt("score.timeout")
	if timeoutSec <= 0 {
		timeoutSec = 10
	}
	s.timeout = time.Duration(timeoutSec) * time.Second

	s.hfToken = firstNonEmpty(v.GetString("score.hf-token"), v.GetString("huggingface.token"))
	s.ghToken = firstNonEmpty(v.GetString("score.github-token"), v.GetString("github.token"))

	s.concurrency = v.GetInt("score.concurrency")
	if s.concurrency <= 0 {
		s.concurrency = evaluator.DefaultConcurrency
	}
	s.rate = v.GetFloat64("score.rate")
	if s.rate < 0 {
		return s, apperr.Userf("invalid --rate %v (must be >= 0)", s.rate)
	}

	s.history = v.GetBool("score.history")
	s.historyDB = strings.TrimSpace(v.GetString("score.history-db"))
	if s.historyDB == "" {
		s.historyDB = history.DefaultPath()
	}
	s.yes = v.GetBool("score.yes")
	return s, nil
}

// collectURLs merges the URL file (if any) with URLs given by flag, in that
// order. Blank entries are dropped.
func collectURLs(args []string, flagURLs []string) ([]string, error) {
	var urls []string
	if len(args) > 0 {
		fromFile, err := scoreio.ReadURLFile(args[0])
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, apperr.Userf("URL file %s does not exist", args[0])
			}
			return nil, fmt.Errorf("failed to read URL file: %w", err)
		}
		urls = append(urls, fromFile...)
	}
	for _, u := range flagURLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return nil, apperr.User("no URLs to score (pass a URL file or --url)")
	}
	return urls, nil
}

func runScore(cmd *cobra.Command, args []string) error {
	s, err := resolveScoreSettings(viper.GetViper())
	if err != nil {
		return err
	}
	urls, err := collectURLs(args, viper.GetStringSlice("score.url"))
	if err != nil {
		return err
	}

	fileLog, closeLog, err := logging.NewFileLogger(viper.GetString("log.file"), logging.ParseFileLevel(viper.GetString("log.level")))
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closeLog()

	// Wire internal package logging
	if s.level == "debug" {
		lw := cmd.ErrOrStderr()
		fetcher.SetLogger(lw)
		estimator.SetLogger(lw)
		scoring.SetLogger(lw)
		evaluator.SetLogger(lw)
		defer func() {
			fetcher.SetLogger(nil)
			estimator.SetLogger(nil)
			scoring.SetLogger(nil)
			evaluator.SetLogger(nil)
		}()
	}

	if err := confirmOverwrite(cmd, s); err != nil {
		return err
	}

	scorer, err := newScorer(s)
	if err != nil {
		return err
	}
	if s.mode == "dummy" && !s.quiet() {
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatStatus("info", "Using dummy mode (no API calls)"))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fileLog.Info("scoring urls", zap.Int("count", len(urls)), zap.String("mode", s.mode))
	startedAt := time.Now()

	evals, err := evaluateWithProgress(ctx, scorer, urls, s, fileLog)
	if err != nil {
		fileLog.Error("scoring aborted", zap.Error(err))
		return err
	}
	results := evaluator.Results(evals)

	if err := writeReport(evals, s); err != nil {
		fileLog.Error("failed to write report", zap.String("path", s.output), zap.Error(err))
		return err
	}
	fileLog.Info("report written", zap.String("path", s.output), zap.String("format", s.format))

	scoreUI := ui.NewScoreUI(cmd.OutOrStdout(), s.quiet())
	if s.history {
		run, err := recordHistory(ctx, s.historyDB, startedAt, results)
		if err != nil {
			return err
		}
		fileLog.Debug("run recorded", zap.String("db", s.historyDB), zap.String("run", run.ID))
		if !s.quiet() {
			fmt.Fprintln(cmd.OutOrStdout(), ui.FormatStatus("success", "Recorded run "+ui.Highlight.Render(run.ID)))
		}
	}

	for _, e := range evals {
		scoreUI.PrintResult(scoreView(e.Result, e.Latency))
	}
	summary := scoring.Summarize(results)
	fileLog.Info("run complete",
		zap.Int("total", summary.Total),
		zap.Int("analyzed", summary.Analyzed),
		zap.Float64("avg_percentage", summary.AveragePercentage()),
	)
	scoreUI.PrintSummary(summaryView(summary, s.output))
	return nil
}

// newScorer builds the online or dummy scorer for s.
func newScorer(s scoreSettings) (*scoring.Scorer, error) {
	if s.mode == "dummy" {
		var fx *fetcher.Fixtures
		if s.fixtures != "" {
			loaded, err := fetcher.LoadFixturesFile(s.fixtures)
			if err != nil {
				return nil, fmt.Errorf("failed to load fixtures: %w", err)
			}
			fx = loaded
		}
		dummy := fetcher.NewDummyFetcher(fx)
		return scoring.NewScorer(dummy, dummy), nil
	}

	hub := fetcher.NewHub(fetcher.HubOptions{
		Timeout:       s.timeout,
		HFToken:       s.hfToken,
		GitHubToken:   s.ghToken,
		RatePerSecond: s.rate,
	})
	return scoring.NewScorer(hub, estimator.New(hub)), nil
}

func evaluateWithProgress(ctx context.Context, scorer evaluator.Scorer, urls []string, s scoreSettings, fileLog *zap.Logger) ([]evaluator.Evaluation, error) {
	// Debug logs share the terminal, so the live display is only used at the
	// standard level.
	var tracker *ui.ProgressTracker
	if s.level == "standard" {
		tracker = ui.NewProgressTracker(fmt.Sprintf("Scoring %d URL(s)", len(urls)), urls)
		tracker.Start()
	}

	onProgress := func(evt evaluator.ProgressEvent) {
		switch evt.Type {
		case evaluator.EventURLStart:
			fileLog.Debug("scoring", zap.String("url", evt.URL), zap.Stringer("category", evt.Category))
			if tracker != nil {
				tracker.UpdateStep(evt.Index, ui.StatusRunning, evt.Category.String())
			}
		case evaluator.EventURLComplete:
			res := evt.Result
			fileLog.Info("scored",
				zap.String("url", evt.URL),
				zap.Float64("score", res.Score),
				zap.Duration("latency", evt.Latency),
				zap.Bool("fallback", res.Details.Fallback),
			)
			if tracker == nil {
				return
			}
			if res.Failed() {
				tracker.UpdateStep(evt.Index, ui.StatusFailed, res.Details.Error)
			} else {
				tracker.UpdateStep(evt.Index, ui.StatusComplete, fmt.Sprintf("%.1f/%.1f", res.Score, res.MaxScore))
			}
		case evaluator.EventURLInvalid:
			fileLog.Info("invalid url", zap.String("url", evt.URL))
			if tracker != nil {
				tracker.UpdateStep(evt.Index, ui.StatusSkipped, "invalid url")
			}
		}
	}

	evals, err := evaluator.Evaluate(ctx, scorer, urls, evaluator.Options{
		Concurrency: s.concurrency,
		OnProgress:  onProgress,
	})
	if tracker != nil {
		tracker.Complete(err)
	}
	return evals, err
}

func writeReport(evals []evaluator.Evaluation, s scoreSettings) error {
	switch s.format {
	case formatCycloneDX:
		bom := scoreio.BuildBOM(evaluator.Results(evals), version)
		if err := scoreio.WriteBOM(bom, s.output, "auto", s.spec); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	default:
		records := make([]scoreio.Record, 0, len(evals))
		for _, e := range evals {
			records = append(records, scoreio.BuildRecord(e.Result, e.Latency))
		}
		if err := scoreio.WriteNDJSONFile(s.output, records); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

func recordHistory(ctx context.Context, path string, startedAt time.Time, results []scoring.Result) (*history.Run, error) {
	store, err := history.Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.RecordRun(ctx, startedAt, results)
}

// confirmOverwrite asks before replacing an existing report. Without a
// terminal on stdin, or with --yes, the report is replaced silently.
func confirmOverwrite(cmd *cobra.Command, s scoreSettings) error {
	if s.yes {
		return nil
	}
	if _, err := os.Stat(s.output); err != nil {
		return nil
	}
	if !isTerminal(cmd.InOrStdin()) {
		return nil
	}

	ok, err := ui.ConfirmOverwrite(filepath.Clean(s.output))
	if errors.Is(err, huh.ErrUserAborted) {
		return apperr.ErrCancelled
	}
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrCancelled
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func init() {
	scoreCmd.Flags().StringArrayVar(&scoreURLs, "url", nil, "URL to score (repeatable)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "output", "o", "", "Report path (default scores.ndjson, or scores.cdx.json for cyclonedx)")
	scoreCmd.Flags().StringVarP(&scoreFormat, "format", "f", "", "Report format: ndjson|cyclonedx")
	scoreCmd.Flags().StringVar(&scoreSpecVersion, "spec", "", "CycloneDX spec version for output (e.g., 1.4, 1.5, 1.6)")
	scoreCmd.Flags().StringVar(&scoreMode, "mode", "", "Metadata mode: online|dummy")
	scoreCmd.Flags().StringVar(&scoreFixtures, "fixtures", "", "YAML fixtures file for dummy mode")
	scoreCmd.Flags().IntVar(&scoreTimeoutSec, "timeout", 0, "HTTP timeout in seconds per request")
	scoreCmd.Flags().StringVar(&scoreHFToken, "hf-token", "", "Hugging Face access token")
	scoreCmd.Flags().StringVar(&scoreGHToken, "github-token", "", "GitHub access token")
	scoreCmd.Flags().IntVar(&scoreConcurrency, "concurrency", 0, "Number of URLs scored in parallel")
	scoreCmd.Flags().Float64Var(&scoreRate, "rate", 0, "Max requests per second per API (0 = unlimited)")
	scoreCmd.Flags().StringVar(&scoreLogLevel, "log-level", "", "Log level: quiet|standard|debug")
	scoreCmd.Flags().BoolVar(&scoreHistory, "history", false, "Record the run in the history database")
	scoreCmd.Flags().StringVar(&scoreHistoryDB, "history-db", "", "History database path (default ~/.trustscore-cli/history.db)")
	scoreCmd.Flags().BoolVarP(&scoreYes, "yes", "y", false, "Overwrite an existing report without asking")

	// Bind all flags to viper for config file support
	for _, name := range []string{
		"url", "output", "format", "spec", "mode", "fixtures", "timeout",
		"hf-token", "github-token", "concurrency", "rate", "log-level",
		"history", "history-db", "yes",
	} {
		_ = viper.BindPFlag("score."+name, scoreCmd.Flags().Lookup(name))
	}
}
