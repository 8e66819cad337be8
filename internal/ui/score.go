package ui

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
)

// ScoreView mirrors a scoring result for display, to avoid circular imports.
type ScoreView struct {
	URL        string
	Category   string
	Name       string
	Score      float64
	MaxScore   float64
	Percentage float64
	Fallback   bool
	Error      string
	// Metrics are the category-specific details worth showing, in order.
	Metrics []Metric
	// SizeFitness holds hardware class/fitness pairs in report order.
	SizeFitness []Metric
	LatencyMS   int64
}

// Metric is a labelled value in a score view.
type Metric struct {
	Label string
	Value string
}

// SummaryView mirrors a run summary for display.
type SummaryView struct {
	Total             int
	Analyzed          int
	AverageScore      float64
	AverageMax        float64
	AveragePercentage float64
	Level             string
	OutputPath        string
}

// ScoreUI renders score results and run summaries.
type ScoreUI struct {
	writer io.Writer
	quiet  bool
}

// NewScoreUI creates a UI handler for the score command. In quiet mode
// nothing is printed.
func NewScoreUI(w io.Writer, quiet bool) *ScoreUI {
	return &ScoreUI{writer: w, quiet: quiet}
}

// PrintResult renders one URL's result.
func (s *ScoreUI) PrintResult(v ScoreView) {
	if s.quiet {
		return
	}
	fmt.Fprintln(s.writer, RenderResult(v))
}

// PrintSummary renders the run summary in a box.
func (s *ScoreUI) PrintSummary(v SummaryView) {
	if s.quiet {
		return
	}
	fmt.Fprintln(s.writer, RenderSummary(v))
}

// RenderResult formats a result as a short multi-line block.
func RenderResult(v ScoreView) string {
	var sb strings.Builder

	if v.Category == "INVALID" {
		sb.WriteString(GetCrossMark() + " " + Error.Render("Invalid: ") + v.URL + "\n")
		sb.WriteString("  " + Dim.Render(v.Error))
		return sb.String()
	}

	sb.WriteString(Bold.Render("Analyzing: ") + v.URL + "\n")
	sb.WriteString("  " + FormatKeyValue("Category", Secondary.Render(v.Category)))
	if v.Name != "" {
		sb.WriteString("  " + FormatKeyValue("Name", Highlight.Render(v.Name)))
	}
	sb.WriteString("\n")

	switch {
	case v.Error != "":
		sb.WriteString("  " + GetCrossMark() + " " + Error.Render("Failed to analyze: "+v.Error))
		return sb.String()
	case v.Fallback:
		sb.WriteString("  " + GetWarnMark() + " " + Warning.Render(fmt.Sprintf("Metadata unavailable, fallback score %.1f/%.1f", v.Score, v.MaxScore)))
	default:
		sb.WriteString("  " + FormatKeyValue("Score", renderScoreBar(v.Percentage/100, 30)+" "+
			ScoreStyle(v.Percentage).Render(fmt.Sprintf("%.1f/%.1f (%.1f%%)", v.Score, v.MaxScore, v.Percentage))))
	}

	for _, m := range v.Metrics {
		sb.WriteString("\n    " + GetBullet() + " " + FormatKeyValue(m.Label, m.Value))
	}
	if len(v.SizeFitness) > 0 {
		parts := make([]string, 0, len(v.SizeFitness))
		for _, m := range v.SizeFitness {
			parts = append(parts, m.Label+"="+m.Value)
		}
		sb.WriteString("\n    " + GetBullet() + " " + FormatKeyValue("Size fitness", Dim.Render(strings.Join(parts, " "))))
	}
	return sb.String()
}

// RenderSummary formats the run summary, including the trust level.
func RenderSummary(v SummaryView) string {
	var sb strings.Builder
	sb.WriteString(Title.Render("Summary"))
	sb.WriteString("\n\n")
	sb.WriteString(FormatKeyValue("Total URLs analyzed", fmt.Sprintf("%d", v.Analyzed)))
	if v.Total != v.Analyzed {
		sb.WriteString(Dim.Render(fmt.Sprintf(" (of %d)", v.Total)))
	}

	if v.Analyzed == 0 {
		sb.WriteString("\n" + Warning.Render("No valid URLs found for analysis."))
	} else {
		sb.WriteString("\n" + FormatKeyValue("Average score",
			fmt.Sprintf("%.1f/%.1f (%.1f%%)", v.AverageScore, v.AverageMax, v.AveragePercentage)))
		sb.WriteString("\n" + FormatKeyValue("Trustworthiness level", LevelStyle(v.Level).Render(v.Level)))
	}
	if v.OutputPath != "" {
		sb.WriteString("\n\n" + GetCheckMark() + " " + Dim.Render("Results written to: ") + v.OutputPath)
	}

	box := SuccessBox
	if v.Analyzed == 0 {
		box = ErrorBox
	}
	return box.Render(sb.String())
}

// ScoreStyle picks a color for a percentage.
func ScoreStyle(pct float64) styleWrapper {
	switch {
	case pct >= 80:
		return Success
	case pct >= 40:
		return Warning
	default:
		return Error
	}
}

// LevelStyle picks a color for a trust level name.
func LevelStyle(level string) styleWrapper {
	switch level {
	case "EXCELLENT":
		return Success.Bold(true)
	case "GOOD":
		return Success
	case "MODERATE":
		return Warning
	default:
		return Error
	}
}

func renderScoreBar(frac float64, width int) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var color = ColorError
	switch {
	case frac >= 0.8:
		color = ColorSuccess
	case frac >= 0.4:
		color = ColorWarning
	}
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}
