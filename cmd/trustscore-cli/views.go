package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/idlab-discover/TrustScore-cli/internal/category"
	"github.com/idlab-discover/TrustScore-cli/internal/scoring"
	"github.com/idlab-discover/TrustScore-cli/internal/ui"
)

// scoreView converts a scoring result into its display form.
func scoreView(res scoring.Result, latency time.Duration) ui.ScoreView {
	d := res.Details
	v := ui.ScoreView{
		URL:        res.URL,
		Category:   res.Category.String(),
		Name:       d.Name,
		Score:      res.Score,
		MaxScore:   res.MaxScore,
		Percentage: res.Percentage(),
		Fallback:   d.Fallback,
		Error:      d.Error,
		LatencyMS:  latency.Round(time.Millisecond).Milliseconds(),
	}
	if res.Category != category.Invalid && !res.Failed() && !d.Fallback {
		v.Metrics = metricsOf(res.Category, d)
	}
	v.SizeFitness = fitnessMetrics(d.SizeScore)
	return v
}

func metricsOf(c category.Category, d scoring.Details) []ui.Metric {
	switch c {
	case category.Dataset:
		return []ui.Metric{
			{Label: "downloads", Value: strconv.Itoa(d.Downloads)},
			{Label: "likes", Value: strconv.Itoa(d.Likes)},
			{Label: "description", Value: yesNo(d.HasDescription)},
		}
	case category.Model:
		pipeline := d.PipelineTag
		if pipeline == "" {
			pipeline = "-"
		}
		return []ui.Metric{
			{Label: "downloads", Value: strconv.Itoa(d.Downloads)},
			{Label: "likes", Value: strconv.Itoa(d.Likes)},
			{Label: "model card", Value: yesNo(d.HasModelCard)},
			{Label: "pipeline", Value: pipeline},
		}
	case category.Code:
		language := d.Language
		if language == "" {
			language = "-"
		}
		return []ui.Metric{
			{Label: "stars", Value: strconv.Itoa(d.Stars)},
			{Label: "forks", Value: strconv.Itoa(d.Forks)},
			{Label: "license", Value: yesNo(d.HasLicense)},
			{Label: "language", Value: language},
			{Label: "description", Value: yesNo(d.HasDescription)},
		}
	default:
		return nil
	}
}

// fitnessMetrics lists the size fitness map in hardware order.
func fitnessMetrics(fit scoring.SizeFitness) []ui.Metric {
	if len(fit) == 0 {
		return nil
	}
	out := make([]ui.Metric, 0, len(scoring.HardwareThresholds))
	for _, h := range scoring.HardwareThresholds {
		v, ok := fit[h.Class]
		if !ok {
			continue
		}
		out = append(out, ui.Metric{Label: string(h.Class), Value: fmt.Sprintf("%.2f", v)})
	}
	return out
}

func summaryView(s scoring.Summary, outputPath string) ui.SummaryView {
	return ui.SummaryView{
		Total:             s.Total,
		Analyzed:          s.Analyzed,
		AverageScore:      s.AverageScore(),
		AverageMax:        s.AverageMax(),
		AveragePercentage: s.AveragePercentage(),
		Level:             string(s.Level),
		OutputPath:        outputPath,
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
