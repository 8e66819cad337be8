package scoring

// TrustLevel buckets the average percentage of a run.
type TrustLevel string

const (
	LevelExcellent TrustLevel = "EXCELLENT"
	LevelGood      TrustLevel = "GOOD"
	LevelModerate  TrustLevel = "MODERATE"
	LevelLow       TrustLevel = "LOW"
)

// LevelFor maps an average percentage onto a TrustLevel.
func LevelFor(pct float64) TrustLevel {
	switch {
	case pct >= 80:
		return LevelExcellent
	case pct >= 60:
		return LevelGood
	case pct >= 40:
		return LevelModerate
	default:
		return LevelLow
	}
}

// Summary aggregates the results of one run. Only results with a positive
// score count as analysed.
type Summary struct {
	Total      int        `json:"total"`
	Analyzed   int        `json:"analyzed"`
	TotalScore float64    `json:"total_score"`
	TotalMax   float64    `json:"total_max"`
	Level      TrustLevel `json:"level,omitempty"`
}

// Summarize aggregates results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Score <= 0 {
			continue
		}
		s.Analyzed++
		s.TotalScore += r.Score
		s.TotalMax += r.MaxScore
	}
	if s.Analyzed > 0 {
		s.Level = LevelFor(s.AveragePercentage())
	}
	return s
}

// AverageScore is the mean score of analysed results.
func (s Summary) AverageScore() float64 {
	if s.Analyzed == 0 {
		return 0
	}
	return s.TotalScore / float64(s.Analyzed)
}

// AverageMax is the mean maximum score of analysed results.
func (s Summary) AverageMax() float64 {
	if s.Analyzed == 0 {
		return 0
	}
	return s.TotalMax / float64(s.Analyzed)
}

// AveragePercentage is TotalScore/TotalMax as a percentage.
func (s Summary) AveragePercentage() float64 {
	if s.TotalMax <= 0 {
		return 0
	}
	return s.TotalScore / s.TotalMax * 100
}
