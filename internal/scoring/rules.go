package scoring

import (
	"github.com/idlab-discover/TrustScore-cli/internal/category"
	"github.com/idlab-discover/TrustScore-cli/internal/metadata"
)

// Signal names used by the rule tables.
const (
	SignalDownloads      = "downloads"
	SignalLikes          = "likes"
	SignalHasDescription = "has_description"
	SignalHasModelCard   = "has_model_card"
	SignalPipelineTag    = "pipeline_tag"
	SignalStars          = "stars"
	SignalForks          = "forks"
	SignalHasLicense     = "has_license"
	SignalLanguage       = "language"
)

// Signals are the numeric inputs to a RuleSet. Boolean signals are 0 or 1.
type Signals map[string]float64

// Tier awards Bonus when a signal is strictly greater than Above.
type Tier struct {
	Above float64
	Bonus float64
}

// Rule scores one signal. Tiers are ordered from highest to lowest and the
// first tier that applies wins.
type Rule struct {
	Signal string
	Tiers  []Tier
}

func (r Rule) bonus(v float64) float64 {
	for _, t := range r.Tiers {
		if v > t.Above {
			return t.Bonus
		}
	}
	return 0
}

// RuleSet is a weighted threshold-tier accumulator: Base plus one bonus per
// rule, clamped to [0, Max].
type RuleSet struct {
	Base float64
	Max  float64
	// Fallback is the score reported when metadata could not be fetched.
	Fallback float64
	Rules    []Rule
}

// Evaluate sums Base and the applicable tier bonuses. Missing signals count
// as zero.
func (rs RuleSet) Evaluate(s Signals) float64 {
	total := rs.Base
	for _, r := range rs.Rules {
		total += r.bonus(s[r.Signal])
	}
	return clamp(total, 0, rs.Max)
}

// present is the single tier used for boolean signals.
func present(bonus float64) []Tier { return []Tier{{Above: 0, Bonus: bonus}} }

var datasetRules = RuleSet{
	Base:     BaseScore,
	Max:      MaxScore,
	Fallback: 0.0,
	Rules: []Rule{
		{SignalDownloads, []Tier{{10000, 3.0}, {1000, 2.0}, {100, 1.0}}},
		{SignalLikes, []Tier{{50, 2.0}, {10, 1.0}}},
		{SignalHasDescription, present(2.0)},
	},
}

var modelRules = RuleSet{
	Base:     BaseScore,
	Max:      MaxScore,
	Fallback: 2.0,
	Rules: []Rule{
		{SignalDownloads, []Tier{{100000, 3.0}, {10000, 2.0}, {1000, 1.0}}},
		{SignalLikes, []Tier{{100, 2.0}, {20, 1.0}}},
		{SignalHasModelCard, present(2.0)},
		{SignalPipelineTag, present(1.0)},
	},
}

var codeRules = RuleSet{
	Base:     BaseScore,
	Max:      MaxScore,
	Fallback: 2.0,
	Rules: []Rule{
		{SignalStars, []Tier{{1000, 3.0}, {100, 2.0}, {10, 1.0}}},
		{SignalForks, []Tier{{100, 1.0}, {10, 0.5}}},
		{SignalHasDescription, present(2.0)},
		{SignalHasLicense, present(1.0)},
		{SignalLanguage, present(1.0)},
	},
}

// RulesFor returns the rule table for a scoreable category.
func RulesFor(c category.Category) (RuleSet, bool) {
	switch c {
	case category.Dataset:
		return datasetRules, true
	case category.Model:
		return modelRules, true
	case category.Code:
		return codeRules, true
	case category.Invalid:
		return RuleSet{}, false
	default:
		return RuleSet{}, false
	}
}

// SignalsOf converts a metadata record into rule inputs.
func SignalsOf(rec metadata.Record) Signals {
	switch r := rec.(type) {
	case metadata.Dataset:
		return Signals{
			SignalDownloads:      float64(r.Downloads),
			SignalLikes:          float64(r.Likes),
			SignalHasDescription: flag(r.Description != ""),
		}
	case metadata.Model:
		return Signals{
			SignalDownloads:    float64(r.Downloads),
			SignalLikes:        float64(r.Likes),
			SignalHasModelCard: flag(r.HasCard),
			SignalPipelineTag:  flag(r.PipelineTag != ""),
		}
	case metadata.Code:
		return Signals{
			SignalStars:          float64(r.Stars),
			SignalForks:          float64(r.Forks),
			SignalHasDescription: flag(r.Description != ""),
			SignalHasLicense:     flag(r.HasLicense),
			SignalLanguage:       flag(r.Language != ""),
		}
	default:
		return Signals{}
	}
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
