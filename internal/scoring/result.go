package scoring

import (
	"fmt"

	"github.com/idlab-discover/TrustScore-cli/internal/category"
)

const (
	// MaxScore is the upper bound for every category.
	MaxScore = 10.0
	// BaseScore is granted to any artifact whose metadata was fetched.
	BaseScore = 2.0
)

// Details carries the raw metrics behind a score. Only the fields relevant to
// the result's category are populated.
type Details struct {
	Name     string `json:"name"`
	Error    string `json:"error,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`

	// Dataset and model
	Downloads int `json:"downloads,omitempty"`
	Likes     int `json:"likes,omitempty"`

	// Model
	HasModelCard bool   `json:"has_model_card,omitempty"`
	PipelineTag  string `json:"pipeline_tag,omitempty"`

	// Code
	Stars      int    `json:"stars,omitempty"`
	Forks      int    `json:"forks,omitempty"`
	HasLicense bool   `json:"has_license,omitempty"`
	Language   string `json:"language,omitempty"`

	// Dataset and code
	HasDescription bool `json:"has_description,omitempty"`

	SizeMB    float64     `json:"size_mb"`
	SizeScore SizeFitness `json:"size_score"`
}

// Result is the outcome of scoring one URL. It is built once and not
// modified afterwards.
type Result struct {
	URL      string            `json:"url"`
	Category category.Category `json:"category"`
	Score    float64           `json:"score"`
	MaxScore float64           `json:"max_score"`
	Details  Details           `json:"details"`
}

// Percentage returns 100*Score/MaxScore, or 0 when MaxScore is not positive.
func (r Result) Percentage() float64 {
	if r.MaxScore <= 0 {
		return 0
	}
	return r.Score / r.MaxScore * 100
}

// NetScore is the score on a 0–1 scale.
func (r Result) NetScore() float64 {
	return r.Score / MaxScore
}

// Failed reports whether the result carries an error detail.
func (r Result) Failed() bool {
	return r.Details.Error != ""
}

func (r Result) String() string {
	return fmt.Sprintf("%s: %.1f/%.1f (%.1f%%)", r.Category, r.Score, r.MaxScore, r.Percentage())
}
