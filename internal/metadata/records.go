// Package metadata defines the per-category metadata records the scorer
// consumes. Fetchers translate loosely shaped API responses into these
// records at the boundary; absent API fields arrive here as zero values.
package metadata

import "github.com/idlab-discover/TrustScore-cli/internal/category"

// Record is implemented by Dataset, Model and Code only.
type Record interface {
	Category() category.Category
	isRecord()
}

// Dataset is the subset of the Hugging Face dataset API used for scoring.
type Dataset struct {
	Downloads   int    `json:"downloads" yaml:"downloads"`
	Likes       int    `json:"likes" yaml:"likes"`
	Description string `json:"description" yaml:"description"`
}

// Model is the subset of the Hugging Face model API used for scoring.
type Model struct {
	Downloads int  `json:"downloads" yaml:"downloads"`
	Likes     int  `json:"likes" yaml:"likes"`
	HasCard   bool `json:"has_model_card" yaml:"has_model_card"`
	// PipelineTag is empty when the API omits it.
	PipelineTag string `json:"pipeline_tag" yaml:"pipeline_tag"`
}

// Code is the subset of the GitHub repository API used for scoring.
type Code struct {
	Stars       int    `json:"stargazers_count" yaml:"stargazers_count"`
	Forks       int    `json:"forks_count" yaml:"forks_count"`
	Description string `json:"description" yaml:"description"`
	HasLicense  bool   `json:"has_license" yaml:"has_license"`
	Language    string `json:"language" yaml:"language"`
}

func (Dataset) Category() category.Category { return category.Dataset }
func (Model) Category() category.Category   { return category.Model }
func (Code) Category() category.Category    { return category.Code }

func (Dataset) isRecord() {}
func (Model) isRecord()   {}
func (Code) isRecord()    {}
