package io

import (
	"bufio"
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"
	"time"

	"github.com/idlab-discover/TrustScore-cli/internal/category"
	"github.com/idlab-discover/TrustScore-cli/internal/scoring"
)

// Record is one line of the NDJSON score report. Category-specific metrics
// are pointers so that zero values are still written for their category.
type Record struct {
	Name            string            `json:"name"`
	Category        category.Category `json:"category"`
	NetScore        float64           `json:"net_score"`
	NetScoreLatency int64             `json:"net_score_latency"`
	URL             string            `json:"url"`

	RawScore   *float64            `json:"raw_score,omitempty"`
	MaxScore   *float64            `json:"max_score,omitempty"`
	Percentage *float64            `json:"percentage,omitempty"`
	SizeScore  scoring.SizeFitness `json:"size_score,omitempty"`

	Downloads      *int    `json:"downloads,omitempty"`
	Likes          *int    `json:"likes,omitempty"`
	HasDescription *bool   `json:"has_description,omitempty"`
	HasModelCard   *bool   `json:"has_model_card,omitempty"`
	PipelineTag    *string `json:"pipeline_tag,omitempty"`
	Stars          *int    `json:"stars,omitempty"`
	Forks          *int    `json:"forks,omitempty"`
	HasLicense     *bool   `json:"has_license,omitempty"`
	Language       *string `json:"language,omitempty"`

	Fallback bool   `json:"fallback,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BuildRecord converts a result into its report line. latency is written in
// whole milliseconds.
func BuildRecord(res scoring.Result, latency time.Duration) Record {
	if res.Category == category.Invalid {
		return Record{
			Name:     scoring.UnknownName,
			Category: category.Invalid,
			URL:      res.URL,
			Error:    res.Details.Error,
		}
	}

	d := res.Details
	rec := Record{
		Name:            d.Name,
		Category:        res.Category,
		NetScore:        res.NetScore(),
		NetScoreLatency: latency.Round(time.Millisecond).Milliseconds(),
		URL:             res.URL,
		RawScore:        ptr(res.Score),
		MaxScore:        ptr(res.MaxScore),
		Percentage:      ptr(res.Percentage()),
		SizeScore:       d.SizeScore,
		Fallback:        d.Fallback,
		Error:           d.Error,
	}
	if res.Failed() || d.Fallback {
		return rec
	}

	switch res.Category {
	case category.Dataset:
		rec.Downloads = ptr(d.Downloads)
		rec.Likes = ptr(d.Likes)
		rec.HasDescription = ptr(d.HasDescription)
	case category.Model:
		rec.Downloads = ptr(d.Downloads)
		rec.Likes = ptr(d.Likes)
		rec.HasModelCard = ptr(d.HasModelCard)
		if d.PipelineTag != "" {
			rec.PipelineTag = ptr(d.PipelineTag)
		}
	case category.Code:
		rec.Stars = ptr(d.Stars)
		rec.Forks = ptr(d.Forks)
		rec.HasDescription = ptr(d.HasDescription)
		rec.HasLicense = ptr(d.HasLicense)
		if d.Language != "" {
			rec.Language = ptr(d.Language)
		}
	}
	return rec
}

// WriteNDJSON writes one JSON object per line.
func WriteNDJSON(w goio.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteNDJSONFile writes records to path, creating parent directories.
func WriteNDJSONFile(path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteNDJSON(f, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadNDJSON decodes a report written by WriteNDJSON.
func ReadNDJSON(r goio.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	var out []Record
	for {
		var rec Record
		err := dec.Decode(&rec)
		if err == goio.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

func ptr[T any](v T) *T { return &v }
