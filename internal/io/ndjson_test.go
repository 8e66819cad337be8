package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idlab-discover/TrustScore-cli/internal/category"
	"github.com/idlab-discover/TrustScore-cli/internal/scoring"
)

func decodeLine(t *testing.T, rec Record) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteNDJSON(&buf, []Record{rec}))
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestBuildRecord_Model(t *testing.T) {
	res := scoring.Result{
		URL:      "https://huggingface.co/org/model",
		Category: category.Model,
		Score:    8,
		MaxScore: 10,
		Details: scoring.Details{
			Name:         "org/model",
			Downloads:    0,
			Likes:        12,
			HasModelCard: true,
			PipelineTag:  "text-generation",
			SizeScore:    scoring.ComputeSizeFitness(100),
		},
	}
	m := decodeLine(t, BuildRecord(res, 1400*time.Microsecond))

	assert.Equal(t, "org/model", m["name"])
	assert.Equal(t, "MODEL", m["category"])
	assert.Equal(t, 0.8, m["net_score"])
	assert.Equal(t, 1.0, m["net_score_latency"])
	assert.Equal(t, 8.0, m["raw_score"])
	assert.Equal(t, 80.0, m["percentage"])
	assert.Equal(t, 0.0, m["downloads"])
	assert.Equal(t, true, m["has_model_card"])
	assert.Equal(t, "text-generation", m["pipeline_tag"])
	assert.NotContains(t, m, "stars")
	assert.NotContains(t, m, "error")
	assert.Len(t, m["size_score"], 4)
}

func TestBuildRecord_Code(t *testing.T) {
	res := scoring.Result{
		URL:      "https://github.com/a/b",
		Category: category.Code,
		Score:    4,
		MaxScore: 10,
		Details:  scoring.Details{Name: "a/b", Stars: 150, HasLicense: true},
	}
	m := decodeLine(t, BuildRecord(res, 0))

	assert.Equal(t, "CODE", m["category"])
	assert.Equal(t, 150.0, m["stars"])
	assert.Equal(t, 0.0, m["forks"])
	assert.Equal(t, false, m["has_description"])
	assert.Equal(t, true, m["has_license"])
	assert.NotContains(t, m, "language")
	assert.NotContains(t, m, "downloads")
}

func TestBuildRecord_Invalid(t *testing.T) {
	m := decodeLine(t, BuildRecord(scoring.Unclassified("https://google.com"), time.Second))

	assert.Equal(t, map[string]any{
		"name":              "unknown",
		"category":          "INVALID",
		"net_score":         0.0,
		"net_score_latency": 0.0,
		"url":               "https://google.com",
		"error":             scoring.UnclassifiedError,
	}, m)
}

func TestBuildRecord_FallbackOmitsMetrics(t *testing.T) {
	res := scoring.Result{
		URL:      "https://huggingface.co/datasets/squad",
		Category: category.Dataset,
		Score:    0,
		MaxScore: 10,
		Details:  scoring.Details{Name: "squad", Fallback: true, SizeScore: scoring.ComputeSizeFitness(1000)},
	}
	m := decodeLine(t, BuildRecord(res, 0))

	assert.Equal(t, true, m["fallback"])
	assert.Equal(t, 0.0, m["raw_score"])
	assert.NotContains(t, m, "downloads")
	assert.Contains(t, m, "size_score")
}

func TestWriteNDJSONFile_AndRead(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out", "scores.ndjson")
	records := []Record{
		BuildRecord(scoring.Unclassified("a"), 0),
		BuildRecord(scoring.Unclassified("b"), 0),
	}
	require.NoError(t, WriteNDJSONFile(p, records))

	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(raw), "\n"))

	f, err := os.Open(p)
	require.NoError(t, err)
	defer f.Close()
	got, err := ReadNDJSON(f)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].URL)
	assert.Equal(t, category.Invalid, got[1].Category)

	_, err = ReadNDJSON(strings.NewReader("{"))
	assert.Error(t, err)
}
