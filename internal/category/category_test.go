package category

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		url  string
		want Category
	}{
		{"https://huggingface.co/datasets/squad", Dataset},
		{"https://huggingface.co/datasets/microsoft/DialoGPT-medium", Dataset},
		{"https://huggingface.co/datasets/user123/", Dataset},
		{"https://huggingface.co/datasets/user/repo/subpath", Dataset},
		{"https://huggingface.co/datasets/test-repo", Dataset},
		{"https://huggingface.co/gpt2", Model},
		{"https://huggingface.co/microsoft/DialoGPT-medium", Model},
		{"https://huggingface.co/openai/clip-vit-base-patch32", Model},
		{"https://huggingface.co/user/repo/subpath", Model},
		{"https://huggingface.co/dataset/test", Model},
		{"https://huggingface.co/DATASETS/test", Model},
		{"https://github.com/pytorch/pytorch", Code},
		{"https://github.com/user123", Code},
		{"https://github.com/user/repo/subpath", Code},
		{"https://google.com", Invalid},
		{"https://stackoverflow.com/questions/123", Invalid},
		{"https://huggingface.co", Invalid},
		{"https://github.com", Invalid},
		{"http://huggingface.co/datasets/test", Invalid},
		{"HTTPS://huggingface.co/datasets/test", Invalid},
		{"https://GITHUB.com/user/repo", Invalid},
		{"not_a_url", Invalid},
		{"", Invalid},
	}

	for _, tc := range cases {
		t.Run(tc.url, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.url))
		})
	}
}

func TestClassify_DatasetTakesPrecedenceOverModel(t *testing.T) {
	assert.Equal(t, Dataset, Classify("https://huggingface.co/datasets/microsoft/DialoGPT-medium"))
	assert.Equal(t, Model, Classify("https://huggingface.co/microsoft/DialoGPT-medium"))
}

func TestCategory_StringAndKind(t *testing.T) {
	assert.Equal(t, "DATASET", Dataset.String())
	assert.Equal(t, "MODEL", Model.String())
	assert.Equal(t, "CODE", Code.String())
	assert.Equal(t, "INVALID", Invalid.String())
	assert.Equal(t, "INVALID", Category(42).String())
	assert.Equal(t, "model", Model.Kind())

	assert.True(t, Code.Valid())
	assert.False(t, Invalid.Valid())
}

func TestParse(t *testing.T) {
	for _, c := range append(All, Invalid) {
		got, err := Parse(c.Kind())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := Parse("paper")
	assert.Error(t, err)
}

func TestCategory_JSONUsesTag(t *testing.T) {
	b, err := json.Marshal(map[string]Category{"category": Code})
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"CODE"}`, string(b))

	var out struct {
		Category Category `json:"category"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"category":"dataset"}`), &out))
	assert.Equal(t, Dataset, out.Category)

	assert.Error(t, json.Unmarshal([]byte(`{"category":"paper"}`), &out))
}

func TestIdentifier(t *testing.T) {
	cases := []struct {
		name   string
		cat    Category
		url    string
		want   string
		wantOK bool
	}{
		{"dataset single segment", Dataset, "https://huggingface.co/datasets/squad", "squad", true},
		{"dataset owner/name", Dataset, "https://huggingface.co/datasets/HuggingFaceFW/fineweb-edu", "HuggingFaceFW/fineweb-edu", true},
		{"dataset query stripped", Dataset, "https://huggingface.co/datasets/stanfordnlp/imdb?row=3", "stanfordnlp/imdb", true},
		{"dataset missing name", Dataset, "https://huggingface.co/datasets/", "", false},
		{"model owner/name", Model, "https://huggingface.co/google/gemma-3-270m", "google/gemma-3-270m", true},
		{"model with subpath", Model, "https://huggingface.co/openai/whisper-tiny/tree/main", "openai/whisper-tiny", true},
		{"model single segment", Model, "https://huggingface.co/gpt2", "", false},
		{"code owner/repo", Code, "https://github.com/pytorch/pytorch", "pytorch/pytorch", true},
		{"code .git suffix", Code, "https://github.com/SkyworkAI/Matrix-Game.git", "SkyworkAI/Matrix-Game", true},
		{"code owner only", Code, "https://github.com/user123", "", false},
		{"invalid", Invalid, "https://google.com", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Identifier(tc.cat, tc.url)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
