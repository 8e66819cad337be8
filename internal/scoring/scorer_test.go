package scoring

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idlab-discover/TrustScore-cli/internal/category"
	"github.com/idlab-discover/TrustScore-cli/internal/metadata"
)

type fakeFetcher struct {
	mu      sync.Mutex
	records map[string]metadata.Record
	err     error
	calls   []string
}

func (f *fakeFetcher) Fetch(_ context.Context, c category.Category, id string) (metadata.Record, error) {
	f.mu.Lock()
	f.calls = append(f.calls, c.Kind()+":"+id)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return rec, nil
}

type fakeSizes struct {
	sizes map[string]float64
	seen  []string
}

func (f *fakeSizes) Estimate(_ context.Context, id string, _ category.Category) float64 {
	f.seen = append(f.seen, id)
	if id == UnknownName {
		return UnknownSizeMB
	}
	if v, ok := f.sizes[id]; ok {
		return v
	}
	return FallbackSizeMB
}

func requireSizeMap(t *testing.T, r Result) {
	t.Helper()
	require.Len(t, r.Details.SizeScore, 4)
	for _, class := range []HardwareClass{RaspberryPi, JetsonNano, DesktopPC, AWSServer} {
		_, ok := r.Details.SizeScore[class]
		require.Truef(t, ok, "size map missing %s", class)
	}
}

func TestScoreRecord_DatasetExample(t *testing.T) {
	res := ScoreRecord("https://huggingface.co/datasets/squad", "squad",
		metadata.Dataset{Downloads: 15000, Likes: 60, Description: "Stanford QA"}, 100)

	assert.Equal(t, 9.0, res.Score)
	assert.Equal(t, MaxScore, res.MaxScore)
	assert.Equal(t, category.Dataset, res.Category)
	assert.Equal(t, "squad", res.Details.Name)
	assert.True(t, res.Details.HasDescription)
	assert.Equal(t, 0.5, res.Details.SizeScore[RaspberryPi])
}

func TestScoreRecord_ModelNoTierMet(t *testing.T) {
	res := ScoreRecord("u", "org/m", metadata.Model{Downloads: 500, Likes: 5}, 0)
	assert.Equal(t, 2.0, res.Score)
	assert.False(t, res.Details.HasModelCard)
	assert.Empty(t, res.Details.PipelineTag)
}

func TestScoreRecord_ModelAllTiers(t *testing.T) {
	res := ScoreRecord("u", "org/m", metadata.Model{Downloads: 200000, Likes: 150, HasCard: true, PipelineTag: "text-generation"}, 0)
	assert.Equal(t, 10.0, res.Score)
	assert.Equal(t, "text-generation", res.Details.PipelineTag)
}

func TestScoreRecord_Code(t *testing.T) {
	cases := []struct {
		name string
		rec  metadata.Code
		want float64
	}{
		{"bare", metadata.Code{}, 2.0},
		{"popular", metadata.Code{Stars: 5000, Forks: 500, Description: "d", HasLicense: true, Language: "Python"}, 10.0},
		{"small forks tier", metadata.Code{Stars: 50, Forks: 11}, 3.5},
		{"mid", metadata.Code{Stars: 150, Forks: 5, Language: "Go"}, 5.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ScoreRecord("u", "o/r", tc.rec, 1)
			assert.InDelta(t, tc.want, res.Score, 1e-9)
			assert.Equal(t, category.Code, res.Category)
		})
	}
}

func TestScoreRecord_NilRecordIsInvalid(t *testing.T) {
	res := ScoreRecord("u", "x", nil, 0)
	assert.Equal(t, category.Invalid, res.Category)
	assert.Equal(t, 0.0, res.Score)
	assert.NotEmpty(t, res.Details.Error)
	requireSizeMap(t, res)
}

func TestScorer_ScoreURL_Success(t *testing.T) {
	f := &fakeFetcher{records: map[string]metadata.Record{
		"squad":               metadata.Dataset{Downloads: 15000, Likes: 60, Description: "x"},
		"google/gemma-3-270m": metadata.Model{Downloads: 50000, Likes: 30, HasCard: true},
		"pytorch/pytorch":     metadata.Code{Stars: 80000, Forks: 20000, Description: "Tensors", HasLicense: true, Language: "Python"},
	}}
	sizes := &fakeSizes{sizes: map[string]float64{"google/gemma-3-270m": 540}}
	s := NewScorer(f, sizes)
	ctx := context.Background()

	ds := s.ScoreURL(ctx, "https://huggingface.co/datasets/squad", category.Dataset)
	assert.Equal(t, 9.0, ds.Score)

	m := s.ScoreURL(ctx, "https://huggingface.co/google/gemma-3-270m", category.Model)
	assert.Equal(t, 7.0, m.Score)
	assert.Equal(t, 540.0, m.Details.SizeMB)
	assert.Equal(t, 0.0, m.Details.SizeScore[JetsonNano])
	assert.Equal(t, 0.89, m.Details.SizeScore[DesktopPC])

	c := s.ScoreURL(ctx, "https://github.com/pytorch/pytorch", category.Code)
	assert.Equal(t, 10.0, c.Score)
	assert.Equal(t, "pytorch/pytorch", c.Details.Name)
	assert.False(t, c.Details.Fallback)

	assert.Equal(t, []string{"dataset:squad", "model:google/gemma-3-270m", "code:pytorch/pytorch"}, f.calls)
}

func TestScorer_UnparseableIdentifier(t *testing.T) {
	f := &fakeFetcher{}
	sizes := &fakeSizes{}
	s := NewScorer(f, sizes)

	res := s.ScoreDataset(context.Background(), "https://huggingface.co/datasets/")
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, MaxScore, res.MaxScore)
	assert.Equal(t, category.Dataset, res.Category)
	assert.Equal(t, "Invalid URL", res.Details.Error)
	assert.Equal(t, UnknownName, res.Details.Name)
	assert.Equal(t, UnknownSizeMB, res.Details.SizeMB)
	requireSizeMap(t, res)
	assert.Empty(t, f.calls, "fetcher must not be called without an identifier")
	assert.Empty(t, sizes.seen, "unknown artifacts use the default size")

	res = s.ScoreModel(context.Background(), "https://huggingface.co/gpt2")
	assert.Equal(t, "Invalid URL", res.Details.Error)
	res = s.ScoreCode(context.Background(), "https://github.com/user123")
	assert.Equal(t, "Invalid URL", res.Details.Error)
}

func TestScorer_FetchFailureFallbacks(t *testing.T) {
	s := NewScorer(&fakeFetcher{err: errors.New("timeout")}, &fakeSizes{})
	ctx := context.Background()

	cases := []struct {
		url  string
		cat  category.Category
		want float64
		name string
	}{
		{"https://huggingface.co/datasets/squad", category.Dataset, 0.0, "squad"},
		{"https://huggingface.co/google/gemma-3-270m", category.Model, 2.0, "google/gemma-3-270m"},
		{"https://github.com/pytorch/pytorch", category.Code, 2.0, "pytorch/pytorch"},
	}
	for _, tc := range cases {
		t.Run(tc.cat.String(), func(t *testing.T) {
			res := s.ScoreURL(ctx, tc.url, tc.cat)
			assert.Equal(t, tc.want, res.Score)
			assert.True(t, res.Details.Fallback)
			assert.Empty(t, res.Details.Error)
			assert.Equal(t, tc.name, res.Details.Name)
			assert.Equal(t, FallbackSizeMB, res.Details.SizeMB)
			requireSizeMap(t, res)
		})
	}
}

func TestScorer_MismatchedRecordIsFallback(t *testing.T) {
	f := &fakeFetcher{records: map[string]metadata.Record{
		"org/m": metadata.Dataset{Downloads: 1e6},
	}}
	res := NewScorer(f, nil).ScoreModel(context.Background(), "https://huggingface.co/org/m")
	assert.Equal(t, 2.0, res.Score)
	assert.True(t, res.Details.Fallback)
}

func TestScorer_NilCollaborators(t *testing.T) {
	res := NewScorer(nil, nil).ScoreCode(context.Background(), "https://github.com/a/b")
	assert.Equal(t, 2.0, res.Score)
	assert.True(t, res.Details.Fallback)
	assert.Equal(t, FallbackSizeMB, res.Details.SizeMB)
	requireSizeMap(t, res)
}

func TestScorer_InvalidCategory(t *testing.T) {
	sizes := &fakeSizes{}
	res := NewScorer(&fakeFetcher{}, sizes).ScoreURL(context.Background(), "https://google.com", category.Invalid)

	assert.Equal(t, category.Invalid, res.Category)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, MaxScore, res.MaxScore)
	assert.Equal(t, "Invalid category", res.Details.Error)
	assert.True(t, res.Failed())
	requireSizeMap(t, res)
	assert.Equal(t, 0.0, res.Details.SizeScore[RaspberryPi])
	assert.Equal(t, 0.9, res.Details.SizeScore[DesktopPC])

	res = NewScorer(nil, nil).ScoreURL(context.Background(), "x", category.Category(99))
	assert.Equal(t, "Invalid category", res.Details.Error)
}

func TestUnclassified(t *testing.T) {
	res := Unclassified("not_a_url")
	assert.Equal(t, category.Invalid, res.Category)
	assert.Equal(t, UnknownName, res.Details.Name)
	assert.Equal(t, UnclassifiedError, res.Details.Error)
	assert.Equal(t, 0.0, res.NetScore())
	assert.Equal(t, UnknownSizeMB, res.Details.SizeMB)
	requireSizeMap(t, res)
	assert.Equal(t, 0.0, res.Details.SizeScore[JetsonNano])
	assert.Equal(t, 0.9, res.Details.SizeScore[DesktopPC])
}

func TestScorer_UnknownSizeWithoutEstimator(t *testing.T) {
	res := NewScorer(nil, nil).ScoreModel(context.Background(), "https://huggingface.co/gpt2")
	assert.Equal(t, "Invalid URL", res.Details.Error)
	assert.Equal(t, UnknownSizeMB, res.Details.SizeMB)
	requireSizeMap(t, res)

	res = NewScorer(nil, nil).ScoreURL(context.Background(), "x", category.Invalid)
	assert.Equal(t, UnknownSizeMB, res.Details.SizeMB)
}

func TestResult_PercentageAndString(t *testing.T) {
	r := Result{Category: category.Model, Score: 7.5, MaxScore: 10}
	assert.Equal(t, 75.0, r.Percentage())
	assert.Equal(t, 0.75, r.NetScore())

	r = Result{Category: category.Model, Score: 8, MaxScore: 10}
	assert.Equal(t, "MODEL: 8.0/10.0 (80.0%)", r.String())

	zero := Result{Category: category.Model, Score: 5, MaxScore: 0}
	assert.Equal(t, 0.0, zero.Percentage())
}
