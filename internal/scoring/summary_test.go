package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idlab-discover/TrustScore-cli/internal/category"
)

func TestLevelFor(t *testing.T) {
	assert.Equal(t, LevelExcellent, LevelFor(80))
	assert.Equal(t, LevelGood, LevelFor(79.9))
	assert.Equal(t, LevelGood, LevelFor(60))
	assert.Equal(t, LevelModerate, LevelFor(40))
	assert.Equal(t, LevelLow, LevelFor(39.99))
	assert.Equal(t, LevelLow, LevelFor(0))
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Category: category.Model, Score: 8, MaxScore: 10},
		{Category: category.Code, Score: 6, MaxScore: 10},
		{Category: category.Dataset, Score: 0, MaxScore: 10},
		Unclassified("nope"),
	}

	s := Summarize(results)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Analyzed)
	assert.Equal(t, 7.0, s.AverageScore())
	assert.Equal(t, 10.0, s.AverageMax())
	assert.Equal(t, 70.0, s.AveragePercentage())
	assert.Equal(t, LevelGood, s.Level)
}

func TestSummarize_NothingAnalysed(t *testing.T) {
	s := Summarize([]Result{Unclassified("x")})
	assert.Equal(t, 0, s.Analyzed)
	assert.Zero(t, s.AverageScore())
	assert.Zero(t, s.AverageMax())
	assert.Zero(t, s.AveragePercentage())
	assert.Empty(t, s.Level)
}
