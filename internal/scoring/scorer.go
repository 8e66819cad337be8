package scoring

import (
	"context"
	"fmt"

	"github.com/idlab-discover/TrustScore-cli/internal/category"
	"github.com/idlab-discover/TrustScore-cli/internal/metadata"
)

const (
	// UnknownName is reported, and passed to the size estimator, when no
	// identifier could be derived from the URL.
	UnknownName = "unknown"
	// UnknownSizeMB is the size assumed for an unidentified artifact.
	UnknownSizeMB = 500.0
	// FallbackSizeMB is the conservative size used when estimation fails.
	FallbackSizeMB = 1000.0
)

// MetadataFetcher retrieves the metadata record for an identifier. The
// returned record must match category c. Any error is treated as
// "metadata unavailable".
type MetadataFetcher interface {
	Fetch(ctx context.Context, c category.Category, id string) (metadata.Record, error)
}

// SizeEstimator estimates an artifact's size in MB. It is best effort and
// returns a default instead of failing.
type SizeEstimator interface {
	Estimate(ctx context.Context, id string, c category.Category) float64
}

// Scorer turns artifact URLs into Results. It holds no mutable state and is
// safe for concurrent use when its collaborators are.
type Scorer struct {
	fetcher MetadataFetcher
	sizes   SizeEstimator
}

// NewScorer returns a Scorer. A nil estimator makes every identified
// artifact's size FallbackSizeMB.
func NewScorer(f MetadataFetcher, s SizeEstimator) *Scorer {
	return &Scorer{fetcher: f, sizes: s}
}

// ScoreURL scores link under category c. It never fails: unparseable
// identifiers, unavailable metadata and invalid categories all produce a
// Result explaining what happened.
func (s *Scorer) ScoreURL(ctx context.Context, link string, c category.Category) Result {
	switch c {
	case category.Dataset:
		return s.ScoreDataset(ctx, link)
	case category.Model:
		return s.ScoreModel(ctx, link)
	case category.Code:
		return s.ScoreCode(ctx, link)
	case category.Invalid:
		return s.invalid(ctx, link)
	default:
		return s.invalid(ctx, link)
	}
}

// ScoreDataset scores a Hugging Face dataset URL.
func (s *Scorer) ScoreDataset(ctx context.Context, link string) Result {
	return s.score(ctx, link, category.Dataset)
}

// ScoreModel scores a Hugging Face model URL.
func (s *Scorer) ScoreModel(ctx context.Context, link string) Result {
	return s.score(ctx, link, category.Model)
}

// ScoreCode scores a GitHub repository URL.
func (s *Scorer) ScoreCode(ctx context.Context, link string) Result {
	return s.score(ctx, link, category.Code)
}

func (s *Scorer) score(ctx context.Context, link string, c category.Category) Result {
	id, ok := category.Identifier(c, link)
	if !ok {
		logf(link, "cannot parse %s identifier", c.Kind())
		return s.failed(ctx, link, c, "Invalid URL")
	}

	rec, err := s.fetch(ctx, c, id)
	if err != nil {
		logf(id, "metadata unavailable, using fallback (%v)", err)
		rules, _ := RulesFor(c)
		sizeMB, fitness := s.size(ctx, id, c)
		return Result{
			URL:      link,
			Category: c,
			Score:    rules.Fallback,
			MaxScore: MaxScore,
			Details: Details{
				Name:      id,
				Fallback:  true,
				SizeMB:    sizeMB,
				SizeScore: fitness,
			},
		}
	}

	sizeMB, _ := s.size(ctx, id, c)
	res := ScoreRecord(link, id, rec, sizeMB)
	logf(id, "scored %.1f/%.1f", res.Score, res.MaxScore)
	return res
}

func (s *Scorer) fetch(ctx context.Context, c category.Category, id string) (metadata.Record, error) {
	if s.fetcher == nil {
		return nil, fmt.Errorf("no metadata fetcher configured")
	}
	rec, err := s.fetcher.Fetch(ctx, c, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("empty %s metadata", c.Kind())
	}
	if rec.Category() != c {
		return nil, fmt.Errorf("fetcher returned %s metadata for %s", rec.Category().Kind(), c.Kind())
	}
	return rec, nil
}

func (s *Scorer) invalid(ctx context.Context, link string) Result {
	return s.failed(ctx, link, category.Invalid, "Invalid category")
}

func (s *Scorer) failed(ctx context.Context, link string, c category.Category, reason string) Result {
	sizeMB, fitness := s.size(ctx, UnknownName, c)
	return Result{
		URL:      link,
		Category: c,
		Score:    0,
		MaxScore: MaxScore,
		Details: Details{
			Name:      UnknownName,
			Error:     reason,
			SizeMB:    sizeMB,
			SizeScore: fitness,
		},
	}
}

func (s *Scorer) size(ctx context.Context, id string, c category.Category) (float64, SizeFitness) {
	sizeMB := FallbackSizeMB
	switch {
	case id == "" || id == UnknownName:
		sizeMB = UnknownSizeMB
	case s.sizes != nil:
		sizeMB = s.sizes.Estimate(ctx, id, c)
	}
	return sizeMB, ComputeSizeFitness(sizeMB)
}

// ScoreRecord applies the category's rule table to rec. It is the pure core
// of the Scorer: no I/O, and the size figure is supplied by the caller.
func ScoreRecord(link, name string, rec metadata.Record, sizeMB float64) Result {
	if rec == nil {
		return Result{
			URL:      link,
			Category: category.Invalid,
			MaxScore: MaxScore,
			Details: Details{
				Name:      UnknownName,
				Error:     "Invalid category",
				SizeMB:    sizeMB,
				SizeScore: ComputeSizeFitness(sizeMB),
			},
		}
	}

	c := rec.Category()
	rules, _ := RulesFor(c)
	details := Details{
		Name:      name,
		SizeMB:    sizeMB,
		SizeScore: ComputeSizeFitness(sizeMB),
	}
	switch r := rec.(type) {
	case metadata.Dataset:
		details.Downloads = r.Downloads
		details.Likes = r.Likes
		details.HasDescription = r.Description != ""
	case metadata.Model:
		details.Downloads = r.Downloads
		details.Likes = r.Likes
		details.HasModelCard = r.HasCard
		details.PipelineTag = r.PipelineTag
	case metadata.Code:
		details.Stars = r.Stars
		details.Forks = r.Forks
		details.HasDescription = r.Description != ""
		details.HasLicense = r.HasLicense
		details.Language = r.Language
	}

	return Result{
		URL:      link,
		Category: c,
		Score:    rules.Evaluate(SignalsOf(rec)),
		MaxScore: MaxScore,
		Details:  details,
	}
}

// UnclassifiedError is the detail reported for URLs that match no category.
const UnclassifiedError = "Invalid URL - Not a dataset, model, or code URL"

// Unclassified returns the result for a URL that matched no category. Unlike
// ScoreURL with category.Invalid, it consults no collaborators.
func Unclassified(link string) Result {
	return Result{
		URL:      link,
		Category: category.Invalid,
		MaxScore: MaxScore,
		Details: Details{
			Name:      UnknownName,
			Error:     UnclassifiedError,
			SizeMB:    UnknownSizeMB,
			SizeScore: ComputeSizeFitness(UnknownSizeMB),
		},
	}
}
