// Package trustscore is the public API of TrustScore-cli. It classifies
// artifact URLs, scores them against Hugging Face and GitHub metadata and
// maps artifact sizes onto hardware fitness.
package trustscore

import (
	"context"
	"time"

	"github.com/idlab-discover/TrustScore-cli/internal/category"
	"github.com/idlab-discover/TrustScore-cli/internal/estimator"
	"github.com/idlab-discover/TrustScore-cli/internal/evaluator"
	"github.com/idlab-discover/TrustScore-cli/internal/fetcher"
	"github.com/idlab-discover/TrustScore-cli/internal/scoring"
)

type (
	Category    = category.Category
	Result      = scoring.Result
	Details     = scoring.Details
	SizeFitness = scoring.SizeFitness
	Summary     = scoring.Summary
)

const (
	Invalid = category.Invalid
	Dataset = category.Dataset
	Model   = category.Model
	Code    = category.Code
)

// Options configures a Client.
type Options struct {
	// Offline serves metadata from the built-in fixtures instead of the
	// network.
	Offline bool

	Timeout       time.Duration
	HFToken       string
	GitHubToken   string
	RatePerSecond float64
	Concurrency   int
}

// Client scores URLs. It is safe for concurrent use.
type Client struct {
	scorer      *scoring.Scorer
	concurrency int
}

// New returns a Client for opts.
func New(opts Options) *Client {
	if opts.Offline {
		dummy := fetcher.NewDummyFetcher(nil)
		return &Client{scorer: scoring.NewScorer(dummy, dummy), concurrency: opts.Concurrency}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hub := fetcher.NewHub(fetcher.HubOptions{
		Timeout:       timeout,
		HFToken:       opts.HFToken,
		GitHubToken:   opts.GitHubToken,
		RatePerSecond: opts.RatePerSecond,
	})
	return &Client{scorer: scoring.NewScorer(hub, estimator.New(hub)), concurrency: opts.Concurrency}
}

// ScoreURL classifies and scores one URL. It never fails; problems are
// reported in the result's details.
func (c *Client) ScoreURL(ctx context.Context, link string) Result {
	cat := category.Classify(link)
	if !cat.Valid() {
		return scoring.Unclassified(link)
	}
	return c.scorer.ScoreURL(ctx, link, cat)
}

// ScoreURLs scores links concurrently and returns results in input order.
// The only error is ctx's.
func (c *Client) ScoreURLs(ctx context.Context, links []string) ([]Result, error) {
	evals, err := evaluator.Evaluate(ctx, c.scorer, links, evaluator.Options{Concurrency: c.concurrency})
	if err != nil {
		return nil, err
	}
	return evaluator.Results(evals), nil
}

// ScoreURL scores link with an online client using default options.
func ScoreURL(ctx context.Context, link string) Result {
	return New(Options{}).ScoreURL(ctx, link)
}

// Classify returns the category of link.
func Classify(link string) Category {
	return category.Classify(link)
}

// ComputeSizeFitness maps a size in MB to a fitness in [0,1] per hardware
// class.
func ComputeSizeFitness(sizeMB float64) SizeFitness {
	return scoring.ComputeSizeFitness(sizeMB)
}

// Summarize aggregates results into run totals and a trust level.
func Summarize(results []Result) Summary {
	return scoring.Summarize(results)
}
