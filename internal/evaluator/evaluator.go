// Package evaluator scores batches of artifact URLs concurrently and reports
// progress while doing so.
package evaluator

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/idlab-discover/TrustScore-cli/internal/category"
	"github.com/idlab-discover/TrustScore-cli/internal/scoring"
)

// DefaultConcurrency is used when Options.Concurrency is not positive.
const DefaultConcurrency = 4

// Scorer scores a single classified URL.
type Scorer interface {
	ScoreURL(ctx context.Context, link string, c category.Category) scoring.Result
}

// Evaluation is the outcome for one input URL.
type Evaluation struct {
	Index  int
	Result scoring.Result
	// Latency is the wall time of the whole ScoreURL call, metadata fetch and
	// size estimate included; zero for unclassified URLs.
	Latency time.Duration
}

// ProgressCallback is called during evaluation to report progress. It may be
// called from several goroutines, but never concurrently.
type ProgressCallback func(event ProgressEvent)

// ProgressEvent represents a progress update.
type ProgressEvent struct {
	Type     ProgressEventType
	URL      string
	Category category.Category
	Index    int
	Total    int
	Result   *scoring.Result
	Latency  time.Duration
}

// ProgressEventType identifies the type of progress event.
type ProgressEventType int

const (
	EventURLStart ProgressEventType = iota
	EventURLComplete
	EventURLInvalid
	EventDone
)

// Options configures Evaluate.
type Options struct {
	Concurrency int
	OnProgress  ProgressCallback
}

// Evaluate classifies and scores every URL in urls, at most
// opts.Concurrency at a time. Results keep input order. URLs that match no
// category are reported without calling s. The only error returned is ctx's.
func Evaluate(ctx context.Context, s Scorer, urls []string, opts Options) ([]Evaluation, error) {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	progress := newReporter(opts.OnProgress)

	out := make([]Evaluation, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, raw := range urls {
		link := strings.TrimSpace(raw)
		c := category.Classify(link)

		if !c.Valid() {
			res := scoring.Unclassified(link)
			out[i] = Evaluation{Index: i, Result: res}
			logf(link, "invalid url")
			progress.emit(ProgressEvent{Type: EventURLInvalid, URL: link, Category: c, Index: i, Total: len(urls), Result: &res})
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			progress.emit(ProgressEvent{Type: EventURLStart, URL: link, Category: c, Index: i, Total: len(urls)})

			start := time.Now()
			res := s.ScoreURL(gctx, link, c)
			elapsed := time.Since(start)

			out[i] = Evaluation{Index: i, Result: res, Latency: elapsed}
			logf(link, "%s in %s", res, elapsed.Round(time.Millisecond))
			progress.emit(ProgressEvent{Type: EventURLComplete, URL: link, Category: c, Index: i, Total: len(urls), Result: &res, Latency: elapsed})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	progress.emit(ProgressEvent{Type: EventDone, Total: len(urls)})
	return out, nil
}

// Results returns the scoring results of evals in order.
func Results(evals []Evaluation) []scoring.Result {
	out := make([]scoring.Result, len(evals))
	for i, e := range evals {
		out[i] = e.Result
	}
	return out
}
