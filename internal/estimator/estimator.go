// Package estimator estimates artifact sizes in megabytes from repository
// listings and upstream size reports. Estimation is best effort: failures
// resolve to a conservative default rather than an error.
package estimator

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/idlab-discover/TrustScore-cli/internal/category"
	"github.com/idlab-discover/TrustScore-cli/internal/fetcher"
	"github.com/idlab-discover/TrustScore-cli/internal/scoring"
)

const bytesPerMB = 1024 * 1024

// TreeLister lists the files of a Hugging Face repository.
type TreeLister interface {
	Fetch(ctx context.Context, kind category.Category, id string) ([]fetcher.TreeEntry, error)
}

// DatasetSizer reports dataset sizes from the dataset viewer.
type DatasetSizer interface {
	Fetch(ctx context.Context, datasetID string) (*fetcher.DatasetSizeResponse, error)
}

// RepoGetter fetches GitHub repository metadata.
type RepoGetter interface {
	Fetch(ctx context.Context, owner, repo string) (*fetcher.GitHubRepoResponse, error)
}

// Estimator implements scoring.SizeEstimator over online sources. Any nil
// source makes the corresponding category fall back.
type Estimator struct {
	Trees TreeLister
	Sizes DatasetSizer
	Repos RepoGetter
}

// New returns an Estimator backed by the fetchers of hub.
func New(hub *fetcher.Hub) *Estimator {
	return &Estimator{Trees: hub.Trees, Sizes: hub.Sizes, Repos: hub.Repos}
}

var errNoSource = errors.New("no size source configured")

// Estimate returns the size of id in MB, rounded to two decimals.
//   - "" and "unknown" give scoring.UnknownSizeMB.
//   - Any lookup failure gives scoring.FallbackSizeMB.
func (e *Estimator) Estimate(ctx context.Context, id string, c category.Category) float64 {
	id = strings.TrimSpace(id)
	if id == "" || id == scoring.UnknownName {
		return scoring.UnknownSizeMB
	}

	var (
		bytes int64
		err   error
	)
	switch c {
	case category.Model:
		bytes, err = e.treeBytes(ctx, c, id)
	case category.Dataset:
		bytes, err = e.datasetBytes(ctx, id)
	case category.Code:
		bytes, err = e.repoBytes(ctx, id)
	default:
		err = errors.New("unsupported category " + c.String())
	}
	if err != nil {
		logf(id, "estimate failed, using %.0f MB (%v)", scoring.FallbackSizeMB, err)
		return scoring.FallbackSizeMB
	}

	mb := ToMB(bytes)
	logf(id, "%s size %.2f MB", c.Kind(), mb)
	return mb
}

func (e *Estimator) treeBytes(ctx context.Context, c category.Category, id string) (int64, error) {
	if e.Trees == nil {
		return 0, errNoSource
	}
	entries, err := e.Trees.Fetch(ctx, c, id)
	if err != nil {
		return 0, err
	}
	return fetcher.TotalBytes(entries), nil
}

// datasetBytes prefers the viewer report and falls back to the file tree.
func (e *Estimator) datasetBytes(ctx context.Context, id string) (int64, error) {
	if e.Sizes != nil {
		resp, err := e.Sizes.Fetch(ctx, id)
		if err == nil && resp.Bytes() > 0 {
			return resp.Bytes(), nil
		}
		if err != nil {
			logf(id, "viewer size unavailable (%v), trying tree", err)
		}
	}
	return e.treeBytes(ctx, category.Dataset, id)
}

func (e *Estimator) repoBytes(ctx context.Context, id string) (int64, error) {
	if e.Repos == nil {
		return 0, errNoSource
	}
	owner, repo, ok := strings.Cut(id, "/")
	if !ok {
		return 0, errors.New("code id is not owner/repo")
	}
	resp, err := e.Repos.Fetch(ctx, owner, repo)
	if err != nil {
		return 0, err
	}
	return resp.SizeKB * 1024, nil
}

// ToMB converts bytes to megabytes (1024²), rounded to two decimals.
func ToMB(bytes int64) float64 {
	if bytes <= 0 {
		return 0
	}
	return math.Round(float64(bytes)/bytesPerMB*100) / 100
}
