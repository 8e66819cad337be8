package fetcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/idlab-discover/TrustScore-cli/internal/category"
	"github.com/idlab-discover/TrustScore-cli/internal/metadata"
)

// HubOptions configures the online fetchers built by NewHub.
type HubOptions struct {
	Timeout     time.Duration
	HFToken     string
	GitHubToken string

	// Base URLs; empty means the public endpoints.
	HFBaseURL             string
	GitHubBaseURL         string
	DatasetsServerBaseURL string

	// RatePerSecond caps requests per upstream service; 0 disables limiting.
	RatePerSecond float64
	// DisableBreaker turns off the per-service circuit breakers.
	DisableBreaker bool
}

// Hub groups the online fetchers and translates their responses into
// metadata records.
type Hub struct {
	Models   *ModelAPIFetcher
	Datasets *DatasetAPIFetcher
	Repos    *GitHubRepoFetcher
	Trees    *TreeFetcher
	Sizes    *DatasetSizeFetcher
}

// NewHub builds a Hub with one rate-limited client per upstream service.
// Tokens are injected by the client transports.
func NewHub(opts HubOptions) *Hub {
	hf := NewClient(ClientOptions{
		Name:          ServiceHuggingFace,
		Timeout:       opts.Timeout,
		Token:         opts.HFToken,
		RatePerSecond: opts.RatePerSecond,
		Breaker:       !opts.DisableBreaker,
	})
	viewer := NewClient(ClientOptions{
		Name:          ServiceDatasetsServer,
		Timeout:       opts.Timeout,
		Token:         opts.HFToken,
		RatePerSecond: opts.RatePerSecond,
		Breaker:       !opts.DisableBreaker,
	})
	gh := NewClient(ClientOptions{
		Name:          ServiceGitHub,
		Timeout:       opts.Timeout,
		Token:         opts.GitHubToken,
		RatePerSecond: opts.RatePerSecond,
		Breaker:       !opts.DisableBreaker,
	})

	return &Hub{
		Models:   &ModelAPIFetcher{Client: hf, BaseURL: opts.HFBaseURL},
		Datasets: &DatasetAPIFetcher{Client: hf, BaseURL: opts.HFBaseURL},
		Trees:    &TreeFetcher{Client: hf, BaseURL: opts.HFBaseURL},
		Sizes:    &DatasetSizeFetcher{Client: viewer, BaseURL: opts.DatasetsServerBaseURL},
		Repos:    &GitHubRepoFetcher{Client: gh, BaseURL: opts.GitHubBaseURL},
	}
}

// Fetch returns the metadata record of category c for id. Code ids have the
// form "owner/repo".
func (h *Hub) Fetch(ctx context.Context, c category.Category, id string) (metadata.Record, error) {
	switch c {
	case category.Dataset:
		resp, err := h.Datasets.Fetch(ctx, id)
		if err != nil {
			return nil, err
		}
		return DatasetRecord(resp), nil
	case category.Model:
		resp, err := h.Models.Fetch(ctx, id)
		if err != nil {
			return nil, err
		}
		return ModelRecord(resp), nil
	case category.Code:
		owner, repo, ok := strings.Cut(id, "/")
		if !ok {
			return nil, fmt.Errorf("github id %q is not owner/repo", id)
		}
		resp, err := h.Repos.Fetch(ctx, owner, repo)
		if err != nil {
			return nil, err
		}
		return CodeRecord(resp), nil
	default:
		return nil, fmt.Errorf("no fetcher for category %s", c)
	}
}

// DatasetRecord maps a dataset API response onto the scoring record.
func DatasetRecord(r *DatasetAPIResponse) metadata.Dataset {
	return metadata.Dataset{
		Downloads:   r.Downloads,
		Likes:       r.Likes,
		Description: strings.TrimSpace(r.Description),
	}
}

// ModelRecord maps a model API response onto the scoring record. A model
// has a card when the API returns non-empty card data.
func ModelRecord(r *ModelAPIResponse) metadata.Model {
	return metadata.Model{
		Downloads:   r.Downloads,
		Likes:       r.Likes,
		HasCard:     len(r.CardData) > 0,
		PipelineTag: strings.TrimSpace(r.PipelineTag),
	}
}

// CodeRecord maps a GitHub repository response onto the scoring record.
func CodeRecord(r *GitHubRepoResponse) metadata.Code {
	return metadata.Code{
		Stars:       r.Stars,
		Forks:       r.Forks,
		Description: strings.TrimSpace(r.Description),
		HasLicense:  r.License != nil,
		Language:    r.Language,
	}
}
