package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// DatasetAPIResponse holds the fields of GET https://huggingface.co/api/datasets/:id
// that feed the dataset score.
type DatasetAPIResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Downloads   int    `json:"downloads"`
	Likes       int    `json:"likes"`
}

// DatasetAPIFetcher fetches dataset metadata from the Hugging Face Hub API.
type DatasetAPIFetcher struct {
	Client  *http.Client
	Token   string
	BaseURL string // optional; defaults to "https://huggingface.co"
}

// Fetch fetches dataset metadata for the given datasetID.
func (f *DatasetAPIFetcher) Fetch(ctx context.Context, datasetID string) (*DatasetAPIResponse, error) {
	trimmedDatasetID := strings.TrimPrefix(strings.TrimSpace(datasetID), "/")
	logf(datasetID, "GET /api/datasets/%s", trimmedDatasetID)

	url := fmt.Sprintf("%s/api/datasets/%s", hfBase(f.BaseURL), trimmedDatasetID)
	var parsed DatasetAPIResponse
	if err := getJSON(ctx, f.Client, url, f.Token, ServiceHuggingFace, &parsed); err != nil {
		logf(datasetID, "fetch failed (%v)", err)
		return nil, err
	}
	logf(datasetID, "ok")
	return &parsed, nil
}
