package fetcher

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const defaultDatasetsServerURL = "https://datasets-server.huggingface.co"

// DatasetSizeFetcher queries the dataset viewer size endpoint.
type DatasetSizeFetcher struct {
	Client  *http.Client
	Token   string
	BaseURL string // optional; defaults to "https://datasets-server.huggingface.co"
}

// DatasetSizeResponse is the decoded response from GET /size?dataset=:id.
type DatasetSizeResponse struct {
	Size struct {
		Dataset DatasetSize   `json:"dataset"`
		Splits  []DatasetSize `json:"splits"`
	} `json:"size"`
	Partial bool `json:"partial"`
}

type DatasetSize struct {
	Dataset          string `json:"dataset"`
	Config           string `json:"config,omitempty"`
	Split            string `json:"split,omitempty"`
	NumBytesOriginal int64  `json:"num_bytes_original_files"`
	NumBytesParquet  int64  `json:"num_bytes_parquet_files"`
	NumBytesMemory   int64  `json:"num_bytes_memory"`
	NumRows          int64  `json:"num_rows"`
}

// Bytes returns the original file size, or the parquet size when the
// originals are not reported.
func (r *DatasetSizeResponse) Bytes() int64 {
	if r.Size.Dataset.NumBytesOriginal > 0 {
		return r.Size.Dataset.NumBytesOriginal
	}
	return r.Size.Dataset.NumBytesParquet
}

// Fetch returns the viewer-reported size of datasetID.
func (f *DatasetSizeFetcher) Fetch(ctx context.Context, datasetID string) (*DatasetSizeResponse, error) {
	datasetID = strings.TrimPrefix(strings.TrimSpace(datasetID), "/")
	logf(datasetID, "GET /size?dataset=%s", datasetID)

	base := strings.TrimRight(strings.TrimSpace(f.BaseURL), "/")
	if base == "" {
		base = defaultDatasetsServerURL
	}
	u := base + "/size?dataset=" + url.QueryEscape(datasetID)

	var parsed DatasetSizeResponse
	if err := getJSON(ctx, f.Client, u, f.Token, ServiceDatasetsServer, &parsed); err != nil {
		logf(datasetID, "size failed (%v)", err)
		return nil, err
	}
	logf(datasetID, "size ok (%d bytes, partial=%t)", parsed.Bytes(), parsed.Partial)
	return &parsed, nil
}
