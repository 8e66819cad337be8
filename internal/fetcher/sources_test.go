package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idlab-discover/TrustScore-cli/internal/category"
)

func TestDatasetAPIFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/datasets/stanfordnlp/imdb", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"stanfordnlp/imdb","downloads":120,"likes":7,"description":"reviews","gated":false}`)
	}))
	defer srv.Close()

	f := &DatasetAPIFetcher{BaseURL: srv.URL}
	resp, err := f.Fetch(context.Background(), "stanfordnlp/imdb")
	require.NoError(t, err)
	assert.Equal(t, 120, resp.Downloads)
	assert.Equal(t, 7, resp.Likes)
	assert.Equal(t, "reviews", resp.Description)
}

func TestDatasetAPIFetcher_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := &DatasetAPIFetcher{BaseURL: srv.URL}
	_, err := f.Fetch(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
}

func TestGitHubRepoFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/SkyworkAI/Matrix-Game", r.URL.Path)
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer gh", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{
			"full_name":"SkyworkAI/Matrix-Game",
			"stargazers_count":1400,
			"forks_count":90,
			"description":"world model",
			"language":"Python",
			"size":2048,
			"license":{"key":"mit","spdx_id":"MIT"}
		}`)
	}))
	defer srv.Close()

	f := &GitHubRepoFetcher{BaseURL: srv.URL, Token: "gh"}
	resp, err := f.Fetch(context.Background(), "SkyworkAI", "Matrix-Game.git")
	require.NoError(t, err)
	assert.Equal(t, 1400, resp.Stars)
	assert.Equal(t, 90, resp.Forks)
	assert.Equal(t, int64(2048), resp.SizeKB)
	require.NotNil(t, resp.License)
	assert.Equal(t, "MIT", resp.License.SPDXID)
}

func TestGitHubRepoFetcher_RequiresOwnerAndName(t *testing.T) {
	f := &GitHubRepoFetcher{BaseURL: "http://unused"}
	_, err := f.Fetch(context.Background(), "owner", "")
	assert.Error(t, err)
}

func TestGitHubRepoFetcher_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := &GitHubRepoFetcher{BaseURL: srv.URL}
	_, err := f.Fetch(context.Background(), "a", "b")
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.Contains(t, err.Error(), "github api status 429")
}

func TestTreeFetcher_FollowsLinkPagination(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/models/org/model/tree/main", r.URL.Path)
		switch r.URL.Query().Get("cursor") {
		case "":
			assert.Equal(t, "true", r.URL.Query().Get("recursive"))
			w.Header().Set("Link", fmt.Sprintf(`<%s/api/models/org/model/tree/main?recursive=true&cursor=p2>; rel="next"`, srv.URL))
			_, _ = io.WriteString(w, `[
				{"type":"file","path":"config.json","size":100},
				{"type":"directory","path":"onnx","size":0},
				{"type":"file","path":"model.safetensors","size":134,"lfs":{"oid":"x","size":1048576}}
			]`)
		case "p2":
			_, _ = io.WriteString(w, `[{"type":"file","path":"onnx/model.onnx","size":1024}]`)
		default:
			t.Fatalf("unexpected cursor %q", r.URL.Query().Get("cursor"))
		}
	}))
	defer srv.Close()

	f := &TreeFetcher{BaseURL: srv.URL}
	entries, err := f.Fetch(context.Background(), category.Model, "org/model")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, int64(100+1048576+1024), TotalBytes(entries))
}

func TestTreeFetcher_DatasetPathAndErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/datasets/squad/tree/main", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	f := &TreeFetcher{BaseURL: srv.URL}
	_, err := f.Fetch(context.Background(), category.Dataset, "squad")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	_, err = f.Fetch(context.Background(), category.Code, "a/b")
	assert.Error(t, err)
}

func TestDatasetSizeFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/size", r.URL.Path)
		assert.Equal(t, "stanfordnlp/imdb", r.URL.Query().Get("dataset"))
		_, _ = io.WriteString(w, `{"size":{"dataset":{"dataset":"stanfordnlp/imdb","num_bytes_original_files":0,"num_bytes_parquet_files":2097152,"num_bytes_memory":5,"num_rows":100000},"splits":[]},"partial":false}`)
	}))
	defer srv.Close()

	f := &DatasetSizeFetcher{BaseURL: srv.URL}
	resp, err := f.Fetch(context.Background(), "stanfordnlp/imdb")
	require.NoError(t, err)
	assert.Equal(t, int64(2097152), resp.Bytes())
	assert.Equal(t, int64(100000), resp.Size.Dataset.NumRows)

	resp.Size.Dataset.NumBytesOriginal = 10
	assert.Equal(t, int64(10), resp.Bytes())
}

func TestAPIError_ServiceDefault(t *testing.T) {
	assert.Equal(t, "huggingface api status 500", (&APIError{StatusCode: 500}).Error())
	assert.Equal(t, "datasets-server api status 502", (&APIError{Service: ServiceDatasetsServer, StatusCode: 502}).Error())
}
