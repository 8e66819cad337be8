package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/idlab-discover/TrustScore-cli/internal/category"
)

// maxTreePages bounds pagination on very large repositories.
const maxTreePages = 50

var linkNextPattern = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// TreeEntry is one item of a Hugging Face repository tree listing.
type TreeEntry struct {
	Type string   `json:"type"` // "file" or "directory"
	Path string   `json:"path"`
	Size int64    `json:"size"`
	OID  string   `json:"oid"`
	LFS  *TreeLFS `json:"lfs,omitempty"`
}

type TreeLFS struct {
	OID  string `json:"oid"`
	Size int64  `json:"size"`
}

// Bytes returns the stored size of the entry, preferring the LFS object size.
func (e TreeEntry) Bytes() int64 {
	if e.LFS != nil && e.LFS.Size > 0 {
		return e.LFS.Size
	}
	return e.Size
}

// TreeFetcher lists repository files via GET /api/{models|datasets}/:id/tree/main.
type TreeFetcher struct {
	Client  *http.Client
	Token   string
	BaseURL string // optional; defaults to "https://huggingface.co"
}

// Fetch returns every file entry on the main revision of the repository id.
// Only Model and Dataset are valid kinds.
func (f *TreeFetcher) Fetch(ctx context.Context, kind category.Category, id string) ([]TreeEntry, error) {
	var segment string
	switch kind {
	case category.Model:
		segment = "models"
	case category.Dataset:
		segment = "datasets"
	default:
		return nil, fmt.Errorf("tree listing not supported for %s", kind)
	}

	id = strings.TrimPrefix(strings.TrimSpace(id), "/")
	logf(id, "GET /api/%s/%s/tree/main", segment, id)

	next := fmt.Sprintf("%s/api/%s/%s/tree/main?recursive=true", hfBase(f.BaseURL), segment, id)
	var files []TreeEntry
	for page := 0; next != "" && page < maxTreePages; page++ {
		entries, link, err := f.page(ctx, next)
		if err != nil {
			logf(id, "tree failed (%v)", err)
			return nil, err
		}
		for _, e := range entries {
			if e.Type == "file" {
				files = append(files, e)
			}
		}
		next = link
	}
	logf(id, "tree ok (%d files)", len(files))
	return files, nil
}

func (f *TreeFetcher) page(ctx context.Context, url string) ([]TreeEntry, string, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/json")
	if t := strings.TrimSpace(f.Token); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &APIError{Service: ServiceHuggingFace, StatusCode: resp.StatusCode}
	}

	var entries []TreeEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, "", fmt.Errorf("decode tree response: %w", err)
	}

	var next string
	if m := linkNextPattern.FindStringSubmatch(resp.Header.Get("Link")); m != nil {
		next = m[1]
	}
	return entries, next, nil
}

// TotalBytes sums the stored size of entries.
func TotalBytes(entries []TreeEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Bytes()
	}
	return total
}
