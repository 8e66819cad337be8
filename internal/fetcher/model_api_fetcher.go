package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const defaultHFBaseURL = "https://huggingface.co"

// ModelAPIFetcher fetches model metadata from the Hugging Face Hub API.
type ModelAPIFetcher struct {
	Client  *http.Client
	Token   string
	BaseURL string // optional; defaults to "https://huggingface.co"
}

// ModelAPIResponse holds the fields of GET https://huggingface.co/api/models/:id
// that feed the model score.
type ModelAPIResponse struct {
	ID          string         `json:"id"`
	PipelineTag string         `json:"pipeline_tag"`
	Downloads   int            `json:"downloads"`
	Likes       int            `json:"likes"`
	CardData    map[string]any `json:"cardData"`
}

// Fetch fetches model metadata for the given modelID.
func (f *ModelAPIFetcher) Fetch(ctx context.Context, modelID string) (*ModelAPIResponse, error) {
	trimmedModelID := strings.TrimPrefix(strings.TrimSpace(modelID), "/")
	logf(modelID, "GET /api/models/%s", trimmedModelID)

	url := fmt.Sprintf("%s/api/models/%s", hfBase(f.BaseURL), trimmedModelID)
	var parsed ModelAPIResponse
	if err := getJSON(ctx, f.Client, url, f.Token, ServiceHuggingFace, &parsed); err != nil {
		logf(modelID, "fetch failed (%v)", err)
		return nil, err
	}
	logf(modelID, "ok")
	return &parsed, nil
}

func hfBase(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return defaultHFBaseURL
	}
	return baseURL
}

// getJSON performs a GET and decodes a 200 response into out. Non-200
// statuses become *APIError for service.
func getJSON(ctx context.Context, client *http.Client, url, token, service string, out any) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if service == ServiceGitHub {
		req.Header.Set("Accept", "application/vnd.github+json")
	}
	if t := strings.TrimSpace(token); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Service: service, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", service, err)
	}
	return nil
}
