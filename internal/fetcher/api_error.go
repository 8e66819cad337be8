package fetcher

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
)

// Upstream service names used in APIError.
const (
	ServiceHuggingFace    = "huggingface"
	ServiceDatasetsServer = "datasets-server"
	ServiceGitHub         = "github"
)

// APIError is returned when an upstream API responds with a non-2xx HTTP status.
// Using a typed error allows callers to distinguish "not found" (404) from transient
// failures without string matching.
type APIError struct {
	Service    string
	StatusCode int
}

func (e *APIError) Error() string {
	service := e.Service
	if service == "" {
		service = ServiceHuggingFace
	}
	return fmt.Sprintf("%s api status %d", service, e.StatusCode)
}

// IsNotFound reports whether err is an APIError with HTTP 404.
func IsNotFound(err error) bool {
	var e *APIError
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is an APIError with HTTP 401 or 403.
// This typically means the repo is private and no (or an invalid) token was provided.
func IsUnauthorized(err error) bool {
	var e *APIError
	return errors.As(err, &e) && (e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// IsRateLimited reports whether err is an APIError with HTTP 429.
func IsRateLimited(err error) bool {
	var e *APIError
	return errors.As(err, &e) && e.StatusCode == http.StatusTooManyRequests
}

// IsCircuitOpen reports whether the request was refused by an open breaker.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
