package fetcher

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// ClientOptions configures an API client built by NewClient.
type ClientOptions struct {
	// Name identifies the upstream service in breaker state and errors.
	Name string
	// Timeout is the per-request deadline (0 = no timeout).
	Timeout time.Duration
	// Token is injected as a Bearer token on every request when non-empty.
	Token string
	// RatePerSecond caps outgoing requests; 0 disables limiting.
	RatePerSecond float64
	// Burst is the limiter burst size (defaults to 1).
	Burst int
	// Breaker enables a circuit breaker that opens after repeated failures.
	Breaker bool
	// Base is the underlying transport (defaults to http.DefaultTransport).
	Base http.RoundTripper
}

// tokenTransport injects a Bearer token into every request when a token is set.
type tokenTransport struct {
	base  http.RoundTripper
	token string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token != "" && req.Header.Get("Authorization") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	return t.base.RoundTrip(req)
}

// limitedTransport blocks until the limiter admits the request.
type limitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

var errUpstreamStatus = errors.New("upstream failure status")

// breakerTransport counts transport errors, 5xx and 429 responses as
// failures. Failed responses are still handed back to the caller; only an
// open breaker short-circuits the request.
type breakerTransport struct {
	base http.RoundTripper
	cb   *gobreaker.CircuitBreaker
}

func (t *breakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out, err := t.cb.Execute(func() (interface{}, error) {
		resp, err := t.base.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return resp, errUpstreamStatus
		}
		return resp, nil
	})
	if errors.Is(err, errUpstreamStatus) {
		return out.(*http.Response), nil
	}
	if err != nil {
		return nil, err
	}
	return out.(*http.Response), nil
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

// NewClient creates an *http.Client with optional token injection, rate
// limiting and circuit breaking. Layers are applied outermost-first as
// breaker → limiter → token → base.
func NewClient(opts ClientOptions) *http.Client {
	var transport http.RoundTripper = opts.Base
	if transport == nil {
		transport = http.DefaultTransport
	}
	if token := strings.TrimSpace(opts.Token); token != "" {
		transport = &tokenTransport{base: transport, token: token}
	}
	if opts.RatePerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		transport = &limitedTransport{base: transport, limiter: rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst)}
	}
	if opts.Breaker {
		name := opts.Name
		if name == "" {
			name = "api"
		}
		transport = &breakerTransport{base: transport, cb: newBreaker(name)}
	}
	return &http.Client{Timeout: opts.Timeout, Transport: transport}
}
