// Package subscraping defines the contract every passive source implements,
// and the shared HTTP session those sources use to talk to upstream APIs.
package subscraping

import (
	"context"
	"net/http"
	"time"

	"github.com/corpix/uarand"
	retryablehttp "github.com/projectdiscovery/retryablehttp-go"
)

// ResultType distinguishes a discovered hostname from a source-level error.
type ResultType int

const (
	Subdomain ResultType = iota
	Error
)

// Result is one item streamed back on a Source's channel.
type Result struct {
	Source string
	Type   ResultType
	Value  string
	Error  error
}

// Statistics reports how a single source's Run call went.
type Statistics struct {
	Errors    int
	Results   int
	TimeTaken time.Duration
}

// Source is implemented by every passive data source. Run must close its
// channel when done and must respect ctx cancellation.
type Source interface {
	Run(ctx context.Context, domain string, session *Session) <-chan Result
	Name() string
	IsDefault() bool
	HasRecursiveSupport() bool
	NeedsKey() bool
	AddApiKeys(keys []string)
	Statistics() Statistics
}

// Session is the shared HTTP client every source uses, wrapping the
// project's retryable client with a fixed per-request timeout and a
// randomized User-Agent so a single source's outage cannot wedge the run.
type Session struct {
	Client  *retryablehttp.Client
	Timeout time.Duration
	Keys    *APIKeys
}

// APIKeys holds optional credentials for sources that need them, loaded
// from the environment by the caller.
type APIKeys struct {
	Values map[string][]string
}

// NewSession builds a Session with an HTTP client that does not retry.
func NewSession(timeout time.Duration, keys *APIKeys) *Session {
	opts := retryablehttp.DefaultOptionsSpraying
	opts.Timeout = timeout
	opts.RetryMax = 0

	client := retryablehttp.NewClient(opts)
	client.HTTPClient.Timeout = timeout

	return &Session{Client: client, Timeout: timeout, Keys: keys}
}

// SimpleGet issues a GET request with a randomized User-Agent and the
// session's configured timeout.
func (s *Session) SimpleGet(ctx context.Context, url string) (*http.Response, error) {
	return s.Get(ctx, url, nil)
}

// Get issues a GET request with extra headers merged on top of the default
// User-Agent.
func (s *Session) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := retryablehttp.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Request = req.Request.WithContext(ctx)
	req.Header.Set("User-Agent", uarand.GetRandom())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return s.Client.Do(req)
}

// Close releases any idle connections held by the session.
func (s *Session) Close() {
	s.Client.HTTPClient.CloseIdleConnections()
}
