// Package alienvault queries AlienVault OTX's passive DNS API.
package alienvault

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/duskline/subrecon/pkg/subscraping"
)

type Source struct {
	timeTaken time.Duration
	errors    int
	results   int
}

type response struct {
	PassiveDNS []struct {
		Hostname string `json:"hostname"`
	} `json:"passive_dns"`
}

func (s *Source) Run(ctx context.Context, domain string, session *subscraping.Session) <-chan subscraping.Result {
	results := make(chan subscraping.Result)
	s.errors, s.results = 0, 0

	go func() {
		defer func(start time.Time) {
			s.timeTaken = time.Since(start)
			close(results)
		}(time.Now())

		searchURL := fmt.Sprintf("https://otx.alienvault.com/api/v1/indicators/domain/%s/passive_dns", domain)
		resp, err := session.SimpleGet(ctx, searchURL)
		if err != nil {
			s.errors++
			results <- subscraping.Result{Source: s.Name(), Type: subscraping.Error, Error: err}
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			s.errors++
			results <- subscraping.Result{Source: s.Name(), Type: subscraping.Error, Error: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
			return
		}

		var r response
		if err := jsoniter.NewDecoder(resp.Body).Decode(&r); err != nil {
			s.errors++
			results <- subscraping.Result{Source: s.Name(), Type: subscraping.Error, Error: err}
			return
		}

		seen := make(map[string]struct{})
		for _, e := range r.PassiveDNS {
			host := strings.ToLower(e.Hostname)
			if host == "" || !strings.HasSuffix(host, domain) {
				continue
			}
			if _, ok := seen[host]; ok {
				continue
			}
			seen[host] = struct{}{}
			s.results++
			results <- subscraping.Result{Source: s.Name(), Type: subscraping.Subdomain, Value: host}
		}
	}()

	return results
}

func (s *Source) Name() string                 { return "alienvault" }
func (s *Source) IsDefault() bool              { return true }
func (s *Source) HasRecursiveSupport() bool    { return false }
func (s *Source) NeedsKey() bool               { return false }
func (s *Source) AddApiKeys(keys []string)     {}
func (s *Source) Statistics() subscraping.Statistics {
	return subscraping.Statistics{Errors: s.errors, Results: s.results, TimeTaken: s.timeTaken}
}
