// Package chaos queries the ProjectDiscovery Chaos dataset. It requires an
// API key; the passive agent skips it when none is configured.
package chaos

import (
	"context"
	"fmt"
	"strings"
	"time"

	chaosclient "github.com/projectdiscovery/chaos-client/pkg/chaos"
	"github.com/duskline/subrecon/pkg/subscraping"
)

type Source struct {
	apiKeys   []string
	timeTaken time.Duration
	errors    int
	results   int
}

func (s *Source) Run(ctx context.Context, domain string, session *subscraping.Session) <-chan subscraping.Result {
	results := make(chan subscraping.Result)
	s.errors, s.results = 0, 0

	go func() {
		defer func(start time.Time) {
			s.timeTaken = time.Since(start)
			close(results)
		}(time.Now())

		if len(s.apiKeys) == 0 {
			s.errors++
			results <- subscraping.Result{Source: s.Name(), Type: subscraping.Error, Error: fmt.Errorf("no chaos api key configured")}
			return
		}

		client := chaosclient.New(s.apiKeys[0])
		subdomainsResp, err := client.GetSubdomains(&chaosclient.SubdomainsRequest{Domain: domain})
		if err != nil {
			s.errors++
			results <- subscraping.Result{Source: s.Name(), Type: subscraping.Error, Error: err}
			return
		}

		for item := range subdomainsResp {
			sub := strings.ToLower(item.Subdomain)
			if sub == "" {
				continue
			}
			host := sub
			if !strings.HasSuffix(host, domain) {
				host = sub + "." + domain
			}
			s.results++
			results <- subscraping.Result{Source: s.Name(), Type: subscraping.Subdomain, Value: host}
		}
	}()

	return results
}

func (s *Source) Name() string              { return "chaos" }
func (s *Source) IsDefault() bool           { return false }
func (s *Source) HasRecursiveSupport() bool { return false }
func (s *Source) NeedsKey() bool            { return true }
func (s *Source) AddApiKeys(keys []string)  { s.apiKeys = keys }
func (s *Source) Statistics() subscraping.Statistics {
	return subscraping.Statistics{Errors: s.errors, Results: s.results, TimeTaken: s.timeTaken}
}
