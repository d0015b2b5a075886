// Package threatminer queries ThreatMiner's passive DNS domain report.
package threatminer

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
	StatusCode string   `json:"status_code"`
	Results    []string `json:"results"`
}

func (s *Source) Run(ctx context.Context, domain string, session *subscraping.Session) <-chan subscraping.Result {
	results := make(chan subscraping.Result)
	s.errors, s.results = 0, 0

	go func() {
		defer func(start time.Time) {
			s.timeTaken = time.Since(start)
			close(results)
		}(time.Now())

		searchURL := fmt.Sprintf("https://api.threatminer.org/v2/domain.php?q=%s&rt=5", domain)
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
		if r.StatusCode != "200" {
			return
		}

		for _, sub := range r.Results {
			sub = strings.ToLower(sub)
			if sub == domain || !strings.HasSuffix(sub, domain) {
				continue
			}
			s.results++
			results <- subscraping.Result{Source: s.Name(), Type: subscraping.Subdomain, Value: sub}
		}
	}()

	return results
}

func (s *Source) Name() string                 { return "threatminer" }
func (s *Source) IsDefault() bool              { return false }
func (s *Source) HasRecursiveSupport() bool    { return false }
func (s *Source) NeedsKey() bool               { return false }
func (s *Source) AddApiKeys(keys []string)     {}
func (s *Source) Statistics() subscraping.Statistics {
	return subscraping.Statistics{Errors: s.errors, Results: s.results, TimeTaken: s.timeTaken}
}
