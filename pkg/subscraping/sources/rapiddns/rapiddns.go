// Package rapiddns scrapes rapiddns.io's subdomain listing page.
package rapiddns

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/duskline/subrecon/pkg/subscraping"
)

type Source struct {
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

		searchURL := fmt.Sprintf("https://rapiddns.io/subdomain/%s?full=1", domain)
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

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			s.errors++
			results <- subscraping.Result{Source: s.Name(), Type: subscraping.Error, Error: err}
			return
		}

		pattern := regexp.MustCompile(`[\w.-]+\.` + regexp.QuoteMeta(domain))
		seen := make(map[string]struct{})
		for _, match := range pattern.FindAllString(string(body), -1) {
			host := strings.ToLower(match)
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

func (s *Source) Name() string                 { return "rapiddns" }
func (s *Source) IsDefault() bool              { return true }
func (s *Source) HasRecursiveSupport() bool    { return false }
func (s *Source) NeedsKey() bool               { return false }
func (s *Source) AddApiKeys(keys []string)     {}
func (s *Source) Statistics() subscraping.Statistics {
	return subscraping.Statistics{Errors: s.errors, Results: s.results, TimeTaken: s.timeTaken}
}
