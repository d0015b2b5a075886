// Package crtsh queries crt.sh's certificate transparency search for names
// sharing a SAN with the target domain.
package crtsh

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

type entry struct {
	NameValue string `json:"name_value"`
}

func (s *Source) Run(ctx context.Context, domain string, session *subscraping.Session) <-chan subscraping.Result {
	results := make(chan subscraping.Result)
	s.errors, s.results = 0, 0

	go func() {
		defer func(start time.Time) {
			s.timeTaken = time.Since(start)
			close(results)
		}(time.Now())

		searchURL := fmt.Sprintf("https://crt.sh/?q=%%.%s&output=json", domain)
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

		var entries []entry
		if err := jsoniter.NewDecoder(resp.Body).Decode(&entries); err != nil {
			s.errors++
			results <- subscraping.Result{Source: s.Name(), Type: subscraping.Error, Error: err}
			return
		}

		seen := make(map[string]struct{})
		for _, e := range entries {
			for _, sub := range strings.Split(e.NameValue, "\n") {
				sub = strings.ToLower(strings.TrimSpace(sub))
				if sub == "" || strings.Contains(sub, "*") {
					continue
				}
				if _, ok := seen[sub]; ok {
					continue
				}
				seen[sub] = struct{}{}
				s.results++
				results <- subscraping.Result{Source: s.Name(), Type: subscraping.Subdomain, Value: sub}
			}
		}
	}()

	return results
}

func (s *Source) Name() string                 { return "crtsh" }
func (s *Source) IsDefault() bool              { return true }
func (s *Source) HasRecursiveSupport() bool    { return false }
func (s *Source) NeedsKey() bool               { return false }
func (s *Source) AddApiKeys(keys []string)     {}
func (s *Source) Statistics() subscraping.Statistics {
	return subscraping.Statistics{Errors: s.errors, Results: s.results, TimeTaken: s.timeTaken}
}
