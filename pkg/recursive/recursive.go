// Package recursive re-runs the passive sources against live subdomains
// that look like they might themselves have their own subdomains (a
// CDN-fronted apex, a `dev.` environment that hosts a whole second tier).
package recursive

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/projectdiscovery/gologger"

	"github.com/duskline/subrecon/pkg/subscraping"
)

const MaxDepth = 2

var skipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^gs-`),
	regexp.MustCompile(`^cdn-`),
	regexp.MustCompile(`^edge-`),
	regexp.MustCompile(`^node-`),
	regexp.MustCompile(`^server-`),
	regexp.MustCompile(`^instance-`),
	regexp.MustCompile(`^[a-f0-9]{8,}`),
	regexp.MustCompile(`-[a-z0-9]{10,}`),
}

var keepPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)api`),
	regexp.MustCompile(`(?i)admin`),
	regexp.MustCompile(`(?i)dev`),
	regexp.MustCompile(`(?i)stage`),
	regexp.MustCompile(`(?i)staging`),
	regexp.MustCompile(`(?i)test`),
	regexp.MustCompile(`(?i)uat`),
	regexp.MustCompile(`(?i)prod`),
	regexp.MustCompile(`(?i)internal`),
	regexp.MustCompile(`(?i)vpn`),
	regexp.MustCompile(`(?i)portal`),
	regexp.MustCompile(`(?i)dashboard`),
	regexp.MustCompile(`(?i)console`),
	regexp.MustCompile(`(?i)panel`),
	regexp.MustCompile(`(?i)mail`),
	regexp.MustCompile(`(?i)smtp`),
	regexp.MustCompile(`(?i)auth`),
	regexp.MustCompile(`(?i)login`),
	regexp.MustCompile(`(?i)sso`),
}

// Enumerator re-queries a passive Agent for hostnames built on top of each
// qualifying already-discovered subdomain, down to MaxDepth levels.
type Enumerator struct {
	agent interface {
		Run(ctx context.Context, domain string, session *subscraping.Session) <-chan subscraping.Result
	}
	session *subscraping.Session
}

// New builds an Enumerator that re-invokes agent's sources against each
// qualifying subdomain.
func New(agent interface {
	Run(ctx context.Context, domain string, session *subscraping.Session) <-chan subscraping.Result
}, session *subscraping.Session) *Enumerator {
	return &Enumerator{agent: agent, session: session}
}

// Enumerate filters subdomains to the subset worth recursing into, then
// runs the passive agent against each one up to MaxDepth levels,
// discovering sub-subdomains through asyncio-gather-style fan-out, and
// returns every new hostname found that was not already in subdomains.
func (e *Enumerator) Enumerate(ctx context.Context, subdomains []string, apex string) []string {
	seen := make(map[string]struct{}, len(subdomains))
	for _, s := range subdomains {
		seen[s] = struct{}{}
	}

	frontier := filterHighValue(subdomains, apex)
	var discovered []string

	for depth := 0; depth < MaxDepth && len(frontier) > 0; depth++ {
		var mu sync.Mutex
		var wg sync.WaitGroup
		var next []string

		for _, host := range frontier {
			wg.Add(1)
			go func(host string) {
				defer wg.Done()
				defer func() {
					if rec := recover(); rec != nil {
						gologger.Warning().Msgf("recovered from panic recursing into %s: %v", host, rec)
					}
				}()
				for result := range e.agent.Run(ctx, host, e.session) {
					if result.Type != subscraping.Subdomain {
						continue
					}
					mu.Lock()
					if _, ok := seen[result.Value]; !ok {
						seen[result.Value] = struct{}{}
						discovered = append(discovered, result.Value)
						next = append(next, result.Value)
					}
					mu.Unlock()
				}
			}(host)
		}
		wg.Wait()

		frontier = filterHighValue(next, apex)
	}

	return discovered
}

func filterHighValue(subdomains []string, apex string) []string {
	var out []string
	for _, sub := range subdomains {
		prefix := strings.TrimSuffix(strings.TrimSuffix(sub, apex), ".")
		if skipped(prefix) {
			continue
		}
		if kept(prefix) || (len(prefix) < 20 && strings.Count(prefix, ".") <= 1) {
			out = append(out, sub)
		}
	}
	return out
}

func skipped(prefix string) bool {
	for _, p := range skipPatterns {
		if p.MatchString(prefix) {
			return true
		}
	}
	return false
}

func kept(prefix string) bool {
	for _, p := range keepPatterns {
		if p.MatchString(prefix) {
			return true
		}
	}
	return false
}
