// Package passive fans a domain out across every enabled Source and merges
// their result channels into one.
package passive

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/maps"

	"github.com/duskline/subrecon/pkg/cache"
	"github.com/duskline/subrecon/pkg/subscraping"
	"github.com/duskline/subrecon/pkg/subscraping/sources/alienvault"
	"github.com/duskline/subrecon/pkg/subscraping/sources/axfr"
	"github.com/duskline/subrecon/pkg/subscraping/sources/chaos"
	"github.com/duskline/subrecon/pkg/subscraping/sources/crtsh"
	"github.com/duskline/subrecon/pkg/subscraping/sources/hackertarget"
	"github.com/duskline/subrecon/pkg/subscraping/sources/rapiddns"
	"github.com/duskline/subrecon/pkg/subscraping/sources/threatminer"
	"github.com/duskline/subrecon/pkg/subscraping/sources/urlscan"
	"github.com/duskline/subrecon/pkg/subscraping/sources/wayback"
)

// apiKeyEnv maps a source name to the environment variable its key is read
// from, one env var per source.
var apiKeyEnv = map[string]string{
	"chaos": "CHAOS_KEY",
}

// AllSources is every source this build knows how to construct.
var AllSources = map[string]func() subscraping.Source{
	"crtsh":        func() subscraping.Source { return &crtsh.Source{} },
	"hackertarget": func() subscraping.Source { return &hackertarget.Source{} },
	"rapiddns":     func() subscraping.Source { return &rapiddns.Source{} },
	"alienvault":   func() subscraping.Source { return &alienvault.Source{} },
	"wayback":      func() subscraping.Source { return &wayback.Source{} },
	"urlscan":      func() subscraping.Source { return &urlscan.Source{} },
	"threatminer":  func() subscraping.Source { return &threatminer.Source{} },
	"chaos":        func() subscraping.Source { return &chaos.Source{} },
	"axfr":         func() subscraping.Source { return &axfr.Source{} },
}

// Agent owns the set of sources a run will query.
type Agent struct {
	sources []subscraping.Source
	cache   *cache.Cache
}

// New builds an Agent. sourceNames/excludedSourceNames select sources by
// name; useAllSources overrides sourceNames with every known source, minus
// any explicit exclusions. Sources that NeedsKey() are given whatever keys
// keyProvider returns for their name, falling back to the per-source
// environment variable; with neither, they are skipped. keyProvider may be
// nil.
func New(sourceNames, excludedSourceNames []string, useAllSources bool, c *cache.Cache, keyProvider func(source string) []string) *Agent {
	excluded := make(map[string]struct{}, len(excludedSourceNames))
	for _, n := range excludedSourceNames {
		excluded[strings.ToLower(n)] = struct{}{}
	}

	var names []string
	if useAllSources || len(sourceNames) == 0 {
		names = maps.Keys(AllSources)
	} else {
		names = sourceNames
	}

	agent := &Agent{cache: c}
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, skip := excluded[name]; skip {
			continue
		}
		factory, ok := AllSources[name]
		if !ok {
			continue
		}
		source := factory()
		if source.NeedsKey() {
			var keys []string
			if keyProvider != nil {
				keys = keyProvider(name)
			}
			if len(keys) == 0 {
				if envVar, ok := apiKeyEnv[name]; ok {
					if key := os.Getenv(envVar); key != "" {
						keys = strings.Split(key, ",")
					}
				}
			}
			if len(keys) == 0 {
				continue
			}
			source.AddApiKeys(keys)
		}
		agent.sources = append(agent.sources, source)
	}
	return agent
}

// Run queries every configured source concurrently and streams every
// result onto a single merged channel, closed once all sources finish.
func (a *Agent) Run(ctx context.Context, domain string, session *subscraping.Session) <-chan subscraping.Result {
	out := make(chan subscraping.Result)

	var wg sync.WaitGroup
	for _, source := range a.sources {
		if a.cache != nil {
			if cached, ok := a.cache.Get(domain, source.Name()); ok {
				wg.Add(1)
				go func(name string, hosts []string) {
					defer wg.Done()
					defer func() {
						if rec := recover(); rec != nil {
							select {
							case out <- subscraping.Result{Source: name, Type: subscraping.Error, Error: fmt.Errorf("panic: %v", rec)}:
							case <-ctx.Done():
							}
						}
					}()
					for _, h := range hosts {
						out <- subscraping.Result{Source: name, Type: subscraping.Subdomain, Value: h}
					}
				}(source.Name(), cached)
				continue
			}
		}

		wg.Add(1)
		go func(source subscraping.Source) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					select {
					case out <- subscraping.Result{Source: source.Name(), Type: subscraping.Error, Error: fmt.Errorf("panic: %v", rec)}:
					case <-ctx.Done():
					}
				}
			}()
			var collected []string
			for result := range source.Run(ctx, domain, session) {
				if result.Type == subscraping.Subdomain {
					collected = append(collected, result.Value)
				}
				select {
				case out <- result:
				case <-ctx.Done():
					return
				}
			}
			if a.cache != nil && len(collected) > 0 {
				_ = a.cache.Set(domain, source.Name(), collected)
			}
		}(source)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// Sources returns the names of every source this Agent will query.
func (a *Agent) Sources() []string {
	names := make([]string, 0, len(a.sources))
	for _, s := range a.sources {
		names = append(names, s.Name())
	}
	return names
}

// NewSharedSession builds the Session every source in a run shares.
func NewSharedSession(timeout time.Duration) *subscraping.Session {
	return subscraping.NewSession(timeout, &subscraping.APIKeys{})
}
