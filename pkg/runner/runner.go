package runner

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/projectdiscovery/gologger"

	"github.com/duskline/subrecon/pkg/analysis"
	"github.com/duskline/subrecon/pkg/bruteforce"
	"github.com/duskline/subrecon/pkg/cache"
	"github.com/duskline/subrecon/pkg/model"
	"github.com/duskline/subrecon/pkg/passive"
	"github.com/duskline/subrecon/pkg/permutation"
	"github.com/duskline/subrecon/pkg/probe"
	"github.com/duskline/subrecon/pkg/recursive"
	"github.com/duskline/subrecon/pkg/resolve"
	"github.com/duskline/subrecon/pkg/scraper"
	"github.com/duskline/subrecon/pkg/security"
	"github.com/duskline/subrecon/pkg/subscraping"
	"github.com/duskline/subrecon/pkg/wildcard"
)

// Runner drives a complete enumeration: wildcard baseline, candidate
// generation across every enabled phase, and the shared resolve-filter-
// probe-filter-score pipeline every candidate passes through regardless of
// which phase produced it.
type Runner struct {
	options      *Options
	resolver     *resolve.Resolver
	prober       *probe.Prober
	passiveAgent *passive.Agent
	session      *subscraping.Session
	cache        *cache.Cache
}

// New builds a Runner from options, which must already have passed Validate.
func New(options *Options) (*Runner, error) {
	resolver, err := resolve.New([]string(options.Resolvers), 2)
	if err != nil {
		return nil, fmt.Errorf("building resolver: %w", err)
	}

	var c *cache.Cache
	if options.EnableCache {
		ttl := options.CacheTTL
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		c = cache.New(options.CacheDir, ttl)
	}

	// The axfr source shells out to nslookup and only runs when -axfr is set.
	sourceNames := []string(options.Sources)
	excluded := append([]string{}, options.ExcludeSources...)
	if !options.AXFR {
		excluded = append(excluded, "axfr")
	} else if len(sourceNames) > 0 && !options.UseAllSources {
		sourceNames = append(append([]string{}, sourceNames...), "axfr")
	}

	agent := passive.New(
		sourceNames,
		excluded,
		options.UseAllSources,
		c,
		APIKeysFor,
	)

	return &Runner{
		options:      options,
		resolver:     resolver,
		prober:       probe.New(time.Duration(options.Timeout)*time.Second, true),
		passiveAgent: agent,
		session:      passive.NewSharedSession(time.Duration(options.Timeout) * time.Second),
		cache:        c,
	}, nil
}

// Close releases resources the runner holds across domains.
func (r *Runner) Close() {
	if r.session != nil {
		r.session.Close()
	}
}

// RunDomain performs the full pipeline against a single apex domain and
// returns every finding it produced, ordered by descending risk score.
func (r *Runner) RunDomain(ctx context.Context, apex string) ([]*model.Finding, *model.RunStats, error) {
	apex = security.SanitizeDomain(apex)
	if !security.IsValidDomain(apex) {
		return nil, nil, fmt.Errorf("invalid domain: %s", apex)
	}

	LogStartup(apex)
	stats := &model.RunStats{Started: time.Now()}

	baseline := wildcard.Detect(ctx, apex, r.resolver, r.prober)
	if baseline.IsWildcard {
		gologger.Info().Msgf("Wildcard DNS detected for %s (%d IPs)", apex, len(baseline.IPs))
	}

	queue := make(chan model.Candidate, 1024)
	var processedMu sync.Mutex
	processed := make(map[string]struct{})

	enqueue := func(host, source string, depth int) {
		host = security.SanitizeDomain(host)
		if host == "" || host == apex || !security.IsValidDomain(host) {
			return
		}
		processedMu.Lock()
		if _, ok := processed[host]; ok {
			processedMu.Unlock()
			return
		}
		processed[host] = struct{}{}
		processedMu.Unlock()
		queue <- model.Candidate{Host: host, Source: source, Depth: depth}
	}

	findings := make([]*model.Finding, 0, 256)
	var findingsMu sync.Mutex
	fingerprinter := analysis.NewFingerprinter()
	httpSem := make(chan struct{}, r.options.HTTPSemaphoreSize())

	var wg sync.WaitGroup
	for i := 0; i < r.options.Threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for candidate := range queue {
				r.processCandidateSafely(ctx, candidate, baseline, fingerprinter, httpSem, stats, &findingsMu, &findings)
			}
		}()
	}

	// Phase 1: passive discovery.
	gologger.Verbose().Msgf("Phase 1: passive discovery for %s", apex)
	for result := range r.passiveAgent.Run(ctx, apex, r.session) {
		switch result.Type {
		case subscraping.Error:
			gologger.Warning().Msgf("source %s: %s", result.Source, result.Error)
		case subscraping.Subdomain:
			enqueue(result.Value, result.Source, 0)
		}
	}

	// Phase 1.5: JS scraping.
	if r.options.JSScraper {
		gologger.Verbose().Msgf("Phase 1.5: JS scraping for %s", apex)
		for _, host := range scraper.New(r.session).Run(ctx, apex) {
			enqueue(host, "jsscraper", 0)
		}
	}

	// Phase 2: brute force.
	if r.options.BruteForce {
		gologger.Verbose().Msgf("Phase 2: brute force for %s", apex)
		gen, err := r.bruteGenerator()
		if err != nil {
			gologger.Warning().Msgf("brute force wordlist: %s", err)
		} else {
			for _, host := range gen.Generate(apex) {
				enqueue(host, "bruteforce", 0)
			}
		}
	}

	// Phase 2.5: permutations, seeded from everything queued so far.
	if r.options.Permutations {
		gologger.Verbose().Msgf("Phase 2.5: permutation scanning for %s", apex)
		processedMu.Lock()
		seeds := make([]string, 0, len(processed))
		for host := range processed {
			seeds = append(seeds, host)
		}
		processedMu.Unlock()

		for _, host := range permutation.NewGenerator().Generate(seeds, apex) {
			enqueue(host, "permutation", 0)
		}
	}

	close(queue)
	wg.Wait()

	// Phase 2.75: recursive re-querying of the passive agent against
	// qualifying live subdomains, up to recursive.MaxDepth levels.
	if r.options.Recursive {
		gologger.Verbose().Msgf("Phase 2.75: recursive enumeration for %s", apex)
		findingsMu.Lock()
		seen := make([]string, 0, len(findings))
		for _, f := range findings {
			seen = append(seen, f.Domain)
		}
		findingsMu.Unlock()

		enum := recursive.New(r.passiveAgent, r.session)
		newHosts := enum.Enumerate(ctx, seen, apex)

		recQueue := make(chan model.Candidate, 256)
		var recWg sync.WaitGroup
		for i := 0; i < r.options.Threads; i++ {
			recWg.Add(1)
			go func() {
				defer recWg.Done()
				for candidate := range recQueue {
					r.processCandidateSafely(ctx, candidate, baseline, fingerprinter, httpSem, stats, &findingsMu, &findings)
				}
			}()
		}
		for _, host := range newHosts {
			host = security.SanitizeDomain(host)
			processedMu.Lock()
			_, dup := processed[host]
			if !dup {
				processed[host] = struct{}{}
			}
			processedMu.Unlock()
			if dup || host == "" || !security.IsValidDomain(host) {
				continue
			}
			recQueue <- model.Candidate{Host: host, Source: "recursive", Depth: 1}
		}
		close(recQueue)
		recWg.Wait()
	}

	findingsMu.Lock()
	sortByScoreDesc(findings)
	result := findings
	findingsMu.Unlock()

	LogResults(apex, len(result), time.Since(stats.Started))
	return result, stats, nil
}

func (r *Runner) bruteGenerator() (*bruteforce.Generator, error) {
	if r.options.Wordlist == "" {
		return bruteforce.NewGenerator(), nil
	}
	return bruteforce.NewGeneratorFromFile(r.options.WordlistDir, r.options.Wordlist)
}

// processCandidateSafely runs processCandidate behind a recover so a panic
// in one candidate's resolve/probe/score chain never crosses the worker
// boundary: it is counted as an error and the worker moves on to the next
// candidate. processCandidate's own deferred Processed++ still fires during
// unwinding, so the candidate is marked done either way.
func (r *Runner) processCandidateSafely(
	ctx context.Context,
	candidate model.Candidate,
	baseline *model.WildcardBaseline,
	fingerprinter *analysis.Fingerprinter,
	httpSem chan struct{},
	stats *model.RunStats,
	findingsMu *sync.Mutex,
	findings *[]*model.Finding,
) {
	defer func() {
		if rec := recover(); rec != nil {
			findingsMu.Lock()
			stats.Errors++
			findingsMu.Unlock()
			gologger.Warning().Msgf("recovered from worker panic on %s: %v", candidate.Host, rec)
		}
	}()
	r.processCandidate(ctx, candidate, baseline, fingerprinter, httpSem, stats, findingsMu, findings)
}

// processCandidate drives one candidate through resolve, the private-IP and
// wildcard filters, probing, dedup, takeover detection and risk scoring, in
// that fixed order. A private IP is a hard drop: it never reaches probing
// or scoring.
func (r *Runner) processCandidate(
	ctx context.Context,
	candidate model.Candidate,
	baseline *model.WildcardBaseline,
	fingerprinter *analysis.Fingerprinter,
	httpSem chan struct{},
	stats *model.RunStats,
	findingsMu *sync.Mutex,
	findings *[]*model.Finding,
) {
	defer func() {
		findingsMu.Lock()
		stats.Processed++
		findingsMu.Unlock()
	}()

	res, err := r.resolver.Resolve(candidate.Host)
	if err != nil || res.Status != resolve.Live {
		findingsMu.Lock()
		stats.Errors++
		findingsMu.Unlock()
		return
	}

	if analysis.IsPrivateIP(res.IP) {
		findingsMu.Lock()
		stats.PrivateDrops++
		findingsMu.Unlock()
		return
	}

	if r.options.RemoveWildcard && baseline.IsWildcard && analysis.IsWildcardIP(res.IP, baseline.IPs) {
		findingsMu.Lock()
		stats.WildcardDrops++
		findingsMu.Unlock()
		return
	}

	httpSem <- struct{}{}
	fp, waf, location, body, ok := r.prober.ProbeDetailed(ctx, candidate.Host)
	<-httpSem
	if !ok {
		findingsMu.Lock()
		stats.Live++
		findingsMu.Unlock()
		return
	}

	if r.options.RemoveWildcard && baseline.IsWildcard {
		sigs := make([]analysis.Signature, 0, len(baseline.Signatures))
		for _, s := range baseline.Signatures {
			sigs = append(sigs, analysis.Signature{Status: s.Status, Title: s.Title, ContentLength: s.ContentLength, Structure: s.Structure})
		}
		if analysis.MatchesWildcardSignature(fp.Status, fp.Title, fp.ContentLength, fp.Structure, sigs) {
			findingsMu.Lock()
			stats.WildcardDrops++
			findingsMu.Unlock()
			return
		}
	}

	hash := analysis.Hash(fp.Status, fp.Title, fp.ContentLength, body)
	if fingerprinter.IsDuplicate(hash) {
		findingsMu.Lock()
		stats.Duplicates++
		findingsMu.Unlock()
		return
	}

	takeoverService, isTakeover := analysis.DetectTakeover(res.CNAME, body)

	score, reasons := analysis.Score(candidate.Host, fp.Status, fp.Title, false, takeoverService)

	provider := res.Provider
	if waf != "" {
		if provider != "" && provider != "-" {
			provider = waf + " / " + provider
		} else {
			provider = waf
		}
	}

	finding := &model.Finding{
		Domain:          candidate.Host,
		IP:              res.IP,
		Status:          string(res.Status),
		RType:           res.RType,
		CNAME:           res.CNAME,
		Provider:        provider,
		HTTPStatus:      fp.Status,
		WAF:             waf,
		Title:           fp.Title,
		ContentLength:   fp.ContentLength,
		Location:        location,
		Score:           score,
		RiskReasons:     reasons,
		IsTakeover:      isTakeover,
		TakeoverService: takeoverService,
	}

	findingsMu.Lock()
	stats.Live++
	*findings = append(*findings, finding)
	findingsMu.Unlock()

	if !r.options.Silent {
		LogDiscovery("%s [%d] %s", finding.Domain, finding.HTTPStatus, finding.Title)
	}
}

func sortByScoreDesc(findings []*model.Finding) {
	sort.Slice(findings, func(i, j int) bool {
		return findings[i].Score > findings[j].Score
	})
}
