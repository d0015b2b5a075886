package runner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/projectdiscovery/goflags"
	envutil "github.com/projectdiscovery/utils/env"
	folderutil "github.com/projectdiscovery/utils/folder"

	"github.com/duskline/subrecon/pkg/resolve"
	"github.com/duskline/subrecon/pkg/security"
)

var (
	configDir                     = folderutil.AppConfigDirOrDefault(".", "subrecon")
	defaultProviderConfigLocation = envutil.GetEnvOrDefault("SUBRECON_PROVIDER_CONFIG", filepath.Join(configDir, "provider-config.yaml"))
)

// Options configures a single enumeration run end to end. cmd/subrecon
// wires these fields directly from CLI flags; nothing in this package
// parses flags itself.
type Options struct {
	Domain       goflags.StringSlice
	DomainsFile  string
	Output       io.Writer
	OutputFile   string
	OutputFormat string // "json", "csv", or "txt"

	Silent             bool
	Verbose            bool
	NoColor            bool
	ListSources        bool
	Statistics         bool
	DisableUpdateCheck bool

	Sources        goflags.StringSlice
	ExcludeSources goflags.StringSlice
	UseAllSources  bool
	ProviderConfig string

	Resolvers    goflags.StringSlice
	ResolverList string
	Threads      int // worker pool size, 1-20
	Timeout      int // per-request timeout in seconds
	RateLimit    int

	RemoveWildcard bool // drop candidates matching the wildcard baseline

	Match  goflags.StringSlice
	Filter goflags.StringSlice

	BruteForce   bool
	Wordlist     string
	WordlistDir  string
	Permutations bool
	Recursive    bool
	MaxDepth     int
	JSScraper    bool
	AXFR         bool

	Nuclei         bool
	NucleiPath     string
	NucleiTemplate string

	EnableCache bool
	CacheDir    string
	CacheTTL    time.Duration

	OptimizeSpeed  bool
	OptimizeMemory bool

	MaxEnumerationTime time.Duration

	matchRegexes  []*regexp.Regexp
	filterRegexes []*regexp.Regexp
}

// Validate checks option combinations the flag layer can't enforce on its
// own and compiles the match/filter patterns.
func (o *Options) Validate() error {
	if len(o.Domain) == 0 && o.DomainsFile == "" {
		return fmt.Errorf("no domain specified, use -d or -dL")
	}
	if o.Threads < 1 {
		o.Threads = 1
	}
	if o.Threads > 20 {
		o.Threads = 20
	}
	if o.Timeout <= 0 {
		o.Timeout = 10
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = 2
	}
	if o.OutputFormat == "" {
		o.OutputFormat = "txt"
	}
	if o.Output == nil {
		o.Output = os.Stdout
	}
	if len(o.Resolvers) == 0 {
		o.Resolvers = resolve.DefaultResolvers
	}

	if o.BruteForce && o.Wordlist != "" {
		if !security.IsSafePath(o.WordlistDir, o.Wordlist) {
			return fmt.Errorf("unsafe wordlist path: %s", o.Wordlist)
		}
		if _, err := os.Stat(filepath.Join(o.WordlistDir, o.Wordlist)); err != nil {
			return fmt.Errorf("wordlist path: %w", err)
		}
	}

	for _, pattern := range o.Match {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid match pattern %q: %w", pattern, err)
		}
		o.matchRegexes = append(o.matchRegexes, re)
	}
	for _, pattern := range o.Filter {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
		}
		o.filterRegexes = append(o.filterRegexes, re)
	}

	return nil
}

// MatchesFilters reports whether domain survives the configured match/filter
// regex lists: it must match at least one Match pattern (if any are set)
// and must not match any Filter pattern.
func (o *Options) MatchesFilters(domain string) bool {
	if len(o.filterRegexes) > 0 {
		for _, re := range o.filterRegexes {
			if re.MatchString(domain) {
				return false
			}
		}
	}
	if len(o.matchRegexes) == 0 {
		return true
	}
	for _, re := range o.matchRegexes {
		if re.MatchString(domain) {
			return true
		}
	}
	return false
}

// HTTPSemaphoreSize is the concurrency ceiling for probe/scrape HTTP calls:
// min(50, Threads*5). OptimizeSpeed pushes it toward that ceiling;
// OptimizeMemory shrinks it instead. The ceiling itself never moves.
func (o *Options) HTTPSemaphoreSize() int {
	size := o.Threads * 5
	if o.OptimizeSpeed {
		size = 50
	}
	if size > 50 {
		size = 50
	}
	if o.OptimizeMemory && size > 10 {
		size = size / 2
	}
	return size
}
