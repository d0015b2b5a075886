package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"
	logutil "github.com/projectdiscovery/utils/log"
	updateutils "github.com/projectdiscovery/utils/update"

	"github.com/duskline/subrecon/pkg/extscan"
	"github.com/duskline/subrecon/pkg/model"
	"github.com/duskline/subrecon/pkg/output"
	"github.com/duskline/subrecon/pkg/passive"
	"github.com/duskline/subrecon/pkg/runner"
)

func main() {
	logutil.DisableDefaultLogger()
	options := parseOptions()

	if !options.Silent {
		runner.ShowBanner()
	}
	if !options.DisableUpdateCheck {
		if latest, err := updateutils.GetToolVersionCallback(runner.ToolName, runner.Version)(); err != nil {
			if options.Verbose {
				gologger.Error().Msgf("subrecon version check failed: %s", err)
			}
		} else {
			gologger.Info().Msgf("Current subrecon version %s %s", runner.Version, updateutils.GetVersionDescription(runner.Version, latest))
		}
	}

	if options.ListSources {
		for name := range passive.AllSources {
			gologger.Print().Msgf("%s", name)
		}
		return
	}

	if err := options.Validate(); err != nil {
		gologger.Fatal().Msgf("%s", err)
	}

	if !fileutil.FileExists(options.ProviderConfig) {
		if err := runner.CreateProviderConfigYAML(options.ProviderConfig); err != nil {
			gologger.Warning().Msgf("could not create provider config: %s", err)
		}
	}
	if err := runner.UnmarshalFrom(options.ProviderConfig); err != nil && options.Verbose {
		gologger.Verbose().Msgf("provider config: %s", err)
	}

	domains, err := collectDomains(options)
	if err != nil {
		gologger.Fatal().Msgf("%s", err)
	}

	run, err := runner.New(options)
	if err != nil {
		gologger.Fatal().Msgf("building runner: %s", err)
	}
	defer run.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := os.Stdout
	if options.OutputFile != "" {
		f, err := os.Create(options.OutputFile)
		if err != nil {
			gologger.Fatal().Msgf("creating output file: %s", err)
		}
		defer f.Close()
		out = f
	}

	for _, domain := range domains {
		findings, stats, err := run.RunDomain(ctx, domain)
		if err != nil {
			gologger.Error().Msgf("%s: %s", domain, err)
			continue
		}

		matched := make([]*model.Finding, 0, len(findings))
		for _, f := range findings {
			if options.MatchesFilters(f.Domain) {
				matched = append(matched, f)
			}
		}

		if err := output.Write(out, matched, options.OutputFormat); err != nil {
			gologger.Error().Msgf("writing results for %s: %s", domain, err)
		}
		if options.Statistics {
			gologger.Info().Msgf("%s: processed=%d live=%d duplicates=%d private=%d wildcard=%d errors=%d",
				domain, stats.Processed, stats.Live, stats.Duplicates, stats.PrivateDrops, stats.WildcardDrops, stats.Errors)
		}

		if options.Nuclei {
			runNuclei(ctx, options, domain, matched)
		}
	}
}

func runNuclei(ctx context.Context, options *runner.Options, domain string, findings []*model.Finding) {
	scanner := &extscan.NucleiScanner{BinaryPath: options.NucleiPath, TemplatesPath: options.NucleiTemplate}
	if !scanner.IsAvailable() {
		gologger.Warning().Msgf("nuclei binary %q not found, skipping scan for %s", options.NucleiPath, domain)
		return
	}

	targets := make([]string, 0, len(findings))
	for _, f := range findings {
		if f.HTTPStatus != 0 {
			targets = append(targets, f.Domain)
		}
	}
	if len(targets) == 0 {
		return
	}

	targetsFile, err := os.CreateTemp("", "subrecon-nuclei-targets-*.txt")
	if err != nil {
		gologger.Warning().Msgf("nuclei targets file: %s", err)
		return
	}
	targetsFile.Close()
	defer os.Remove(targetsFile.Name())

	argv, err := scanner.BuildCommand(targets, targetsFile.Name(), "")
	if err != nil {
		gologger.Warning().Msgf("building nuclei command for %s: %s", domain, err)
		return
	}

	rawOutput, err := scanner.Run(ctx, argv)
	if err != nil {
		gologger.Warning().Msgf("nuclei scan for %s: %s", domain, err)
		return
	}
	os.Stdout.Write(rawOutput)
}

func collectDomains(options *runner.Options) ([]string, error) {
	domains := append([]string{}, []string(options.Domain)...)

	if options.DomainsFile != "" {
		f, err := os.Open(options.DomainsFile)
		if err != nil {
			return nil, fmt.Errorf("opening domains file: %w", err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Text()
			if line != "" {
				domains = append(domains, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(domains) == 0 {
		return nil, fmt.Errorf("no domains to enumerate")
	}
	return domains, nil
}

func parseOptions() *runner.Options {
	options := &runner.Options{}

	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("subrecon - subdomain reconnaissance and enumeration engine")

	flagSet.CreateGroup("input", "Target",
		flagSet.StringSliceVarP(&options.Domain, "domain", "d", nil, "target domains to enumerate", goflags.NormalizedStringSliceOptions),
		flagSet.StringVarP(&options.DomainsFile, "list", "dL", "", "file containing a list of target domains"),
	)

	flagSet.CreateGroup("source", "Sources",
		flagSet.StringSliceVarP(&options.Sources, "sources", "s", nil, "specific passive sources to use", goflags.NormalizedStringSliceOptions),
		flagSet.StringSliceVarP(&options.ExcludeSources, "exclude-sources", "es", nil, "sources to exclude", goflags.NormalizedStringSliceOptions),
		flagSet.BoolVar(&options.UseAllSources, "all", false, "use every known source"),
	)

	flagSet.CreateGroup("filter", "Filtering",
		flagSet.StringSliceVarP(&options.Match, "match", "m", nil, "subdomain patterns to match", goflags.FileNormalizedStringSliceOptions),
		flagSet.StringSliceVarP(&options.Filter, "filter", "f", nil, "subdomain patterns to filter out", goflags.FileNormalizedStringSliceOptions),
	)

	flagSet.CreateGroup("discovery", "Active discovery",
		flagSet.BoolVarP(&options.BruteForce, "brute", "b", false, "brute force subdomains from a wordlist"),
		flagSet.StringVarP(&options.Wordlist, "wordlist", "w", "", "wordlist file for brute force"),
		flagSet.StringVar(&options.WordlistDir, "wordlist-dir", "", "base directory the wordlist path is resolved against"),
		flagSet.BoolVarP(&options.Permutations, "permutations", "p", false, "generate and probe permutations of discovered subdomains"),
		flagSet.BoolVar(&options.Recursive, "recursive", false, "re-run passive sources against qualifying discovered subdomains"),
		flagSet.IntVar(&options.MaxDepth, "max-depth", 2, "recursion depth; not read, the recursive phase always stops at depth 2"),
		flagSet.BoolVarP(&options.JSScraper, "js-scraper", "js", false, "scrape the homepage and its scripts for hostnames"),
		flagSet.BoolVar(&options.AXFR, "axfr", false, "attempt a DNS zone transfer"),
	)

	flagSet.CreateGroup("resolution", "Resolution",
		flagSet.StringSliceVar(&options.Resolvers, "r", nil, "custom DNS resolvers", goflags.NormalizedStringSliceOptions),
		flagSet.BoolVarP(&options.RemoveWildcard, "active", "nW", false, "verify and show only active subdomains, filtering wildcard DNS"),
		flagSet.IntVarP(&options.Threads, "threads", "t", 10, "concurrent resolution and probing threads"),
		flagSet.IntVar(&options.Timeout, "timeout", 10, "per-request timeout in seconds"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&options.OutputFile, "output", "o", "", "file to write results to"),
		flagSet.StringVarP(&options.OutputFormat, "format", "oF", "txt", "output format: txt, json or csv"),
		flagSet.BoolVar(&options.Silent, "silent", false, "suppress per-finding discovery logs"),
		flagSet.BoolVar(&options.Statistics, "stats", false, "print per-domain run statistics"),
	)

	flagSet.CreateGroup("scanning", "External scanning",
		flagSet.BoolVar(&options.Nuclei, "nuclei", false, "scan live findings with nuclei"),
		flagSet.StringVar(&options.NucleiPath, "nuclei-path", "nuclei", "path to the nuclei binary"),
		flagSet.StringVar(&options.NucleiTemplate, "nuclei-templates", "", "nuclei templates directory"),
	)

	flagSet.CreateGroup("cache", "Caching",
		flagSet.BoolVar(&options.EnableCache, "cache", false, "cache passive source results between runs"),
		flagSet.StringVar(&options.CacheDir, "cache-dir", "", "cache directory"),
	)

	flagSet.CreateGroup("optimization", "Resource tuning",
		flagSet.BoolVar(&options.OptimizeMemory, "optimize-memory", false, "shrink HTTP concurrency to reduce memory use"),
		flagSet.BoolVar(&options.OptimizeSpeed, "optimize-speed", false, "raise HTTP concurrency toward its ceiling"),
		flagSet.BoolVar(&options.ListSources, "list-sources", false, "list every known passive source and exit"),
	)

	flagSet.CreateGroup("configuration", "Configuration",
		flagSet.StringVarP(&options.ProviderConfig, "provider-config", "pc", runner.DefaultProviderConfigLocation, "API key provider config file"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "verbose output"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable colorized output"),
		flagSet.CallbackVarP(runner.GetUpdateCallback(), "update", "up", "update subrecon to the latest version"),
		flagSet.BoolVarP(&options.DisableUpdateCheck, "disable-update-check", "duc", false, "disable the startup update check"),
	)

	if err := flagSet.Parse(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return options
}
