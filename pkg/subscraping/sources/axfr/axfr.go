// Package axfr makes an opportunistic DNS zone-transfer attempt against
// each of the apex's authoritative nameservers. Almost every nameserver on
// the public internet refuses this, so an empty result is the expected
// common case; it is still worth the single request when it works.
package axfr

import (
	"bufio"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/duskline/subrecon/pkg/security"
	"github.com/duskline/subrecon/pkg/subscraping"
)

type Source struct {
	Resolvers []string

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

		if !security.IsValidDomain(domain) {
			return
		}

		nameservers, err := s.lookupNS(domain)
		if err != nil || len(nameservers) == 0 {
			return
		}

		for _, ns := range nameservers {
			nsIP, err := s.lookupA(ns)
			if err != nil || nsIP == "" || !security.IsSafeResolverIP(nsIP) {
				continue
			}
			for _, sub := range s.attemptTransfer(ctx, domain, nsIP) {
				if !security.IsValidDomain(sub) {
					continue
				}
				s.results++
				results <- subscraping.Result{Source: s.Name(), Type: subscraping.Subdomain, Value: sub}
			}
		}
	}()

	return results
}

func (s *Source) lookupNS(domain string) ([]string, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), dns.TypeNS)
	resolver := s.resolverAddr()
	in, err := dns.Exchange(m, resolver)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, rr := range in.Answer {
		if ns, ok := rr.(*dns.NS); ok {
			out = append(out, strings.TrimSuffix(ns.Ns, "."))
		}
	}
	return out, nil
}

func (s *Source) lookupA(host string) (string, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), dns.TypeA)
	in, err := dns.Exchange(m, s.resolverAddr())
	if err != nil {
		return "", err
	}
	for _, rr := range in.Answer {
		if a, ok := rr.(*dns.A); ok {
			return a.A.String(), nil
		}
	}
	return "", nil
}

func (s *Source) resolverAddr() string {
	if len(s.Resolvers) > 0 {
		return s.Resolvers[0] + ":53"
	}
	return "1.1.1.1:53"
}

// axfrTimeout bounds the nslookup subprocess independently of the caller's
// context, since a hung or stalling nameserver must not block the run.
const axfrTimeout = 10 * time.Second

// attemptTransfer shells out to nslookup -type=AXFR, matching the original
// tool's invocation; every argument has already been validated above.
func (s *Source) attemptTransfer(ctx context.Context, domain, nsIP string) []string {
	ctx, cancel := context.WithTimeout(ctx, axfrTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "nslookup", "-type=AXFR", domain, nsIP)
	out, err := cmd.Output()
	if err != nil {
		return nil
	}

	var subs []string
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if !strings.Contains(line, domain) {
			continue
		}
		fields := strings.Fields(line)
		for _, f := range fields {
			f = strings.TrimSuffix(f, ".")
			if strings.HasSuffix(f, domain) {
				subs = append(subs, f)
			}
		}
	}
	return subs
}

func (s *Source) Name() string              { return "axfr" }
func (s *Source) IsDefault() bool           { return false }
func (s *Source) HasRecursiveSupport() bool { return false }
func (s *Source) NeedsKey() bool            { return false }
func (s *Source) AddApiKeys(keys []string)  {}
func (s *Source) Statistics() subscraping.Statistics {
	return subscraping.Statistics{Errors: s.errors, Results: s.results, TimeTaken: s.timeTaken}
}
