// Package resolve turns a candidate hostname into an IP, a CNAME chain and
// a best-effort hosting provider tag.
package resolve

import (
	"fmt"
	"net"
	"strings"

	"github.com/projectdiscovery/dnsx/libs/dnsx"
	"github.com/miekg/dns"
)

// DefaultResolvers is used whenever a run doesn't supply its own resolver
// list.
var DefaultResolvers = []string{"8.8.8.8:53", "1.1.1.1:53", "208.67.222.222:53"}

// Status is the outcome of resolving a candidate.
type Status string

const (
	Live Status = "LIVE"
	Dead Status = "DEAD"
)

// Result is what resolving a single hostname produces.
type Result struct {
	Host     string
	Status   Status
	IP       string
	RType    string
	CNAME    string
	Provider string
}

// cdnSignatures maps a CNAME substring to the provider tag it implies,
// checked in order so the more specific CDN/cloud names win ties.
var cdnSignatures = []struct {
	substr   string
	provider string
}{
	{"cloudfront", "CDN: AWS CloudFront"},
	{"cloudflare", "CDN: Cloudflare"},
	{"akamai", "CDN: Akamai"},
	{"fastly", "CDN: Fastly"},
	{"azureedge", "CDN: Azure"},
	{"googleusercontent", "Cloud: Google"},
	{"herokuapp", "Cloud: Heroku"},
	{"vercel", "CDN: Vercel"},
	{"netlify", "CDN: Netlify"},
	{"incapsula", "CDN: Imperva"},
	{"sucuri", "CDN: Sucuri"},
	{"awsglobalaccelerator", "CDN: AWS Global Accelerator"},
}

// Resolver wraps a dnsx client configured for A and CNAME lookups.
type Resolver struct {
	client *dnsx.DNSX
}

// New builds a Resolver against the given resolver addresses.
func New(resolvers []string, maxRetries int) (*Resolver, error) {
	options := dnsx.DefaultOptions
	if len(resolvers) > 0 {
		options.BaseResolvers = resolvers
	}
	options.MaxRetries = maxRetries
	options.QuestionTypes = []uint16{dns.TypeA, dns.TypeCNAME}

	client, err := dnsx.New(options)
	if err != nil {
		return nil, fmt.Errorf("building dns client: %w", err)
	}
	return &Resolver{client: client}, nil
}

// Resolve follows the CNAME-then-A chain for host: it first asks for a
// CNAME, and if one exists resolves that target's A record for the IP
// while keeping the original CNAME value; if there is no CNAME it asks for
// an A record directly. Either path failing marks the host Dead.
func (r *Resolver) Resolve(host string) (*Result, error) {
	data, err := r.client.QueryOne(host)
	if err != nil || data == nil {
		return &Result{Host: host, Status: Dead}, nil
	}

	if len(data.CNAME) > 0 {
		cname := strings.TrimSuffix(data.CNAME[0], ".")
		ip := ""
		if len(data.A) > 0 {
			ip = data.A[0]
		} else if target, err := r.client.QueryOne(cname); err == nil && target != nil && len(target.A) > 0 {
			ip = target.A[0]
		}
		if ip == "" {
			return &Result{Host: host, Status: Dead}, nil
		}
		return &Result{
			Host:     host,
			Status:   Live,
			IP:       ip,
			RType:    "CNAME",
			CNAME:    cname,
			Provider: r.detectProvider(ip, cname),
		}, nil
	}

	if len(data.A) > 0 {
		ip := data.A[0]
		return &Result{
			Host:     host,
			Status:   Live,
			IP:       ip,
			RType:    "A",
			Provider: r.detectProvider(ip, ""),
		}, nil
	}

	return &Result{Host: host, Status: Dead}, nil
}

// detectProvider checks the CNAME against the known CDN/cloud signature
// table first, then falls back to a reverse-DNS PTR lookup, and finally to
// the last two labels of the PTR name when no CDN signature matched.
func (r *Resolver) detectProvider(ip, cname string) string {
	lowerCNAME := strings.ToLower(cname)
	for _, sig := range cdnSignatures {
		if strings.Contains(lowerCNAME, sig.substr) {
			return sig.provider
		}
	}

	names, err := net.LookupAddr(ip)
	if err != nil || len(names) == 0 {
		return "-"
	}
	ptr := strings.ToLower(strings.TrimSuffix(names[0], "."))

	for _, sig := range cdnSignatures {
		if strings.Contains(ptr, sig.substr) {
			return sig.provider
		}
	}

	labels := strings.Split(ptr, ".")
	if len(labels) >= 2 {
		return fmt.Sprintf("Host: %s.%s", labels[len(labels)-2], labels[len(labels)-1])
	}
	return "-"
}

// CheckWildcard resolves a random label under apex and reports whether it
// came back Live, i.e. whether apex answers for hostnames that were never
// registered.
func (r *Resolver) CheckWildcard(apex, randomLabel string) (*Result, error) {
	return r.Resolve(randomLabel + "." + apex)
}
