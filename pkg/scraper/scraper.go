// Package scraper fetches a domain's homepage and any JavaScript it
// references (first- or third-party), and scans all of it for hostnames under the
// domain.
package scraper

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/duskline/subrecon/pkg/security"
	"github.com/duskline/subrecon/pkg/subscraping"
)

const (
	maxScriptURLs = 20
	maxFetchBytes = 1 << 20
)

var scriptSrcRegexp = regexp.MustCompile(`(?i)<script[^>]+src=["']([^"']+)["']`)

// Scraper fetches a domain's homepage and linked scripts and extracts
// in-domain hostnames from them.
type Scraper struct {
	session *subscraping.Session
}

// New builds a Scraper using session for all HTTP fetches.
func New(session *subscraping.Session) *Scraper {
	return &Scraper{session: session}
}

// Run fetches the homepage (HTTP, falling back to HTTPS if HTTP failed or
// returned an empty body), scans it and up to maxScriptURLs referenced scripts for the
// domain's hostname pattern, and returns every distinct in-domain hostname
// found, excluding the apex itself.
func (s *Scraper) Run(ctx context.Context, domain string) []string {
	hostnameRe := regexp.MustCompile(`(?i)(?:[a-zA-Z0-9][a-zA-Z0-9-]{0,61}[a-zA-Z0-9]\.)+` + regexp.QuoteMeta(domain))

	base := "http://" + domain
	body, err := s.fetch(ctx, base)
	if err != nil || body == "" {
		base = "https://" + domain
		body, err = s.fetch(ctx, base)
		if err != nil {
			return nil
		}
	}

	found := make(map[string]struct{})
	for _, m := range hostnameRe.FindAllString(body, -1) {
		recordMatch(found, m, domain)
	}

	for _, scriptURL := range s.scriptURLs(body, base) {
		scriptBody, err := s.fetch(ctx, scriptURL)
		if err != nil {
			continue
		}
		for _, m := range hostnameRe.FindAllString(scriptBody, -1) {
			recordMatch(found, m, domain)
		}
	}

	out := make([]string, 0, len(found))
	for h := range found {
		out = append(out, h)
	}
	return out
}

func recordMatch(found map[string]struct{}, match, domain string) {
	host := strings.ToLower(match)
	if host == domain || !strings.HasSuffix(host, "."+domain) {
		return
	}
	found[host] = struct{}{}
}

func (s *Scraper) fetch(ctx context.Context, url string) (string, error) {
	if !security.IsValidURL(url) {
		return "", fmt.Errorf("unsafe url: %s", url)
	}
	resp, err := s.session.SimpleGet(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (s *Scraper) scriptURLs(body, base string) []string {
	matches := scriptSrcRegexp.FindAllStringSubmatch(body, -1)
	var urls []string
	for _, m := range matches {
		if len(urls) >= maxScriptURLs {
			break
		}
		urls = append(urls, normalizeScriptURL(m[1], base))
	}
	return urls
}

// normalizeScriptURL resolves a <script src> value to an absolute URL:
// protocol-relative (`//host/...`) becomes https, absolute http(s) URLs
// pass through, root-relative (`/path`) is joined to base's origin, and
// everything else is joined to base directly.
func normalizeScriptURL(src, base string) string {
	switch {
	case strings.HasPrefix(src, "//"):
		return "https:" + src
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return src
	case strings.HasPrefix(src, "/"):
		return origin(base) + src
	default:
		return strings.TrimSuffix(base, "/") + "/" + src
	}
}

func origin(base string) string {
	idx := strings.Index(base, "://")
	if idx == -1 {
		return base
	}
	rest := base[idx+3:]
	if slash := strings.Index(rest, "/"); slash != -1 {
		rest = rest[:slash]
	}
	return base[:idx+3] + rest
}
