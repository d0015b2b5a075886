// Package security gates every untrusted string (wordlist paths, discovered
// hostnames, subprocess arguments) before it reaches the rest of the
// pipeline.
package security

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	MaxDomainLength = 253
	MaxLabelLength  = 63
	MaxPathLength   = 4096
)

var (
	domainPattern    = regexp.MustCompile(`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)
	subdomainPattern = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?$`)
)

var suspiciousPathPatterns = []string{"..", "~", "$", "`", "|", ";", "&", "\n", "\r"}

// IsValidDomain reports whether domain is a syntactically valid DNS name:
// dot-separated labels of at most 63 characters, a whole name of at most
// 253 characters, and a final label that looks like a TLD.
func IsValidDomain(domain string) bool {
	if domain == "" || len(domain) > MaxDomainLength {
		return false
	}
	if !domainPattern.MatchString(domain) {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if len(label) > MaxLabelLength {
			return false
		}
	}
	return true
}

// IsValidSubdomainLabel reports whether label is a valid single DNS label.
func IsValidSubdomainLabel(label string) bool {
	return label != "" && len(label) <= MaxLabelLength && subdomainPattern.MatchString(label)
}

// SanitizeDomain strips scheme, path, query and fragment from a raw input
// string and lowercases the remainder, so callers can feed it either a bare
// hostname or a full URL.
func SanitizeDomain(raw string) string {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, "://"); idx != -1 {
		s = s[idx+3:]
	}
	for _, sep := range []string{"/", "?", "#"} {
		if idx := strings.Index(s, sep); idx != -1 {
			s = s[:idx]
		}
	}
	s = strings.TrimSuffix(s, ".")
	return strings.ToLower(s)
}

// IsSafePath reports whether path, once resolved relative to base, stays
// inside base and is free of shell metacharacters and traversal sequences.
func IsSafePath(base, path string) bool {
	if path == "" || len(path) > MaxPathLength {
		return false
	}
	for _, pat := range suspiciousPathPatterns {
		if strings.Contains(path, pat) {
			return false
		}
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(filepath.Join(base, path))
	if err != nil {
		return false
	}
	return strings.HasPrefix(absPath, absBase)
}

// ValidateTargets sanitizes and filters a raw list of targets, dropping
// anything that does not survive SanitizeDomain + IsValidDomain.
func ValidateTargets(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		d := SanitizeDomain(r)
		if !IsValidDomain(d) {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// IsSafeResolverIP rejects NS/resolver IP strings that carry shell
// metacharacters, guarding the AXFR subprocess invocation.
func IsSafeResolverIP(ip string) bool {
	if ip == "" {
		return false
	}
	if strings.ContainsAny(ip, ";|&`$\n\r") || strings.Contains(ip, "..") {
		return false
	}
	return true
}

// IsValidURL is used by the JS scraper and passive sources to guard against
// feeding non-http(s) schemes into the HTTP client.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
