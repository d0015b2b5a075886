// Package permutation mutates already-discovered subdomains into new
// candidates worth probing: prefix/word combinations around whatever
// already looked interesting.
package permutation

import (
	"fmt"
	"strings"
)

// words is the fixed 26-word mutation lexicon.
var words = []string{
	"dev", "staging", "test", "prod", "beta", "demo", "admin", "v1", "v2", "api",
	"vpn", "mail", "web", "internal", "corp", "private", "public", "cloud", "backup", "db",
	"stage", "qa", "uat", "sandbox", "secure", "login",
}

// highValueKeywords selects which already-discovered subdomains are worth
// mutating further.
var highValueKeywords = []string{
	"api", "auth", "admin", "vpn", "login", "sso", "dev", "stage", "test", "prod",
	"beta", "internal", "secure", "portal", "dashboard", "jenkins", "jira", "gitlab", "git", "db", "sql", "backup",
}

const maxInteresting = 100

// Generator mutates a list of subdomains into permutation candidates.
type Generator struct{}

// NewGenerator builds a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate filters subdomains down to the first maxInteresting hosts whose
// full hostname contains a high-value keyword, then for each one emits
// `{prefix}-{word}.{domain}`, `{word}-{prefix}.{domain}` for every lexicon
// word, plus `{prefix}{1..4}.{domain}` and `{prefix}-{1..4}.{domain}`.
func (g *Generator) Generate(subdomains []string, domain string) []string {
	interesting := filterHighValue(subdomains)

	var out []string
	for _, sub := range interesting {
		prefix := strings.TrimSuffix(sub, "."+domain)
		if prefix == sub {
			continue
		}

		for _, w := range words {
			out = append(out, fmt.Sprintf("%s-%s.%s", prefix, w, domain))
			out = append(out, fmt.Sprintf("%s-%s.%s", w, prefix, domain))
		}
		for i := 1; i <= 4; i++ {
			out = append(out, fmt.Sprintf("%s%d.%s", prefix, i, domain))
			out = append(out, fmt.Sprintf("%s-%d.%s", prefix, i, domain))
		}
	}
	return out
}

func filterHighValue(subdomains []string) []string {
	var interesting []string
	for _, sub := range subdomains {
		lower := strings.ToLower(sub)
		for _, kw := range highValueKeywords {
			if strings.Contains(lower, kw) {
				interesting = append(interesting, sub)
				break
			}
		}
		if len(interesting) >= maxInteresting {
			break
		}
	}
	return interesting
}
