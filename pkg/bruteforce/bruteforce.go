// Package bruteforce generates `{word}.{domain}` candidates from a
// wordlist. It does not resolve anything itself — DNS resolution and
// wildcard filtering are the pipeline runner's job, applied uniformly to
// every candidate regardless of which generator produced it.
package bruteforce

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/duskline/subrecon/pkg/security"
)

// Generator produces brute-force candidates for a domain from a wordlist.
type Generator struct {
	wordlist []string
}

// NewGenerator builds a Generator from the built-in default wordlist.
func NewGenerator() *Generator {
	return &Generator{wordlist: defaultWordlist()}
}

// NewGeneratorFromFile builds a Generator from a wordlist file. baseDir
// bounds where path is allowed to resolve to, guarding against path
// traversal in a user-supplied --wordlist flag.
func NewGeneratorFromFile(baseDir, path string) (*Generator, error) {
	if !security.IsSafePath(baseDir, path) {
		return nil, fmt.Errorf("unsafe wordlist path: %s", path)
	}
	full := filepath.Join(baseDir, path)

	f, err := os.Open(full)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Generator{wordlist: words}, nil
}

// SetWordlist overrides the generator's wordlist directly, used when a
// caller has already loaded and merged multiple wordlist files.
func (g *Generator) SetWordlist(words []string) {
	g.wordlist = words
}

// Len reports how many words the generator will emit candidates for.
func (g *Generator) Len() int {
	return len(g.wordlist)
}

// Generate emits `{word}.{domain}` for every word in the wordlist.
func (g *Generator) Generate(domain string) []string {
	candidates := make([]string, 0, len(g.wordlist))
	for _, word := range g.wordlist {
		candidates = append(candidates, word+"."+domain)
	}
	return candidates
}
