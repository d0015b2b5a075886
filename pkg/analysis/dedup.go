package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sync"
)

// Fingerprinter deduplicates findings by content signature: status code,
// title, a content length rounded to the nearest 100 bytes (so trivially
// dynamic pages like timestamps still collapse), and the first 100 bytes of
// body.
type Fingerprinter struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewFingerprinter builds an empty Fingerprinter.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{seen: make(map[string]struct{})}
}

// Hash computes the content signature for a probed response.
func Hash(httpStatus int, title string, contentLength int, bodySnippet string) string {
	if len(bodySnippet) > 100 {
		bodySnippet = bodySnippet[:100]
	}
	rounded := int(math.Round(float64(contentLength)/100)) * 100
	sig := fmt.Sprintf("%d|%s|%d|%s", httpStatus, title, rounded, bodySnippet)
	sum := sha256.Sum256([]byte(sig))
	return hex.EncodeToString(sum[:])
}

// IsDuplicate reports whether hash has been seen before, recording it as
// seen either way.
func (f *Fingerprinter) IsDuplicate(hash string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.seen[hash]; ok {
		return true
	}
	f.seen[hash] = struct{}{}
	return false
}
