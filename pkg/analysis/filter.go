// Package analysis holds the pure filters and scorers applied to every
// resolved, probed candidate in a fixed order: private-IP, wildcard-IP,
// wildcard-signature, content dedup, takeover, risk score.
package analysis

import "net"

var privateNetworks = mustParseCIDRs(
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"127.0.0.0/8",
	"169.254.0.0/16",
)

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, n, err := net.ParseCIDR(c)
		if err != nil {
			panic(err)
		}
		nets = append(nets, n)
	}
	return nets
}

// IsPrivateIP reports whether ip falls in an RFC1918/loopback/link-local
// range and therefore resolves to infrastructure outside the public attack
// surface.
func IsPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	for _, n := range privateNetworks {
		if n.Contains(parsed) {
			return true
		}
	}
	return false
}

// IsWildcardIP reports whether ip matches one of the apex's wildcard
// baseline IPs.
func IsWildcardIP(ip string, wildcardIPs map[string]struct{}) bool {
	_, ok := wildcardIPs[ip]
	return ok
}

// lengthDelta is the absolute difference in content length.
func lengthDelta(a, b int) int {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

// MatchesWildcardSignature reports whether a probed response looks like the
// apex's wildcard baseline answer rather than a distinct page. Only
// baselines captured at the same HTTP status are compared: either the
// titles are identical and non-empty, the content-length delta is under 50
// bytes, or the
// tag-histogram differs by less than 10%.
func MatchesWildcardSignature(httpStatus int, title string, length int, structure map[string]int, baselines []Signature) bool {
	for _, b := range baselines {
		if httpStatus != b.Status {
			continue
		}
		if title != "" && title == b.Title {
			return true
		}
		if lengthDelta(length, b.ContentLength) < 50 {
			return true
		}
		if structureDiff(structure, b.Structure) < 0.10 {
			return true
		}
	}
	return false
}

// Signature is the subset of a probed response the wildcard filter compares
// against. A candidate is only ever compared to a baseline captured at the
// same Status.
type Signature struct {
	Status        int
	Title         string
	ContentLength int
	Structure     map[string]int
}

func structureDiff(a, b map[string]int) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}
	var diff int
	for k := range keys {
		if a[k] != b[k] {
			diff++
		}
	}
	return float64(diff) / float64(len(keys))
}
