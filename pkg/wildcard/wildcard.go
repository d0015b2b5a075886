// Package wildcard runs Phase 0: it resolves a handful of random labels
// under the apex before any real enumeration starts, so the rest of the
// pipeline knows whether the apex answers for hostnames nobody registered.
package wildcard

import (
	"context"

	"github.com/rs/xid"

	"github.com/duskline/subrecon/pkg/model"
	"github.com/duskline/subrecon/pkg/probe"
	"github.com/duskline/subrecon/pkg/resolve"
)

const canaryCount = 3

// Detect resolves and probes canaryCount random labels under apex and
// reports the wildcard baseline future candidates are checked against. A
// baseline with IsWildcard false means the apex has no DNS wildcard and the
// rest of the pipeline can skip the wildcard-signature filter's body
// comparison and trust a LIVE resolution at face value.
func Detect(ctx context.Context, apex string, resolver *resolve.Resolver, prober *probe.Prober) *model.WildcardBaseline {
	baseline := &model.WildcardBaseline{IPs: make(map[string]struct{})}

	for i := 0; i < canaryCount; i++ {
		label := randomLabel()
		result, err := resolver.CheckWildcard(apex, label)
		if err != nil || result.Status != resolve.Live {
			continue
		}

		baseline.IsWildcard = true
		baseline.IPs[result.IP] = struct{}{}

		if fp, _, _, _, ok := prober.ProbeDetailed(ctx, label+"."+apex); ok {
			baseline.Signatures = append(baseline.Signatures, *fp)
		}
	}

	return baseline
}

// randomLabel generates a short, unguessable lowercase alphanumeric label
// in the same shape as the reference tool's wildcard canary names.
func randomLabel() string {
	id := xid.New().String() // 20 lowercase base32 characters
	// The leading characters encode the timestamp and machine id, which
	// repeat within a second; the trailing ten carry the per-call counter.
	return "wildcard-" + id[10:]
}
