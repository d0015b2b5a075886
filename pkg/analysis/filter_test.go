package analysis

import "testing"

func TestIsWildcardIP(t *testing.T) {
	ips := map[string]struct{}{"1.2.3.4": {}, "5.6.7.8": {}}
	if !IsWildcardIP("1.2.3.4", ips) {
		t.Error("expected 1.2.3.4 to be a wildcard IP")
	}
	if IsWildcardIP("9.9.9.9", ips) {
		t.Error("expected 9.9.9.9 not to be a wildcard IP")
	}
}

func TestMatchesWildcardSignatureRequiresSameStatus(t *testing.T) {
	baselines := []Signature{
		{Status: 200, Title: "Welcome", ContentLength: 1000, Structure: map[string]int{"div": 5}},
	}
	// same title, but the candidate answered 403: must not match a 200 baseline.
	if MatchesWildcardSignature(403, "Welcome", 1000, map[string]int{"div": 5}, baselines) {
		t.Error("expected no match against a baseline captured at a different HTTP status")
	}
	if !MatchesWildcardSignature(200, "Welcome", 1000, map[string]int{"div": 5}, baselines) {
		t.Error("expected a match against a baseline captured at the same HTTP status")
	}
}

func TestMatchesWildcardSignatureTitleMatch(t *testing.T) {
	baselines := []Signature{{Status: 200, Title: "Parked Domain"}}
	if !MatchesWildcardSignature(200, "Parked Domain", 99999, nil, baselines) {
		t.Error("expected identical titles at the same status to match")
	}
}

func TestMatchesWildcardSignatureLengthDelta(t *testing.T) {
	baseStructure := map[string]int{"div": 50, "span": 50}
	otherStructure := map[string]int{"p": 50, "a": 50}
	baselines := []Signature{{Status: 200, ContentLength: 1000, Structure: baseStructure}}
	if !MatchesWildcardSignature(200, "", 1020, otherStructure, baselines) {
		t.Error("expected a content-length delta under 50 bytes to match")
	}
	if MatchesWildcardSignature(200, "", 1200, otherStructure, baselines) {
		t.Error("expected a content-length delta of 200 bytes with an unrelated structure not to match")
	}
}

func TestMatchesWildcardSignatureStructureDiff(t *testing.T) {
	baseStructure := make(map[string]int, 11)
	closeStructure := make(map[string]int, 11)
	for i := 0; i < 11; i++ {
		tag := string(rune('a' + i))
		baseStructure[tag] = 5
		closeStructure[tag] = 5
	}
	closeStructure["a"] = 6 // 1 of 11 keys differs: 0.09 < 0.10

	baselines := []Signature{{Status: 200, ContentLength: 1000000, Structure: baseStructure}}
	if !MatchesWildcardSignature(200, "", 1, closeStructure, baselines) {
		t.Error("expected a tag-histogram diff under 10% to match")
	}
	if MatchesWildcardSignature(200, "", 1, map[string]int{"p": 50, "a": 50}, baselines) {
		t.Error("expected a completely different tag histogram not to match")
	}
}
