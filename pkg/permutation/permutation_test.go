package permutation

import "testing"

func TestGenerateIgnoresUninteresting(t *testing.T) {
	g := NewGenerator()
	out := g.Generate([]string{"random-node-a1b2c3.example.com"}, "example.com")
	if len(out) != 0 {
		t.Errorf("expected no candidates for a non high-value subdomain, got %d", len(out))
	}
}

func TestGenerateMutatesHighValue(t *testing.T) {
	g := NewGenerator()
	out := g.Generate([]string{"api.example.com"}, "example.com")
	if len(out) != len(words)*2+8 {
		t.Fatalf("got %d candidates, want %d", len(out), len(words)*2+8)
	}
	found := false
	for _, c := range out {
		if c == "api-dev.example.com" {
			found = true
		}
	}
	if !found {
		t.Error("expected api-dev.example.com among generated candidates")
	}
}
