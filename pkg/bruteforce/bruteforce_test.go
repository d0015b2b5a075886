package bruteforce

import "testing"

func TestGenerateAppendsDomain(t *testing.T) {
	g := &Generator{wordlist: []string{"www", "api"}}
	got := g.Generate("example.com")
	want := []string{"www.example.com", "api.example.com"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewGeneratorFromFileRejectsTraversal(t *testing.T) {
	if _, err := NewGeneratorFromFile("/tmp/wordlists", "../../etc/passwd"); err == nil {
		t.Error("expected traversal path to be rejected")
	}
}
