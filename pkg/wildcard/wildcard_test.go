package wildcard

import "testing"

func TestRandomLabelShape(t *testing.T) {
	label := randomLabel()
	const prefix = "wildcard-"
	if len(label) != len(prefix)+10 {
		t.Fatalf("randomLabel() = %q, want length %d", label, len(prefix)+10)
	}
	if label[:len(prefix)] != prefix {
		t.Errorf("randomLabel() = %q, want prefix %q", label, prefix)
	}
}

func TestRandomLabelIsUnpredictable(t *testing.T) {
	a := randomLabel()
	b := randomLabel()
	if a == b {
		t.Error("expected two canary labels generated back to back to differ")
	}
}
