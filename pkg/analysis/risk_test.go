package analysis

import "testing"

func TestScoreAdminDashboard(t *testing.T) {
	score, reasons := Score("admin.example.com", 200, "", false, "")
	if score != 6 {
		t.Errorf("score = %d, want 6 (%v)", score, reasons)
	}
}

func TestScoreDevEnvironment(t *testing.T) {
	score, _ := Score("dev.example.com", 200, "", false, "")
	if score != 3 {
		t.Errorf("score = %d, want 3", score)
	}
}

func TestScoreAPIEndpoint(t *testing.T) {
	score, _ := Score("api.example.com", 200, "", false, "")
	if score < 5 {
		t.Errorf("score = %d, want >= 5", score)
	}
}

func TestScoreTakeoverDominates(t *testing.T) {
	score, reasons := Score("old.example.com", 404, "", false, "AWS S3")
	// takeover (+10) and 404 (-3) combine deterministically.
	if score != 7 {
		t.Errorf("score = %d, want 7 (%v)", score, reasons)
	}
}

func TestScoreIsPure(t *testing.T) {
	a, _ := Score("admin.example.com", 200, "Login", false, "")
	b, _ := Score("admin.example.com", 200, "Login", false, "")
	if a != b {
		t.Error("Score is not deterministic for identical inputs")
	}
}

func TestDetectTakeoverRequiresBothCNAMEAndBody(t *testing.T) {
	if _, ok := DetectTakeover("somehost.s3.amazonaws.com", "nothing interesting here"); ok {
		t.Error("expected no takeover without matching body")
	}
	if _, ok := DetectTakeover("", "The specified bucket does not exist"); ok {
		t.Error("expected no takeover without a matching CNAME")
	}
	service, ok := DetectTakeover("bucket.s3.amazonaws.com", "Error: The specified bucket does not exist")
	if !ok || service != "AWS S3" {
		t.Errorf("DetectTakeover = (%q, %v), want (AWS S3, true)", service, ok)
	}
}

func TestIsPrivateIP(t *testing.T) {
	cases := map[string]bool{
		"10.0.0.5":      true,
		"172.16.5.5":    true,
		"192.168.1.1":   true,
		"127.0.0.1":     true,
		"169.254.1.1":   true,
		"8.8.8.8":       false,
		"93.184.216.34": false,
	}
	for ip, want := range cases {
		if got := IsPrivateIP(ip); got != want {
			t.Errorf("IsPrivateIP(%q) = %v, want %v", ip, got, want)
		}
	}
}

func TestFingerprinterDedup(t *testing.T) {
	fp := NewFingerprinter()
	h1 := Hash(200, "Welcome", 1234, "<html>body</html>")
	if fp.IsDuplicate(h1) {
		t.Error("first occurrence should not be a duplicate")
	}
	if !fp.IsDuplicate(h1) {
		t.Error("second occurrence should be a duplicate")
	}
}

func TestHashRoundsContentLength(t *testing.T) {
	h1 := Hash(200, "Welcome", 1160, "body")
	h2 := Hash(200, "Welcome", 1240, "body")
	if h1 != h2 {
		t.Error("expected lengths that round to the same hundred to hash identically")
	}
}
