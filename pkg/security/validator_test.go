package security

import "testing"

func TestIsValidDomain(t *testing.T) {
	cases := map[string]bool{
		"example.com":               true,
		"api.example.com":           true,
		"a.b.c.example.com":         true,
		"":                          false,
		"example":                   false,
		"-bad.example.com":          false,
		"bad-.example.com":          false,
		"exa mple.com":              false,
		"example.com; rm -rf /":     false,
	}
	for in, want := range cases {
		if got := IsValidDomain(in); got != want {
			t.Errorf("IsValidDomain(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSanitizeDomain(t *testing.T) {
	cases := map[string]string{
		"https://API.Example.com/path?x=1": "api.example.com",
		"  Example.COM  ":                  "example.com",
		"http://example.com":               "example.com",
		"example.com.":                     "example.com",
	}
	for in, want := range cases {
		if got := SanitizeDomain(in); got != want {
			t.Errorf("SanitizeDomain(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsSafePath(t *testing.T) {
	if !IsSafePath("/tmp/wordlists", "common.txt") {
		t.Error("expected plain relative filename to be safe")
	}
	if IsSafePath("/tmp/wordlists", "../../etc/passwd") {
		t.Error("expected traversal path to be rejected")
	}
	if IsSafePath("/tmp/wordlists", "foo; rm -rf /") {
		t.Error("expected shell metacharacter path to be rejected")
	}
}

func TestValidateTargets(t *testing.T) {
	in := []string{"https://Example.com/", "example.com", "not a domain", "bad..domain"}
	out := ValidateTargets(in)
	if len(out) != 1 || out[0] != "example.com" {
		t.Errorf("ValidateTargets(%v) = %v", in, out)
	}
}

func TestIsSafeResolverIP(t *testing.T) {
	if !IsSafeResolverIP("192.0.2.1") {
		t.Error("expected plain IP to be safe")
	}
	if IsSafeResolverIP("192.0.2.1; cat /etc/passwd") {
		t.Error("expected shell-injected IP to be rejected")
	}
}
