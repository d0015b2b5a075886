package analysis

import "testing"

func TestHashRoundsToNearestHundredAcrossFloorBoundary(t *testing.T) {
	// 199 and 200 differ by only 1 byte but sit on either side of a floor
	// boundary; nearest-hundred rounding must bucket both to 200.
	h1 := Hash(200, "Welcome", 199, "body")
	h2 := Hash(200, "Welcome", 200, "body")
	if h1 != h2 {
		t.Error("expected lengths 199 and 200 to round to the same bucket")
	}
}

func TestHashDistinguishesStatusAndTitle(t *testing.T) {
	base := Hash(200, "Welcome", 1000, "body")
	if base == Hash(404, "Welcome", 1000, "body") {
		t.Error("expected different HTTP status to change the hash")
	}
	if base == Hash(200, "Not Found", 1000, "body") {
		t.Error("expected different title to change the hash")
	}
}

func TestHashTruncatesBodyTo100Bytes(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'a'
	}
	longer := append(append([]byte{}, long...), []byte("trailing junk beyond 100 bytes")...)
	if Hash(200, "", 1000, string(long)) != Hash(200, "", 1000, string(longer)) {
		t.Error("expected body snippets identical in their first 100 bytes to hash the same")
	}
}

func TestFingerprinterIsDuplicateConcurrentSafe(t *testing.T) {
	fp := NewFingerprinter()
	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			fp.IsDuplicate("same-hash")
			done <- true
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
