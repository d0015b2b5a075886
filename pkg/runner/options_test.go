package runner

import "testing"

func TestValidateRequiresADomain(t *testing.T) {
	o := &Options{}
	if err := o.Validate(); err == nil {
		t.Error("expected an error when neither -d nor -dL is set")
	}
}

func TestValidateClampsThreads(t *testing.T) {
	o := &Options{Domain: []string{"example.com"}, Threads: 100}
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if o.Threads != 20 {
		t.Errorf("Threads = %d, want 20", o.Threads)
	}
}

func TestValidateFillsDefaultResolvers(t *testing.T) {
	o := &Options{Domain: []string{"example.com"}}
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(o.Resolvers) == 0 {
		t.Error("expected default resolvers to be filled in")
	}
}

func TestMatchesFiltersMatchTakesPrecedenceOverNone(t *testing.T) {
	o := &Options{Domain: []string{"example.com"}, Match: []string{"^admin\\."}}
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !o.MatchesFilters("admin.example.com") {
		t.Error("expected admin.example.com to match")
	}
	if o.MatchesFilters("www.example.com") {
		t.Error("expected www.example.com not to match")
	}
}

func TestMatchesFiltersRejectsFilteredEvenIfMatched(t *testing.T) {
	o := &Options{
		Domain: []string{"example.com"},
		Match:  []string{"^admin\\."},
		Filter: []string{"staging"},
	}
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if o.MatchesFilters("admin.staging.example.com") {
		t.Error("filter should reject even when a match pattern also applies")
	}
}

func TestHTTPSemaphoreSizeRespectsCeiling(t *testing.T) {
	o := &Options{Threads: 20}
	if got := o.HTTPSemaphoreSize(); got != 50 {
		t.Errorf("HTTPSemaphoreSize() = %d, want 50", got)
	}
}

func TestHTTPSemaphoreSizeShrinksForMemory(t *testing.T) {
	o := &Options{Threads: 20, OptimizeMemory: true}
	if got := o.HTTPSemaphoreSize(); got != 25 {
		t.Errorf("HTTPSemaphoreSize() = %d, want 25", got)
	}
}

func TestHTTPSemaphoreSizeOptimizeSpeedHitsCeiling(t *testing.T) {
	o := &Options{Threads: 1, OptimizeSpeed: true}
	if got := o.HTTPSemaphoreSize(); got != 50 {
		t.Errorf("HTTPSemaphoreSize() = %d, want 50", got)
	}
}
