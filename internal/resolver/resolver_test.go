package resolver

import (
	"testing"

	"github.com/intentfw/ifw/internal/intent"
	"github.com/intentfw/ifw/internal/intentfilter"
	"github.com/intentfw/ifw/internal/rule"
)

func TestCandidatesDedupByIdentity(t *testing.T) {
	r := New()
	owner := &rule.Rule{ID: "r1"}
	f1 := &intentfilter.Filter{Actions: []string{"a.b.C"}}
	f2 := &intentfilter.Filter{Actions: []string{"a.b.D"}}
	r.AddFilter(f1, owner)
	r.AddFilter(f2, owner)

	got := r.Candidates(&intent.Intent{Action: "a.b.C"}, nil)
	if len(got) != 1 {
		t.Fatalf("expected rule to appear once despite two matching filters, got %d", len(got))
	}
}

func TestCandidatesSoundness(t *testing.T) {
	r := New()
	owner := &rule.Rule{ID: "r1"}
	r.AddFilter(&intentfilter.Filter{Actions: []string{"a.b.C"}}, owner)

	got := r.Candidates(&intent.Intent{Action: "a.b.C"}, nil)
	if len(got) != 1 || got[0] != owner {
		t.Fatal("a rule whose filter admits the intent must appear in the candidate set")
	}

	got = r.Candidates(&intent.Intent{Action: "other"}, nil)
	if len(got) != 0 {
		t.Fatal("a rule whose filter rejects the intent must not appear")
	}
}

func TestCandidatesComponentAndMatchAll(t *testing.T) {
	r := New()
	comp := intent.Component{Package: "com.x", Class: "com.x.Z"}
	byComponent := &rule.Rule{ID: "byComponent"}
	r.AddComponent(comp, byComponent)

	matchAll := &rule.Rule{ID: "matchAll"}
	r.AddMatchAll(matchAll)

	got := r.Candidates(nil, &comp)
	if len(got) != 2 || got[0] != byComponent || got[1] != matchAll {
		t.Fatalf("expected [byComponent, matchAll] in insertion order, got %v", got)
	}
}

func TestCandidatesNoActionFilterAdmitsAnyAction(t *testing.T) {
	r := New()
	owner := &rule.Rule{ID: "any-action"}
	r.AddFilter(&intentfilter.Filter{}, owner)

	got := r.Candidates(&intent.Intent{Action: "whatever"}, nil)
	if len(got) != 1 {
		t.Fatal("a filter with no actions must admit any action")
	}
}
