// Package rule defines a Rule: a boolean expression over a predicate
// tree plus the effect flags the dispatch façade reads after a
// successful match.
package rule

import (
	"github.com/intentfw/ifw/internal/intent"
	"github.com/intentfw/ifw/internal/intentfilter"
	"github.com/intentfw/ifw/internal/predicate"
)

// Effects are the four independent booleans a matched rule carries.
// The enforcement path reads Block/LogOnBlock; the query path reads
// BlockQuery/LogOnQuery. Separate bits let one rule express "blocked
// to invoke, visible to query" or vice versa.
type Effects struct {
	Block      bool
	LogOnBlock bool
	BlockQuery bool
	LogOnQuery bool
}

// Rule is a single parsed rule belonging to exactly one intent.Kind.
type Rule struct {
	Kind             intent.Kind
	ID               string // source file + ordinal, for diagnostics only
	PackageName      string // optional; "" means unconstrained
	Effects          Effects
	MatchAll         bool
	Predicate        predicate.Predicate // root And over the rule's non-filter children
	IntentFilters    []*intentfilter.Filter
	ComponentFilters []intent.Component
}

// Matches evaluates the intent-dispatch path: package scoping first
// (a short-circuiting reject), then the predicate tree. Which effect
// bits apply afterwards is the caller's concern — enforcement and
// query entries share this contract.
func (r *Rule) Matches(env *predicate.Env, dc *predicate.DispatchCtx) bool {
	if r.PackageName != "" && r.PackageName != dc.Resolved.Package {
		return false
	}
	return r.Predicate.Matches(env, dc)
}

// MatchesPackage evaluates the package-query path: the same scoping
// check against the queried package, then the predicate tree under
// its package contract.
func (r *Rule) MatchesPackage(env *predicate.Env, pc *predicate.PackageCtx) bool {
	if r.PackageName != "" && r.PackageName != pc.TargetPackage {
		return false
	}
	return r.Predicate.MatchesPackage(env, pc)
}
