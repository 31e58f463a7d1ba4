package predicate

import "github.com/intentfw/ifw/internal/intentfilter"

// IntentFilterLeaf delegates to the platform's intent-filter
// admission semantics: the leaf matches iff its filter admits the
// dispatched intent.
type IntentFilterLeaf struct {
	Filter *intentfilter.Filter
}

func (l *IntentFilterLeaf) Matches(env *Env, dc *DispatchCtx) bool {
	if dc.Intent == nil {
		return false
	}
	return l.Filter.Admits(dc.Intent)
}

// MatchesPackage: an intent-filter predicate has no meaning without an
// intent.
func (l *IntentFilterLeaf) MatchesPackage(env *Env, pc *PackageCtx) bool { return false }
